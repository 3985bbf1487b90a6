package reward

import (
	"context"
	"time"

	"github.com/sooahn/daygoal/internal/models"
)

// StatsStore loads and persists the application-wide stats record. The
// engine never reaches for a global: the store is injected so tests can run
// against isolated instances.
type StatsStore interface {
	GetOrCreate(ctx context.Context) (*models.UserStats, error)
	Save(ctx context.Context, stats *models.UserStats) error
}

// Result is the feedback shown to the user after completing a task.
type Result struct {
	Points     int
	NewBadges  []models.Badge
	NewLevel   int
	StreakDays int
}

// Engine updates cumulative user stats when a task is completed.
type Engine struct {
	store StatsStore
	now   func() time.Time
}

func NewEngine(store StatsStore, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, now: now}
}

// Complete applies the completion of task within project to the user stats
// and persists the updated record. projectTasks is the project's full task
// list after the completion, used to detect a finished project.
//
// A nil task or project makes the call a no-op returning (nil, nil); the UI
// may race with deletions and a vanished row is not an error.
func (e *Engine) Complete(ctx context.Context, task *models.Task, project *models.Project, projectTasks []models.Task) (*Result, error) {
	if task == nil || project == nil {
		return nil, nil
	}

	stats, err := e.store.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	now := e.now()
	points := TaskPoints(*task)

	stats.CompletedTasks++
	stats.TotalPoints += points
	stats.CurrentLevel = Level(stats.TotalPoints)
	stats.StreakDays = nextStreak(stats, now)
	stats.LastCompletedAt = &now

	if projectFinished(projectTasks) {
		stats.CompletedProjects++
		unlockAchievement(stats, AchievementCompleteProject, now)
	}
	if stats.CompletedTasks >= 10 {
		unlockAchievement(stats, AchievementComplete10, now)
	}
	if stats.CompletedTasks >= 50 {
		unlockAchievement(stats, AchievementComplete50, now)
	}

	newBadges := awardBadges(stats, task, now)

	if err := e.store.Save(ctx, stats); err != nil {
		return nil, err
	}

	return &Result{
		Points:     points,
		NewBadges:  newBadges,
		NewLevel:   stats.CurrentLevel,
		StreakDays: stats.StreakDays,
	}, nil
}

// nextStreak implements the consecutive-day counter: a second completion on
// the same day keeps the streak, a completion the day after the last one
// extends it, anything else restarts at 1.
func nextStreak(stats *models.UserStats, now time.Time) int {
	if stats.LastCompletedAt == nil {
		return 1
	}
	last := *stats.LastCompletedAt
	if sameDay(last, now) {
		return stats.StreakDays
	}
	if sameDay(last, now.AddDate(0, 0, -1)) {
		return stats.StreakDays + 1
	}
	return 1
}

func awardBadges(stats *models.UserStats, task *models.Task, now time.Time) []models.Badge {
	var earned []models.Badge

	award := func(id string) {
		if stats.HasBadge(id) {
			return
		}
		badge, ok := badgeByID(id)
		if !ok {
			return
		}
		badge.EarnedAt = now
		stats.Badges = append(stats.Badges, badge)
		earned = append(earned, badge)
	}

	if stats.CompletedTasks == 1 {
		award(BadgeFirstTask)
	}
	if task.Priority == models.PriorityHigh || task.Priority == models.PriorityCritical {
		award(BadgeHighPriority)
	}
	if task.IsUserAdded {
		award(BadgeUserAdded)
	}
	if stats.StreakDays >= 3 {
		award(BadgeStreak3)
	}
	if stats.StreakDays >= 7 {
		award(BadgeStreak7)
	}
	if stats.CompletedProjects >= 1 {
		award(BadgeFirstProject)
	}

	return earned
}

// unlockAchievement flips an achievement to unlocked exactly once; an
// already unlocked entry is left untouched so the transition never reverts.
func unlockAchievement(stats *models.UserStats, id string, now time.Time) {
	for i := range stats.Achievements {
		if stats.Achievements[i].ID == id && !stats.Achievements[i].Unlocked {
			stats.Achievements[i].Unlocked = true
			at := now
			stats.Achievements[i].UnlockedAt = &at
			return
		}
	}
}

func projectFinished(tasks []models.Task) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
