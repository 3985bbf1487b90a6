package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/sooahn/daygoal/internal/models"
	"github.com/sooahn/daygoal/internal/reward"
)

// StatsRepo persists the single application-wide stats row. It satisfies
// reward.StatsStore.
type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// GetOrCreate returns the stats record, inserting a zero-valued one with the
// default achievement catalog on first read.
func (r *StatsRepo) GetOrCreate(ctx context.Context) (*models.UserStats, error) {
	var s models.UserStats
	var lastCompleted sql.NullTime
	var badgesJSON, achievementsJSON string

	err := r.db.QueryRowContext(ctx, `
		SELECT completed_tasks, total_points, current_level, streak_days,
			last_completed_at, completed_projects, badges, achievements
		FROM user_stats
		WHERE id = 1
	`).Scan(
		&s.CompletedTasks, &s.TotalPoints, &s.CurrentLevel, &s.StreakDays,
		&lastCompleted, &s.CompletedProjects, &badgesJSON, &achievementsJSON,
	)

	if err == sql.ErrNoRows {
		fresh := &models.UserStats{
			CurrentLevel: 1,
			Badges:       []models.Badge{},
			Achievements: reward.DefaultAchievements(),
		}
		if err := r.Save(ctx, fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	}
	if err != nil {
		return nil, err
	}

	if lastCompleted.Valid {
		t := lastCompleted.Time
		s.LastCompletedAt = &t
	}
	if err := json.Unmarshal([]byte(badgesJSON), &s.Badges); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(achievementsJSON), &s.Achievements); err != nil {
		return nil, err
	}

	return &s, nil
}

// Save upserts the stats row.
func (r *StatsRepo) Save(ctx context.Context, stats *models.UserStats) error {
	badgesJSON, err := json.Marshal(stats.Badges)
	if err != nil {
		return err
	}
	achievementsJSON, err := json.Marshal(stats.Achievements)
	if err != nil {
		return err
	}

	var lastCompleted any
	if stats.LastCompletedAt != nil {
		lastCompleted = stats.LastCompletedAt.Format("2006-01-02 15:04:05")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_stats (id, completed_tasks, total_points, current_level,
			streak_days, last_completed_at, completed_projects, badges, achievements)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			completed_tasks = excluded.completed_tasks,
			total_points = excluded.total_points,
			current_level = excluded.current_level,
			streak_days = excluded.streak_days,
			last_completed_at = excluded.last_completed_at,
			completed_projects = excluded.completed_projects,
			badges = excluded.badges,
			achievements = excluded.achievements
	`, stats.CompletedTasks, stats.TotalPoints, stats.CurrentLevel,
		stats.StreakDays, lastCompleted, stats.CompletedProjects,
		string(badgesJSON), string(achievementsJSON))
	return err
}
