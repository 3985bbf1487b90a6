package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sooahn/daygoal/internal/models"
	"github.com/sooahn/daygoal/internal/reward"
)

func TestProjectGetByIDMissingReturnsNil(t *testing.T) {
	database := setupDB(t)

	got, err := NewProjectRepo(database).GetByID(424242)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing project, got %+v", got)
	}
}

func TestSyncAggregatesIsIdempotent(t *testing.T) {
	database := setupDB(t)
	list := threeTasks(t)
	list[0].Completed = true // easy/medium -> 10 points
	project := seedProject(t, database, list)
	projects := NewProjectRepo(database)

	for i := 0; i < 2; i++ {
		if err := projects.SyncAggregates(project.ID); err != nil {
			t.Fatalf("sync %d: %v", i, err)
		}
	}

	got, err := projects.GetByID(project.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TotalTasks != 3 || got.CompletedTasks != 1 {
		t.Fatalf("counts: total=%d completed=%d", got.TotalTasks, got.CompletedTasks)
	}
	// easy 10 + hard 30 + medium 20, all at medium priority.
	if got.TotalPoints != 60 {
		t.Fatalf("totalPoints = %d, want 60", got.TotalPoints)
	}
	if got.EarnedPoints != 10 {
		t.Fatalf("earnedPoints = %d, want 10", got.EarnedPoints)
	}
	if got.Level != 1 {
		t.Fatalf("level = %d, want 1", got.Level)
	}
}

func TestSyncAggregatesRecoversFromDrift(t *testing.T) {
	database := setupDB(t)
	project := seedProject(t, database, threeTasks(t))
	projects := NewProjectRepo(database)

	// Corrupt the cached counters directly; the sync pass must restore them
	// from the task rows.
	if _, err := database.Exec(
		"UPDATE projects SET completed_tasks = 99, total_points = 9999 WHERE id = ?",
		project.ID); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	if err := projects.SyncAggregates(project.ID); err != nil {
		t.Fatalf("sync: %v", err)
	}
	got, _ := projects.GetByID(project.ID)
	if got.CompletedTasks != 0 || got.TotalPoints != 60 {
		t.Fatalf("drift not repaired: %+v", got)
	}
}

func TestStatsLazyCreateAndRoundTrip(t *testing.T) {
	database := setupDB(t)
	stats := NewStatsRepo(database)
	ctx := context.Background()

	s, err := stats.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if s.CompletedTasks != 0 || s.CurrentLevel != 1 || s.StreakDays != 0 {
		t.Fatalf("fresh stats not zero-valued: %+v", s)
	}
	if len(s.Achievements) != len(reward.DefaultAchievements()) {
		t.Fatalf("fresh stats carry %d achievements", len(s.Achievements))
	}
	for _, a := range s.Achievements {
		if a.Unlocked {
			t.Fatalf("achievement %s starts unlocked", a.ID)
		}
	}

	s.CompletedTasks = 4
	s.TotalPoints = 120
	s.CurrentLevel = 2
	s.StreakDays = 2
	now := day(t, "2026-09-10").Add(20 * time.Minute)
	s.LastCompletedAt = &now
	s.Badges = append(s.Badges, models.Badge{ID: "first-task", Name: "First Step", EarnedAt: now})
	s.Achievements[0].Unlocked = true
	s.Achievements[0].UnlockedAt = &now

	if err := stats.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := stats.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.CompletedTasks != 4 || got.TotalPoints != 120 || got.StreakDays != 2 {
		t.Fatalf("reloaded stats: %+v", got)
	}
	if got.LastCompletedAt == nil {
		t.Fatal("lastCompletedAt lost")
	}
	ly, lm, ld := got.LastCompletedAt.Date()
	if ly != 2026 || lm != 9 || ld != 10 {
		t.Fatalf("lastCompletedAt day = %d-%d-%d", ly, lm, ld)
	}
	if !got.HasBadge("first-task") {
		t.Fatal("badge lost in round trip")
	}
	if !got.Achievements[0].Unlocked {
		t.Fatal("achievement unlock lost in round trip")
	}
}
