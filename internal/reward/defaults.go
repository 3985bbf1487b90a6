package reward

import "github.com/sooahn/daygoal/internal/models"

// Badge ids. Each badge is earned at most once.
const (
	BadgeFirstTask    = "first-task"
	BadgeFirstProject = "first-project"
	BadgeStreak3      = "streak-3"
	BadgeStreak7      = "streak-7"
	BadgeHighPriority = "high-priority"
	BadgeUserAdded    = "user-added"
)

// Achievement ids.
const (
	AchievementComplete10      = "complete-10-tasks"
	AchievementComplete50      = "complete-50-tasks"
	AchievementCompleteProject = "complete-project"
	AchievementHighPriority    = "high-priority-complete"
	AchievementUserTask        = "user-task-complete"
)

var defaultBadges = []models.Badge{
	{ID: BadgeFirstTask, Name: "First Step", Description: "Completed your first task", Icon: "🎯", Category: "achievement"},
	{ID: BadgeFirstProject, Name: "Project Master", Description: "Completed your first project", Icon: "🏆", Category: "milestone"},
	{ID: BadgeStreak3, Name: "On Fire", Description: "Completed tasks three days in a row", Icon: "🔥", Category: "streak"},
	{ID: BadgeStreak7, Name: "Week Warrior", Description: "Completed tasks seven days in a row", Icon: "⚡", Category: "streak"},
	{ID: BadgeHighPriority, Name: "Priority Master", Description: "Completed a high priority task", Icon: "⭐", Category: "achievement"},
	{ID: BadgeUserAdded, Name: "Self Starter", Description: "Completed a task you added yourself", Icon: "💡", Category: "special"},
}

// DefaultAchievements is the locked achievement catalog a fresh stats record
// starts with.
func DefaultAchievements() []models.Achievement {
	return []models.Achievement{
		{ID: AchievementComplete10, Name: "Task Finisher", Description: "Completed 10 tasks", Icon: "✅", Points: 50, Condition: "Complete 10 tasks"},
		{ID: AchievementComplete50, Name: "Task Master", Description: "Completed 50 tasks", Icon: "🎖️", Points: 200, Condition: "Complete 50 tasks"},
		{ID: AchievementCompleteProject, Name: "Project Finisher", Description: "Completed a project", Icon: "🏁", Points: 100, Condition: "Complete a project"},
		{ID: AchievementHighPriority, Name: "Priority Manager", Description: "Completed a high priority task", Icon: "🎯", Points: 75, Condition: "Complete a high priority task"},
		{ID: AchievementUserTask, Name: "Self Directed", Description: "Completed a task you added yourself", Icon: "💪", Points: 60, Condition: "Complete a user-added task"},
	}
}

func badgeByID(id string) (models.Badge, bool) {
	for _, b := range defaultBadges {
		if b.ID == id {
			return b, true
		}
	}
	return models.Badge{}, false
}
