package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Weight orders difficulties easy < medium < hard for classifier tie-breaks.
// Unknown values sort with medium.
func (d Difficulty) Weight() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return 3
	default:
		return 2
	}
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// TaskStub is an unscheduled, unscored task description as returned by the
// goal decomposition service.
type TaskStub struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Difficulty     Difficulty `json:"difficulty"`
	EstimatedHours float64    `json:"estimatedHours"`
}

// Task is a stub that has been placed on the calendar. DueDate is a plain
// calendar day (midnight, local); day-level equality goes through DueDay.
type Task struct {
	ID            string
	ProjectID     int64
	Title         string
	Description   string
	DueDate       time.Time
	Completed     bool
	Difficulty    Difficulty
	OriginalIndex int
	Priority      Priority
	Points        int
	IsUserAdded   bool
	CreatedAt     time.Time
}

// DueDay is the day key used for grouping and postpone matching.
func (t Task) DueDay() string {
	return t.DueDate.Format("2006-01-02")
}

// DisplayDate is the human-readable form shown in calendar and list views.
func (t Task) DisplayDate() string {
	return t.DueDate.Format("January 2 (Mon)")
}

type Project struct {
	ID        int64
	Name      string
	Deadline  time.Time
	CreatedAt time.Time

	// Derived aggregates, recomputed by SyncAggregates. Never trusted
	// incrementally.
	CompletedTasks int
	TotalTasks     int
	TotalPoints    int
	EarnedPoints   int
	Level          int
}

type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earnedAt"`
	Category    string    `json:"category"`
}

type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Points      int        `json:"points"`
	Condition   string     `json:"condition"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// UserStats is the application-wide gamification record. One row exists per
// installation, created lazily with zero values and the default achievement
// catalog.
type UserStats struct {
	CompletedTasks    int
	TotalPoints       int
	CurrentLevel      int
	Badges            []Badge
	Achievements      []Achievement
	StreakDays        int
	LastCompletedAt   *time.Time
	CompletedProjects int
}

// HasBadge reports whether a badge id has already been earned.
func (s *UserStats) HasBadge(id string) bool {
	for _, b := range s.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// ScheduleSettings are the user's scheduling preferences.
type ScheduleSettings struct {
	WorkDaysPerWeek int
	HoursPerDay     float64
	BufferDays      int
	PreferMorning   bool
	PreferAfternoon bool
	PreferEvening   bool
}

// DefaultScheduleSettings mirrors the defaults offered by the schedule
// preferences form.
func DefaultScheduleSettings() ScheduleSettings {
	return ScheduleSettings{
		WorkDaysPerWeek: 5,
		HoursPerDay:     4,
		BufferDays:      1,
		PreferMorning:   true,
		PreferAfternoon: true,
		PreferEvening:   false,
	}
}
