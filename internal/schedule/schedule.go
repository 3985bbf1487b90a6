package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/sooahn/daygoal/internal/models"
)

// ErrNoUsableTime is returned when the deadline has already passed or the
// buffer swallows every remaining day.
var ErrNoUsableTime = errors.New("schedule: deadline already passed or leaves no usable time")

// Schedule distributes classified task stubs across the days between today
// and the deadline. Dates are assigned from now's calendar day; both now and
// deadline are truncated to midnight before the day arithmetic.
//
// The working-day budget is floor(availableDays/7*workDaysPerWeek). The
// ratio is an approximation that does not exclude weekends from
// availableDays itself; for windows shorter than a week it can be off by a
// day. That behavior is kept as-is for compatibility with existing plans.
func Schedule(stubs []models.TaskStub, deadline time.Time, settings models.ScheduleSettings, now time.Time) ([]models.Task, error) {
	today := startOfDay(now)
	due := startOfDay(deadline)

	totalDays := int(due.Sub(today).Hours() / 24)
	if totalDays-settings.BufferDays <= 0 {
		return nil, fmt.Errorf("%w: %d day(s) until deadline, %d buffer day(s)",
			ErrNoUsableTime, totalDays, settings.BufferDays)
	}

	availableDays := totalDays - settings.BufferDays
	if availableDays < 1 {
		availableDays = 1
	}

	effectiveDays := availableDays * settings.WorkDaysPerWeek / 7
	if effectiveDays < 1 {
		effectiveDays = 1
	}

	ordered := LogicalOrderClassifier{}.Classify(stubs)
	if len(ordered) == 0 {
		return []models.Task{}, nil
	}

	tasks := make([]models.Task, 0, len(ordered))
	for i, stub := range ordered {
		dayOffset := i * effectiveDays / len(ordered)
		date := today.AddDate(0, 0, dayOffset)
		if settings.WorkDaysPerWeek <= 5 {
			date = nextWeekday(date)
		}

		tasks = append(tasks, models.Task{
			ID:            fmt.Sprintf("task-%d", i),
			Title:         stub.Title,
			Description:   stub.Description,
			DueDate:       date,
			Completed:     false,
			Difficulty:    stub.Difficulty,
			OriginalIndex: i,
			Priority:      models.PriorityMedium,
			Points:        0,
			IsUserAdded:   false,
		})
	}
	return tasks, nil
}

// NextAvailableDay is the first day strictly after now that is not a
// Saturday or Sunday. Postponing all incomplete tasks targets this day.
func NextAvailableDay(now time.Time) time.Time {
	return nextWeekday(startOfDay(now).AddDate(0, 0, 1))
}

// nextWeekday advances forward, never backward, until the date is Mon-Fri.
func nextWeekday(date time.Time) time.Time {
	for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
