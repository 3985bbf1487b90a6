package planner

import (
	"context"
	"time"

	"github.com/sooahn/daygoal/internal/schedule"
)

// The postpone operations reassign due dates directly: they do not re-run
// the scheduler's day-budget logic, and they do not clamp the new date to
// the project deadline. Tasks can be pushed past the deadline on purpose;
// the calendar view shows them as overdue instead of refusing the move.
// Only incomplete tasks move, and only the due date changes.

// PostponeToDate moves every incomplete task on fromDay to toDay.
func (p *Planner) PostponeToDate(ctx context.Context, projectID int64, fromDay, toDay time.Time) error {
	if err := p.tasks.PostponeOnDay(projectID, fromDay, toDay); err != nil {
		return err
	}
	return p.projects.SyncAggregates(projectID)
}

// PostponeToNextDay moves every incomplete task on fromDay to the following
// calendar day. Weekends are not skipped here; the one-day bump is literal.
func (p *Planner) PostponeToNextDay(ctx context.Context, projectID int64, fromDay time.Time) error {
	return p.PostponeToDate(ctx, projectID, fromDay, fromDay.AddDate(0, 0, 1))
}

// PostponeAllIncomplete moves every incomplete task of the project to the
// next non-weekend day after today, computed once for the whole batch.
func (p *Planner) PostponeAllIncomplete(ctx context.Context, projectID int64) error {
	target := schedule.NextAvailableDay(p.now())
	if err := p.tasks.PostponeAllIncomplete(projectID, target); err != nil {
		return err
	}
	return p.projects.SyncAggregates(projectID)
}
