package decompose

import (
	"context"

	"github.com/sooahn/daygoal/internal/models"
)

// Request carries everything the decomposition service needs to break a goal
// into task steps.
type Request struct {
	GoalTitle       string
	GoalDescription string
	GoalContext     string
	Deadline        string
}

// Decomposer turns a goal into an unordered list of task stubs. The planner
// and the TUI depend on this interface so the network client can be replaced
// with a stub in tests.
type Decomposer interface {
	Breakdown(ctx context.Context, req Request) ([]models.TaskStub, error)
}

// Error is the single failure type of the decomposition call. Network
// failures, non-2xx statuses, missing candidates and unparsable task arrays
// all arrive here with the underlying cause attached; a partial task list is
// never returned.
type Error struct {
	Cause error
}

func (e *Error) Error() string {
	return "decompose: goal breakdown failed: " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}
