package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sooahn/daygoal/internal/decompose"
	"github.com/sooahn/daygoal/internal/models"
	"github.com/sooahn/daygoal/internal/repository"
	"github.com/sooahn/daygoal/internal/reward"
	"github.com/sooahn/daygoal/internal/schedule"
)

var (
	ErrEmptyGoal       = errors.New("planner: goal title is required")
	ErrInvalidDeadline = errors.New("planner: deadline must be a calendar date")
)

// Planner drives the decompose -> classify -> schedule -> score pipeline and
// the task mutations around it. All operations are synchronous single-writer
// calls; callers serialize access to one database.
type Planner struct {
	projects   *repository.ProjectRepo
	tasks      *repository.TaskRepo
	stats      *repository.StatsRepo
	decomposer decompose.Decomposer
	engine     *reward.Engine
	now        func() time.Time
}

func New(projects *repository.ProjectRepo, tasks *repository.TaskRepo, stats *repository.StatsRepo, decomposer decompose.Decomposer, now func() time.Time) *Planner {
	if now == nil {
		now = time.Now
	}
	return &Planner{
		projects:   projects,
		tasks:      tasks,
		stats:      stats,
		decomposer: decomposer,
		engine:     reward.NewEngine(stats, now),
		now:        now,
	}
}

type CreateProjectInput struct {
	Name            string
	GoalDescription string
	GoalContext     string
	Deadline        time.Time
	Settings        models.ScheduleSettings
}

type CreateProjectResult struct {
	Project *models.Project
	Tasks   []models.Task
}

// CreateProject runs the full pipeline for a new goal. Nothing is persisted
// until decomposition and scheduling have both succeeded, so a rejected or
// malformed decomposition response leaves no trace.
func (p *Planner) CreateProject(ctx context.Context, in CreateProjectInput) (*CreateProjectResult, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrEmptyGoal
	}
	if in.Deadline.IsZero() {
		return nil, ErrInvalidDeadline
	}

	stubs, err := p.decomposer.Breakdown(ctx, decompose.Request{
		GoalTitle:       in.Name,
		GoalDescription: in.GoalDescription,
		GoalContext:     in.GoalContext,
		Deadline:        in.Deadline.Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}

	tasks, err := schedule.Schedule(stubs, in.Deadline, in.Settings, p.now())
	if err != nil {
		return nil, err
	}

	project, err := p.projects.Create(in.Name, in.Deadline)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		tasks[i].ProjectID = project.ID
	}
	if err := p.tasks.ReplaceForProject(project.ID, tasks); err != nil {
		// Roll the project row back so a half-created project never shows up.
		_ = p.projects.Delete(project.ID)
		return nil, err
	}

	if err := p.projects.SyncAggregates(project.ID); err != nil {
		return nil, err
	}

	project, err = p.projects.GetByID(project.ID)
	if err != nil {
		return nil, err
	}
	return &CreateProjectResult{Project: project, Tasks: tasks}, nil
}

// Reproject re-runs decomposition against an existing project with an
// updated deadline, replacing its task list and resetting progress.
func (p *Planner) Reproject(ctx context.Context, projectID int64, in CreateProjectInput) (*CreateProjectResult, error) {
	project, err := p.projects.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	name := in.Name
	if strings.TrimSpace(name) == "" {
		name = project.Name
	}

	stubs, err := p.decomposer.Breakdown(ctx, decompose.Request{
		GoalTitle:       name,
		GoalDescription: in.GoalDescription,
		GoalContext:     in.GoalContext,
		Deadline:        in.Deadline.Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}

	tasks, err := schedule.Schedule(stubs, in.Deadline, in.Settings, p.now())
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		tasks[i].ProjectID = projectID
	}
	if err := p.tasks.ReplaceForProject(projectID, tasks); err != nil {
		return nil, err
	}
	if err := p.projects.SetDeadline(projectID, in.Deadline); err != nil {
		return nil, err
	}
	if err := p.projects.SyncAggregates(projectID); err != nil {
		return nil, err
	}

	project, err = p.projects.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	return &CreateProjectResult{Project: project, Tasks: tasks}, nil
}

type AddTaskInput struct {
	Title       string
	Description string
	Difficulty  models.Difficulty
	Priority    models.Priority
	DueDate     time.Time
}

// AddTask appends a user-added task to a project. Unknown enum values fall
// back to medium rather than failing.
func (p *Planner) AddTask(ctx context.Context, projectID int64, in AddTaskInput) (*models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrEmptyGoal
	}

	project, err := p.projects.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	if !in.Difficulty.IsValid() {
		in.Difficulty = models.DifficultyMedium
	}
	if !in.Priority.IsValid() {
		in.Priority = models.PriorityMedium
	}
	due := in.DueDate
	if due.IsZero() {
		due = p.now()
	}

	existing, err := p.tasks.GetByProject(projectID)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		ID:            fmt.Sprintf("task-user-%d", p.now().UnixNano()),
		ProjectID:     projectID,
		Title:         in.Title,
		Description:   in.Description,
		DueDate:       due,
		Difficulty:    in.Difficulty,
		OriginalIndex: len(existing),
		Priority:      in.Priority,
		IsUserAdded:   true,
	}
	if err := p.tasks.Create(task); err != nil {
		return nil, err
	}
	if err := p.projects.SyncAggregates(projectID); err != nil {
		return nil, err
	}
	return &task, nil
}

// ToggleTask flips a task's completion state. Completing a task stores its
// derived point value and feeds the reward engine; undoing a completion
// zeroes the stored points. An unknown project or task id is a no-op.
func (p *Planner) ToggleTask(ctx context.Context, projectID int64, taskID string, completed bool) (*reward.Result, error) {
	task, err := p.tasks.GetByID(projectID, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	project, err := p.projects.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	points := 0
	if completed {
		points = reward.TaskPoints(*task)
	}
	if err := p.tasks.SetCompleted(projectID, taskID, completed, points); err != nil {
		return nil, err
	}
	if err := p.projects.SyncAggregates(projectID); err != nil {
		return nil, err
	}

	if !completed {
		return nil, nil
	}

	task.Completed = true
	task.Points = points

	projectTasks, err := p.tasks.GetByProject(projectID)
	if err != nil {
		return nil, err
	}
	return p.engine.Complete(ctx, task, project, projectTasks)
}

// DeleteProject removes a project and all of its tasks.
func (p *Planner) DeleteProject(ctx context.Context, projectID int64) error {
	return p.projects.Delete(projectID)
}
