package repository

import (
	"database/sql"
	"time"

	"github.com/sooahn/daygoal/internal/models"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Create(task models.Task) error {
	_, err := r.db.Exec(`
		INSERT INTO tasks (project_id, id, title, description, due_date, completed,
			difficulty, original_index, priority, points, is_user_added)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ProjectID, task.ID, task.Title, task.Description, task.DueDate.Format(dayLayout),
		task.Completed, task.Difficulty, task.OriginalIndex, task.Priority,
		task.Points, task.IsUserAdded)
	return err
}

// ReplaceForProject swaps the project's task list in one transaction, so a
// failed insert leaves the previous list untouched.
func (r *TaskRepo) ReplaceForProject(projectID int64, tasks []models.Task) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks WHERE project_id = ?", projectID); err != nil {
		return err
	}

	for _, task := range tasks {
		if _, err := tx.Exec(`
			INSERT INTO tasks (project_id, id, title, description, due_date, completed,
				difficulty, original_index, priority, points, is_user_added)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, projectID, task.ID, task.Title, task.Description, task.DueDate.Format(dayLayout),
			task.Completed, task.Difficulty, task.OriginalIndex, task.Priority,
			task.Points, task.IsUserAdded); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *TaskRepo) GetByID(projectID int64, id string) (*models.Task, error) {
	row := r.db.QueryRow(`
		SELECT project_id, id, title, description, due_date, completed,
			difficulty, original_index, priority, points, is_user_added, created_at
		FROM tasks
		WHERE project_id = ? AND id = ?
	`, projectID, id)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepo) GetByProject(projectID int64) ([]models.Task, error) {
	rows, err := r.db.Query(`
		SELECT project_id, id, title, description, due_date, completed,
			difficulty, original_index, priority, points, is_user_added, created_at
		FROM tasks
		WHERE project_id = ?
		ORDER BY due_date, original_index
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// SetCompleted flips completion and stores the task's point value: the
// earned points on completion, zero when the completion is undone.
func (r *TaskRepo) SetCompleted(projectID int64, id string, completed bool, points int) error {
	_, err := r.db.Exec(`
		UPDATE tasks SET completed = ?, points = ? WHERE project_id = ? AND id = ?
	`, completed, points, projectID, id)
	return err
}

func (r *TaskRepo) Delete(projectID int64, id string) error {
	_, err := r.db.Exec("DELETE FROM tasks WHERE project_id = ? AND id = ?", projectID, id)
	return err
}

// PostponeOnDay moves every incomplete task sitting on fromDay to toDay.
// Completed tasks on the same day are left alone, and nothing but the due
// date changes.
func (r *TaskRepo) PostponeOnDay(projectID int64, fromDay, toDay time.Time) error {
	_, err := r.db.Exec(`
		UPDATE tasks SET due_date = ?
		WHERE project_id = ? AND due_date = ? AND completed = 0
	`, toDay.Format(dayLayout), projectID, fromDay.Format(dayLayout))
	return err
}

// PostponeAllIncomplete moves every incomplete task of the project to toDay,
// regardless of where it currently sits.
func (r *TaskRepo) PostponeAllIncomplete(projectID int64, toDay time.Time) error {
	_, err := r.db.Exec(`
		UPDATE tasks SET due_date = ?
		WHERE project_id = ? AND completed = 0
	`, toDay.Format(dayLayout), projectID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	var dueDate string

	err := row.Scan(
		&t.ProjectID, &t.ID, &t.Title, &t.Description, &dueDate, &t.Completed,
		&t.Difficulty, &t.OriginalIndex, &t.Priority, &t.Points, &t.IsUserAdded,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.DueDate, err = time.ParseInLocation(dayLayout, dueDate, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}
