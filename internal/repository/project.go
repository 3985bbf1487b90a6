package repository

import (
	"database/sql"
	"time"

	"github.com/sooahn/daygoal/internal/models"
	"github.com/sooahn/daygoal/internal/reward"
)

const dayLayout = "2006-01-02"

type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

func (r *ProjectRepo) Create(name string, deadline time.Time) (*models.Project, error) {
	result, err := r.db.Exec(
		"INSERT INTO projects (name, deadline) VALUES (?, ?)",
		name, deadline.Format(dayLayout),
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *ProjectRepo) GetByID(id int64) (*models.Project, error) {
	var p models.Project
	var deadline string

	err := r.db.QueryRow(`
		SELECT id, name, deadline, created_at,
			completed_tasks, total_tasks, total_points, earned_points, level
		FROM projects
		WHERE id = ?
	`, id).Scan(
		&p.ID, &p.Name, &deadline, &p.CreatedAt,
		&p.CompletedTasks, &p.TotalTasks, &p.TotalPoints, &p.EarnedPoints, &p.Level,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Deadline, err = time.ParseInLocation(dayLayout, deadline, time.Local)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *ProjectRepo) GetAll() ([]models.Project, error) {
	rows, err := r.db.Query(`
		SELECT id, name, deadline, created_at,
			completed_tasks, total_tasks, total_points, earned_points, level
		FROM projects
		ORDER BY deadline, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		var deadline string

		if err := rows.Scan(
			&p.ID, &p.Name, &deadline, &p.CreatedAt,
			&p.CompletedTasks, &p.TotalTasks, &p.TotalPoints, &p.EarnedPoints, &p.Level,
		); err != nil {
			return nil, err
		}

		p.Deadline, err = time.ParseInLocation(dayLayout, deadline, time.Local)
		if err != nil {
			return nil, err
		}

		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepo) SetDeadline(id int64, deadline time.Time) error {
	_, err := r.db.Exec("UPDATE projects SET deadline = ? WHERE id = ?",
		deadline.Format(dayLayout), id)
	return err
}

// Delete removes the project; its tasks go with it through the foreign key.
func (r *ProjectRepo) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM projects WHERE id = ?", id)
	return err
}

// SyncAggregates recomputes the project's cached counters from its task
// rows. The counters are never updated incrementally; this pass is the only
// writer, so running it twice in a row yields identical values.
func (r *ProjectRepo) SyncAggregates(id int64) error {
	rows, err := r.db.Query(`
		SELECT completed, difficulty, priority, is_user_added
		FROM tasks
		WHERE project_id = ?
	`, id)
	if err != nil {
		return err
	}
	defer rows.Close()

	var total, completed, totalPoints, earnedPoints int
	for rows.Next() {
		var done bool
		var difficulty models.Difficulty
		var priority models.Priority
		var userAdded bool

		if err := rows.Scan(&done, &difficulty, &priority, &userAdded); err != nil {
			return err
		}

		points := reward.Points(difficulty, priority, userAdded)
		total++
		totalPoints += points
		if done {
			completed++
			earnedPoints += points
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = r.db.Exec(`
		UPDATE projects
		SET completed_tasks = ?, total_tasks = ?, total_points = ?, earned_points = ?, level = ?
		WHERE id = ?
	`, completed, total, totalPoints, earnedPoints, reward.Level(earnedPoints), id)
	return err
}
