package repository

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/sooahn/daygoal/internal/db"
	"github.com/sooahn/daygoal/internal/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "daygoal-test.db")
	database, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_loc=auto")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := db.MigrateDB(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	return out
}

func seedProject(t *testing.T, database *sql.DB, tasks []models.Task) *models.Project {
	t.Helper()
	projects := NewProjectRepo(database)
	project, err := projects.Create("Ship the demo", day(t, "2026-09-30"))
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	for i := range tasks {
		tasks[i].ProjectID = project.ID
	}
	if err := NewTaskRepo(database).ReplaceForProject(project.ID, tasks); err != nil {
		t.Fatalf("insert tasks: %v", err)
	}
	return project
}
