package models

import (
	"testing"
	"time"
)

func TestDifficultyValidation(t *testing.T) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if !d.IsValid() {
			t.Fatalf("%q should be valid", d)
		}
	}
	if Difficulty("extreme").IsValid() {
		t.Fatal("unknown difficulty accepted")
	}
	if DifficultyEasy.Weight() >= DifficultyMedium.Weight() || DifficultyMedium.Weight() >= DifficultyHard.Weight() {
		t.Fatal("difficulty weights not ascending")
	}
	if Difficulty("odd").Weight() != DifficultyMedium.Weight() {
		t.Fatal("unknown difficulty should weigh as medium")
	}
}

func TestPriorityValidation(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical} {
		if !p.IsValid() {
			t.Fatalf("%q should be valid", p)
		}
	}
	if Priority("urgent").IsValid() {
		t.Fatal("unknown priority accepted")
	}
}

func TestTaskDayFormats(t *testing.T) {
	task := Task{DueDate: time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)}
	if task.DueDay() != "2026-07-02" {
		t.Fatalf("DueDay = %q", task.DueDay())
	}
	if task.DisplayDate() != "July 2 (Thu)" {
		t.Fatalf("DisplayDate = %q", task.DisplayDate())
	}
}

func TestHasBadge(t *testing.T) {
	stats := UserStats{Badges: []Badge{{ID: "first-task"}}}
	if !stats.HasBadge("first-task") {
		t.Fatal("expected badge present")
	}
	if stats.HasBadge("streak-7") {
		t.Fatal("unexpected badge")
	}
}
