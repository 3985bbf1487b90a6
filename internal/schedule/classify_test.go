package schedule

import (
	"testing"

	"github.com/sooahn/daygoal/internal/models"
)

func TestClassifyOrdersByPhase(t *testing.T) {
	stubs := []models.TaskStub{
		{Title: "Deploy to production", Difficulty: models.DifficultyMedium},
		{Title: "Write the core logic", Difficulty: models.DifficultyHard},
		{Title: "Set up the environment", Difficulty: models.DifficultyEasy},
		{Title: "Design the schema", Difficulty: models.DifficultyMedium},
		{Title: "Test the main flow", Difficulty: models.DifficultyMedium},
		{Title: "Style the main screen", Difficulty: models.DifficultyEasy},
	}

	got := LogicalOrderClassifier{}.Classify(stubs)

	want := []string{
		"Set up the environment",
		"Design the schema",
		"Write the core logic",
		"Style the main screen",
		"Test the main flow",
		"Deploy to production",
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("position %d: got %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestClassifyPicksHighestMatchingPhase(t *testing.T) {
	// Both "setup" and "test" match; the later phase wins.
	stub := models.TaskStub{Title: "Set up the test environment"}
	if rank := phaseRank(stub); rank != rankTest {
		t.Fatalf("expected rank %d, got %d", rankTest, rank)
	}
}

func TestClassifyDefaultsToCore(t *testing.T) {
	stub := models.TaskStub{Title: "Miscellaneous errand", Description: "something vague"}
	if rank := phaseRank(stub); rank != rankCore {
		t.Fatalf("expected default rank %d, got %d", rankCore, rank)
	}
}

func TestClassifyBreaksTiesByDifficultyThenInputOrder(t *testing.T) {
	stubs := []models.TaskStub{
		{Title: "Implement exports", Difficulty: models.DifficultyHard},
		{Title: "Implement imports", Difficulty: models.DifficultyEasy},
		{Title: "Implement sync", Difficulty: models.DifficultyEasy},
	}

	got := LogicalOrderClassifier{}.Classify(stubs)

	if got[0].Title != "Implement imports" || got[1].Title != "Implement sync" {
		t.Fatalf("easy tasks should come first in input order, got %q, %q", got[0].Title, got[1].Title)
	}
	if got[2].Title != "Implement exports" {
		t.Fatalf("hard task should come last, got %q", got[2].Title)
	}
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	stubs := []models.TaskStub{
		{Title: "Deploy it", Difficulty: models.DifficultyEasy},
		{Title: "Set up repo", Difficulty: models.DifficultyEasy},
	}

	LogicalOrderClassifier{}.Classify(stubs)

	if stubs[0].Title != "Deploy it" || stubs[1].Title != "Set up repo" {
		t.Fatalf("input order changed: %q, %q", stubs[0].Title, stubs[1].Title)
	}
}
