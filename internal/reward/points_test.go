package reward

import (
	"testing"

	"github.com/sooahn/daygoal/internal/models"
)

func TestPointsTable(t *testing.T) {
	cases := []struct {
		name       string
		difficulty models.Difficulty
		priority   models.Priority
		userAdded  bool
		want       int
	}{
		{"easy low", models.DifficultyEasy, models.PriorityLow, false, 8},
		{"easy medium", models.DifficultyEasy, models.PriorityMedium, false, 10},
		{"medium medium", models.DifficultyMedium, models.PriorityMedium, false, 20},
		{"medium high", models.DifficultyMedium, models.PriorityHigh, false, 30},
		{"hard critical", models.DifficultyHard, models.PriorityCritical, false, 60},
		{"hard critical user-added", models.DifficultyHard, models.PriorityCritical, true, 72},
		{"easy low user-added", models.DifficultyEasy, models.PriorityLow, true, 10},
		{"unknown difficulty scores medium", models.Difficulty("extreme"), models.PriorityMedium, false, 20},
		{"unknown priority scores medium", models.DifficultyHard, models.Priority("urgent"), false, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Points(tc.difficulty, tc.priority, tc.userAdded)
			if got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
			// Pure: the same inputs always yield the same value.
			if again := Points(tc.difficulty, tc.priority, tc.userAdded); again != got {
				t.Fatalf("second call returned %d, first %d", again, got)
			}
		})
	}
}

func TestPointsMonotonicInPriority(t *testing.T) {
	order := []models.Priority{
		models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityCritical,
	}
	for _, difficulty := range []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard} {
		for _, userAdded := range []bool{false, true} {
			prev := -1
			for _, priority := range order {
				got := Points(difficulty, priority, userAdded)
				if got < prev {
					t.Fatalf("%s/%v: points dropped from %d to %d at %s",
						difficulty, userAdded, prev, got, priority)
				}
				prev = got
			}
		}
	}
}

func TestLevelFormula(t *testing.T) {
	cases := []struct {
		points int
		want   int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1000, 11},
	}
	for _, tc := range cases {
		if got := Level(tc.points); got != tc.want {
			t.Fatalf("Level(%d) = %d, want %d", tc.points, got, tc.want)
		}
	}
}
