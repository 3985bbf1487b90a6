package reward

import (
	"math"

	"github.com/sooahn/daygoal/internal/models"
)

// UserAddedBonus is the multiplier applied to tasks the user added by hand.
const UserAddedBonus = 1.2

// Points computes the point value of a task from its difficulty, priority
// and user-added flag. It is a pure derivation: callers recompute it
// whenever one of the inputs changes instead of trusting a stored value.
// Values outside the difficulty/priority enums score as medium.
func Points(difficulty models.Difficulty, priority models.Priority, isUserAdded bool) int {
	base := 20.0
	switch difficulty {
	case models.DifficultyEasy:
		base = 10
	case models.DifficultyMedium:
		base = 20
	case models.DifficultyHard:
		base = 30
	}

	switch priority {
	case models.PriorityLow:
		base *= 0.8
	case models.PriorityMedium:
		base *= 1.0
	case models.PriorityHigh:
		base *= 1.5
	case models.PriorityCritical:
		base *= 2.0
	}

	if isUserAdded {
		base *= UserAddedBonus
	}

	return int(math.Round(base))
}

// TaskPoints is Points applied to a task record.
func TaskPoints(t models.Task) int {
	return Points(t.Difficulty, t.Priority, t.IsUserAdded)
}

// Level converts a cumulative point total to a level: 100 points per level,
// starting at level 1.
func Level(totalPoints int) int {
	if totalPoints < 0 {
		totalPoints = 0
	}
	return totalPoints/100 + 1
}
