package schedule

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sooahn/daygoal/internal/models"
)

// Classifier reorders task stubs into a sensible working order before they
// are distributed across the calendar. The keyword classifier below is a
// heuristic; anything smarter can be swapped in behind this interface.
type Classifier interface {
	Classify(stubs []models.TaskStub) []models.TaskStub
}

// Logical phase ranks. Lower ranks are scheduled earlier.
const (
	rankSetup  = 1
	rankDesign = 2
	rankCore   = 3
	rankUI     = 4
	rankTest   = 5
	rankDeploy = 6
)

var phaseKeywords = []struct {
	rank     int
	keywords []string
}{
	{rankSetup, []string{"setup", "set up", "install", "environment", "prepare", "research", "plan", "outline", "gather"}},
	{rankDesign, []string{"design", "wireframe", "sketch", "architecture", "structure", "schema", "draft"}},
	{rankCore, []string{"implement", "build", "develop", "write", "core", "logic", "feature", "create"}},
	{rankUI, []string{"ui", "interface", "screen", "style", "layout", "page", "component", "polish"}},
	{rankTest, []string{"test", "verify", "debug", "review", "check", "fix"}},
	{rankDeploy, []string{"deploy", "release", "launch", "publish", "submit", "ship", "present"}},
}

// Keywords match on word boundaries so short ones like "ui" don't fire
// inside words like "build".
var phasePatterns = compilePhasePatterns()

func compilePhasePatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(phaseKeywords))
	for i, phase := range phaseKeywords {
		quoted := make([]string, len(phase.keywords))
		for j, kw := range phase.keywords {
			quoted[j] = regexp.QuoteMeta(kw)
		}
		patterns[i] = regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
	}
	return patterns
}

// LogicalOrderClassifier assigns each stub a phase rank by keyword matching
// over its title and description and sorts ascending by rank, then by
// difficulty (easy first). The sort is stable, so stubs that tie keep their
// input order.
type LogicalOrderClassifier struct{}

func (LogicalOrderClassifier) Classify(stubs []models.TaskStub) []models.TaskStub {
	out := make([]models.TaskStub, len(stubs))
	copy(out, stubs)

	ranks := make([]int, len(out))
	for i, s := range out {
		ranks[i] = phaseRank(s)
	}

	// Sort an index permutation so ranks stay aligned with their stubs.
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if ranks[idx[a]] != ranks[idx[b]] {
			return ranks[idx[a]] < ranks[idx[b]]
		}
		return out[idx[a]].Difficulty.Weight() < out[idx[b]].Difficulty.Weight()
	})

	sorted := make([]models.TaskStub, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}

// phaseRank scans all six keyword sets and keeps the highest rank among the
// sets that match. A stub with no recognizable keyword lands in the core
// phase.
func phaseRank(s models.TaskStub) int {
	text := strings.ToLower(s.Title + " " + s.Description)

	rank := 0
	for i, phase := range phaseKeywords {
		if phasePatterns[i].MatchString(text) && phase.rank > rank {
			rank = phase.rank
		}
	}
	if rank == 0 {
		return rankCore
	}
	return rank
}
