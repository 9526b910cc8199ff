package gamification

import (
	"fmt"
	"sort"

	"github.com/SiphoYawe/Laurel-sub000/internal/models"
)

// XP awards folded into a profile when a review session completes.
const (
	XPPerCorrect      = 10
	XPPerWrong        = 2
	XPSessionComplete = 15
)

// DefaultThresholds is the cumulative XP required to reach each level.
// Index i holds the floor of level i+1.
var DefaultThresholds = []int64{0, 100, 250, 500, 1000, 2000, 3500, 5500, 8000, 11000}

// Table maps total XP to a level through a sorted threshold lookup.
type Table struct {
	thresholds []int64
}

// NewTable builds a level table from ascending thresholds starting at 0.
func NewTable(thresholds []int64) (*Table, error) {
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("level table needs at least one threshold")
	}
	if thresholds[0] != 0 {
		return nil, fmt.Errorf("first threshold must be 0, got %d", thresholds[0])
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return nil, fmt.Errorf("thresholds must be strictly ascending at index %d", i)
		}
	}
	t := &Table{thresholds: make([]int64, len(thresholds))}
	copy(t.thresholds, thresholds)
	return t, nil
}

// DefaultTable returns the table built from DefaultThresholds.
func DefaultTable() *Table {
	t, err := NewTable(DefaultThresholds)
	if err != nil {
		panic(err) // DefaultThresholds is a package constant, cannot fail
	}
	return t
}

// LevelFor returns the 1-based level for a total XP amount.
func (t *Table) LevelFor(xp int64) int {
	if xp < 0 {
		return 1
	}
	// First threshold strictly above xp; its index is the level.
	return sort.Search(len(t.thresholds), func(i int) bool {
		return t.thresholds[i] > xp
	})
}

// Progress reports the level for xp, the XP earned inside that level, and
// the XP still needed for the next one. needed is 0 at the top level.
func (t *Table) Progress(xp int64) (level int, intoLevel, needed int64) {
	level = t.LevelFor(xp)
	floor := t.thresholds[level-1]
	intoLevel = xp - floor
	if level < len(t.thresholds) {
		needed = t.thresholds[level] - xp
	}
	return level, intoLevel, needed
}

// SessionXP computes the XP award for a completed session summary.
func SessionXP(sum models.SessionSummary) int64 {
	return int64(sum.CorrectCount)*XPPerCorrect +
		int64(sum.WrongCount)*XPPerWrong +
		XPSessionComplete
}
