package gamification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SiphoYawe/Laurel-sub000/internal/gamification"
	"github.com/SiphoYawe/Laurel-sub000/internal/models"
)

func TestNewTable_Validation(t *testing.T) {
	_, err := gamification.NewTable(nil)
	assert.Error(t, err, "empty table must be rejected")

	_, err = gamification.NewTable([]int64{100, 200})
	assert.Error(t, err, "first threshold must be zero")

	_, err = gamification.NewTable([]int64{0, 100, 100})
	assert.Error(t, err, "thresholds must be strictly ascending")

	table, err := gamification.NewTable([]int64{0, 100, 250})
	require.NoError(t, err)
	assert.NotNil(t, table)
}

func TestTable_LevelFor(t *testing.T) {
	table := gamification.DefaultTable()

	tests := []struct {
		xp       int64
		expected int
	}{
		{xp: -5, expected: 1},
		{xp: 0, expected: 1},
		{xp: 99, expected: 1},
		{xp: 100, expected: 2},
		{xp: 249, expected: 2},
		{xp: 250, expected: 3},
		{xp: 11000, expected: 10},
		{xp: 1_000_000, expected: 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, table.LevelFor(tt.xp), "xp=%d", tt.xp)
	}
}

func TestTable_Progress(t *testing.T) {
	table := gamification.DefaultTable()

	level, into, needed := table.Progress(160)
	assert.Equal(t, 2, level)
	assert.Equal(t, int64(60), into)
	assert.Equal(t, int64(90), needed)

	// Top level has nothing left to earn toward.
	level, into, needed = table.Progress(12000)
	assert.Equal(t, 10, level)
	assert.Equal(t, int64(1000), into)
	assert.Equal(t, int64(0), needed)
}

func TestSessionXP(t *testing.T) {
	sum := models.SessionSummary{
		TotalCards:   4,
		CorrectCount: 2,
		WrongCount:   1,
		SkippedCount: 1,
	}

	// 2*10 + 1*2 + 15; skips earn nothing.
	assert.Equal(t, int64(37), gamification.SessionXP(sum))
}
