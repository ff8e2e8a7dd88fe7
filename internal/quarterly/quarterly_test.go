package quarterly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastgame/past-trading/internal/game"
)

func TestFirstTargetCleared(t *testing.T) {
	tr := New()
	tr.Init(0)

	res := tr.Tick(10, 20_000)
	require.Len(t, res.LevelsCleared, 1)
	assert.Equal(t, "Q1 Y1", res.LevelsCleared[0].Label)
	assert.Equal(t, 1, tr.Level())
	assert.Equal(t, 2.0, tr.AccruedPP())
	assert.False(t, res.Fired)
}

func TestCascadeClearsMultipleLevels(t *testing.T) {
	tr := New()
	tr.Init(0)

	// A windfall past the third target clears three rungs at once.
	res := tr.Tick(5, 300_000)
	require.Len(t, res.LevelsCleared, 3)
	assert.Equal(t, 3, tr.Level())
	assert.Equal(t, 2.0+3+4, tr.AccruedPP())

	target, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, 1_000_000.0, target.Target)
}

func TestMissedDeadlineFires(t *testing.T) {
	tr := New()
	tr.Init(0)

	res := tr.Tick(game.QuarterDays, 14_999)
	assert.True(t, res.Fired)
	assert.True(t, tr.Fired())

	// Terminal: later ticks change nothing even with a huge net worth.
	res = tr.Tick(game.QuarterDays+1, 1e12)
	assert.Empty(t, res.LevelsCleared)
	assert.False(t, res.AllComplete)
	assert.Equal(t, 0, tr.Level())
}

func TestClearJustBeforeDeadline(t *testing.T) {
	tr := New()
	tr.Init(0)

	res := tr.Tick(game.QuarterDays-1, 15_000)
	require.Len(t, res.LevelsCleared, 1)
	assert.False(t, res.Fired)
	assert.Equal(t, 2*game.QuarterDays, tr.Deadline())
}

func TestOffsetShiftsDeadlines(t *testing.T) {
	tr := New()
	tr.Init(365)

	assert.Equal(t, 365+game.QuarterDays, tr.Deadline())

	res := tr.Tick(game.QuarterDays, 1_000)
	assert.False(t, res.Fired, "head start must cover the first deadline")
}

func TestGraceWindowIsNoOp(t *testing.T) {
	tr := New()
	tr.Init(91)

	// A windfall during the head start clears nothing and pays nothing.
	res := tr.Tick(10, 20_000)
	assert.Empty(t, res.LevelsCleared)
	assert.Equal(t, 0, tr.Level())
	assert.Zero(t, tr.AccruedPP())

	// Once the window ends the same net worth clears normally.
	res = tr.Tick(91, 20_000)
	require.Len(t, res.LevelsCleared, 1)
	assert.Equal(t, 2.0, tr.AccruedPP())
}

func TestAllCompletePaysBonus(t *testing.T) {
	tr := New()
	tr.Init(0)

	res := tr.Tick(1, 1_000_000_000)
	assert.True(t, res.AllComplete)
	assert.True(t, tr.AllComplete())
	require.Len(t, res.LevelsCleared, len(game.QuarterlyTargets))

	want := float64(game.AllQuartersBonusPP)
	for _, q := range game.QuarterlyTargets {
		want += q.PP
	}
	assert.Equal(t, want, tr.AccruedPP())

	_, ok := tr.Current()
	assert.False(t, ok)
}

func TestDaysLeft(t *testing.T) {
	tr := New()
	tr.Init(0)

	assert.Equal(t, game.QuarterDays-10, tr.DaysLeft(10))
}
