// Package quarterly tracks the net-worth deadline ladder. Eight targets,
// one per quarter; clearing one accrues prestige, missing a deadline
// ends the run as fired.
package quarterly

import "github.com/pastgame/past-trading/internal/game"

// TickResult reports what the daily check decided. Fired and AllComplete
// are terminal; once either is set every later Tick is a no-op.
type TickResult struct {
	LevelsCleared []game.QuarterlyTarget
	Fired         bool
	AllComplete   bool
}

// Tracker is the per-run ladder state.
type Tracker struct {
	offsetDays  int
	level       int
	accruedPP   float64
	fired       bool
	allComplete bool
}

func New() *Tracker {
	return &Tracker{}
}

// Init resets the ladder. offsetDays is the head start from the
// time-in-market unlocks; the first deadline lands that much later.
func (t *Tracker) Init(offsetDays int) {
	t.offsetDays = offsetDays
	t.level = 0
	t.accruedPP = 0
	t.fired = false
	t.allComplete = false
}

// Level is the number of targets cleared so far.
func (t *Tracker) Level() int { return t.level }

// AccruedPP is the prestige earned from cleared targets this run.
func (t *Tracker) AccruedPP() float64 { return t.accruedPP }

func (t *Tracker) Fired() bool { return t.fired }

func (t *Tracker) AllComplete() bool { return t.allComplete }

// Current returns the target in play, or ok=false once all are cleared.
func (t *Tracker) Current() (game.QuarterlyTarget, bool) {
	if t.level >= len(game.QuarterlyTargets) {
		return game.QuarterlyTarget{}, false
	}
	return game.QuarterlyTargets[t.level], true
}

// Deadline is the day the current target must be met by.
func (t *Tracker) Deadline() int {
	return t.offsetDays + (t.level+1)*game.QuarterDays
}

// DaysLeft until the current deadline; negative means overdue.
func (t *Tracker) DaysLeft(day int) int {
	return t.Deadline() - day
}

// Tick runs the daily check. Targets cascade: a single windfall can
// clear several levels in one day, each paying its own prestige.
func (t *Tracker) Tick(day int, netWorth float64) TickResult {
	var res TickResult
	if t.fired || t.allComplete {
		return res
	}
	// The head-start grace window: the ladder does not exist yet, so
	// nothing clears and nothing accrues.
	if day < t.offsetDays {
		return res
	}

	for t.level < len(game.QuarterlyTargets) && netWorth >= game.QuarterlyTargets[t.level].Target {
		target := game.QuarterlyTargets[t.level]
		t.accruedPP += target.PP
		res.LevelsCleared = append(res.LevelsCleared, target)
		t.level++
	}

	if t.level >= len(game.QuarterlyTargets) {
		t.allComplete = true
		t.accruedPP += game.AllQuartersBonusPP
		res.AllComplete = true
		return res
	}

	if day >= t.Deadline() {
		t.fired = true
		res.Fired = true
	}
	return res
}
