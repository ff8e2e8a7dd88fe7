package run

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastgame/past-trading/internal/config"
	"github.com/pastgame/past-trading/internal/game"
	"github.com/pastgame/past-trading/internal/logger"
	"github.com/pastgame/past-trading/internal/progression"
	"github.com/pastgame/past-trading/internal/storage"
	"github.com/pastgame/past-trading/internal/telegram"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")
	cfg.Game.DataDir = t.TempDir()
	cfg.Game.Seed = 42
	cfg.Trading.CooldownMs = 1
	return cfg
}

func newTestController(t *testing.T, cfg *config.Config) *Controller {
	t.Helper()
	log := logger.Discard()

	db, err := storage.NewDatabase(cfg.Database.Path)
	require.NoError(t, err)
	repo := storage.NewRepository(db)

	c := NewController(cfg, repo, telegram.NewNotifier(cfg, log), nil, log)
	require.NoError(t, c.LoadProfile())
	return c
}

// waitCooldown outlasts the 1ms test cooldown.
func waitCooldown() { time.Sleep(5 * time.Millisecond) }

func TestIdleRunFiredAtFirstDeadline(t *testing.T) {
	cfg := testConfig(t)
	c := newTestController(t, cfg)
	require.NoError(t, c.StartRun("stocks"))

	ctx := context.Background()
	for i := 0; c.Active() && i < 1000; i++ {
		c.Tick(ctx)
	}

	snap := c.Snapshot()
	assert.False(t, snap.Active)
	// Never trading means never reaching the first target.
	assert.Equal(t, progression.OutcomeFired, snap.Outcome)
	assert.Equal(t, game.QuarterDays, snap.Day)

	prog := c.Progression()
	assert.Equal(t, 1, prog.RunCount)
	assert.Equal(t, game.MinRunPP, prog.PrestigePoints)
}

func TestCannotStartTwoRuns(t *testing.T) {
	c := newTestController(t, testConfig(t))
	require.NoError(t, c.StartRun("stocks"))
	assert.Error(t, c.StartRun("stocks"))
}

func TestCannotStartLockedMode(t *testing.T) {
	c := newTestController(t, testConfig(t))
	assert.Error(t, c.StartRun("crypto"))
	assert.Error(t, c.StartRun("nosuchmode"))
}

func TestBuyAndSellThroughController(t *testing.T) {
	c := newTestController(t, testConfig(t))
	require.NoError(t, c.StartRun("stocks"))

	snap := c.Snapshot()
	require.NotEmpty(t, snap.Assets)
	ticker := snap.Assets[0].Ticker

	res := c.Buy(ticker, 1000)
	require.True(t, res.OK, res.Message)

	snap = c.Snapshot()
	require.Len(t, snap.Positions, 1)
	assert.Less(t, snap.Cash, 10_000.0)

	waitCooldown()
	res = c.Sell(ticker, "long", snap.Positions[0].EntryDay)
	require.True(t, res.OK, res.Message)
	assert.Empty(t, c.Snapshot().Positions)
}

func TestSellStalePositionFailsPolitely(t *testing.T) {
	c := newTestController(t, testConfig(t))
	require.NoError(t, c.StartRun("stocks"))

	res := c.Sell("NEE", "long", 99)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "not found")
}

func TestDonateRequiresUnlock(t *testing.T) {
	c := newTestController(t, testConfig(t))
	require.NoError(t, c.StartRun("stocks"))

	res := c.Donate()
	assert.False(t, res.OK)

	c.Progression().Unlocks["politicalDonations"] = true
	res = c.Donate()
	require.True(t, res.OK, res.Message)
	assert.InDelta(t, 10_000-5000, c.Snapshot().Cash, 1e-9)
}

func TestIllegalActionGatedAndPaysOut(t *testing.T) {
	c := newTestController(t, testConfig(t))
	require.NoError(t, c.StartRun("stocks"))

	res := c.PerformIllegalAction("washTrading")
	assert.False(t, res.OK, "needs the insider network unlock")

	c.Progression().Unlocks["insiderNetwork"] = true
	res = c.PerformIllegalAction("washTrading")
	require.True(t, res.OK, res.Message)

	snap := c.Snapshot()
	assert.InDelta(t, 10_000*1.01, snap.Cash, 1e-9)
	assert.Greater(t, snap.Attention, 0.0)
}

func TestUnknownIllegalActionRejected(t *testing.T) {
	c := newTestController(t, testConfig(t))
	require.NoError(t, c.StartRun("stocks"))

	res := c.PerformIllegalAction("arson")
	assert.False(t, res.OK)
}

func TestUnlockPurchaseBlockedMidRun(t *testing.T) {
	c := newTestController(t, testConfig(t))
	c.Progression().PrestigePoints = 5

	require.NoError(t, c.StartRun("stocks"))
	res := c.BuyUnlock("leverage2x")
	assert.False(t, res.OK)
}

func TestProfilePersistsAcrossControllers(t *testing.T) {
	cfg := testConfig(t)

	c1 := newTestController(t, cfg)
	c1.Progression().PrestigePoints = 5
	res := c1.BuyUnlock("leverage2x")
	require.True(t, res.OK, res.Message)

	c2 := newTestController(t, cfg)
	assert.True(t, c2.Progression().Unlocks["leverage2x"])
	assert.Equal(t, 4.5, c2.Progression().PrestigePoints)
}

func TestIntelUnlocksSurfaceInSnapshot(t *testing.T) {
	cfg := testConfig(t)
	events := `{"market_events":[{"day":3,"text":"Dotcom jitters","effect":-0.02}]}`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Game.DataDir, "news_events.json"), []byte(events), 0o644))

	c := newTestController(t, cfg)
	require.NoError(t, c.StartRun("stocks"))

	snap := c.Snapshot()
	assert.Empty(t, snap.Upcoming)
	assert.Empty(t, snap.SectorMomentum)

	c.Progression().Unlocks["analystReports"] = true
	c.Progression().Unlocks["timeTravelersAlmanac"] = true

	snap = c.Snapshot()
	require.Len(t, snap.Upcoming, 1)
	assert.Equal(t, "Dotcom jitters", snap.Upcoming[0].Text)
	assert.Contains(t, snap.SectorMomentum, game.SectorUtilities)
}

func TestAbortDiscardsRun(t *testing.T) {
	c := newTestController(t, testConfig(t))
	assert.Error(t, c.Abort(), "nothing to abort before a run starts")

	require.NoError(t, c.StartRun("stocks"))
	c.Tick(context.Background())
	require.NoError(t, c.Abort())

	assert.False(t, c.Active())
	// No settlement: the profile never saw the run.
	prog := c.Progression()
	assert.Equal(t, 0, prog.RunCount)
	assert.Zero(t, prog.PrestigePoints)
	assert.Empty(t, c.Snapshot().Outcome)
}

func TestPauseStopsTicks(t *testing.T) {
	c := newTestController(t, testConfig(t))
	require.NoError(t, c.StartRun("stocks"))

	c.SetPaused(true)
	c.Tick(context.Background())
	assert.Equal(t, 0, c.Snapshot().Day)

	c.SetPaused(false)
	c.Tick(context.Background())
	assert.Equal(t, 1, c.Snapshot().Day)
}

func TestRunRecordWritten(t *testing.T) {
	cfg := testConfig(t)
	c := newTestController(t, cfg)
	require.NoError(t, c.StartRun("stocks"))

	ctx := context.Background()
	for i := 0; c.Active() && i < 1000; i++ {
		c.Tick(ctx)
	}

	db, err := storage.NewDatabase(cfg.Database.Path)
	require.NoError(t, err)
	runs, err := storage.NewRepository(db).GetRecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, progression.OutcomeFired, runs[0].Outcome)
	assert.Equal(t, int64(42), runs[0].Seed)
}

func TestSnapshotBeforeAnyRun(t *testing.T) {
	c := newTestController(t, testConfig(t))

	snap := c.Snapshot()
	assert.False(t, snap.Active)
	assert.Empty(t, snap.Assets)
	assert.Zero(t, snap.NetWorth)
}
