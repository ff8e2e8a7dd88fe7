package sec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastgame/past-trading/internal/config"
	"github.com/pastgame/past-trading/internal/game"
	"github.com/pastgame/past-trading/internal/logger"
)

func newRegulator(t *testing.T, seed int64) *Regulator {
	t.Helper()
	cfg := config.Default().Regulatory
	r := New(cfg, rand.New(rand.NewSource(seed)), logger.Discard())
	r.Init(DefaultPerks(), 10_000)
	return r
}

func TestThresholdRolledInRange(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		r := newRegulator(t, seed)
		assert.GreaterOrEqual(t, r.Threshold(), 60.0)
		assert.Less(t, r.Threshold(), 100.0)
	}
}

func TestStageLadder(t *testing.T) {
	r := newRegulator(t, 1)

	assert.Equal(t, StageSafe, r.Stage())

	r.raise(36, "test")
	assert.Equal(t, StageMonitoring, r.Stage())

	r.raise(30, "test")
	assert.Equal(t, StageInquiry, r.Stage())

	r.raise(20, "test")
	assert.Equal(t, StageInvestigation, r.Stage())

	r.raise(20, "test")
	assert.Equal(t, StageGrandJury, r.Stage())
	assert.True(t, r.TradingFrozen(), "grand jury always restricts trading")
}

func TestIllegalActionHit(t *testing.T) {
	r := newRegulator(t, 1)

	r.RecordIllegalAction(game.IllegalActions["insiderTrading"])
	assert.Equal(t, float64(game.InsiderTradeSECHit), r.Attention())
}

func TestIllegalHitReducedByPerks(t *testing.T) {
	cfg := config.Default().Regulatory
	r := New(cfg, rand.New(rand.NewSource(1)), logger.Discard())
	perks := DefaultPerks()
	perks.IllegalSECReduction = 0.30
	r.Init(perks, 10_000)

	r.RecordIllegalAction(game.IllegalActions["frontRunning"])
	assert.InDelta(t, game.FrontRunSECHit*0.7, r.Attention(), 1e-9)
}

func TestStealthPerksSpeedDecay(t *testing.T) {
	cfg := config.Default().Regulatory
	r := New(cfg, rand.New(rand.NewSource(1)), logger.Discard())
	perks := DefaultPerks()
	perks.DecayScale = 1.4
	r.Init(perks, 10_000)

	r.raise(10, "test")
	r.EndOfDay(10_000)
	assert.InDelta(t, 10-0.15*1.4, r.Attention(), 1e-9)
}

func TestDailyDecay(t *testing.T) {
	r := newRegulator(t, 1)
	r.raise(10, "test")

	res := r.EndOfDay(10_000)
	assert.False(t, res.Arrested)
	assert.InDelta(t, 10-0.15, r.Attention(), 1e-9)
}

func TestSuspiciousReturnFlagged(t *testing.T) {
	r := newRegulator(t, 1)

	// +20% net worth in a day trips the suspicion check.
	res := r.EndOfDay(12_000)
	assert.True(t, res.Suspicious)
	assert.InDelta(t, 3-0.15, r.Attention(), 1e-9)

	// A quiet day does not.
	res = r.EndOfDay(12_010)
	assert.False(t, res.Suspicious)
}

func TestHiddenNetWorthSoftensSuspicion(t *testing.T) {
	cfg := config.Default().Regulatory
	r := New(cfg, rand.New(rand.NewSource(1)), logger.Discard())
	perks := DefaultPerks()
	perks.NetWorthHidePercent = 0.25
	r.Init(perks, 10_000)

	res := r.EndOfDay(12_000)
	assert.True(t, res.Suspicious)
	assert.InDelta(t, 3*0.75-0.15, r.Attention(), 1e-9)
}

// narrowThreshold pins the rolled arrest threshold into [70, 70.1) so
// arrest behavior can be asserted deterministically.
func narrowThreshold() config.RegulatoryConfig {
	cfg := config.Default().Regulatory
	cfg.ArrestThresholdMin = 70
	cfg.ArrestThresholdMax = 70.1
	return cfg
}

func TestArrestAtThreshold(t *testing.T) {
	r := New(narrowThreshold(), rand.New(rand.NewSource(1)), logger.Discard())
	r.Init(DefaultPerks(), 10_000)

	r.raise(69, "test")
	res := r.EndOfDay(10_000)
	assert.False(t, res.Arrested)

	r.raise(12, "test")
	res = r.EndOfDay(10_000)
	assert.True(t, res.Arrested)
}

func TestBailFundSurvivesOneArrest(t *testing.T) {
	r := New(narrowThreshold(), rand.New(rand.NewSource(1)), logger.Discard())
	perks := DefaultPerks()
	perks.HasBailFund = true
	r.Init(perks, 10_000)

	r.raise(85, "test")
	res := r.EndOfDay(10_000)
	require.True(t, res.BailUsed)
	assert.False(t, res.Arrested)
	assert.Equal(t, 60.0, r.Attention())

	// Second time there is no bail left.
	r.raise(85, "test")
	res = r.EndOfDay(10_000)
	assert.True(t, res.Arrested)
}

func TestDonationCostGrows(t *testing.T) {
	r := newRegulator(t, 1)

	first := r.DonationCost()
	assert.Equal(t, 5000.0, first)

	r.Donate()
	second := r.DonationCost()
	assert.InDelta(t, 5000*1.8, second, 1e-9)

	r.Donate()
	assert.InDelta(t, 5000*1.8*1.8, r.DonationCost(), 1e-6)
}

func TestDonationReducesAttention(t *testing.T) {
	r := newRegulator(t, 1)
	r.raise(50, "test")

	reduction := r.Donate()
	assert.Equal(t, 8.0, reduction)
	assert.Equal(t, 42.0, r.Attention())
	assert.Equal(t, 1, r.DonationCount())
}

func TestDonationEffectivenessPerk(t *testing.T) {
	cfg := config.Default().Regulatory
	r := New(cfg, rand.New(rand.NewSource(1)), logger.Discard())
	perks := DefaultPerks()
	perks.DonationEffectiveness = 2
	perks.DonationDiscount = 0.30
	r.Init(perks, 10_000)
	r.raise(50, "test")

	assert.InDelta(t, 5000*0.7, r.DonationCost(), 1e-9)
	assert.Equal(t, 16.0, r.Donate())
	assert.Equal(t, 34.0, r.Attention())
}

func TestFallGuyOncePerRun(t *testing.T) {
	cfg := config.Default().Regulatory
	r := New(cfg, rand.New(rand.NewSource(1)), logger.Discard())
	perks := DefaultPerks()
	perks.FallGuyReduction = 40
	r.Init(perks, 10_000)
	r.raise(70, "test")

	require.True(t, r.FallGuyAvailable())
	assert.True(t, r.UseFallGuy())
	assert.Equal(t, 30.0, r.Attention())

	assert.False(t, r.UseFallGuy())
	assert.False(t, r.FallGuyAvailable())
}

func TestFallGuyNotUnlocked(t *testing.T) {
	r := newRegulator(t, 1)
	assert.False(t, r.UseFallGuy())
}

func TestGuaranteedArrestAtGrandJury(t *testing.T) {
	cfg := config.Default().Regulatory
	cfg.ArrestThresholdMin = 99
	cfg.ArrestThresholdMax = 99.9
	r := New(cfg, rand.New(rand.NewSource(1)), logger.Discard())
	r.Init(DefaultPerks(), 10_000)

	// The rolled threshold sits above 95, but a grand jury arrests anyway.
	r.raise(96, "test")
	res := r.EndOfDay(10_000)
	assert.True(t, res.Arrested)
}

func TestAuditTrailRecordsReasonsBounded(t *testing.T) {
	r := newRegulator(t, 1)

	r.RecordIllegalAction(game.IllegalActions["washTrading"])
	r.RecordLargeTrade()

	trail := r.AuditTrail()
	require.Len(t, trail, 2)
	assert.Equal(t, "Wash Trading", trail[0].Reason)
	assert.Equal(t, 1.0, trail[1].Amount)

	for i := 0; i < 30; i++ {
		r.RecordLargeTrade()
	}
	assert.Len(t, r.AuditTrail(), 20)

	r.Init(DefaultPerks(), 10_000)
	assert.Empty(t, r.AuditTrail(), "a new run starts clean")
}

func TestAttentionCappedAt100(t *testing.T) {
	r := newRegulator(t, 1)
	r.raise(500, "test")
	assert.Equal(t, 100.0, r.Attention())
}
