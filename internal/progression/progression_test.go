package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastgame/past-trading/internal/game"
	"github.com/pastgame/past-trading/internal/logger"
)

func newState(t *testing.T) *State {
	t.Helper()
	return NewState(logger.Discard())
}

func TestEndRunPaysMinimumFloor(t *testing.T) {
	s := newState(t)

	res := s.EndRun(EndRunInput{
		Mode:        "stocks",
		Outcome:     OutcomeBankrupt,
		Days:        12,
		QuarterlyPP: 0,
	})

	assert.Equal(t, game.MinRunPP, res.PP)
	assert.Equal(t, game.MinRunPP, s.PrestigePoints)
	assert.Equal(t, 1, s.RunCount)
}

func TestGoldenParachuteBoostsFiredRuns(t *testing.T) {
	s := newState(t)
	s.Unlocks["goldenParachute"] = true

	res := s.EndRun(EndRunInput{Mode: "stocks", Outcome: OutcomeFired, QuarterlyPP: 10})
	assert.Equal(t, 15.0, res.PP)

	// The parachute only opens when fired.
	res = s.EndRun(EndRunInput{Mode: "stocks", Outcome: OutcomeTimeUp, QuarterlyPP: 10})
	assert.Equal(t, 10.0, res.PP)
}

func TestCleanHandsTitleBoostsPrestige(t *testing.T) {
	s := newState(t)
	s.Achievements["cleanHands"] = true
	require.NoError(t, s.EquipTitle("cleanHands"))

	res := s.EndRun(EndRunInput{Mode: "stocks", Outcome: OutcomeTimeUp, QuarterlyPP: 10})
	assert.Equal(t, 15.0, res.PP)
}

func TestPrestigeRoundedToOneDecimal(t *testing.T) {
	s := newState(t)
	s.Achievements["cleanHands"] = true
	require.NoError(t, s.EquipTitle("cleanHands"))

	res := s.EndRun(EndRunInput{Mode: "stocks", Outcome: OutcomeTimeUp, QuarterlyPP: 2.23})
	assert.Equal(t, 3.3, res.PP)
}

func TestArrestIncrementsLifetimeCount(t *testing.T) {
	s := newState(t)

	s.EndRun(EndRunInput{Mode: "stocks", Outcome: OutcomeArrested})
	s.EndRun(EndRunInput{Mode: "stocks", Outcome: OutcomeArrested})
	assert.Equal(t, 2, s.TotalArrests)

	s.EndRun(EndRunInput{Mode: "stocks", Outcome: OutcomeTimeUp})
	assert.Equal(t, 2, s.TotalArrests)
}

func TestAchievementsEvaluatedAtRunEnd(t *testing.T) {
	s := newState(t)

	res := s.EndRun(EndRunInput{
		Mode:    "stocks",
		Outcome: OutcomeTimeUp,
		Stats: game.Stats{
			MaxNetWorth: 2_000_000,
			Survived:    true,
		},
	})

	assert.Contains(t, res.NewAchievements, "firstMillion")
	assert.Contains(t, res.NewAchievements, "cleanHands")
	assert.True(t, s.Achievements["firstMillion"])

	// Already-earned achievements are not re-reported.
	res = s.EndRun(EndRunInput{
		Mode:    "stocks",
		Outcome: OutcomeTimeUp,
		Stats:   game.Stats{MaxNetWorth: 2_000_000, Survived: true},
	})
	assert.NotContains(t, res.NewAchievements, "firstMillion")
}

func TestBuyUnlockEnforcesCostAndChain(t *testing.T) {
	s := newState(t)
	s.PrestigePoints = 3

	// leverage5x requires leverage2x.
	err := s.BuyUnlock("leverage5x")
	require.Error(t, err)

	require.NoError(t, s.BuyUnlock("leverage2x"))
	assert.Equal(t, 2.5, s.PrestigePoints)

	// Now the chain is satisfied but the points are not.
	err = s.BuyUnlock("leverage5x")
	require.Error(t, err)

	s.PrestigePoints = 10
	require.NoError(t, s.BuyUnlock("leverage5x"))
	assert.True(t, s.Unlocks["leverage5x"])

	err = s.BuyUnlock("leverage5x")
	assert.Error(t, err, "double purchase must fail")
}

func TestModeGates(t *testing.T) {
	s := newState(t)

	assert.True(t, s.ModeAvailable("stocks"))
	assert.False(t, s.ModeAvailable("options"), "needs 2 runs and a purchase")
	assert.False(t, s.ModeAvailable("scalping"), "needs algoEngine")

	s.RunCount = 3
	s.PrestigePoints = 20
	require.NoError(t, s.BuyMode("options"))
	assert.True(t, s.ModeAvailable("options"))

	s.Unlocks["algoEngine"] = true
	assert.True(t, s.ModeAvailable("scalping"))
}

func TestEquipTitleValidation(t *testing.T) {
	s := newState(t)

	assert.Error(t, s.EquipTitle("teflonDon"), "not earned yet")
	assert.Error(t, s.EquipTitle("firstMillion"), "not a title")

	s.Achievements["teflonDon"] = true
	require.NoError(t, s.EquipTitle("teflonDon"))
	assert.Equal(t, 0.25, s.TitleBonus().SECGrowthReduction)

	require.NoError(t, s.EquipTitle(""))
	assert.Equal(t, game.TitleBonus{}, s.TitleBonus())
}

func TestTradingPerksResolution(t *testing.T) {
	s := newState(t)
	s.Unlocks["leverage2x"] = true
	s.Unlocks["leverage10x"] = true
	s.Unlocks["reducedFees2"] = true
	s.Unlocks["morePositions"] = true
	s.Unlocks["riskImmunity"] = true
	s.Unlocks["dividendPortfolio"] = true
	s.Achievements["maleAstrology"] = true
	require.NoError(t, s.EquipTitle("maleAstrology"))

	p := s.TradingPerks(3, 100)
	assert.Equal(t, 10.0, p.Leverage, "highest leverage wins")
	assert.Equal(t, 0.50, p.FeeReduction)
	assert.Equal(t, 10, p.MaxPositions)
	assert.Equal(t, 150.0, p.RiskLimit)
	assert.Equal(t, 0.001, p.PassivePercent)
	assert.InDelta(t, 0.7, p.CooldownScale, 1e-9)
}

func TestRegulatorPerksResolution(t *testing.T) {
	s := newState(t)
	s.Unlocks["lowerSurv1"] = true
	s.Unlocks["lowerSurv2"] = true
	s.Unlocks["lobbyistNetwork"] = true
	s.Unlocks["politicianRetainer"] = true
	s.Unlocks["fallGuy"] = true
	s.Unlocks["bailFund"] = true

	p := s.RegulatorPerks()
	assert.InDelta(t, 2.0*1.4, p.DecayScale, 1e-9, "best surv tier stacks on lobbyists")
	assert.Equal(t, 2.0, p.DonationEffectiveness)
	assert.Equal(t, 40.0, p.FallGuyReduction)
	assert.True(t, p.HasBailFund)

	s.Achievements["teflonDon"] = true
	require.NoError(t, s.EquipTitle("teflonDon"))
	assert.InDelta(t, 2.0*1.4*1.25, s.RegulatorPerks().DecayScale, 1e-9)
}

func TestStartingCashMultipliers(t *testing.T) {
	s := newState(t)
	assert.Equal(t, 10_000.0, s.StartingCash(10_000))

	s.Unlocks["startingCash2x"] = true
	s.Unlocks["startingCash5x"] = true
	assert.Equal(t, 50_000.0, s.StartingCash(10_000), "highest multiplier wins")

	s.Achievements["wolfOfWallSt"] = true
	require.NoError(t, s.EquipTitle("wolfOfWallSt"))
	assert.Equal(t, 55_000.0, s.StartingCash(10_000))
}

func TestTargetOffsetDays(t *testing.T) {
	s := newState(t)
	assert.Equal(t, 0, s.TargetOffsetDays())

	s.Unlocks["timeInMarket2"] = true
	assert.Equal(t, 2*game.DaysPerYear, s.TargetOffsetDays())
}

func TestRunHistoryBounded(t *testing.T) {
	s := newState(t)
	for i := 0; i < 60; i++ {
		s.EndRun(EndRunInput{Mode: "stocks", Outcome: OutcomeTimeUp})
	}
	assert.Len(t, s.RunHistory, maxRunHistory)
	assert.Equal(t, 60, s.RunHistory[len(s.RunHistory)-1].RunNumber)
}

func TestNormalizeDropsUnknownIDs(t *testing.T) {
	s := newState(t)
	s.Unlocks["leverage2x"] = true
	s.Unlocks["someRemovedUnlock"] = true
	s.Achievements["notAThing"] = true
	s.EquippedTitle = "notAThing"

	s.Normalize(logger.Discard())

	assert.True(t, s.Unlocks["leverage2x"])
	assert.NotContains(t, s.Unlocks, "someRemovedUnlock")
	assert.NotContains(t, s.Achievements, "notAThing")
	assert.Empty(t, s.EquippedTitle)
}

func TestSharpe(t *testing.T) {
	assert.Zero(t, sharpe(nil))
	assert.Zero(t, sharpe([]float64{100, 100, 100}), "flat series has no variance")
	assert.Greater(t, sharpe([]float64{100, 101, 103, 104, 106, 107}), 0.0)
	assert.Less(t, sharpe([]float64{100, 98, 97, 95, 94, 92}), 0.0)
}

func TestSpeedAllowed(t *testing.T) {
	s := newState(t)
	assert.True(t, s.SpeedAllowed(10))
	assert.False(t, s.SpeedAllowed(20))

	s.Achievements["speedDemon"] = true
	require.NoError(t, s.EquipTitle("speedDemon"))
	assert.True(t, s.SpeedAllowed(50))
}
