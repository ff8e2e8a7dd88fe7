// Package progression owns everything that survives between runs:
// prestige points, the unlock tree, achievements, titles, mode purchases
// and the run history.
package progression

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pastgame/past-trading/internal/game"
	"github.com/pastgame/past-trading/internal/logger"
	"github.com/pastgame/past-trading/internal/sec"
	"github.com/pastgame/past-trading/internal/trading"
)

// Run outcomes.
const (
	OutcomeTimeUp    = "time_up"
	OutcomeCompleted = "completed"
	OutcomeArrested  = "arrested"
	OutcomeFired     = "fired"
	OutcomeBankrupt  = "bankrupt"
)

const maxRunHistory = 50

// RunSummary is one line of the run history.
type RunSummary struct {
	RunNumber     int       `json:"run_number"`
	Mode          string    `json:"mode"`
	Outcome       string    `json:"outcome"`
	Days          int       `json:"days"`
	FinalNetWorth float64   `json:"final_net_worth"`
	PP            float64   `json:"pp"`
	Trades        int       `json:"trades"`
	EndedAt       time.Time `json:"ended_at"`
}

// BestScores are the lifetime records shown on the profile.
type BestScores struct {
	NetWorth     float64 `json:"net_worth"`
	RunPP        float64 `json:"run_pp"`
	QuarterLevel int     `json:"quarter_level"`
	Sharpe       float64 `json:"sharpe"`
}

// State is the full persistent profile.
type State struct {
	PrestigePoints float64         `json:"prestige_points"`
	TotalPPEarned  float64         `json:"total_pp_earned"`
	RunCount       int             `json:"run_count"`
	TotalArrests   int             `json:"total_arrests"`
	Unlocks        map[string]bool `json:"unlocks"`
	Achievements   map[string]bool `json:"achievements"`
	EquippedTitle  string          `json:"equipped_title"`
	UnlockedModes  map[string]bool `json:"unlocked_modes"`
	RunHistory     []RunSummary    `json:"run_history"`
	Best           BestScores      `json:"best"`

	log *logger.Logger
}

func NewState(log *logger.Logger) *State {
	s := &State{log: log}
	s.Normalize(log)
	return s
}

// Normalize repairs a freshly deserialized state: nil maps become empty,
// unknown ids are dropped, the equipped title must still be earned. Old
// saves stay loadable across table changes.
func (s *State) Normalize(log *logger.Logger) {
	s.log = log
	if s.Unlocks == nil {
		s.Unlocks = make(map[string]bool)
	}
	if s.Achievements == nil {
		s.Achievements = make(map[string]bool)
	}
	if s.UnlockedModes == nil {
		s.UnlockedModes = make(map[string]bool)
	}
	for id := range s.Unlocks {
		if _, ok := game.Unlocks[id]; !ok {
			delete(s.Unlocks, id)
		}
	}
	for id := range s.Achievements {
		if _, ok := game.Achievements[id]; !ok {
			delete(s.Achievements, id)
		}
	}
	if s.EquippedTitle != "" {
		a, ok := game.Achievements[s.EquippedTitle]
		if !ok || !a.Title || !s.Achievements[s.EquippedTitle] {
			s.EquippedTitle = ""
		}
	}
	if len(s.RunHistory) > maxRunHistory {
		s.RunHistory = s.RunHistory[len(s.RunHistory)-maxRunHistory:]
	}
}

// TitleBonus is the equipped title's passive effect, zero if none.
func (s *State) TitleBonus() game.TitleBonus {
	if s.EquippedTitle == "" {
		return game.TitleBonus{}
	}
	return game.Achievements[s.EquippedTitle].Bonus
}

// BuyUnlock spends prestige on an unlock tree node.
func (s *State) BuyUnlock(id string) error {
	u, ok := game.Unlocks[id]
	if !ok {
		return fmt.Errorf("unknown unlock %q", id)
	}
	if s.Unlocks[id] {
		return fmt.Errorf("%s already owned", u.Name)
	}
	if u.Requires != "" && !s.Unlocks[u.Requires] {
		return fmt.Errorf("%s requires %s", u.Name, game.Unlocks[u.Requires].Name)
	}
	if s.PrestigePoints < u.Cost {
		return fmt.Errorf("%s costs %.1f PP, have %.1f", u.Name, u.Cost, s.PrestigePoints)
	}
	s.PrestigePoints -= u.Cost
	s.Unlocks[id] = true
	return nil
}

// BuyMode spends prestige to permanently unlock a trading mode.
func (s *State) BuyMode(id string) error {
	m, ok := game.Modes[id]
	if !ok {
		return fmt.Errorf("unknown mode %q", id)
	}
	if s.UnlockedModes[id] {
		return fmt.Errorf("%s already unlocked", m.Name)
	}
	if !s.modeVisible(m) {
		return fmt.Errorf("%s is not available yet", m.Name)
	}
	if s.PrestigePoints < m.UnlockCost {
		return fmt.Errorf("%s costs %.1f PP, have %.1f", m.Name, m.UnlockCost, s.PrestigePoints)
	}
	s.PrestigePoints -= m.UnlockCost
	s.UnlockedModes[id] = true
	return nil
}

func (s *State) modeVisible(m game.Mode) bool {
	if s.RunCount < m.UnlockRun {
		return false
	}
	if m.Requires != "" && !s.Unlocks[m.Requires] {
		return false
	}
	return true
}

// ModeAvailable reports whether a run can start in the given mode.
func (s *State) ModeAvailable(id string) bool {
	m, ok := game.Modes[id]
	if !ok {
		return false
	}
	if !s.modeVisible(m) {
		return false
	}
	return m.UnlockCost == 0 || s.UnlockedModes[id]
}

// AvailableModes lists startable mode ids, sorted for stable output.
func (s *State) AvailableModes() []string {
	var out []string
	for id := range game.Modes {
		if s.ModeAvailable(id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// EquipTitle equips an earned title achievement; empty unequips.
func (s *State) EquipTitle(id string) error {
	if id == "" {
		s.EquippedTitle = ""
		return nil
	}
	a, ok := game.Achievements[id]
	if !ok || !a.Title {
		return fmt.Errorf("%q is not an equippable title", id)
	}
	if !s.Achievements[id] {
		return fmt.Errorf("%s has not been earned", a.Name)
	}
	s.EquippedTitle = id
	return nil
}

// TradingPerks resolves the unlock tree and equipped title into the
// snapshot the trading engine consumes.
func (s *State) TradingPerks(baseMaxPositions int, baseRiskLimit float64) trading.Perks {
	p := trading.DefaultPerks(baseMaxPositions, baseRiskLimit)
	bonus := s.TitleBonus()
	for id, owned := range s.Unlocks {
		if !owned {
			continue
		}
		u := game.Unlocks[id]
		if float64(u.LeverageLevel) > p.Leverage {
			p.Leverage = float64(u.LeverageLevel)
		}
		if u.FeeReduction > p.FeeReduction {
			p.FeeReduction = u.FeeReduction
		}
		if u.MaxPositions > p.MaxPositions {
			p.MaxPositions = u.MaxPositions
		}
		if u.RiskReduction > p.RiskReduction {
			p.RiskReduction = u.RiskReduction
		}
		if u.RiskLimitOverride > 0 {
			p.RiskLimit = u.RiskLimitOverride
		}
		if u.PassivePercent > p.PassivePercent {
			p.PassivePercent = u.PassivePercent
		}
	}
	p.CooldownScale = 1 - bonus.CooldownReduction
	p.MarginLimitBonus = bonus.MarginLimitBonus
	return p
}

// RegulatorPerks resolves stealth and connection unlocks for the
// regulator.
func (s *State) RegulatorPerks() sec.Perks {
	p := sec.DefaultPerks()
	bonus := s.TitleBonus()
	bestSurv := 0.0
	for id, owned := range s.Unlocks {
		if !owned {
			continue
		}
		u := game.Unlocks[id]
		if u.SurvReduction > bestSurv {
			bestSurv = u.SurvReduction
		}
		if u.IllegalSECReduction > p.IllegalSECReduction {
			p.IllegalSECReduction = u.IllegalSECReduction
		}
		if u.LargeTradeSECReduction > p.LargeTradeSECReduction {
			p.LargeTradeSECReduction = u.LargeTradeSECReduction
		}
		if u.NetWorthHidePercent > p.NetWorthHidePercent {
			p.NetWorthHidePercent = u.NetWorthHidePercent
		}
		if u.DonationEffectiveness > 1 {
			p.DonationEffectiveness = u.DonationEffectiveness
		}
		if u.DecayMultiplier > 1 {
			p.DecayScale *= u.DecayMultiplier
		}
		if u.SECReduction > 0 && id == "fallGuy" {
			p.FallGuyReduction = u.SECReduction
		}
		if id == "bailFund" {
			p.HasBailFund = true
		}
	}
	// Best surv tier gives decay x1.2/x1.4/x1.6, teflonDon x1.25,
	// stacked on the lobbyist multiplier.
	p.DecayScale *= (1 + bestSurv) * (1 + bonus.SECGrowthReduction)
	p.DonationDiscount = bonus.DonationDiscount
	return p
}

// StartingCash applies cash multipliers and title bonus to the base.
func (s *State) StartingCash(base float64) float64 {
	mult := 1.0
	for id, owned := range s.Unlocks {
		if !owned {
			continue
		}
		if m := game.Unlocks[id].CashMultiplier; m > mult {
			mult = m
		}
	}
	return base*mult + s.TitleBonus().StartingCashBonus
}

// TargetOffsetDays is the quarterly head start from the time-in-market
// unlocks.
func (s *State) TargetOffsetDays() int {
	best := 0
	for id, owned := range s.Unlocks {
		if !owned {
			continue
		}
		if y := game.Unlocks[id].ExtraYears; y > best {
			best = y
		}
	}
	return best * game.DaysPerYear
}

// IllegalProfitMultiplier stacks the shell-corp bonus onto payouts.
func (s *State) IllegalProfitMultiplier() float64 {
	mult := 1.0
	for id, owned := range s.Unlocks {
		if !owned {
			continue
		}
		if m := game.Unlocks[id].IllegalProfitMultiplier; m > 0 {
			mult *= m
		}
	}
	return mult
}

// SpeedAllowed reports whether the given speed multiplier is usable; the
// fastest settings need the Speed Demon title.
func (s *State) SpeedAllowed(speed float64) bool {
	if speed < 20 {
		return true
	}
	return s.TitleBonus().TurboMode
}

// EndRunInput carries everything the prestige award needs.
type EndRunInput struct {
	Mode            string
	Outcome         string
	Days            int
	FinalNetWorth   float64
	QuarterlyPP     float64
	QuarterLevel    int
	Stats           game.Stats
	NetWorthHistory []float64
}

// EndRunResult reports what the run paid out.
type EndRunResult struct {
	PP              float64
	Sharpe          float64
	NewAchievements []string
}

// EndRun banks prestige, evaluates achievements and records the run.
// Every run pays at least the minimum so a disastrous first quarter
// still moves the meta forward.
func (s *State) EndRun(in EndRunInput) EndRunResult {
	pp := math.Max(game.MinRunPP, in.QuarterlyPP)

	if in.Outcome == OutcomeFired && s.Unlocks["goldenParachute"] {
		pp *= 1.5
	}
	if b := s.TitleBonus().PrestigeBonus; b > 0 {
		pp *= 1 + b
	}
	pp = math.Round(pp*10) / 10

	s.PrestigePoints += pp
	s.TotalPPEarned += pp
	s.RunCount++
	if in.Outcome == OutcomeArrested {
		s.TotalArrests++
	}

	stats := in.Stats
	stats.TotalArrests = s.TotalArrests

	res := EndRunResult{PP: pp, Sharpe: sharpe(in.NetWorthHistory)}

	for id := range game.AchievementChecks {
		if s.Achievements[id] {
			continue
		}
		if s.checkAchievement(id, stats) {
			s.Achievements[id] = true
			res.NewAchievements = append(res.NewAchievements, id)
		}
	}
	sort.Strings(res.NewAchievements)

	s.Best.NetWorth = math.Max(s.Best.NetWorth, stats.MaxNetWorth)
	s.Best.RunPP = math.Max(s.Best.RunPP, pp)
	if in.QuarterLevel > s.Best.QuarterLevel {
		s.Best.QuarterLevel = in.QuarterLevel
	}
	s.Best.Sharpe = math.Max(s.Best.Sharpe, res.Sharpe)

	s.RunHistory = append(s.RunHistory, RunSummary{
		RunNumber:     s.RunCount,
		Mode:          in.Mode,
		Outcome:       in.Outcome,
		Days:          in.Days,
		FinalNetWorth: in.FinalNetWorth,
		PP:            pp,
		Trades:        stats.TotalTrades,
		EndedAt:       time.Now(),
	})
	if len(s.RunHistory) > maxRunHistory {
		s.RunHistory = s.RunHistory[len(s.RunHistory)-maxRunHistory:]
	}

	return res
}

// checkAchievement evaluates one predicate with panic isolation so a
// bad closure cannot take the whole award pass down.
func (s *State) checkAchievement(id string, stats game.Stats) (earned bool) {
	defer func() {
		if r := recover(); r != nil {
			if s.log != nil {
				s.log.Error("achievement check panicked", "id", id, "panic", r)
			}
			earned = false
		}
	}()
	check, ok := game.AchievementChecks[id]
	if !ok {
		return false
	}
	return check(stats)
}

// sharpe is the annualized Sharpe ratio of the daily net-worth series,
// zero when the series is too short or flat.
func sharpe(history []float64) float64 {
	if len(history) < 3 {
		return 0
	}
	var returns []float64
	for i := 1; i < len(history); i++ {
		if history[i-1] <= 0 {
			continue
		}
		returns = append(returns, history[i]/history[i-1]-1)
	}
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)
	if variance == 0 {
		return 0
	}

	return mean / math.Sqrt(variance) * math.Sqrt(252)
}
