// Package sec models the regulator: an attention meter that climbs on
// suspicious behavior, decays daily, and past a hidden per-run threshold
// ends the run in an arrest.
package sec

import (
	"math"
	"math/rand"

	"github.com/pastgame/past-trading/internal/config"
	"github.com/pastgame/past-trading/internal/game"
	"github.com/pastgame/past-trading/internal/logger"
)

// Stage names, derived from attention.
const (
	StageSafe          = "safe"
	StageMonitoring    = "monitoring"
	StageInquiry       = "inquiry"
	StageInvestigation = "investigation"
	StageGrandJury     = "grand_jury"
)

// Perks are the stealth and connection effects the regulator consumes,
// resolved by the run controller at run start.
type Perks struct {
	DecayScale             float64 // stealth tiers, teflonDon and lobbyists speed decay
	IllegalSECReduction    float64
	LargeTradeSECReduction float64
	NetWorthHidePercent    float64
	DonationEffectiveness  float64
	DonationDiscount       float64
	FallGuyReduction       float64 // 0 means not unlocked
	HasBailFund            bool
}

// DefaultPerks is a run with no stealth unlocks.
func DefaultPerks() Perks {
	return Perks{DecayScale: 1, DonationEffectiveness: 1}
}

// DayResult reports what the end-of-day pass decided.
type DayResult struct {
	Arrested   bool
	BailUsed   bool
	Suspicious bool
}

// AuditEntry is one recorded attention hit, for display only.
type AuditEntry struct {
	Reason string  `json:"reason"`
	Amount float64 `json:"amount"`
}

const auditLimit = 20

// Regulator is per-run state. The arrest threshold is rolled once at
// Init and never shown to the player.
type Regulator struct {
	cfg   config.RegulatoryConfig
	rng   *rand.Rand
	log   *logger.Logger
	perks Perks

	attention       float64
	arrestThreshold float64
	donationCount   int
	fallGuyUsed     bool
	bailFundUsed    bool
	lastNetWorth    float64
	frozenToday     bool
	audit           []AuditEntry
}

func New(cfg config.RegulatoryConfig, rng *rand.Rand, log *logger.Logger) *Regulator {
	return &Regulator{cfg: cfg, rng: rng, log: log, perks: DefaultPerks()}
}

// Init resets regulator state for a new run and rolls the hidden arrest
// threshold.
func (r *Regulator) Init(perks Perks, startNetWorth float64) {
	r.perks = perks
	r.attention = 0
	r.arrestThreshold = r.cfg.ArrestThresholdMin +
		r.rng.Float64()*(r.cfg.ArrestThresholdMax-r.cfg.ArrestThresholdMin)
	r.donationCount = 0
	r.fallGuyUsed = false
	r.bailFundUsed = false
	r.lastNetWorth = startNetWorth
	r.frozenToday = false
	r.audit = nil
}

func (r *Regulator) Attention() float64 { return r.attention }

// Threshold exposes the rolled arrest threshold for persistence.
func (r *Regulator) Threshold() float64 { return r.arrestThreshold }

func (r *Regulator) DonationCount() int { return r.donationCount }

// Stage maps attention onto the escalation ladder.
func (r *Regulator) Stage() string {
	switch {
	case r.attention >= game.ThresholdGrandJury:
		return StageGrandJury
	case r.attention >= game.ThresholdInvestigation:
		return StageInvestigation
	case r.attention >= game.ThresholdInquiry:
		return StageInquiry
	case r.attention >= game.ThresholdMonitoring:
		return StageMonitoring
	default:
		return StageSafe
	}
}

// TradingFrozen reports whether trades are blocked this tick. Grand jury
// always blocks; investigation blocks on the daily 5% roll.
func (r *Regulator) TradingFrozen() bool {
	if r.attention >= game.ThresholdGrandJury {
		return true
	}
	return r.frozenToday
}

func (r *Regulator) raise(amount float64, reason string) {
	r.attention = math.Min(100, r.attention+amount)
	r.audit = append(r.audit, AuditEntry{Reason: reason, Amount: amount})
	if len(r.audit) > auditLimit {
		r.audit = r.audit[len(r.audit)-auditLimit:]
	}
}

// AuditTrail returns the recent attention hits with their reasons.
// Display only; nothing reads it back into the simulation.
func (r *Regulator) AuditTrail() []AuditEntry {
	return r.audit
}

// RecordIllegalAction applies the attention hit for an illegal action.
func (r *Regulator) RecordIllegalAction(action game.IllegalAction) {
	r.raise(action.SECHit*(1-r.perks.IllegalSECReduction), action.Name)
}

// RecordLargeTrade is called when a single buy exceeds 30% of net worth.
func (r *Regulator) RecordLargeTrade() {
	r.raise(1*(1-r.perks.LargeTradeSECReduction), "large trade")
}

// RecordEventProfit is called when the player sells at a profit while a
// market event is active. It looks like trading on the news.
func (r *Regulator) RecordEventProfit() {
	r.raise(2, "profited on event")
}

// EndOfDay decays attention, checks the daily net-worth move for
// suspicion, rerolls the investigation freeze and decides arrest.
func (r *Regulator) EndOfDay(netWorth float64) DayResult {
	var res DayResult

	if r.lastNetWorth > 0 {
		ret := math.Abs((netWorth - r.lastNetWorth) / r.lastNetWorth)
		if ret > r.cfg.SuspiciousReturn {
			r.raise(r.cfg.SuspiciousHit*(1-r.perks.NetWorthHidePercent), "suspicious returns")
			res.Suspicious = true
		}
	}
	r.lastNetWorth = netWorth

	r.attention = math.Max(0, r.attention-r.cfg.DecayPerDay*r.perks.DecayScale)

	r.frozenToday = r.attention >= game.ThresholdInvestigation &&
		r.attention < game.ThresholdGrandJury &&
		r.rng.Float64() < 0.05

	// A grand jury arrests regardless of where the threshold was rolled.
	if r.attention >= math.Min(r.arrestThreshold, game.ThresholdGrandJury) {
		if r.perks.HasBailFund && !r.bailFundUsed {
			r.bailFundUsed = true
			r.attention = 60
			r.log.Warn("arrest avoided, bail fund spent", "attention", r.attention)
			res.BailUsed = true
			return res
		}
		res.Arrested = true
	}
	return res
}

// DonationCost is the price of the next donation. Each one costs more
// than the last.
func (r *Regulator) DonationCost() float64 {
	cost := r.cfg.DonationBaseCost * math.Pow(r.cfg.DonationMultiplier, float64(r.donationCount))
	return cost * (1 - r.perks.DonationDiscount)
}

// Donate buys down attention. The caller has already verified and
// debited the cost.
func (r *Regulator) Donate() float64 {
	reduction := r.cfg.DonationReduction * r.perks.DonationEffectiveness
	r.attention = math.Max(0, r.attention-reduction)
	r.donationCount++
	return reduction
}

// UseFallGuy throws a subordinate under the bus, once per run.
func (r *Regulator) UseFallGuy() bool {
	if r.perks.FallGuyReduction <= 0 || r.fallGuyUsed {
		return false
	}
	r.fallGuyUsed = true
	r.attention = math.Max(0, r.attention-r.perks.FallGuyReduction)
	return true
}

// FallGuyAvailable reports whether the fall guy is unlocked and unused.
func (r *Regulator) FallGuyAvailable() bool {
	return r.perks.FallGuyReduction > 0 && !r.fallGuyUsed
}
