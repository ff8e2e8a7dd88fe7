// Package game holds the static configuration tables the simulation runs
// on: trading modes, the unlock tree, achievements, quarterly targets and
// market events. Pure data, no behavior beyond predicate closures.
package game

// AssetDef describes one tradable instrument before a run instantiates it.
type AssetDef struct {
	Ticker     string
	Name       string
	BasePrice  float64
	Sector     string
	IsOption   bool
	OptionType string // "call" or "put"
	Strike     float64
	ExpiryDays int
}

// Mode is one trading mode the player can start a run in.
type Mode struct {
	ID          string
	Name        string
	Description string
	UnlockRun   int     // minimum run count before the mode shows up
	UnlockCost  float64 // prestige cost to unlock
	Requires    string  // unlock id gating the mode, if any

	VolatilityMod float64
	FeeMod        float64
	HeatMod       float64

	Category string // historical data directory
	Assets   []AssetDef

	Intraday            bool
	Passive             bool
	PassiveIncomePerDay float64
}

// Unlock is one node of the permanent meta-progression tree. Effect
// fields are zero unless the unlock carries that effect.
type Unlock struct {
	Name        string
	Cost        float64
	Description string
	Category    string
	Requires    string

	LeverageLevel           int
	FeeReduction            float64
	MaxPositions            int
	UnlocksSector           string
	RepLevel                int
	SurvReduction           float64
	RiskReduction           float64
	RiskLimitOverride       float64
	CashMultiplier          float64
	ExtraYears              int
	PassivePercent          float64
	IllegalSECReduction     float64
	IllegalProfitMultiplier float64
	LargeTradeSECReduction  float64
	NetWorthHidePercent     float64
	DonationEffectiveness   float64
	DecayMultiplier         float64
	SECReduction            float64
}

// TitleBonus is the passive effect of an equipped achievement title.
type TitleBonus struct {
	CooldownReduction  float64
	HoldReturnBonus    float64
	SellSpeedBonus     float64
	PriceInfo          bool
	SECGrowthReduction float64
	StartingCashBonus  float64
	MarginLimitBonus   float64
	CryptoVolBonus     float64
	DonationDiscount   float64
	PrestigeBonus      float64
	TurboMode          bool
	ConsultantRole     bool
}

// Achievement describes an earnable badge; Title marks it equippable.
// The predicate itself lives in AchievementChecks, keyed by the same id.
type Achievement struct {
	Name             string
	Description      string
	Title            bool
	TitleDescription string
	Bonus            TitleBonus
}

// IllegalAction is one of the risky shortcuts to money.
type IllegalAction struct {
	Name             string
	Description      string
	SECHit           float64
	ProfitMultiplier float64
	Requires         string // unlock id
}

// MarketEvent is a one-day shock applied across the market.
type MarketEvent struct {
	Text   string
	Effect float64
	Type   string // macro | sector | commodity | crypto
}

// QuarterlyTarget is one rung of the net-worth deadline ladder.
type QuarterlyTarget struct {
	Level  int
	Label  string
	Target float64
	PP     float64
}

// Stats is the end-of-run statistics snapshot achievement predicates run
// against. The trading engine accumulates it during the run; the run
// controller fills in the cross-run and survival fields before evaluation.
type Stats struct {
	TotalTrades                 int
	DayTrades                   int
	QuickSells                  int
	WinStreak                   int
	MaxWinStreak                int
	LoseStreak                  int
	TotalProfit                 float64
	TotalLoss                   float64
	IllegalActions              int
	TotalDonations              float64
	MaxNetWorth                 float64
	MaxSECAttention             float64
	Survived                    bool
	WentBankrupt                bool
	MarginCallsRecovered        int
	HadMarginCall               bool
	LongestLosingHoldThenProfit int
	CryptoCrashHold             bool
	BoughtAtBottom              bool
	SoldAtTop                   bool
	TotalArrests                int
}
