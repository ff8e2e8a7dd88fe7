package trading

// Direction of a position.
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// Position is one open trade. Leverage is snapshotted at entry and never
// re-read from meta-progression afterwards.
type Position struct {
	Ticker     string
	Name       string
	Quantity   float64
	EntryPrice float64
	EntryDay   int
	Type       Direction
	Leverage   float64

	LowestPriceSinceEntry float64
	DaysInLoss            int
	sawCryptoCrash        bool
}

// Collateral is the cash posted to open the position. The same formula
// runs at open and close; if the two ever disagree, account balances
// drift.
func (p *Position) Collateral() float64 {
	return p.EntryPrice * p.Quantity / p.Leverage
}

// Trade is one entry of the run's trade log.
type Trade struct {
	Action   string
	Ticker   string
	Quantity float64
	Price    float64
	Fee      float64
	Profit   float64
	Day      int
}

// Liquidation records a forced close for collaborator notification.
type Liquidation struct {
	Ticker string
	Type   Direction
	Loss   float64
}

// Perks are the meta-progression effects the engine consumes, resolved
// by the run controller at run start. Keeping them as a plain snapshot
// means the engine never reaches into progression state.
type Perks struct {
	Leverage         float64
	FeeReduction     float64
	MaxPositions     int
	CooldownScale    float64
	RiskReduction    float64
	RiskLimit        float64
	PassivePercent   float64
	MarginLimitBonus float64
}

// DefaultPerks is a bare account with no unlocks.
func DefaultPerks(maxPositions int, riskLimit float64) Perks {
	return Perks{
		Leverage:      1,
		MaxPositions:  maxPositions,
		CooldownScale: 1,
		RiskLimit:     riskLimit,
	}
}
