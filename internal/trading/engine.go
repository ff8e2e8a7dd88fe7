// Package trading owns position lifecycle and cash accounting for one
// run: execution, leverage and fees, mark-to-market, liquidation and
// portfolio statistics.
package trading

import (
	"fmt"
	"math"
	"time"

	"github.com/pastgame/past-trading/internal/config"
	"github.com/pastgame/past-trading/internal/game"
	"github.com/pastgame/past-trading/internal/market"
)

// TradeResult is the typed outcome of a player action. Validation
// failures come back with OK=false and a reason; they are never errors.
type TradeResult struct {
	OK      bool
	Message string
	Trade   *Trade
	Profit  float64
}

func fail(format string, args ...any) TradeResult {
	return TradeResult{Message: fmt.Sprintf(format, args...)}
}

// Engine is the singleton trading account of a run.
type Engine struct {
	cfg   config.TradingConfig
	perks Perks
	now   func() time.Time

	Cash            float64
	NetWorth        float64
	NetWorthHistory []float64
	Positions       []*Position
	TradeLog        []Trade

	lastTradeTime time.Time
	stats         game.Stats

	// Liquidations since the last drain; collaborators read and clear.
	RecentLiquidations []Liquidation

	bankrupt bool
}

func NewEngine(cfg config.TradingConfig) *Engine {
	return &Engine{cfg: cfg, now: time.Now}
}

// SetClock overrides the wall clock used for trade cooldowns. Tests use
// this to step time deterministically.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Init resets the account for a new run.
func (e *Engine) Init(startingCash float64, perks Perks, totalArrests int) {
	e.perks = perks
	e.Cash = startingCash
	e.NetWorth = startingCash
	e.NetWorthHistory = []float64{startingCash}
	e.Positions = nil
	e.TradeLog = nil
	e.RecentLiquidations = nil
	e.lastTradeTime = time.Time{}
	e.bankrupt = false
	e.stats = game.Stats{TotalArrests: totalArrests}
}

// Stats returns a copy of the run statistics accumulated so far.
func (e *Engine) Stats() game.Stats {
	return e.stats
}

// MarkSurvived is set by the run controller when a run reaches its
// natural end.
func (e *Engine) MarkSurvived() {
	e.stats.Survived = true
}

// ObserveAttention lets the regulator report attention highs into the
// stats snapshot.
func (e *Engine) ObserveAttention(attention float64) {
	e.stats.MaxSECAttention = math.Max(e.stats.MaxSECAttention, attention)
}

// CountIllegalAction increments the illegal-action statistic.
func (e *Engine) CountIllegalAction() {
	e.stats.IllegalActions++
}

// CountDonation adds to the lifetime donation total of the run.
func (e *Engine) CountDonation(amount float64) {
	e.stats.TotalDonations += amount
}

// Credit adds cash directly, used by illegal-action payouts and passive
// income.
func (e *Engine) Credit(amount float64) {
	e.Cash += amount
}

// Debit removes cash directly (donations).
func (e *Engine) Debit(amount float64) {
	e.Cash -= amount
}

// Bankrupt reports whether net worth has gone to zero or below.
func (e *Engine) Bankrupt() bool {
	return e.bankrupt
}

func (e *Engine) cooldown() time.Duration {
	base := time.Duration(e.cfg.CooldownMs) * time.Millisecond
	return time.Duration(float64(base) * e.perks.CooldownScale)
}

// CanTrade reports whether the trade cooldown has elapsed.
func (e *Engine) CanTrade() bool {
	return e.now().Sub(e.lastTradeTime) >= e.cooldown()
}

func (e *Engine) feePercent(mode game.Mode) float64 {
	return e.cfg.BaseFeePercent * mode.FeeMod * (1 - e.perks.FeeReduction)
}

// Buy opens a long position worth dollarAmount of the asset. Required
// cash is principal/leverage plus the fee on the full principal.
func (e *Engine) Buy(ticker string, dollarAmount float64, mkt *market.Market, day int) TradeResult {
	return e.open(ticker, dollarAmount, Long, mkt, day)
}

// ShortSell opens a short position worth dollarAmount of the asset.
func (e *Engine) ShortSell(ticker string, dollarAmount float64, mkt *market.Market, day int) TradeResult {
	return e.open(ticker, dollarAmount, Short, mkt, day)
}

func (e *Engine) open(ticker string, dollarAmount float64, dir Direction, mkt *market.Market, day int) TradeResult {
	asset := mkt.GetAsset(ticker)
	if asset == nil {
		return fail("Asset not found")
	}
	if dollarAmount <= 0 {
		return fail("Amount must be positive")
	}
	if len(e.Positions) >= e.perks.MaxPositions {
		return fail("Max %d positions reached", e.perks.MaxPositions)
	}
	if !e.CanTrade() {
		return fail("Trade on cooldown")
	}

	leverage := e.perks.Leverage
	fee := dollarAmount * e.feePercent(mkt.Mode()) / 100
	cashNeeded := dollarAmount/leverage + fee

	if cashNeeded > e.Cash {
		return fail("Need %s, have %s", game.FormatMoney(cashNeeded), game.FormatMoney(e.Cash))
	}

	quantity := dollarAmount / asset.Price

	e.Cash -= cashNeeded
	e.Positions = append(e.Positions, &Position{
		Ticker:                ticker,
		Name:                  asset.Name,
		Quantity:              quantity,
		EntryPrice:            asset.Price,
		EntryDay:              day,
		Type:                  dir,
		Leverage:              leverage,
		LowestPriceSinceEntry: asset.Price,
	})

	e.lastTradeTime = e.now()
	e.stats.TotalTrades++

	// Within 1% of the run's lifetime low counts as buying the bottom.
	if dir == Long && asset.Price <= asset.LowestPrice*1.01 {
		e.stats.BoughtAtBottom = true
	}

	action := "BUY"
	verb := "Bought"
	if dir == Short {
		action = "SHORT"
		verb = "Shorted"
	}
	trade := Trade{Action: action, Ticker: ticker, Quantity: quantity, Price: asset.Price, Fee: fee, Day: day}
	e.TradeLog = append(e.TradeLog, trade)

	return TradeResult{
		OK:      true,
		Message: fmt.Sprintf("%s %s of %s @ %s", verb, game.FormatMoney(dollarAmount), ticker, game.FormatPrice(asset.Price)),
		Trade:   &trade,
	}
}

// Sell closes the position at the given index. A stale index is a normal
// failure (the position may have been liquidated since the player saw
// it), never corruption.
func (e *Engine) Sell(positionIndex int, mkt *market.Market, day int) TradeResult {
	if positionIndex < 0 || positionIndex >= len(e.Positions) {
		return fail("Position no longer exists")
	}
	if !e.CanTrade() {
		return fail("Trade on cooldown")
	}

	pos := e.Positions[positionIndex]
	asset := mkt.GetAsset(pos.Ticker)
	if asset == nil {
		return fail("Asset no longer exists")
	}

	saleValue := asset.Price * pos.Quantity
	fee := saleValue * e.feePercent(mkt.Mode()) / 100

	var profit float64
	if pos.Type == Long {
		profit = (asset.Price-pos.EntryPrice)*pos.Quantity*pos.Leverage - fee
	} else {
		profit = (pos.EntryPrice-asset.Price)*pos.Quantity*pos.Leverage - fee
	}
	e.Cash += pos.Collateral() + profit

	e.lastTradeTime = e.now()
	e.stats.TotalTrades++

	if day-pos.EntryDay <= 1 {
		e.stats.DayTrades++
		e.stats.QuickSells++
	}

	if profit > 0 {
		e.stats.WinStreak++
		e.stats.LoseStreak = 0
		if e.stats.WinStreak > e.stats.MaxWinStreak {
			e.stats.MaxWinStreak = e.stats.WinStreak
		}
		e.stats.TotalProfit += profit

		if pos.DaysInLoss >= 30 && pos.DaysInLoss > e.stats.LongestLosingHoldThenProfit {
			e.stats.LongestLosingHoldThenProfit = pos.DaysInLoss
		}
		if pos.sawCryptoCrash {
			e.stats.CryptoCrashHold = true
		}
		if e.stats.HadMarginCall {
			e.stats.MarginCallsRecovered++
			e.stats.HadMarginCall = false
		}
	} else {
		e.stats.LoseStreak++
		e.stats.WinStreak = 0
		e.stats.TotalLoss += math.Abs(profit)
	}

	if asset.Price >= asset.HighestPrice*0.99 {
		e.stats.SoldAtTop = true
	}

	e.Positions = append(e.Positions[:positionIndex], e.Positions[positionIndex+1:]...)

	trade := Trade{Action: "SELL", Ticker: pos.Ticker, Quantity: pos.Quantity, Price: asset.Price, Fee: fee, Profit: profit, Day: day}
	e.TradeLog = append(e.TradeLog, trade)

	sign := "+"
	if profit < 0 {
		sign = ""
	}
	return TradeResult{
		OK:      true,
		Message: fmt.Sprintf("Sold %s @ %s (%s%s)", pos.Ticker, game.FormatPrice(asset.Price), sign, game.FormatMoney(profit)),
		Trade:   &trade,
		Profit:  profit,
	}
}

// FindPosition locates a position by its stable identity; the UI sells
// by identifier so a liquidation between render and click degrades to a
// polite failure instead of closing the wrong position.
func (e *Engine) FindPosition(ticker string, dir Direction, entryDay int) int {
	for i, p := range e.Positions {
		if p.Ticker == ticker && p.Type == dir && p.EntryDay == entryDay {
			return i
		}
	}
	return -1
}

// positionValue is collateral plus leveraged P&L, the liquidation value
// of the position.
func positionValue(pos *Position, price float64) float64 {
	var pnl float64
	if pos.Type == Long {
		pnl = (price - pos.EntryPrice) * pos.Quantity * pos.Leverage
	} else {
		pnl = (pos.EntryPrice - price) * pos.Quantity * pos.Leverage
	}
	return pnl + pos.Collateral()
}

// UpdatePositions marks every position to market, liquidates those below
// the maintenance floor, and recomputes net worth. Runs every tick
// regardless of trade activity.
func (e *Engine) UpdatePositions(mkt *market.Market, day int) {
	totalPositionValue := 0.0
	liquidationRatio := e.cfg.LiquidationRatio * (1 - e.perks.MarginLimitBonus)
	isCrypto := mkt.Mode().ID == "crypto"

	for i := len(e.Positions) - 1; i >= 0; i-- {
		pos := e.Positions[i]
		asset := mkt.GetAsset(pos.Ticker)
		if asset == nil {
			continue
		}

		value := positionValue(pos, asset.Price)

		var pnl float64
		if pos.Type == Long {
			pnl = (asset.Price - pos.EntryPrice) * pos.Quantity
		} else {
			pnl = (pos.EntryPrice - asset.Price) * pos.Quantity
		}
		if pnl < 0 {
			pos.DaysInLoss++
		}
		pos.LowestPriceSinceEntry = math.Min(pos.LowestPriceSinceEntry, asset.Price)
		if isCrypto && pos.Type == Long && pos.LowestPriceSinceEntry <= pos.EntryPrice*0.5 {
			pos.sawCryptoCrash = true
		}

		// Maintenance floor: the remaining value is forfeited, nothing
		// is credited back.
		if value < pos.Collateral()*liquidationRatio {
			e.Positions = append(e.Positions[:i], e.Positions[i+1:]...)
			e.stats.HadMarginCall = true
			e.RecentLiquidations = append(e.RecentLiquidations, Liquidation{
				Ticker: pos.Ticker,
				Type:   pos.Type,
				Loss:   pos.Collateral(),
			})
			continue
		}

		totalPositionValue += math.Max(0, value)
	}

	e.NetWorth = e.Cash + totalPositionValue
	e.NetWorthHistory = append(e.NetWorthHistory, e.NetWorth)
	e.stats.MaxNetWorth = math.Max(e.stats.MaxNetWorth, e.NetWorth)

	if e.NetWorth <= 0 {
		e.stats.WentBankrupt = true
		e.bankrupt = true
	}
}

// DrainLiquidations returns and clears the pending liquidation notices.
func (e *Engine) DrainLiquidations() []Liquidation {
	out := e.RecentLiquidations
	e.RecentLiquidations = nil
	return out
}

// RiskLevel is leveraged notional exposure over net worth, scaled by the
// configured risk weight and reduced by risk-manager perks. Pure query;
// repeated calls between ticks return identical values.
func (e *Engine) RiskLevel(mkt *market.Market) float64 {
	if len(e.Positions) == 0 {
		return 0
	}

	totalExposure := 0.0
	for _, pos := range e.Positions {
		asset := mkt.GetAsset(pos.Ticker)
		if asset == nil {
			continue
		}
		totalExposure += asset.Price * pos.Quantity * pos.Leverage
	}

	risk := totalExposure / math.Max(1, e.NetWorth) * e.cfg.RiskWeight
	risk *= 1 - e.perks.RiskReduction
	return math.Min(100, risk)
}

// OverRiskLimit reports whether risk exceeds the account's ceiling.
func (e *Engine) OverRiskLimit(mkt *market.Market) bool {
	return e.RiskLevel(mkt) >= e.perks.RiskLimit
}

// PositionPnL returns leveraged P&L for one open position.
func (e *Engine) PositionPnL(pos *Position, mkt *market.Market) (pnl, pnlPercent, currentPrice float64) {
	asset := mkt.GetAsset(pos.Ticker)
	if asset == nil {
		return 0, 0, 0
	}

	if pos.Type == Long {
		pnl = (asset.Price - pos.EntryPrice) * pos.Quantity * pos.Leverage
	} else {
		pnl = (pos.EntryPrice - asset.Price) * pos.Quantity * pos.Leverage
	}

	invested := pos.EntryPrice * pos.Quantity
	if invested > 0 {
		pnlPercent = pnl / invested
	}
	return pnl, pnlPercent, asset.Price
}

// ProcessPassiveIncome credits algo-mode income (scaled by the square
// root of leverage, halved on intraday ticks) plus any percent-of-net-
// worth perk income. Returns the amount credited.
func (e *Engine) ProcessPassiveIncome(mode game.Mode, intraday bool) float64 {
	income := 0.0
	if mode.Passive {
		income = mode.PassiveIncomePerDay * math.Sqrt(e.perks.Leverage)
	}
	if e.perks.PassivePercent > 0 {
		income += e.NetWorth * e.perks.PassivePercent
	}
	if income <= 0 {
		return 0
	}
	if intraday {
		income /= 2
	}
	e.Cash += income
	return income
}
