// Package market owns per-asset price state and advances it once per
// tick, replaying historical series where available and synthesizing a
// bounded stochastic process where not.
package market

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/pastgame/past-trading/internal/game"
	"github.com/pastgame/past-trading/internal/histdata"
	"github.com/pastgame/past-trading/internal/logger"
)

// Asset is one tradable instrument during a run.
type Asset struct {
	Ticker        string
	Name          string
	Sector        string
	Price         float64
	PreviousPrice float64
	BasePrice     float64
	HighestPrice  float64
	LowestPrice   float64
	History       []float64
	OHLCHistory   []histdata.OHLC
	Trend         float64 // [-1,1] momentum signal

	IsOption     bool
	OptionType   string
	Strike       float64
	ExpiryDays   int
	DaysToExpiry int

	series       *histdata.Series
	seriesOffset int
	exhausted    bool
}

// HasHistory reports whether the asset is replaying a historical series.
func (a *Asset) HasHistory() bool {
	return a.series != nil
}

// InsiderTip is advance knowledge of a price move, applied after a delay.
type InsiderTip struct {
	Ticker    string
	Direction string // "up" or "down"
	Magnitude float64
	DaysUntil int
	Text      string
}

// Market advances all asset prices exactly once per tick and answers
// price queries. Only the run controller's tick handler mutates it.
type Market struct {
	mode      game.Mode
	rng       *rand.Rand
	loader    *histdata.Loader
	log       *logger.Logger
	assets    map[string]*Asset
	order     []string
	dayCount  int
	startDate time.Time

	ActiveEvent   *game.MarketEvent
	eventCooldown int
}

func New(loader *histdata.Loader, rng *rand.Rand, log *logger.Logger) *Market {
	return &Market{
		loader: loader,
		rng:    rng,
		log:    log,
		assets: make(map[string]*Asset),
	}
}

// Init resolves the asset universe for a mode and establishes starting
// prices. sectorUnlocked gates the stocks universe; assets without a
// sector always pass. Historical series start at the trading-day index
// matching startYear; a series that doesn't reach back that far, or is
// missing entirely, degrades to a synthetic start at a randomized ±10%
// perturbation of the configured base price.
func (m *Market) Init(mode game.Mode, startYear int, sectorUnlocked func(string) bool) error {
	m.mode = mode
	m.assets = make(map[string]*Asset)
	m.order = m.order[:0]
	m.dayCount = 0
	m.ActiveEvent = nil
	m.eventCooldown = 0
	m.startDate = time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)

	for _, def := range mode.Assets {
		if def.Sector != "" && !game.SectorUnlockedByDefault(def.Sector) && !sectorUnlocked(def.Sector) {
			continue
		}

		a := &Asset{
			Ticker:       def.Ticker,
			Name:         def.Name,
			Sector:       def.Sector,
			BasePrice:    def.BasePrice,
			IsOption:     def.IsOption,
			OptionType:   def.OptionType,
			Strike:       def.Strike,
			ExpiryDays:   def.ExpiryDays,
			DaysToExpiry: def.ExpiryDays,
		}

		startPrice := def.BasePrice * (0.9 + m.rng.Float64()*0.2)
		if !a.IsOption {
			if s, ok := m.loader.Series(mode.Category, def.Ticker); ok {
				offset := seriesOffset(s, m.startDate)
				if offset >= 0 {
					a.series = s
					a.seriesOffset = offset
					if bar, ok := s.Bar(offset); ok {
						startPrice = bar.Close
					}
				} else {
					m.log.Warn("series starts after requested year, using synthetic prices",
						"ticker", def.Ticker, "year", startYear)
				}
			}
		}

		a.Price = math.Max(game.MinPrice, startPrice)
		a.PreviousPrice = a.Price
		a.HighestPrice = a.Price
		a.LowestPrice = a.Price
		a.History = []float64{a.Price}

		m.assets[def.Ticker] = a
		m.order = append(m.order, def.Ticker)
	}

	if len(m.assets) == 0 {
		return fmt.Errorf("no assets available for mode %s", mode.ID)
	}
	return nil
}

// seriesOffset maps the requested start date onto a trading-day index, or
// -1 when the series begins after it.
func seriesOffset(s *histdata.Series, start time.Time) int {
	sd := s.StartDate()
	if sd.IsZero() {
		return 0
	}
	calendarDays := int(start.Sub(sd).Hours() / 24)
	if calendarDays < 0 {
		return -1
	}
	idx := int(float64(calendarDays) * game.TradingDayRatio)
	if idx >= s.Len() {
		idx = s.Len() - 1
	}
	return idx
}

// dayIndex maps the current simulated day onto the asset's series.
func (m *Market) dayIndex(a *Asset) int {
	return a.seriesOffset + int(float64(m.dayCount)*game.TradingDayRatio)
}

// Tick advances every asset by one simulated day.
func (m *Market) Tick() {
	m.dayCount++

	volatility := game.BaseVolatility * m.mode.VolatilityMod

	eventEffect := 0.0
	if m.eventCooldown <= 0 && m.rng.Float64() < game.EventChancePerDay {
		if ev := m.generateEvent(); ev != nil {
			m.ActiveEvent = ev
			eventEffect = ev.Effect
			m.eventCooldown = 3 + m.rng.Intn(5)
		}
	} else {
		m.eventCooldown--
		m.ActiveEvent = nil
	}

	for _, ticker := range m.order {
		a := m.assets[ticker]
		a.PreviousPrice = a.Price

		if a.IsOption {
			m.updateOptionPrice(a, volatility, eventEffect)
		} else {
			m.updateAssetPrice(a, volatility, eventEffect)
		}

		a.History = append(a.History, a.Price)
		if len(a.History) > game.HistoryWindow {
			a.History = a.History[1:]
		}
		if len(a.OHLCHistory) > game.HistoryWindow {
			a.OHLCHistory = a.OHLCHistory[1:]
		}

		a.HighestPrice = math.Max(a.HighestPrice, a.Price)
		a.LowestPrice = math.Min(a.LowestPrice, a.Price)
	}
}

func (m *Market) updateAssetPrice(a *Asset, volatility, eventEffect float64) {
	if a.series != nil {
		if bar, ok := a.series.Bar(m.dayIndex(a)); ok {
			a.Price = math.Max(game.MinPrice, bar.Close)
			a.OHLCHistory = append(a.OHLCHistory, bar)
			m.updateTrend(a)
			return
		}
		if !a.exhausted {
			a.exhausted = true
			// Anchor the synthetic process at the last known close so
			// the price holds roughly flat instead of snapping back to
			// the configured base.
			a.BasePrice = a.Price
			m.log.Warn("historical series exhausted, continuing synthetically", "ticker", a.Ticker)
		}
	}

	randomShock := (m.rng.Float64() - 0.5) * 2 * volatility
	meanReversion := (a.BasePrice - a.Price) / a.BasePrice * 0.005
	momentum := a.Trend * 0.002
	dailyReturn := game.BullDrift + randomShock + meanReversion + momentum + eventEffect

	open := a.Price
	a.Price = math.Max(game.MinPrice, a.Price*(1+dailyReturn))
	close := a.Price

	wick := math.Abs(dailyReturn) * 0.5 * (0.5 + m.rng.Float64())
	a.OHLCHistory = append(a.OHLCHistory, histdata.OHLC{
		Open:  open,
		High:  math.Max(open, close) * (1 + wick),
		Low:   math.Min(open, close) * (1 - wick),
		Close: close,
	})

	m.updateTrend(a)
}

// updateTrend blends the realized return into a decaying momentum signal.
func (m *Market) updateTrend(a *Asset) {
	if a.PreviousPrice <= 0 {
		return
	}
	realized := (a.Price - a.PreviousPrice) / a.PreviousPrice
	a.Trend = a.Trend*0.95 + realized*5
	a.Trend = math.Max(-1, math.Min(1, a.Trend))
}

// updateOptionPrice is simplified contract pricing: intrinsic value plus
// linearly decaying time value plus bounded noise. An expired contract
// settles at intrinsic and rolls into a fresh one.
func (m *Market) updateOptionPrice(a *Asset, volatility, eventEffect float64) {
	a.DaysToExpiry--

	underlyingPrice := a.BasePrice
	underlyingTicker := strings.SplitN(a.Ticker, "-", 2)[0]
	if u, ok := m.assets[underlyingTicker]; ok {
		underlyingPrice = u.Price
	}

	var intrinsic float64
	if a.OptionType == "call" {
		intrinsic = math.Max(0, underlyingPrice-a.Strike)
	} else {
		intrinsic = math.Max(0, a.Strike-underlyingPrice)
	}

	expiryDays := a.ExpiryDays
	if expiryDays == 0 {
		expiryDays = 30
	}
	timeValue := math.Max(0, a.BasePrice*float64(a.DaysToExpiry)/float64(expiryDays))
	noise := (m.rng.Float64() - 0.5) * volatility * a.BasePrice

	a.Price = math.Max(game.MinPrice, intrinsic+timeValue+noise+eventEffect*a.BasePrice)

	if a.DaysToExpiry <= 0 {
		a.Price = math.Max(game.MinPrice, intrinsic)
		a.DaysToExpiry = a.ExpiryDays
	}
}

// TickIntraday advances one compressed minute of a single trading
// session. Volatility scales with the square root of the step count, the
// usual time scaling of a random walk. No historical lookups.
func (m *Market) TickIntraday(minute int) {
	m.dayCount = minute

	volatility := game.BaseVolatility * m.mode.VolatilityMod / math.Sqrt(game.IntradayTotalTicks)

	for _, ticker := range m.order {
		a := m.assets[ticker]
		a.PreviousPrice = a.Price

		shock := (m.rng.Float64() - 0.5) * 2 * volatility
		momentum := a.Trend * 0.0005
		a.Price = math.Max(game.MinPrice, a.Price*(1+shock+momentum))

		a.History = append(a.History, a.Price)
		if len(a.History) > game.HistoryWindow {
			a.History = a.History[1:]
		}
		a.HighestPrice = math.Max(a.HighestPrice, a.Price)
		a.LowestPrice = math.Min(a.LowestPrice, a.Price)
		m.updateTrend(a)
	}
}

func (m *Market) generateEvent() *game.MarketEvent {
	var relevant []game.MarketEvent
	for _, e := range game.MarketEvents {
		switch e.Type {
		case "macro":
			relevant = append(relevant, e)
		case "crypto":
			if m.mode.ID == "crypto" {
				relevant = append(relevant, e)
			}
		case "commodity":
			if m.mode.ID == "commodities" {
				relevant = append(relevant, e)
			}
		case "sector":
			if m.mode.ID == "stocks" || m.mode.ID == "dayTrading" || m.mode.ID == "options" {
				relevant = append(relevant, e)
			}
		}
	}
	if len(relevant) == 0 {
		return nil
	}
	ev := relevant[m.rng.Intn(len(relevant))]
	return &ev
}

// GetAsset returns the asset for a ticker, or nil.
func (m *Market) GetAsset(ticker string) *Asset {
	return m.assets[ticker]
}

// AllAssets returns assets in their configured order.
func (m *Market) AllAssets() []*Asset {
	out := make([]*Asset, 0, len(m.order))
	for _, t := range m.order {
		out = append(out, m.assets[t])
	}
	return out
}

// PriceChange returns the latest single-tick fractional change.
func (m *Market) PriceChange(ticker string) float64 {
	a := m.assets[ticker]
	if a == nil || a.PreviousPrice <= 0 {
		return 0
	}
	return (a.Price - a.PreviousPrice) / a.PreviousPrice
}

// Mode returns the active trading mode.
func (m *Market) Mode() game.Mode {
	return m.mode
}

// Day returns the number of ticks elapsed.
func (m *Market) Day() int {
	return m.dayCount
}

// StartDate returns the simulated calendar start of the run.
func (m *Market) StartDate() time.Time {
	return m.startDate
}

// GenerateInsiderTip picks a random asset and fabricates advance
// knowledge of a 5-20% move landing in 2-6 days.
func (m *Market) GenerateInsiderTip() *InsiderTip {
	if len(m.order) == 0 {
		return nil
	}
	a := m.assets[m.order[m.rng.Intn(len(m.order))]]

	direction := "up"
	if m.rng.Float64() < 0.5 {
		direction = "down"
	}
	magnitude := 0.05 + m.rng.Float64()*0.15

	return &InsiderTip{
		Ticker:    a.Ticker,
		Direction: direction,
		Magnitude: magnitude,
		DaysUntil: 2 + m.rng.Intn(5),
		Text:      fmt.Sprintf("Heard from a \"friend\" that %s is about to go %s big...", a.Name, direction),
	}
}

// ApplyInsiderEffect moves the tipped asset when its day arrives.
func (m *Market) ApplyInsiderEffect(tip *InsiderTip) {
	a := m.assets[tip.Ticker]
	if a == nil {
		return
	}
	effect := tip.Magnitude
	if tip.Direction == "down" {
		effect = -effect
	}
	a.Price = math.Max(game.MinPrice, a.Price*(1+effect))
}

// ApplyPriceShock multiplies an asset's price by (1+pct), floored. Used
// for pump-and-dump style manipulation.
func (m *Market) ApplyPriceShock(ticker string, pct float64) {
	a := m.assets[ticker]
	if a == nil {
		return
	}
	a.Price = math.Max(game.MinPrice, a.Price*(1+pct))
}
