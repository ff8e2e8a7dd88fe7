package run

import (
	"github.com/pastgame/past-trading/internal/histdata"
	"github.com/pastgame/past-trading/internal/news"
	"github.com/pastgame/past-trading/internal/sec"
)

// AssetView is one market row of the dashboard.
type AssetView struct {
	Ticker   string  `json:"ticker"`
	Name     string  `json:"name"`
	Sector   string  `json:"sector,omitempty"`
	Price    float64 `json:"price"`
	Change   float64 `json:"change"`
	Trend    float64 `json:"trend,omitempty"`
	IsOption bool    `json:"is_option,omitempty"`
}

// PositionView is one open position of the dashboard.
type PositionView struct {
	Ticker     string  `json:"ticker"`
	Type       string  `json:"type"`
	Quantity   float64 `json:"quantity"`
	EntryPrice float64 `json:"entry_price"`
	EntryDay   int     `json:"entry_day"`
	Leverage   float64 `json:"leverage"`
	PnL        float64 `json:"pnl"`
	PnLPercent float64 `json:"pnl_percent"`
}

// TargetView is the current quarterly target.
type TargetView struct {
	Label    string  `json:"label"`
	Target   float64 `json:"target"`
	DaysLeft int     `json:"days_left"`
}

// Snapshot is the full dashboard state, assembled under the lock.
type Snapshot struct {
	Active   bool   `json:"active"`
	Paused   bool   `json:"paused"`
	Outcome  string `json:"outcome,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Day      int    `json:"day"`
	DaysLeft int    `json:"days_left"`

	Cash      float64 `json:"cash"`
	NetWorth  float64 `json:"net_worth"`
	RiskLevel float64 `json:"risk_level"`

	Attention     float64          `json:"attention"`
	Stage         string           `json:"stage"`
	TradingFrozen bool             `json:"trading_frozen"`
	DonationCost  float64          `json:"donation_cost"`
	AuditTrail    []sec.AuditEntry `json:"audit_trail,omitempty"`

	Target *TargetView `json:"target,omitempty"`

	Assets    []AssetView    `json:"assets"`
	Positions []PositionView `json:"positions"`
	News      []news.Item    `json:"news"`

	// Intel unlocks.
	Upcoming       []histdata.DatedEvent `json:"upcoming,omitempty"`
	SectorMomentum map[string]float64    `json:"sector_momentum,omitempty"`

	PrestigePoints float64 `json:"prestige_points"`
	RunCount       int     `json:"run_count"`
	EquippedTitle  string  `json:"equipped_title,omitempty"`

	TrendVisible bool `json:"trend_visible"`
}

// Snapshot builds a consistent view of the whole game state for the web
// layer.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Active:         c.active,
		Paused:         c.paused,
		Outcome:        c.outcome,
		PrestigePoints: c.prog.PrestigePoints,
		RunCount:       c.prog.RunCount,
		EquippedTitle:  c.prog.EquippedTitle,
	}
	if c.engine == nil {
		return s
	}

	s.Mode = c.mode.ID
	s.Day = c.day
	s.DaysLeft = c.totalDays - c.day
	s.Cash = c.engine.Cash
	s.NetWorth = c.engine.NetWorth
	s.RiskLevel = c.engine.RiskLevel(c.market)
	s.Attention = c.regulator.Attention()
	s.Stage = c.regulator.Stage()
	s.TradingFrozen = c.regulator.TradingFrozen()
	s.DonationCost = c.regulator.DonationCost()
	s.AuditTrail = c.regulator.AuditTrail()

	// Trend arrows are an intel unlock or title effect.
	s.TrendVisible = c.prog.Unlocks["bloombergTerminal"] || c.prog.TitleBonus().PriceInfo

	if !c.mode.Intraday {
		if target, ok := c.tracker.Current(); ok {
			s.Target = &TargetView{
				Label:    target.Label,
				Target:   target.Target,
				DaysLeft: c.tracker.DaysLeft(c.day),
			}
		}
	}

	for _, a := range c.market.AllAssets() {
		v := AssetView{
			Ticker:   a.Ticker,
			Name:     a.Name,
			Sector:   a.Sector,
			Price:    a.Price,
			Change:   c.market.PriceChange(a.Ticker),
			IsOption: a.IsOption,
		}
		if s.TrendVisible {
			v.Trend = a.Trend
		}
		s.Assets = append(s.Assets, v)
	}

	// Almanac owners see dated headlines three days out; analyst
	// reports average the trend per sector.
	if c.prog.Unlocks["timeTravelersAlmanac"] {
		s.Upcoming = c.loader.UpcomingEvents(c.day, 3)
	}
	if c.prog.Unlocks["analystReports"] {
		sums := make(map[string]float64)
		counts := make(map[string]int)
		for _, a := range c.market.AllAssets() {
			if a.Sector == "" {
				continue
			}
			sums[a.Sector] += a.Trend
			counts[a.Sector]++
		}
		s.SectorMomentum = make(map[string]float64, len(sums))
		for sector, sum := range sums {
			s.SectorMomentum[sector] = sum / float64(counts[sector])
		}
	}

	for _, p := range c.engine.Positions {
		pnl, pct, _ := c.engine.PositionPnL(p, c.market)
		s.Positions = append(s.Positions, PositionView{
			Ticker:     p.Ticker,
			Type:       string(p.Type),
			Quantity:   p.Quantity,
			EntryPrice: p.EntryPrice,
			EntryDay:   p.EntryDay,
			Leverage:   p.Leverage,
			PnL:        pnl,
			PnLPercent: pct,
		})
	}

	s.News = c.feed.Items(20)
	return s
}
