// Package run drives a single playthrough: it owns the tick pipeline,
// routes player actions into the collaborators and decides how the run
// ends.
package run

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/pastgame/past-trading/internal/config"
	"github.com/pastgame/past-trading/internal/game"
	"github.com/pastgame/past-trading/internal/histdata"
	"github.com/pastgame/past-trading/internal/logger"
	"github.com/pastgame/past-trading/internal/market"
	"github.com/pastgame/past-trading/internal/news"
	"github.com/pastgame/past-trading/internal/progression"
	"github.com/pastgame/past-trading/internal/quarterly"
	"github.com/pastgame/past-trading/internal/sec"
	"github.com/pastgame/past-trading/internal/storage"
	"github.com/pastgame/past-trading/internal/telegram"
	"github.com/pastgame/past-trading/internal/trading"
)

// pendingShock is a delayed price effect, used for the dump half of a
// pump and dump.
type pendingShock struct {
	Ticker   string
	Pct      float64
	DaysLeft int
}

// Controller owns one run at a time plus the persistent profile.
// All public methods are safe for concurrent use; the web layer and the
// tick loop share it.
type Controller struct {
	cfg         *config.Config
	log         *logger.Logger
	repo        *storage.Repository
	notifier    *telegram.Notifier
	commentator *news.Commentator

	mu sync.Mutex

	rng       *rand.Rand
	seed      int64
	loader    *histdata.Loader
	market    *market.Market
	engine    *trading.Engine
	regulator *sec.Regulator
	tracker   *quarterly.Tracker
	prog      *progression.State
	feed      *news.Feed

	active    bool
	paused    bool
	outcome   string
	mode      game.Mode
	day       int
	totalDays int

	pendingShocks []pendingShock
	insiderTips   []market.InsiderTip
}

func NewController(cfg *config.Config, repo *storage.Repository, notifier *telegram.Notifier, commentator *news.Commentator, log *logger.Logger) *Controller {
	c := &Controller{
		cfg:         cfg,
		log:         log,
		repo:        repo,
		notifier:    notifier,
		commentator: commentator,
		prog:        progression.NewState(log),
		tracker:     quarterly.New(),
	}
	return c
}

// LoadProfile restores the persistent progression state from storage.
func (c *Controller) LoadProfile() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := &progression.State{}
	found, err := c.repo.LoadProfile(state)
	if err != nil {
		return err
	}
	if found {
		state.Normalize(c.log)
		c.prog = state
		c.log.Info("profile loaded", "runs", state.RunCount, "pp", state.PrestigePoints)
	}
	return nil
}

// Progression exposes the profile for read-only rendering.
func (c *Controller) Progression() *progression.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prog
}

// StartRun begins a new run in the given mode.
func (c *Controller) StartRun(modeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		return fmt.Errorf("a run is already in progress")
	}
	if !c.prog.ModeAvailable(modeID) {
		return fmt.Errorf("mode %q is not available", modeID)
	}
	mode := game.Modes[modeID]

	c.seed = c.cfg.Game.Seed
	if c.seed == 0 {
		c.seed = time.Now().UnixNano()
	}
	c.rng = rand.New(rand.NewSource(c.seed))

	c.loader = histdata.NewLoader(c.cfg.Game.DataDir, c.log)
	c.market = market.New(c.loader, c.rng, c.log)
	c.engine = trading.NewEngine(c.cfg.Trading)
	c.regulator = sec.New(c.cfg.Regulatory, c.rng, c.log)
	c.feed = news.NewFeed(c.rng)

	if err := c.market.Init(mode, c.cfg.Game.StartYear, func(sector string) bool {
		for id, owned := range c.prog.Unlocks {
			if owned && game.Unlocks[id].UnlocksSector == sector {
				return true
			}
		}
		return false
	}); err != nil {
		return fmt.Errorf("init market: %w", err)
	}

	startingCash := c.prog.StartingCash(c.cfg.Game.StartingCash)
	c.engine.Init(startingCash,
		c.prog.TradingPerks(c.cfg.Trading.MaxPositions, c.cfg.Trading.RiskLimit),
		c.prog.TotalArrests)
	c.regulator.Init(c.prog.RegulatorPerks(), startingCash)

	offsetDays := c.prog.TargetOffsetDays()
	c.tracker.Init(offsetDays)

	c.mode = mode
	c.day = 0
	c.active = true
	c.paused = false
	c.outcome = ""
	c.pendingShocks = nil
	c.insiderTips = nil

	if mode.Intraday {
		c.totalDays = game.IntradayTotalTicks
	} else {
		c.totalDays = (c.cfg.Game.RunYears)*game.DaysPerYear + offsetDays
	}

	c.log.Info("run started",
		"run", c.prog.RunCount+1, "mode", modeID,
		"cash", startingCash, "days", c.totalDays, "seed", c.seed)
	c.notifier.NotifyRunStart(c.prog.RunCount+1, mode.Name, startingCash)
	return nil
}

// Active reports whether a run is in progress.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Intraday reports whether the active run uses the intraday clock.
func (c *Controller) Intraday() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active && c.mode.Intraday
}

// Abort discards the active run. Nothing is settled or paid out; the
// profile stays as it was when the run started.
func (c *Controller) Abort() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return fmt.Errorf("no run in progress")
	}
	c.active = false
	c.outcome = ""
	c.log.Info("run aborted", "day", c.day, "net_worth", c.engine.NetWorth)
	return nil
}

// SetPaused pauses or resumes the tick pipeline.
func (c *Controller) SetPaused(paused bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = paused
}

// Tick advances the run one simulated day (or one intraday minute).
// The pipeline order is fixed: prices move, income lands, positions
// mark, then the consequences fire in escalating severity.
func (c *Controller) Tick(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active || c.paused {
		return
	}
	c.day++

	if c.mode.Intraday {
		c.market.TickIntraday(c.day)
	} else {
		c.market.Tick()
	}
	c.applyPendingEffects()

	if income := c.engine.ProcessPassiveIncome(c.mode, c.mode.Intraday); income > 0 {
		c.log.Debug("passive income", "amount", income)
	}

	c.engine.UpdatePositions(c.market, c.day)
	for _, liq := range c.engine.DrainLiquidations() {
		c.feed.Add(c.day, news.KindTrade,
			fmt.Sprintf("LIQUIDATED: %s %s position, %s gone", liq.Ticker, liq.Type, game.FormatMoney(liq.Loss)))
		c.notifier.NotifyLiquidation(liq.Ticker, liq.Loss)
	}

	if c.engine.OverRiskLimit(c.market) {
		c.feed.Add(c.day, news.KindRegulator, "Risk desk pulls your book. Security will walk you out.")
		c.endRunLocked(progression.OutcomeFired)
		return
	}

	if !c.mode.Intraday {
		qres := c.tracker.Tick(c.day, c.engine.NetWorth)
		for _, lvl := range qres.LevelsCleared {
			c.feed.Add(c.day, news.KindTrade,
				fmt.Sprintf("Target cleared: %s (%s)", lvl.Label, game.FormatMoney(lvl.Target)))
			c.notifier.NotifyQuarterCleared(lvl.Label, c.engine.NetWorth, lvl.PP)
		}
		if qres.AllComplete {
			c.feed.Add(c.day, news.KindTrade, "Every quarterly target cleared. The board loves you.")
			c.endRunLocked(progression.OutcomeCompleted)
			return
		}
		if qres.Fired {
			c.endRunLocked(progression.OutcomeFired)
			return
		}
	}

	sres := c.regulator.EndOfDay(c.engine.NetWorth)
	c.engine.ObserveAttention(c.regulator.Attention())
	if sres.Suspicious {
		c.feed.Add(c.day, news.KindRegulator, "Unusual account activity flagged for review.")
	}
	if sres.BailUsed {
		c.feed.Add(c.day, news.KindRegulator, "Arrested. Released on bail. Don't do that again.")
	}
	if sres.Arrested {
		c.feed.Add(c.day, news.KindRegulator, "The SEC kicks your door in. It's over.")
		c.endRunLocked(progression.OutcomeArrested)
		return
	}

	c.publishNews(ctx)

	if c.engine.Bankrupt() {
		c.feed.Add(c.day, news.KindTrade, "Account blown. GUH.")
		c.endRunLocked(progression.OutcomeBankrupt)
		return
	}

	if c.day >= c.totalDays {
		c.endRunLocked(progression.OutcomeTimeUp)
	}
}

// applyPendingEffects counts down delayed shocks and insider tips.
func (c *Controller) applyPendingEffects() {
	remaining := c.pendingShocks[:0]
	for _, s := range c.pendingShocks {
		s.DaysLeft--
		if s.DaysLeft <= 0 {
			c.market.ApplyPriceShock(s.Ticker, s.Pct)
			c.feed.Add(c.day, news.KindEvent,
				fmt.Sprintf("%s collapses as the pump unwinds", s.Ticker))
		} else {
			remaining = append(remaining, s)
		}
	}
	c.pendingShocks = remaining

	tips := c.insiderTips[:0]
	for _, tip := range c.insiderTips {
		tip.DaysUntil--
		if tip.DaysUntil <= 0 {
			c.market.ApplyInsiderEffect(&tip)
			c.feed.Add(c.day, news.KindEvent,
				fmt.Sprintf("%s moves %s hard. Somebody knew.", tip.Ticker, tip.Direction))
		} else {
			tips = append(tips, tip)
		}
	}
	c.insiderTips = tips
}

func (c *Controller) publishNews(ctx context.Context) {
	if ev := c.market.ActiveEvent; ev != nil {
		c.feed.Add(c.day, news.KindEvent, ev.Text)
		if c.commentator != nil {
			// Commentary is color only; fetched off the tick path.
			snapshot := news.Commentary{
				Day:       c.day,
				EventText: ev.Text,
				NetWorth:  c.engine.NetWorth,
				Attention: c.regulator.Attention(),
				Stage:     c.regulator.Stage(),
			}
			go c.fetchCommentary(ctx, snapshot)
		}
	}
	for _, de := range c.loader.EventsForDay(c.day) {
		c.feed.Add(c.day, news.KindEvent, de.Text)
		if de.Effect != 0 {
			for _, a := range c.market.AllAssets() {
				c.market.ApplyPriceShock(a.Ticker, de.Effect)
			}
		}
	}
	c.feed.MaybeSatire(c.day)
}

func (c *Controller) fetchCommentary(ctx context.Context, in news.Commentary) {
	text, err := c.commentator.Comment(ctx, in)
	if err != nil {
		c.log.Debug("commentary failed", "error", err)
		return
	}
	if text == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		c.feed.Add(c.day, news.KindCommentary, text)
	}
}

// endRunLocked settles the run; the caller holds the mutex.
func (c *Controller) endRunLocked(outcome string) {
	if !c.active {
		return
	}
	c.active = false
	c.outcome = outcome

	if outcome == progression.OutcomeTimeUp || outcome == progression.OutcomeCompleted {
		c.engine.MarkSurvived()
	}

	stats := c.engine.Stats()
	res := c.prog.EndRun(progression.EndRunInput{
		Mode:            c.mode.ID,
		Outcome:         outcome,
		Days:            c.day,
		FinalNetWorth:   c.engine.NetWorth,
		QuarterlyPP:     c.tracker.AccruedPP(),
		QuarterLevel:    c.tracker.Level(),
		Stats:           stats,
		NetWorthHistory: c.engine.NetWorthHistory,
	})

	c.log.Info("run ended",
		"outcome", outcome, "days", c.day,
		"net_worth", c.engine.NetWorth, "pp", res.PP,
		"achievements", len(res.NewAchievements))
	c.notifier.NotifyRunEnd(outcome, c.day, c.engine.NetWorth, res.PP)

	for _, id := range res.NewAchievements {
		c.feed.Add(c.day, news.KindTrade,
			fmt.Sprintf("Achievement unlocked: %s", game.Achievements[id].Name))
	}

	c.persistRun(outcome, res)
}

func (c *Controller) persistRun(outcome string, res progression.EndRunResult) {
	if err := c.repo.SaveProfile(c.prog); err != nil {
		c.log.Error("save profile", "error", err)
		c.notifier.NotifyError("save profile", err)
	}

	stats := c.engine.Stats()
	record := &storage.RunRecord{
		RunNumber:     c.prog.RunCount,
		Mode:          c.mode.ID,
		Outcome:       outcome,
		Days:          c.day,
		FinalNetWorth: c.engine.NetWorth,
		MaxNetWorth:   stats.MaxNetWorth,
		PP:            res.PP,
		Trades:        stats.TotalTrades,
		QuarterLevel:  c.tracker.Level(),
		Sharpe:        res.Sharpe,
		Seed:          c.seed,
	}
	if err := c.repo.SaveRun(record); err != nil {
		c.log.Error("save run record", "error", err)
	}

	trades := make([]storage.TradeRecord, 0, len(c.engine.TradeLog))
	for _, t := range c.engine.TradeLog {
		trades = append(trades, storage.TradeRecord{
			RunNumber: c.prog.RunCount,
			Day:       t.Day,
			Action:    t.Action,
			Ticker:    t.Ticker,
			Quantity:  t.Quantity,
			Price:     t.Price,
			Fee:       t.Fee,
			PnL:       t.Profit,
		})
	}
	if err := c.repo.SaveTrades(trades); err != nil {
		c.log.Error("save trade records", "error", err)
	}

	scores := []storage.LeaderboardEntry{
		{Category: "net_worth", RunNumber: c.prog.RunCount, Mode: c.mode.ID, Score: stats.MaxNetWorth},
		{Category: "pp", RunNumber: c.prog.RunCount, Mode: c.mode.ID, Score: res.PP},
		{Category: "sharpe", RunNumber: c.prog.RunCount, Mode: c.mode.ID, Score: res.Sharpe},
	}
	for i := range scores {
		if err := c.repo.SubmitScore(&scores[i]); err != nil {
			c.log.Error("submit leaderboard score", "error", err)
		}
	}
}
