package run

import (
	"fmt"

	"github.com/pastgame/past-trading/internal/game"
	"github.com/pastgame/past-trading/internal/news"
	"github.com/pastgame/past-trading/internal/trading"
)

// ActionResult is the uniform response to a player action.
type ActionResult struct {
	OK      bool
	Message string
}

func actionFail(format string, args ...any) ActionResult {
	return ActionResult{Message: fmt.Sprintf(format, args...)}
}

func (c *Controller) requireRun() *ActionResult {
	if !c.active {
		r := actionFail("no run in progress")
		return &r
	}
	if c.regulator.TradingFrozen() {
		r := actionFail("trading frozen pending investigation")
		return &r
	}
	return nil
}

// Buy opens a long position.
func (c *Controller) Buy(ticker string, amount float64) ActionResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r := c.requireRun(); r != nil {
		return *r
	}

	res := c.engine.Buy(ticker, amount, c.market, c.day)
	if !res.OK {
		return ActionResult{Message: res.Message}
	}
	c.afterOpen(amount, res)
	return ActionResult{OK: true, Message: res.Message}
}

// Short opens a short position.
func (c *Controller) Short(ticker string, amount float64) ActionResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r := c.requireRun(); r != nil {
		return *r
	}

	res := c.engine.ShortSell(ticker, amount, c.market, c.day)
	if !res.OK {
		return ActionResult{Message: res.Message}
	}
	c.afterOpen(amount, res)
	return ActionResult{OK: true, Message: res.Message}
}

// afterOpen handles the shared open-position consequences. A single
// order over 30% of net worth draws a regulator look.
func (c *Controller) afterOpen(amount float64, res trading.TradeResult) {
	if amount > c.engine.NetWorth*0.3 {
		c.regulator.RecordLargeTrade()
	}
	c.feed.Add(c.day, news.KindTrade, res.Message)
}

// Sell closes the position identified by ticker, direction and entry day.
func (c *Controller) Sell(ticker string, dir trading.Direction, entryDay int) ActionResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r := c.requireRun(); r != nil {
		return *r
	}

	idx := c.engine.FindPosition(ticker, dir, entryDay)
	if idx < 0 {
		return actionFail("position not found")
	}
	res := c.engine.Sell(idx, c.market, c.day)
	if !res.OK {
		return ActionResult{Message: res.Message}
	}

	// Profiting while an event is live looks like trading on the news.
	if res.Profit > 0 && c.market.ActiveEvent != nil {
		c.regulator.RecordEventProfit()
	}
	c.feed.Add(c.day, news.KindTrade, res.Message)
	return ActionResult{OK: true, Message: res.Message}
}

// Donate makes a political donation to buy down regulator attention.
func (c *Controller) Donate() ActionResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return actionFail("no run in progress")
	}
	if !c.prog.Unlocks["politicalDonations"] {
		return actionFail("PAC access not unlocked")
	}

	cost := c.regulator.DonationCost()
	if cost > c.engine.Cash {
		return actionFail("donation costs %s, have %s", game.FormatMoney(cost), game.FormatMoney(c.engine.Cash))
	}

	c.engine.Debit(cost)
	c.engine.CountDonation(cost)
	reduction := c.regulator.Donate()

	msg := fmt.Sprintf("Donated %s to a very grateful senator (-%.0f attention)", game.FormatMoney(cost), reduction)
	c.feed.Add(c.day, news.KindRegulator, msg)
	return ActionResult{OK: true, Message: msg}
}

// UseFallGuy blames a subordinate for the regulator's attention.
func (c *Controller) UseFallGuy() ActionResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return actionFail("no run in progress")
	}
	if !c.regulator.UseFallGuy() {
		return actionFail("no fall guy available")
	}

	msg := "An intern takes the fall. Attention drops sharply."
	c.feed.Add(c.day, news.KindRegulator, msg)
	return ActionResult{OK: true, Message: msg}
}

// PerformIllegalAction executes one of the risky shortcuts. Payouts land
// as cash; the regulator always notices something.
func (c *Controller) PerformIllegalAction(id string) ActionResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return actionFail("no run in progress")
	}

	action, ok := game.IllegalActions[id]
	if !ok {
		return actionFail("unknown action %q", id)
	}
	if action.Requires != "" && !c.prog.Unlocks[action.Requires] {
		return actionFail("%s requires %s", action.Name, game.Unlocks[action.Requires].Name)
	}

	c.regulator.RecordIllegalAction(action)
	c.engine.CountIllegalAction()
	profitMult := c.prog.IllegalProfitMultiplier()

	var msg string
	switch id {
	case "insiderTrading":
		tip := c.market.GenerateInsiderTip()
		if tip == nil {
			return actionFail("no tips available")
		}
		c.insiderTips = append(c.insiderTips, *tip)
		msg = tip.Text
	case "pumpAndDump":
		asset := c.market.AllAssets()[c.rng.Intn(len(c.market.AllAssets()))]
		pump := 0.30 + c.rng.Float64()*0.20
		c.market.ApplyPriceShock(asset.Ticker, pump)
		c.pendingShocks = append(c.pendingShocks, pendingShock{
			Ticker:   asset.Ticker,
			Pct:      -0.50,
			DaysLeft: 2 + c.rng.Intn(3),
		})
		msg = fmt.Sprintf("%s is mooning on mysterious volume. Sell before it isn't.", asset.Ticker)
	case "frontRunning":
		payout := c.engine.NetWorth * 0.02 * profitMult
		c.engine.Credit(payout)
		msg = fmt.Sprintf("Front-ran a whale order for %s", game.FormatMoney(payout))
	case "liborRigging":
		payout := c.engine.NetWorth * 0.05 * profitMult
		c.engine.Credit(payout)
		msg = fmt.Sprintf("The rate was whatever you needed it to be. +%s", game.FormatMoney(payout))
	case "washTrading":
		payout := c.engine.NetWorth * 0.01 * profitMult
		c.engine.Credit(payout)
		msg = fmt.Sprintf("Traded with yourself, profitably somehow. +%s", game.FormatMoney(payout))
	default:
		return actionFail("action %q not implemented", id)
	}

	c.engine.ObserveAttention(c.regulator.Attention())
	c.feed.Add(c.day, news.KindEvent, msg)
	return ActionResult{OK: true, Message: msg}
}

// BuyUnlock spends prestige between runs.
func (c *Controller) BuyUnlock(id string) ActionResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		return actionFail("cannot buy unlocks mid-run")
	}
	if err := c.prog.BuyUnlock(id); err != nil {
		return ActionResult{Message: err.Error()}
	}
	c.saveProfileLocked()
	return ActionResult{OK: true, Message: fmt.Sprintf("Unlocked %s", game.Unlocks[id].Name)}
}

// BuyMode purchases a trading mode with prestige.
func (c *Controller) BuyMode(id string) ActionResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		return actionFail("cannot buy modes mid-run")
	}
	if err := c.prog.BuyMode(id); err != nil {
		return ActionResult{Message: err.Error()}
	}
	c.saveProfileLocked()
	return ActionResult{OK: true, Message: fmt.Sprintf("Unlocked %s mode", game.Modes[id].Name)}
}

// EquipTitle equips an earned achievement title.
func (c *Controller) EquipTitle(id string) ActionResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		return actionFail("cannot change titles mid-run")
	}
	if err := c.prog.EquipTitle(id); err != nil {
		return ActionResult{Message: err.Error()}
	}
	c.saveProfileLocked()
	if id == "" {
		return ActionResult{OK: true, Message: "Title unequipped"}
	}
	return ActionResult{OK: true, Message: fmt.Sprintf("Equipped %s", game.Achievements[id].Name)}
}

func (c *Controller) saveProfileLocked() {
	if err := c.repo.SaveProfile(c.prog); err != nil {
		c.log.Error("save profile", "error", err)
	}
}
