// Command simulate plays headless runs with a naive strategy, for
// balance testing. Ticks are driven directly instead of on a wall-clock
// ticker, so a full two-year run finishes in well under a second.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pastgame/past-trading/internal/config"
	"github.com/pastgame/past-trading/internal/logger"
	"github.com/pastgame/past-trading/internal/run"
	"github.com/pastgame/past-trading/internal/storage"
	"github.com/pastgame/past-trading/internal/telegram"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	runs := flag.Int("runs", 10, "number of runs to simulate")
	mode := flag.String("mode", "stocks", "trading mode")
	seed := flag.Int64("seed", 0, "base seed (0 = random)")
	dbPath := flag.String("db", "data/simulate.db", "path to SQLite database")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	cfg.Database.Path = *dbPath
	cfg.Telegram.Enabled = false
	cfg.AI.APIKey = ""
	// Headless ticks are far faster than the interactive cooldown.
	cfg.Trading.CooldownMs = 1

	log := logger.New("warn")

	db, err := storage.NewDatabase(cfg.Database.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "database error: %v\n", err)
		os.Exit(1)
	}
	repo := storage.NewRepository(db)

	notifier := telegram.NewNotifier(cfg, log)
	controller := run.NewController(cfg, repo, notifier, nil, log)
	if err := controller.LoadProfile(); err != nil {
		fmt.Fprintf(os.Stderr, "load profile error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	for i := 0; i < *runs; i++ {
		if *seed != 0 {
			cfg.Game.Seed = *seed + int64(i)
		}

		if err := controller.StartRun(*mode); err != nil {
			fmt.Fprintf(os.Stderr, "run %d: %v\n", i+1, err)
			os.Exit(1)
		}

		ticks := 0
		for controller.Active() {
			controller.Tick(ctx)
			autoTrade(controller)
			ticks++
			if ticks > 10_000 {
				fmt.Fprintln(os.Stderr, "run did not terminate, aborting")
				os.Exit(1)
			}
		}

		snap := controller.Snapshot()
		fmt.Printf("run %2d  outcome=%-10s days=%4d net_worth=%12.2f pp=%6.1f\n",
			i+1, snap.Outcome, snap.Day, snap.NetWorth, snap.PrestigePoints)
	}

	prog := controller.Progression()
	fmt.Printf("\ntotal: runs=%d pp=%.1f best_net_worth=%.2f best_sharpe=%.2f\n",
		prog.RunCount, prog.TotalPPEarned, prog.Best.NetWorth, prog.Best.Sharpe)
}

// autoTrade is a deliberately dumb strategy: hold one position in the
// first asset, rebuy whenever flat, sell after 20 days.
func autoTrade(c *run.Controller) {
	snap := c.Snapshot()
	if !snap.Active || snap.TradingFrozen || len(snap.Assets) == 0 {
		return
	}

	if len(snap.Positions) == 0 {
		amount := snap.Cash * 0.25
		if amount > 100 {
			c.Buy(snap.Assets[0].Ticker, amount)
		}
		return
	}

	p := snap.Positions[0]
	if snap.Day-p.EntryDay >= 20 {
		c.Sell(p.Ticker, "long", p.EntryDay)
	}
}
