package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pastgame/past-trading/internal/config"
	"github.com/pastgame/past-trading/internal/logger"
	"github.com/pastgame/past-trading/internal/news"
	"github.com/pastgame/past-trading/internal/run"
	"github.com/pastgame/past-trading/internal/storage"
	"github.com/pastgame/past-trading/internal/telegram"
	"github.com/pastgame/past-trading/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dbPath := flag.String("db", "", "path to SQLite database (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	log := logger.New(cfg.Logging.Level)
	log.Info("starting past-trading")

	db, err := storage.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	repo := storage.NewRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := telegram.NewNotifier(cfg, log)
	commentator := news.NewCommentator(cfg, log)
	controller := run.NewController(cfg, repo, notifier, commentator, log)
	if err := controller.LoadProfile(); err != nil {
		log.Error("load profile failed", "error", err)
		os.Exit(1)
	}

	sched := run.NewScheduler(controller, cfg, log)
	webServer := web.NewServer(controller, sched, repo, cfg, log)

	go sched.Run(ctx)

	go func() {
		if err := webServer.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutdown signal received", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Error("web server shutdown error", "error", err)
	}

	log.Info("past-trading stopped")
}
