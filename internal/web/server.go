// Package web serves the JSON game API and the dashboard. The browser
// UI is a thin poller over /api/state; every player action is a POST.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pastgame/past-trading/internal/config"
	"github.com/pastgame/past-trading/internal/logger"
	"github.com/pastgame/past-trading/internal/run"
	"github.com/pastgame/past-trading/internal/storage"
)

type Server struct {
	httpServer *http.Server
	controller *run.Controller
	scheduler  *run.Scheduler
	repo       *storage.Repository
	config     *config.Config
	logger     *logger.Logger
}

func NewServer(controller *run.Controller, sched *run.Scheduler, repo *storage.Repository, cfg *config.Config, log *logger.Logger) *Server {
	s := &Server{
		controller: controller,
		scheduler:  sched,
		repo:       repo,
		config:     cfg,
		logger:     log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/profile", s.handleProfile)
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("/api/run/start", s.handleStartRun)
	mux.HandleFunc("/api/run/abort", s.handleAbort)
	mux.HandleFunc("/api/run/pause", s.handlePause)
	mux.HandleFunc("/api/run/speed", s.handleSpeed)
	mux.HandleFunc("/api/trade/buy", s.handleBuy)
	mux.HandleFunc("/api/trade/short", s.handleShort)
	mux.HandleFunc("/api/trade/sell", s.handleSell)
	mux.HandleFunc("/api/action/donate", s.handleDonate)
	mux.HandleFunc("/api/action/fallguy", s.handleFallGuy)
	mux.HandleFunc("/api/action/illegal", s.handleIllegal)
	mux.HandleFunc("/api/meta/unlock", s.handleUnlock)
	mux.HandleFunc("/api/meta/mode", s.handleBuyMode)
	mux.HandleFunc("/api/meta/title", s.handleTitle)
	mux.Handle("/", http.FileServer(http.Dir("static")))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Web.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	s.logger.Info("web server starting", "port", s.config.Web.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
