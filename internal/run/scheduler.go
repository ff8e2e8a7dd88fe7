package run

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pastgame/past-trading/internal/config"
	"github.com/pastgame/past-trading/internal/game"
	"github.com/pastgame/past-trading/internal/logger"
)

// Scheduler drives the controller's tick pipeline at the configured
// interval, scaled by the selected speed. Changing speed tears down the
// ticker and recreates it; ticks never overlap.
type Scheduler struct {
	controller *Controller
	cfg        *config.Config
	log        *logger.Logger

	mu      sync.Mutex
	speed   float64
	changed chan struct{}
}

func NewScheduler(controller *Controller, cfg *config.Config, log *logger.Logger) *Scheduler {
	return &Scheduler{
		controller: controller,
		cfg:        cfg,
		log:        log,
		speed:      1,
		changed:    make(chan struct{}, 1),
	}
}

// SetSpeed changes the simulation speed. Speeds of 20x and above need
// the turbo title.
func (s *Scheduler) SetSpeed(speed float64) error {
	valid := false
	for _, opt := range game.SpeedOptions {
		if opt == speed {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid speed %.1fx", speed)
	}
	if !s.controller.Progression().SpeedAllowed(speed) {
		return fmt.Errorf("%.0fx speed requires the Speed Demon title", speed)
	}

	s.mu.Lock()
	s.speed = speed
	s.mu.Unlock()

	select {
	case s.changed <- struct{}{}:
	default:
	}
	s.log.Info("speed changed", "speed", speed)
	return nil
}

func (s *Scheduler) Speed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

func (s *Scheduler) interval() time.Duration {
	base := s.cfg.TickInterval()
	if s.controller.Intraday() {
		base = s.cfg.IntradayTickInterval()
	}
	return time.Duration(float64(base) / s.Speed())
}

// Run blocks, ticking until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval())
	defer ticker.Stop()

	s.log.Info("scheduler started", "interval", s.interval().String())

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-s.changed:
			ticker.Stop()
			ticker = time.NewTicker(s.interval())
		case <-ticker.C:
			s.tickCycle(ctx)
		}
	}
}

func (s *Scheduler) tickCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic in tick cycle", "panic", fmt.Sprint(r))
		}
	}()
	s.controller.Tick(ctx)
}
