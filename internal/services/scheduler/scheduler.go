package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/common"
	"github.com/tanushka-102/scholarly/internal/interfaces"
)

// Scheduler runs the periodic session pruning job on a cron schedule.
type Scheduler struct {
	sessions interfaces.SessionService
	config   *common.SessionsConfig
	cron     *cron.Cron
	logger   arbor.ILogger
	mu       sync.Mutex
	running  bool
}

func New(sessions interfaces.SessionService, config *common.SessionsConfig, logger arbor.ILogger) *Scheduler {
	return &Scheduler{
		sessions: sessions,
		config:   config,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start registers the pruning job and begins the cron loop.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	schedule := s.config.PruneSchedule
	if schedule == "" {
		schedule = "*/10 * * * *"
	}

	if _, err := s.cron.AddFunc(schedule, s.runPrune); err != nil {
		return fmt.Errorf("failed to add prune job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("schedule", schedule).
		Str("idle_ttl", s.config.IdleTTL.String()).
		Msg("Session pruner started")

	return nil
}

// Stop halts the cron loop and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		s.logger.Warn().Msg("Timed out waiting for prune job to finish")
	}

	s.running = false
	s.logger.Info().Msg("Session pruner stopped")
}

func (s *Scheduler) runPrune() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.sessions.PruneIdle(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Session pruning failed")
	}
}
