// Package scheduler drives the workflow engine at a fixed interval.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Runner is one full workflow run, executed synchronously.
type Runner interface {
	Run(ctx context.Context, seed string)
}

// Scheduler invokes the runner, waits for the configured interval, and
// repeats. Runs never overlap: the next tick is scheduled only after the
// previous run has returned.
type Scheduler struct {
	runner   Runner
	seed     string
	interval time.Duration
	log      zerolog.Logger
}

// New creates a Scheduler starting every run from seed.
func New(runner Runner, seed string, interval time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{runner: runner, seed: seed, interval: interval, log: log}
}

// Start loops until ctx is cancelled. It blocks and is meant to be called on
// its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Str("seed", s.seed).
		Msg("scheduler started")
	for {
		s.runner.Run(ctx, s.seed)

		s.log.Info().Dur("interval", s.interval).Msg("waiting for next tick")
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler stopped")
			return
		case <-time.After(s.interval):
		}
	}
}
