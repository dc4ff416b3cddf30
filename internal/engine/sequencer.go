package engine

import (
	"context"
	"time"

	"github.com/mlevitin/teamsync/internal/adapter"
	"github.com/mlevitin/teamsync/internal/logger"
)

// Bootstrap defaults: 50 polls at 100ms, five seconds total.
const (
	DefaultPollInterval = 100 * time.Millisecond
	DefaultMaxAttempts  = 50
)

// Sequencer performs the bounded-retry bootstrap: it polls the remote
// backend's readiness at a fixed interval and either activates the engine
// or, once the attempt budget is exhausted, degrades it permanently to
// local-only mode.
type Sequencer struct {
	remote   adapter.RemoteStore
	engine   *Engine
	interval time.Duration
	attempts int
	logger   *logger.Logger
}

func NewSequencer(remote adapter.RemoteStore, eng *Engine, interval time.Duration, attempts int, log *logger.Logger) *Sequencer {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	return &Sequencer{
		remote:   remote,
		engine:   eng,
		interval: interval,
		attempts: attempts,
		logger:   log,
	}
}

// Run polls until the backend responds, the attempt budget runs out, or ctx
// is cancelled. The outcome is terminal either way: Ready on success,
// Degraded otherwise.
func (s *Sequencer) Run(ctx context.Context) {
	for attempt := 1; attempt <= s.attempts; attempt++ {
		err := s.remote.Ping(ctx)
		if err == nil {
			s.engine.Activate(ctx)
			return
		}

		s.logger.Debug().Err(err).
			Int("attempt", attempt).
			Int("max_attempts", s.attempts).
			Msg("remote backend not ready yet")

		if attempt == s.attempts {
			break
		}
		select {
		case <-ctx.Done():
			s.engine.MarkDegraded()
			return
		case <-time.After(s.interval):
		}
	}

	s.engine.MarkDegraded()
}
