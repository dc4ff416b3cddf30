// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Levitin

// Package netmon tracks network reachability of the remote backend. The
// Monitor owns the process-wide ConnectivityState, probes the backend at a
// fixed interval, and notifies registered listeners exactly once per state
// transition, in the order transitions occur.
package netmon

import (
	"context"
	"sync"
	"time"

	"github.com/mlevitin/teamsync/internal/logger"
	"github.com/mlevitin/teamsync/models"
)

// TransitionListener is invoked once per connectivity transition with the
// new state.
type TransitionListener func(state models.ConnectivityState)

// Probe reports whether the remote backend is currently reachable. A nil
// error means reachable.
type Probe func(ctx context.Context) error

// Monitor tracks connectivity transitions. The initial state is Offline
// until the first successful probe or an explicit SetState.
type Monitor struct {
	probe    Probe
	interval time.Duration
	logger   *logger.Logger

	mu        sync.Mutex
	state     models.ConnectivityState
	listeners []TransitionListener
}

func NewMonitor(probe Probe, interval time.Duration, log *logger.Logger) *Monitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &Monitor{
		probe:    probe,
		interval: interval,
		logger:   log,
		state:    models.Offline,
	}
}

// Current returns the current connectivity state.
func (m *Monitor) Current() models.ConnectivityState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// OnTransition registers a listener for future connectivity transitions.
func (m *Monitor) OnTransition(listener TransitionListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}

// SetState records a new connectivity state. Listeners are notified only
// when the state actually changes, each exactly once per transition.
func (m *Monitor) SetState(state models.ConnectivityState) {
	m.mu.Lock()
	if m.state == state {
		m.mu.Unlock()
		return
	}
	m.state = state
	listeners := make([]TransitionListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	m.logger.Info().Stringer("state", state).Msg("connectivity transition")
	for _, listener := range listeners {
		listener(state)
	}
}

// Run probes the backend on a fixed interval until ctx is cancelled. An
// immediate probe runs first so the state settles before the first tick.
func (m *Monitor) Run(ctx context.Context) {
	m.probeOnce(ctx)

	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.probeOnce(ctx)
		}
	}
}

func (m *Monitor) probeOnce(ctx context.Context) {
	if m.probe == nil {
		return
	}

	if err := m.probe(ctx); err != nil {
		m.SetState(models.Offline)
		return
	}
	m.SetState(models.Online)
}
