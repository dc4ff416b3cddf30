package netmon

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlevitin/teamsync/internal/logger"
	"github.com/mlevitin/teamsync/models"
)

func TestMonitor_InitialStateOffline(t *testing.T) {
	m := NewMonitor(nil, time.Second, logger.Nop())

	assert.Equal(t, models.Offline, m.Current())
}

func TestMonitor_SetStateNotifiesOncePerTransition(t *testing.T) {
	m := NewMonitor(nil, time.Second, logger.Nop())

	var transitions []models.ConnectivityState
	m.OnTransition(func(s models.ConnectivityState) { transitions = append(transitions, s) })

	m.SetState(models.Online)
	m.SetState(models.Online) // no-op, already online
	m.SetState(models.Offline)
	m.SetState(models.Online)

	assert.Equal(t, []models.ConnectivityState{models.Online, models.Offline, models.Online}, transitions)
	assert.Equal(t, models.Online, m.Current())
}

func TestMonitor_AllListenersNotifiedInOrder(t *testing.T) {
	m := NewMonitor(nil, time.Second, logger.Nop())

	var order []int
	m.OnTransition(func(models.ConnectivityState) { order = append(order, 1) })
	m.OnTransition(func(models.ConnectivityState) { order = append(order, 2) })

	m.SetState(models.Online)

	assert.Equal(t, []int{1, 2}, order)
}

func TestMonitor_RunProbesAndTransitions(t *testing.T) {
	var reachable atomic.Bool
	probe := func(context.Context) error {
		if reachable.Load() {
			return nil
		}
		return errors.New("unreachable")
	}

	m := NewMonitor(probe, 10*time.Millisecond, logger.Nop())

	online := make(chan struct{})
	m.OnTransition(func(s models.ConnectivityState) {
		if s == models.Online {
			close(online)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	// Stays offline while the probe fails.
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, models.Offline, m.Current())

	reachable.Store(true)
	select {
	case <-online:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor never became online")
	}
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	probe := func(context.Context) error { return nil }
	m := NewMonitor(probe, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
