// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Levitin

// Package engine orchestrates reads and writes across the local store and
// the remote store, implements the reconciliation policy, and manages
// per-collection live subscriptions.
//
// Routing policy: every operation consults the engine's readiness and the
// connectivity state. Anything short of READY+ONLINE routes to the local
// store only. Writes always land locally first; remote durability is best
// effort and divergence is closed by the next reconciliation pass.
// Reconciliation is whole-collection last-writer-wins biased toward the
// local copy: it overwrites remote-only changes made by other clients
// during a partition. That is the intended policy, not a defect.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mlevitin/teamsync/internal/adapter"
	"github.com/mlevitin/teamsync/internal/logger"
	"github.com/mlevitin/teamsync/internal/netmon"
	"github.com/mlevitin/teamsync/internal/session"
	"github.com/mlevitin/teamsync/internal/store"
	"github.com/mlevitin/teamsync/models"
)

// ConnectivitySource is the slice of the connectivity monitor the engine
// depends on.
type ConnectivitySource interface {
	Current() models.ConnectivityState
	OnTransition(listener netmon.TransitionListener)
}

// SessionSource is the slice of the session manager the engine depends on.
type SessionSource interface {
	Current() (models.SessionIdentity, bool)
	OnChange(listener session.ChangeListener)
}

// Config tunes the engine's reconciliation behaviour.
type Config struct {
	// Collections seeds the fixed enumeration order of reconciliation.
	// Collections touched at runtime are added to the set.
	Collections []string

	// Throttle is the delay between collections during a full
	// reconciliation pass, protecting the backend from bulk traffic after
	// a reconnect.
	Throttle time.Duration
}

// Engine routes table-level reads and writes between the local cache and
// the remote authoritative store.
type Engine struct {
	local    store.LocalStore
	remote   adapter.RemoteStore
	conn     ConnectivitySource
	sessions SessionSource
	logger   *logger.Logger
	throttle time.Duration

	readiness atomic.Int32
	activated sync.Once
	runCtx    atomic.Value // context.Context installed on activation

	mu    sync.Mutex
	known map[string]struct{}
	locks map[string]*sync.Mutex

	// syncMu serializes full reconciliation passes.
	syncMu sync.Mutex
}

func New(cfg Config, local store.LocalStore, remote adapter.RemoteStore, conn ConnectivitySource, sessions SessionSource, log *logger.Logger) *Engine {
	if cfg.Throttle <= 0 {
		cfg.Throttle = 150 * time.Millisecond
	}

	e := &Engine{
		local:    local,
		remote:   remote,
		conn:     conn,
		sessions: sessions,
		logger:   log,
		throttle: cfg.Throttle,
		known:    make(map[string]struct{}, len(cfg.Collections)),
		locks:    make(map[string]*sync.Mutex),
	}
	for _, name := range cfg.Collections {
		e.known[name] = struct{}{}
	}
	e.runCtx.Store(context.Background())

	return e
}

// Readiness reports the engine's bootstrap state. Ready and Degraded are
// both terminal for the process lifetime.
func (e *Engine) Readiness() models.ReadinessState {
	return models.ReadinessState(e.readiness.Load())
}

// Status is the diagnostic snapshot exposed to the UI collaborator.
func (e *Engine) Status() models.ConnectionStatus {
	_, authenticated := e.sessions.Current()
	return models.ConnectionStatus{
		Online:        e.conn.Current() == models.Online,
		Ready:         e.Readiness() == models.Ready,
		Authenticated: authenticated,
	}
}

// CurrentUser returns the active session identity, if any.
func (e *Engine) CurrentUser() (models.SessionIdentity, bool) {
	return e.sessions.Current()
}

// Activate transitions the engine to Ready and performs one-time setup:
// connectivity and session transitions from here on trigger a full
// reconciliation pass. Called by the initialization sequencer once the
// remote backend's dependencies have resolved. No-op unless the engine is
// still uninitialized.
func (e *Engine) Activate(ctx context.Context) {
	if !e.readiness.CompareAndSwap(int32(models.Uninitialized), int32(models.Ready)) {
		return
	}

	e.runCtx.Store(ctx)
	e.activated.Do(func() {
		e.conn.OnTransition(func(state models.ConnectivityState) {
			if state == models.Online {
				go e.reconcile("connectivity regained")
			}
		})
		e.sessions.OnChange(func(_ models.SessionIdentity, present bool) {
			if present {
				go e.reconcile("identity transition")
			}
		})
	})

	e.logger.Info().Msg("sync engine ready")
}

// MarkDegraded permanently routes every subsequent operation to the local
// store. No recovery within the process lifetime; a restart is required.
func (e *Engine) MarkDegraded() {
	if e.readiness.CompareAndSwap(int32(models.Uninitialized), int32(models.Degraded)) {
		e.logger.Warn().Msg("remote backend unavailable, entering local-only mode permanently")
	}
}

// GetTable returns the contents of the named collection. When the remote
// backend is eligible the fetched copy refreshes the local cache; any
// remote failure falls back to the cache without surfacing an error.
func (e *Engine) GetTable(ctx context.Context, name string) []models.Record {
	e.registerCollection(name)

	if !e.remoteEligible() {
		return e.local.Get(name)
	}

	records, err := e.remote.FetchCollection(ctx, name)
	if err != nil {
		e.logger.Warn().Err(err).
			Str("collection", name).
			Msg("remote fetch failed, serving local cache")
		return e.local.Get(name)
	}

	lock := e.collectionLock(name)
	lock.Lock()
	e.local.Put(name, records)
	lock.Unlock()

	return records
}

// SetTable replaces the named collection. The local write is unconditional
// and happens first: it must never be lost due to a remote failure. The
// remote commit is attempted only when eligible; on failure the collection
// is locally ahead until the next reconciliation pass. Only a batch-size
// violation is surfaced, as a degraded-sync warning.
func (e *Engine) SetTable(ctx context.Context, name string, records []models.Record) error {
	e.registerCollection(name)

	records = models.CloneRecords(records)
	for _, record := range records {
		if record.ID() == "" {
			record.SetID(uuid.NewString())
		}
	}

	lock := e.collectionLock(name)
	lock.Lock()
	defer lock.Unlock()

	e.local.Put(name, records)

	if !e.remoteEligible() {
		return nil
	}

	if err := e.remote.CommitBatch(ctx, name, records); err != nil {
		if errors.Is(err, adapter.ErrBatchTooLarge) {
			return fmt.Errorf("collection %s is locally ahead: %w", name, err)
		}
		e.logger.Warn().Err(err).
			Str("collection", name).
			Msg("remote commit failed, collection is locally ahead")
	}

	return nil
}

// SyncAll pushes every locally non-empty collection to the remote store in
// a fixed enumeration order, throttling between collections. No-op unless
// the engine is Ready and Online. Batch-size violations are aggregated and
// returned as a degraded-sync warning; other remote failures are logged and
// retried on the next pass.
func (e *Engine) SyncAll(ctx context.Context) error {
	if !e.remoteEligible() {
		return nil
	}

	e.syncMu.Lock()
	defer e.syncMu.Unlock()

	var warnings []error
	for _, name := range e.knownCollections() {
		if err := ctx.Err(); err != nil {
			return err
		}

		lock := e.collectionLock(name)
		lock.Lock()
		records := e.local.Get(name)
		if len(records) == 0 {
			lock.Unlock()
			continue
		}
		err := e.remote.CommitBatch(ctx, name, records)
		lock.Unlock()

		if err != nil {
			if errors.Is(err, adapter.ErrBatchTooLarge) {
				warnings = append(warnings, fmt.Errorf("collection %s: %w", name, err))
			} else {
				e.logger.Warn().Err(err).
					Str("collection", name).
					Msg("reconciliation commit failed, collection stays locally ahead")
			}
		}

		if e.throttle > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.throttle):
			}
		}
	}

	return errors.Join(warnings...)
}

// OnTableChange opens a live subscription for the named collection. Every
// pushed snapshot refreshes the local cache before callback is invoked. On
// transport failure the subscription is dead and must be recreated by the
// caller, typically after the next reconnect.
func (e *Engine) OnTableChange(ctx context.Context, name string, callback func([]models.Record)) (adapter.Subscription, error) {
	if e.Readiness() != models.Ready {
		return nil, ErrNotReady
	}
	e.registerCollection(name)

	return e.remote.Subscribe(ctx, name,
		func(records []models.Record) {
			lock := e.collectionLock(name)
			lock.Lock()
			e.local.Put(name, records)
			lock.Unlock()

			if callback != nil {
				callback(records)
			}
		},
		func(err error) {
			e.logger.Warn().Err(err).
				Str("collection", name).
				Msg("live subscription dropped, caller must resubscribe")
		})
}

func (e *Engine) reconcile(reason string) {
	ctx, _ := e.runCtx.Load().(context.Context)
	if ctx == nil {
		ctx = context.Background()
	}

	e.logger.Debug().Str("reason", reason).Msg("starting full reconciliation")
	if err := e.SyncAll(ctx); err != nil {
		e.logger.Warn().Err(err).Str("reason", reason).Msg("reconciliation finished with warnings")
	}
}

func (e *Engine) remoteEligible() bool {
	return e.Readiness() == models.Ready && e.conn.Current() == models.Online
}

func (e *Engine) registerCollection(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.known[name] = struct{}{}
}

// knownCollections returns the reconciliation enumeration in a fixed,
// deterministic order.
func (e *Engine) knownCollections() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	names := make([]string, 0, len(e.known))
	for name := range e.known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) collectionLock(name string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[name] = lock
	}
	return lock
}
