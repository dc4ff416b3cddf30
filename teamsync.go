// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Levitin

package teamsync

import (
	"context"
	"fmt"
	"sync"

	"github.com/mlevitin/teamsync/internal/adapter"
	"github.com/mlevitin/teamsync/internal/config"
	"github.com/mlevitin/teamsync/internal/engine"
	"github.com/mlevitin/teamsync/internal/logger"
	"github.com/mlevitin/teamsync/internal/netmon"
	"github.com/mlevitin/teamsync/internal/session"
	"github.com/mlevitin/teamsync/internal/store"
	"github.com/mlevitin/teamsync/internal/workers"
	"github.com/mlevitin/teamsync/models"
)

// Client is the embedding application's single entry point into the sync
// layer. It owns the local cache, the backend transport, the session
// manager, the connectivity monitor, and the sync engine, and runs the
// bootstrap sequence and background workers once started.
type Client struct {
	cfg      *config.StructuredConfig
	logger   *logger.Logger
	local    store.LocalStore
	remote   adapter.RemoteStore
	sessions *session.Manager
	monitor  *netmon.Monitor
	engine   *engine.Engine
	workers  *workers.Workers

	mu      sync.Mutex
	cancel  context.CancelFunc
	started bool
}

// New wires a Client from the given configuration. Nothing touches the
// network until Start; the local cache is opened (and migrated) here so a
// broken DSN fails fast.
func New(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.NewLogger("teamsync")
	}

	local, err := store.NewLocalStore(ctx, cfg.Local.DSN, cfg.Local.KeyPrefix, log.GetChildLogger())
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	remote := adapter.NewHTTPRemoteStore(adapter.HTTPConfig{
		BaseURL:    cfg.Remote.BaseURL,
		WatchURL:   cfg.Remote.WatchURL,
		Timeout:    cfg.Remote.RequestTimeout,
		BatchLimit: cfg.Remote.BatchLimit,
	}, log.GetChildLogger())

	identityURL := cfg.Identity.BaseURL
	if identityURL == "" {
		identityURL = cfg.Remote.BaseURL
	}
	provider := session.NewHTTPIdentityProvider(session.HTTPConfig{
		BaseURL: identityURL,
		Timeout: cfg.Identity.RequestTimeout,
	})

	sessions := session.NewManager(provider, local, log.GetChildLogger())
	sessions.SetTokenSink(remote.SetToken)
	sessions.OnChange(func(identity models.SessionIdentity, present bool) {
		if present {
			remote.SetActor(identity.SubjectID)
		} else {
			remote.SetActor("")
		}
	})

	monitor := netmon.NewMonitor(remote.Ping, cfg.Probe.Interval, log.GetChildLogger())

	eng := engine.New(engine.Config{
		Collections: cfg.Sync.Collections,
		Throttle:    cfg.Sync.Throttle,
	}, local, remote, monitor, sessions, log.GetChildLogger())

	sequencer := engine.NewSequencer(remote, eng,
		cfg.Bootstrap.PollInterval, cfg.Bootstrap.MaxAttempts, log.GetChildLogger())

	background := workers.New(
		workers.Func(monitor.Run),
		workers.Func(sequencer.Run),
		workers.NewSyncJob(eng, cfg.Sync.JobInterval, log.GetChildLogger()),
	)

	return &Client{
		cfg:      cfg,
		logger:   log,
		local:    local,
		remote:   remote,
		sessions: sessions,
		monitor:  monitor,
		engine:   eng,
		workers:  background,
	}, nil
}

// NewFromEnvironment builds a Client from the merged environment, flag,
// JSON, and default configuration sources.
func NewFromEnvironment(ctx context.Context) (*Client, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return New(ctx, cfg, logger.NewLogger("teamsync"))
}

// Start restores the last-known identity from the local cache, then launches
// the background workers: the connectivity monitor, the bounded-retry
// bootstrap, and the periodic reconciliation job. Reads and writes work
// immediately, against the local cache, even before the bootstrap resolves.
// Start is idempotent.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true

	if restored := c.sessions.Restore(); restored {
		if identity, ok := c.sessions.Current(); ok {
			c.remote.SetActor(identity.SubjectID)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.workers.Run(runCtx)

	c.logger.Info().Msg("sync layer started")
}

// Close stops the background workers and closes the local cache.
func (c *Client) Close() error {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		c.workers.Wait()
	}

	return c.local.Close()
}

// GetTable returns the contents of the named collection: the backend copy
// when the client is ready and online, the local cache otherwise.
func (c *Client) GetTable(ctx context.Context, name string) []models.Record {
	return c.engine.GetTable(ctx, name)
}

// SetTable replaces the named collection. The write always lands in the
// local cache; remote durability is best effort. The only surfaced error is
// a batch-size violation, meaning the collection stays locally ahead.
func (c *Client) SetTable(ctx context.Context, name string, records []models.Record) error {
	return c.engine.SetTable(ctx, name, records)
}

// OnTableChange opens a live subscription for the named collection. Each
// pushed snapshot refreshes the local cache before callback runs.
func (c *Client) OnTableChange(ctx context.Context, name string, callback func([]models.Record)) (adapter.Subscription, error) {
	return c.engine.OnTableChange(ctx, name, callback)
}

// SyncAll pushes every locally non-empty collection to the backend.
func (c *Client) SyncAll(ctx context.Context) error {
	return c.engine.SyncAll(ctx)
}

// SignIn authenticates against the identity provider and installs the
// session on the transport.
func (c *Client) SignIn(ctx context.Context, credential models.Credential) (models.SessionIdentity, error) {
	return c.sessions.SignIn(ctx, credential)
}

// Register creates a new account and signs it in.
func (c *Client) Register(ctx context.Context, profile models.Profile) (models.SessionIdentity, error) {
	return c.sessions.Register(ctx, profile)
}

// SignOut ends the session. The local session always ends, even when the
// provider is unreachable.
func (c *Client) SignOut(ctx context.Context) {
	c.sessions.SignOut(ctx)
}

// UpdateProfile updates the display attributes of the active account.
func (c *Client) UpdateProfile(ctx context.Context, profile models.Profile) (models.SessionIdentity, error) {
	return c.sessions.UpdateProfile(ctx, profile)
}

// CurrentUser returns the active session identity, if any.
func (c *Client) CurrentUser() (models.SessionIdentity, bool) {
	return c.engine.CurrentUser()
}

// Status is a diagnostic snapshot of connectivity, readiness, and
// authentication, suitable for a status indicator.
func (c *Client) Status() models.ConnectionStatus {
	return c.engine.Status()
}

// Readiness reports the bootstrap outcome: Uninitialized until the probe
// resolves, then Ready or, permanently, Degraded.
func (c *Client) Readiness() models.ReadinessState {
	return c.engine.Readiness()
}
