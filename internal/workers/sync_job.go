// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Levitin

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/mlevitin/teamsync/internal/logger"
)

// Syncer is the slice of the sync engine the background job depends on.
type Syncer interface {
	SyncAll(ctx context.Context) error
}

// SyncJob periodically pushes locally-ahead collections to the backend,
// closing divergence left behind by commits that failed while the
// connection flapped. The job is idle until Start (or Run) is called.
type SyncJob struct {
	syncer   Syncer
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob that calls syncer.SyncAll on a ticker. If
// interval is zero or negative it defaults to 5 minutes.
func NewSyncJob(syncer Syncer, interval time.Duration, log *logger.Logger) *SyncJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &SyncJob{syncer: syncer, interval: interval, logger: log}
}

// Run implements Worker. It starts the ticker loop and blocks until ctx is
// cancelled.
func (j *SyncJob) Run(ctx context.Context) {
	j.Start(ctx)
	<-ctx.Done()
	j.Stop()
}

// Start stops any previously running job, then launches a background
// goroutine that calls SyncAll every interval. The goroutine exits when ctx
// is cancelled or Stop is called.
func (j *SyncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.syncer.SyncAll(jobCtx); err != nil {
					j.logger.Warn().Err(err).Msg("periodic reconciliation finished with warnings")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running
// (no-op in that case).
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
