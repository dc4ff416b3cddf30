// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Levitin

// Package adapter provides the transport layer for the authoritative remote
// backend: per-collection fetch, atomic delete-then-rewrite batch commit,
// and a push-based change subscription per collection.
//
// The HTTP implementation ([NewHTTPRemoteStore]) maps transport failures to
// the sentinel values in errors.go so callers can use [errors.Is] for
// transport-agnostic handling.
package adapter

import (
	"context"

	"github.com/mlevitin/teamsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore is the client of the authoritative server-side store. All
// operations are blocking and honour ctx cancellation.
type RemoteStore interface {
	// Ping probes the backend's readiness endpoint. Used by the bootstrap
	// sequencer and the connectivity monitor.
	Ping(ctx context.Context) error

	// FetchCollection returns the full server-side contents of the named
	// collection. Fails with ErrRemoteUnavailable on transport error.
	FetchCollection(ctx context.Context, name string) ([]models.Record, error)

	// CommitBatch replaces the named collection's server-side contents: the
	// backend deletes every existing record then writes the supplied
	// sequence within one atomic batch, stamping each record with a
	// server-assigned lastModified and the current actor as modifiedBy.
	// Fails with ErrRemoteUnavailable or ErrBatchTooLarge.
	CommitBatch(ctx context.Context, name string, records []models.Record) error

	// Subscribe opens a push channel for the named collection. onChange
	// receives the full current contents immediately upon subscribe and
	// again on every subsequent remote mutation. onError fires once on
	// transport-level failure, after which the subscription is dead; there
	// is no auto-reconnect.
	Subscribe(ctx context.Context, name string, onChange func([]models.Record), onError func(error)) (Subscription, error)

	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. An empty token clears authentication.
	SetToken(token string)

	// Token returns the currently installed bearer token.
	Token() string

	// SetActor records the identity stamped into modifiedBy on commits.
	// An empty subject resets it to "unknown".
	SetActor(subject string)
}

// Subscription is the handle for one live collection subscription.
type Subscription interface {
	// Unsubscribe tears the subscription down. Idempotent: safe to call
	// multiple times or on an already-dead handle.
	Unsubscribe()
}
