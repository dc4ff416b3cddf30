// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Levitin

// Package store implements the local persistence layer: a synchronous,
// always-available, process-durable cache of whole collections keyed by
// collection name, plus the reserved slot for the last-known session
// identity.
//
// The local store is the source of record whenever the remote backend is
// unreachable or the engine is degraded. Its operations are infallible from
// the caller's perspective: internal storage failures are logged and treated
// as "collection absent", never propagated.
package store

import "github.com/mlevitin/teamsync/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/local_store_mock.go -package=mock

// LocalStore is the synchronous durable cache consulted by the sync engine.
// Put has full-overwrite semantics: it replaces the entire cached contents
// of the named collection. Get returns nil for an absent collection and
// after any internal storage failure.
type LocalStore interface {
	// Get returns the cached records of the named collection, or nil if the
	// collection is absent or cannot be read.
	Get(collection string) []models.Record

	// Put replaces the cached contents of the named collection with records.
	// Serialization or storage failures are logged and swallowed.
	Put(collection string, records []models.Record)

	// Identity returns the persisted last-known session identity, if any.
	Identity() (models.SessionIdentity, bool)

	// SetIdentity persists identity under the reserved identity key.
	SetIdentity(identity models.SessionIdentity)

	// ClearIdentity removes the persisted identity.
	ClearIdentity()

	// Close releases the underlying database handle.
	Close() error
}
