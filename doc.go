// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Levitin

// Package teamsync is an offline-first synchronization layer for
// collection-shaped team data.
//
// The embedding application reads and writes whole named collections
// through a [Client]. Writes always land in a local SQLite cache first;
// when the backend is reachable and the bootstrap has succeeded they are
// also committed remotely in atomic delete-then-rewrite batches.
// Divergence accumulated while offline is closed by whole-collection
// last-writer-wins reconciliation, biased toward the local copy, on every
// reconnect and sign-in and on a periodic background pass.
//
// Startup never blocks on the network: the bootstrap probes the backend a
// bounded number of times and, if it never answers, degrades the client
// permanently to local-only mode for the rest of the process lifetime.
package teamsync
