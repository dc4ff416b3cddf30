// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Levitin

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the client relies on at startup. Defaults fill everything
// except the backend URL and the cache DSN, so a failure here usually means
// a missing required source value.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Remote.BaseURL == "" || cfg.Remote.BatchLimit <= 0 || cfg.Remote.RequestTimeout <= 0 {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Local.DSN == "" || strings.Contains(cfg.Local.DSN, "memory") {
		return ErrInvalidLocalConfigs
	}

	if cfg.Sync.Throttle <= 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Bootstrap.PollInterval <= 0 || cfg.Bootstrap.MaxAttempts <= 0 {
		return ErrInvalidBootstrapConfigs
	}

	return nil
}
