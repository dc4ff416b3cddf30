package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidRemoteConfigs indicates invalid backend settings
	// (for example, a missing base URL or zero batch limit).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidLocalConfigs indicates invalid cache settings
	// (for example, an empty DSN or an unsupported in-memory DSN).
	ErrInvalidLocalConfigs = errors.New("invalid local storage configuration")
	// ErrInvalidSyncConfigs indicates invalid reconciliation settings
	// (for example, a zero throttle).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidBootstrapConfigs indicates invalid startup probe settings
	// (for example, a zero attempt budget).
	ErrInvalidBootstrapConfigs = errors.New("invalid bootstrap configuration")
)
