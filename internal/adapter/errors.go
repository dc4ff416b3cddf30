package adapter

import "errors"

// Sentinel errors returned by the remote store adapter. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrRemoteUnavailable is returned on any transport-level or backend
	// failure. It is always recoverable: the engine falls back to the local
	// store and retries on the next reconciliation pass.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrBatchTooLarge is returned when a batch commit exceeds the backend's
	// write-batch limit. Unlike ErrRemoteUnavailable it is surfaced to the
	// caller as a degraded-sync warning rather than silently dropped.
	ErrBatchTooLarge = errors.New("batch exceeds backend write limit")

	// ErrUnauthorized is returned when the backend rejects the bearer token.
	ErrUnauthorized = errors.New("remote request unauthorized")

	// ErrSubscriptionClosed is reported through a subscription's error
	// callback when the transport drops. The subscription is dead afterwards;
	// the caller must resubscribe.
	ErrSubscriptionClosed = errors.New("collection subscription closed")
)
