package engine

import "errors"

// ErrNotReady is returned when a live subscription is requested before the
// engine has completed bootstrap against the remote backend, or after the
// bounded bootstrap wait has been exhausted.
var ErrNotReady = errors.New("sync engine is not ready")
