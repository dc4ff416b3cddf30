package session

import "errors"

// Identity-layer errors surfaced to the caller of sign-in/register, matched
// with [errors.Is]. Unlike remote-store failures these are never swallowed:
// the caller must display credential-specific feedback.
var (
	// ErrInvalidCredential is returned when the identity provider rejects
	// the supplied login/password pair.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrIdentityExists is returned when registration targets a login that
	// is already taken.
	ErrIdentityExists = errors.New("identity already exists")

	// ErrIdentityUnavailable is returned on transport-level or provider-side
	// failure of the identity service.
	ErrIdentityUnavailable = errors.New("identity service unavailable")
)
