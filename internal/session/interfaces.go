// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Levitin

// Package session tracks the authenticated identity. The Manager persists
// every identity transition into the local store before notifying listeners,
// so a concurrent restart always observes a consistent identity snapshot,
// and delegates the actual credential exchange to an external identity
// provider reached over HTTP.
package session

import (
	"context"

	"github.com/mlevitin/teamsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/identity_provider_mock.go -package=mock

// IdentityProvider is the boundary to the external identity service. Its
// wire protocol is opaque; implementations map provider failures to the
// sentinel errors of this package.
type IdentityProvider interface {
	// SignIn exchanges a credential for an identity and a bearer token.
	SignIn(ctx context.Context, credential models.Credential) (models.SessionIdentity, string, error)

	// Register creates a new account and signs it in, returning the identity
	// and a bearer token.
	Register(ctx context.Context, profile models.Profile) (models.SessionIdentity, string, error)

	// SignOut invalidates the provider-side session for the given token.
	SignOut(ctx context.Context, token string) error

	// UpdateProfile changes the display attributes of the authenticated
	// account and returns the refreshed identity.
	UpdateProfile(ctx context.Context, token string, profile models.Profile) (models.SessionIdentity, error)
}
