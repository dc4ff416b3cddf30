package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/mlevitin/teamsync/internal/logger"
	"github.com/mlevitin/teamsync/internal/store"
	"github.com/mlevitin/teamsync/models"
)

// ChangeListener is notified on every sign-in/sign-out, exactly once per
// transition. present reports whether an identity is now active.
type ChangeListener func(identity models.SessionIdentity, present bool)

// TokenSink receives the bearer token after every transition (empty on
// sign-out). The facade uses it to install the token on the remote store
// adapter.
type TokenSink func(token string)

// Manager tracks the authenticated identity. On every successful transition
// it persists the identity into the local store (or clears it) before
// notifying listeners.
type Manager struct {
	provider IdentityProvider
	local    store.LocalStore
	logger   *logger.Logger

	mu        sync.RWMutex
	current   *models.SessionIdentity
	token     string
	listeners []ChangeListener
	tokenSink TokenSink
}

func NewManager(provider IdentityProvider, local store.LocalStore, log *logger.Logger) *Manager {
	return &Manager{provider: provider, local: local, logger: log}
}

// SetTokenSink installs the hook that receives the bearer token on every
// transition. Intended to be wired once at construction time.
func (m *Manager) SetTokenSink(sink TokenSink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokenSink = sink
}

// OnChange registers a listener invoked on every identity transition.
func (m *Manager) OnChange(listener ChangeListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}

// Current returns the active identity, if any.
func (m *Manager) Current() (models.SessionIdentity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return models.SessionIdentity{}, false
	}
	return *m.current, true
}

// Token returns the bearer token of the active session, or empty.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Restore loads the last-known identity persisted in the local store into
// the current slot without notifying listeners. Called once at startup so
// the application observes the prior identity before the remote session
// resolves.
func (m *Manager) Restore() bool {
	identity, ok := m.local.Identity()
	if !ok {
		return false
	}

	m.mu.Lock()
	m.current = &identity
	m.mu.Unlock()

	m.logger.Debug().
		Str("subject", identity.SubjectID).
		Msg("restored last-known identity from local store")
	return true
}

// SignIn authenticates against the identity provider. Identity-layer
// failures are surfaced to the caller so it can display credential-specific
// feedback.
func (m *Manager) SignIn(ctx context.Context, credential models.Credential) (models.SessionIdentity, error) {
	identity, token, err := m.provider.SignIn(ctx, credential)
	if err != nil {
		return models.SessionIdentity{}, fmt.Errorf("sign in: %w", err)
	}

	m.transition(&identity, token)
	return identity, nil
}

// Register creates a new account and signs it in.
func (m *Manager) Register(ctx context.Context, profile models.Profile) (models.SessionIdentity, error) {
	identity, token, err := m.provider.Register(ctx, profile)
	if err != nil {
		return models.SessionIdentity{}, fmt.Errorf("register: %w", err)
	}

	m.transition(&identity, token)
	return identity, nil
}

// SignOut ends the session. Provider-side failures are logged but do not
// block the local transition: the local session always ends.
func (m *Manager) SignOut(ctx context.Context) {
	if token := m.Token(); token != "" {
		if err := m.provider.SignOut(ctx, token); err != nil {
			m.logger.Warn().Err(err).Msg("provider sign-out failed, ending local session anyway")
		}
	}

	m.transition(nil, "")
}

// UpdateProfile updates the display attributes of the active account and
// re-persists the refreshed identity.
func (m *Manager) UpdateProfile(ctx context.Context, profile models.Profile) (models.SessionIdentity, error) {
	token := m.Token()
	if token == "" {
		return models.SessionIdentity{}, fmt.Errorf("update profile: %w", ErrInvalidCredential)
	}

	identity, err := m.provider.UpdateProfile(ctx, token, profile)
	if err != nil {
		return models.SessionIdentity{}, fmt.Errorf("update profile: %w", err)
	}

	// Same session, refreshed attributes: persist but do not re-notify,
	// profile edits are not an identity transition.
	m.mu.Lock()
	m.current = &identity
	m.mu.Unlock()
	m.local.SetIdentity(identity)

	return identity, nil
}

// transition persists the new identity state and then notifies listeners.
// Persist-before-notify is required so a concurrent restart always observes
// a consistent identity snapshot.
func (m *Manager) transition(identity *models.SessionIdentity, token string) {
	if identity != nil {
		m.local.SetIdentity(*identity)
	} else {
		m.local.ClearIdentity()
	}

	m.mu.Lock()
	m.current = identity
	m.token = token
	listeners := make([]ChangeListener, len(m.listeners))
	copy(listeners, m.listeners)
	sink := m.tokenSink
	m.mu.Unlock()

	if sink != nil {
		sink(token)
	}

	var snapshot models.SessionIdentity
	if identity != nil {
		snapshot = *identity
	}
	for _, listener := range listeners {
		listener(snapshot, identity != nil)
	}
}
