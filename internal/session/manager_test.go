// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Levitin

package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlevitin/teamsync/internal/logger"
	"github.com/mlevitin/teamsync/models"
)

// recordingStore is a LocalStore double that records the order of identity
// operations so tests can assert persist-before-notify.
type recordingStore struct {
	mu       sync.Mutex
	identity *models.SessionIdentity
	ops      []string
}

func (r *recordingStore) Get(string) []models.Record           { return nil }
func (r *recordingStore) Put(string, []models.Record)          {}
func (r *recordingStore) Close() error                         { return nil }

func (r *recordingStore) Identity() (models.SessionIdentity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.identity == nil {
		return models.SessionIdentity{}, false
	}
	return *r.identity, true
}

func (r *recordingStore) SetIdentity(identity models.SessionIdentity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identity = &identity
	r.ops = append(r.ops, "persist")
}

func (r *recordingStore) ClearIdentity() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identity = nil
	r.ops = append(r.ops, "clear")
}

func (r *recordingStore) record(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

// stubProvider is a scripted IdentityProvider.
type stubProvider struct {
	identity models.SessionIdentity
	token    string
	err      error

	signOutCalls int
}

func (s *stubProvider) SignIn(context.Context, models.Credential) (models.SessionIdentity, string, error) {
	return s.identity, s.token, s.err
}

func (s *stubProvider) Register(context.Context, models.Profile) (models.SessionIdentity, string, error) {
	return s.identity, s.token, s.err
}

func (s *stubProvider) SignOut(context.Context, string) error {
	s.signOutCalls++
	return s.err
}

func (s *stubProvider) UpdateProfile(context.Context, string, models.Profile) (models.SessionIdentity, error) {
	return s.identity, s.err
}

func TestManager_SignInPersistsBeforeNotify(t *testing.T) {
	local := &recordingStore{}
	provider := &stubProvider{
		identity: models.SessionIdentity{SubjectID: "sub-1", DisplayName: "Ann"},
		token:    "tok-1",
	}
	m := NewManager(provider, local, logger.Nop())
	m.OnChange(func(models.SessionIdentity, bool) { local.record("notify") })

	got, err := m.SignIn(context.Background(), models.Credential{Login: "ann", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "sub-1", got.SubjectID)

	assert.Equal(t, []string{"persist", "notify"}, local.ops)

	current, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "sub-1", current.SubjectID)
	assert.Equal(t, "tok-1", m.Token())
}

func TestManager_SignInFailureSurfaced(t *testing.T) {
	provider := &stubProvider{err: ErrInvalidCredential}
	m := NewManager(provider, &recordingStore{}, logger.Nop())

	notified := false
	m.OnChange(func(models.SessionIdentity, bool) { notified = true })

	_, err := m.SignIn(context.Background(), models.Credential{})
	assert.ErrorIs(t, err, ErrInvalidCredential)
	assert.False(t, notified, "failed sign-in must not fire a transition")

	_, ok := m.Current()
	assert.False(t, ok)
}

func TestManager_SignOutClearsBeforeNotify(t *testing.T) {
	local := &recordingStore{}
	provider := &stubProvider{identity: models.SessionIdentity{SubjectID: "sub-1"}, token: "tok-1"}
	m := NewManager(provider, local, logger.Nop())

	_, err := m.SignIn(context.Background(), models.Credential{})
	require.NoError(t, err)

	m.OnChange(func(_ models.SessionIdentity, present bool) {
		if !present {
			local.record("notify-out")
		}
	})
	m.SignOut(context.Background())

	assert.Equal(t, []string{"persist", "clear", "notify-out"}, local.ops)
	assert.Equal(t, 1, provider.signOutCalls)
	assert.Empty(t, m.Token())

	_, ok := m.Current()
	assert.False(t, ok)
}

func TestManager_SignOutProviderFailureStillEndsLocalSession(t *testing.T) {
	local := &recordingStore{}
	provider := &stubProvider{identity: models.SessionIdentity{SubjectID: "sub-1"}, token: "tok-1"}
	m := NewManager(provider, local, logger.Nop())

	_, err := m.SignIn(context.Background(), models.Credential{})
	require.NoError(t, err)

	provider.err = errors.New("provider down")
	m.SignOut(context.Background())

	_, ok := m.Current()
	assert.False(t, ok)
	_, ok = local.Identity()
	assert.False(t, ok)
}

func TestManager_TokenSinkReceivesTransitions(t *testing.T) {
	provider := &stubProvider{identity: models.SessionIdentity{SubjectID: "sub-1"}, token: "tok-1"}
	m := NewManager(provider, &recordingStore{}, logger.Nop())

	var tokens []string
	m.SetTokenSink(func(token string) { tokens = append(tokens, token) })

	_, err := m.SignIn(context.Background(), models.Credential{})
	require.NoError(t, err)
	m.SignOut(context.Background())

	assert.Equal(t, []string{"tok-1", ""}, tokens)
}

func TestManager_ExactlyOneNotificationPerTransition(t *testing.T) {
	provider := &stubProvider{identity: models.SessionIdentity{SubjectID: "sub-1"}, token: "tok-1"}
	m := NewManager(provider, &recordingStore{}, logger.Nop())

	count := 0
	m.OnChange(func(models.SessionIdentity, bool) { count++ })

	_, _ = m.SignIn(context.Background(), models.Credential{})
	assert.Equal(t, 1, count)

	m.SignOut(context.Background())
	assert.Equal(t, 2, count)
}

func TestManager_RestoreLoadsWithoutNotifying(t *testing.T) {
	local := &recordingStore{}
	local.identity = &models.SessionIdentity{SubjectID: "sub-restored"}

	m := NewManager(&stubProvider{}, local, logger.Nop())
	notified := false
	m.OnChange(func(models.SessionIdentity, bool) { notified = true })

	require.True(t, m.Restore())

	current, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "sub-restored", current.SubjectID)
	assert.False(t, notified)
}

func TestManager_RestoreWithoutPersistedIdentity(t *testing.T) {
	m := NewManager(&stubProvider{}, &recordingStore{}, logger.Nop())

	assert.False(t, m.Restore())
	_, ok := m.Current()
	assert.False(t, ok)
}

func TestManager_UpdateProfileRequiresSession(t *testing.T) {
	m := NewManager(&stubProvider{}, &recordingStore{}, logger.Nop())

	_, err := m.UpdateProfile(context.Background(), models.Profile{DisplayName: "New"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestManager_UpdateProfileRefreshesIdentity(t *testing.T) {
	local := &recordingStore{}
	provider := &stubProvider{identity: models.SessionIdentity{SubjectID: "sub-1", DisplayName: "Ann"}, token: "tok-1"}
	m := NewManager(provider, local, logger.Nop())

	_, err := m.SignIn(context.Background(), models.Credential{})
	require.NoError(t, err)

	provider.identity.DisplayName = "Anna"
	got, err := m.UpdateProfile(context.Background(), models.Profile{DisplayName: "Anna"})
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.DisplayName)

	persisted, ok := local.Identity()
	require.True(t, ok)
	assert.Equal(t, "Anna", persisted.DisplayName)
}
