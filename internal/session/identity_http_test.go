package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlevitin/teamsync/models"
)

func issueToken(t *testing.T, subject, name, email string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"name":  name,
		"email": email,
	})
	signed, err := token.SignedString([]byte("test-sign-key"))
	require.NoError(t, err)
	return signed
}

func newIdentityFixture(t *testing.T) (IdentityProvider, *chi.Mux) {
	t.Helper()

	r := chi.NewRouter()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	provider := NewHTTPIdentityProvider(HTTPConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
	return provider, r
}

func TestHTTPIdentityProvider_SignIn(t *testing.T) {
	provider, r := newIdentityFixture(t)
	r.Post("/api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Authorization", "Bearer "+issueToken(t, "sub-1", "Ann", "ann@example.com"))
		w.WriteHeader(http.StatusOK)
	})

	identity, token, err := provider.SignIn(context.Background(), models.Credential{Login: "ann", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "sub-1", identity.SubjectID)
	assert.Equal(t, "Ann", identity.DisplayName)
	assert.Equal(t, "ann@example.com", identity.Email)
	assert.NotEmpty(t, token)
}

func TestHTTPIdentityProvider_SignInRejected(t *testing.T) {
	provider, r := newIdentityFixture(t)
	r.Post("/api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "wrong password", http.StatusUnauthorized)
	})

	_, _, err := provider.SignIn(context.Background(), models.Credential{Login: "ann", Password: "bad"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestHTTPIdentityProvider_RegisterConflict(t *testing.T) {
	provider, r := newIdentityFixture(t)
	r.Post("/api/auth/register", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "login taken", http.StatusConflict)
	})

	_, _, err := provider.Register(context.Background(), models.Profile{Login: "ann"})
	assert.ErrorIs(t, err, ErrIdentityExists)
}

func TestHTTPIdentityProvider_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	provider := NewHTTPIdentityProvider(HTTPConfig{BaseURL: srv.URL, Timeout: 500 * time.Millisecond})

	_, _, err := provider.SignIn(context.Background(), models.Credential{})
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
}

func TestHTTPIdentityProvider_ServerError(t *testing.T) {
	provider, r := newIdentityFixture(t)
	r.Post("/api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, _, err := provider.SignIn(context.Background(), models.Credential{})
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
}

func TestHTTPIdentityProvider_SignOutSendsToken(t *testing.T) {
	provider, r := newIdentityFixture(t)

	var gotAuth string
	r.Post("/api/auth/logout", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, provider.SignOut(context.Background(), "tok-1"))
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestHTTPIdentityProvider_UpdateProfile(t *testing.T) {
	provider, r := newIdentityFixture(t)
	r.Put("/api/auth/profile", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Authorization", "Bearer "+issueToken(t, "sub-1", "Anna", "ann@example.com"))
		w.WriteHeader(http.StatusOK)
	})

	identity, err := provider.UpdateProfile(context.Background(), "tok-1", models.Profile{DisplayName: "Anna"})
	require.NoError(t, err)
	assert.Equal(t, "Anna", identity.DisplayName)
}

func TestIdentityFromJWT_MissingSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"name": "Ann"})
	signed, err := token.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = identityFromJWT(signed)
	assert.Error(t, err)
}
