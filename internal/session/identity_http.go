package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mlevitin/teamsync/models"
)

// HTTPConfig configures the identity-provider HTTP client.
type HTTPConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpIdentityProvider struct {
	client *resty.Client
}

// NewHTTPIdentityProvider builds the IdentityProvider client for the
// identity service at cfg.BaseURL.
func NewHTTPIdentityProvider(cfg HTTPConfig) IdentityProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8081"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpIdentityProvider{client: cli}
}

func (p *httpIdentityProvider) SignIn(ctx context.Context, credential models.Credential) (models.SessionIdentity, string, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credential).
		Post("/api/auth/login")
	if err != nil {
		return models.SessionIdentity{}, "", fmt.Errorf("%w: login request: %v", ErrIdentityUnavailable, err)
	}
	if err = mapIdentityError(resp); err != nil {
		return models.SessionIdentity{}, "", err
	}

	return identityFromResponse(resp)
}

func (p *httpIdentityProvider) Register(ctx context.Context, profile models.Profile) (models.SessionIdentity, string, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(profile).
		Post("/api/auth/register")
	if err != nil {
		return models.SessionIdentity{}, "", fmt.Errorf("%w: register request: %v", ErrIdentityUnavailable, err)
	}
	if err = mapIdentityError(resp); err != nil {
		return models.SessionIdentity{}, "", err
	}

	return identityFromResponse(resp)
}

func (p *httpIdentityProvider) SignOut(ctx context.Context, token string) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("%w: logout request: %v", ErrIdentityUnavailable, err)
	}

	return mapIdentityError(resp)
}

func (p *httpIdentityProvider) UpdateProfile(ctx context.Context, token string, profile models.Profile) (models.SessionIdentity, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+token).
		SetBody(profile).
		Put("/api/auth/profile")
	if err != nil {
		return models.SessionIdentity{}, fmt.Errorf("%w: profile request: %v", ErrIdentityUnavailable, err)
	}
	if err = mapIdentityError(resp); err != nil {
		return models.SessionIdentity{}, err
	}

	identity, _, err := identityFromResponse(resp)
	return identity, err
}

// identityFromResponse extracts the bearer token from the Authorization
// response header and decodes the identity from the token's claims.
func identityFromResponse(resp *resty.Response) (models.SessionIdentity, string, error) {
	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.SessionIdentity{}, "", fmt.Errorf("parse bearer token: %w", err)
	}

	identity, err := identityFromJWT(token)
	if err != nil {
		return models.SessionIdentity{}, "", fmt.Errorf("parse identity claims: %w", err)
	}

	return identity, token, nil
}

func mapIdentityError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrInvalidCredential, body)
	case code == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrIdentityExists, body)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrIdentityUnavailable, code, body)
	default:
		return fmt.Errorf("http %d: %s", code, body)
	}
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// identityFromJWT reads subject, name and email claims without verifying the
// signature. Verification belongs to the backend; the client only needs the
// display attributes.
func identityFromJWT(tokenString string) (models.SessionIdentity, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return models.SessionIdentity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.SessionIdentity{}, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return models.SessionIdentity{}, errors.New("token is missing subject claim")
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return models.SessionIdentity{SubjectID: sub, DisplayName: name, Email: email}, nil
}
