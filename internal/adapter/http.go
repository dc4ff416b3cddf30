package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mlevitin/teamsync/internal/logger"
	"github.com/mlevitin/teamsync/models"
)

// unknownActor is stamped into modifiedBy when no identity is installed.
const unknownActor = "unknown"

// HTTPConfig configures the HTTP/websocket remote store client.
type HTTPConfig struct {
	// BaseURL is the backend's HTTP root, e.g. "https://api.example.com".
	BaseURL string
	// WatchURL is the websocket root for collection subscriptions. When
	// empty it is derived from BaseURL by swapping the scheme to ws/wss.
	WatchURL string
	// Timeout bounds every single HTTP request.
	Timeout time.Duration
	// BatchLimit is the backend's write-batch limit. Commits larger than
	// this are rejected client-side with ErrBatchTooLarge before any bytes
	// hit the wire.
	BatchLimit int
}

type httpRemoteStore struct {
	client     *resty.Client
	watchURL   string
	batchLimit int
	logger     *logger.Logger

	mu    sync.RWMutex
	token string
	actor string
}

// NewHTTPRemoteStore builds the RemoteStore client for the backend at
// cfg.BaseURL.
func NewHTTPRemoteStore(cfg HTTPConfig, log *logger.Logger) RemoteStore {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = 500
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	watch := strings.TrimRight(cfg.WatchURL, "/")
	if watch == "" {
		watch = deriveWatchURL(base)
	}

	cli := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout)

	return &httpRemoteStore{
		client:     cli,
		watchURL:   watch,
		batchLimit: cfg.BatchLimit,
		logger:     log,
		actor:      unknownActor,
	}
}

func (h *httpRemoteStore) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpRemoteStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpRemoteStore) SetActor(subject string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subject = strings.TrimSpace(subject); subject == "" {
		subject = unknownActor
	}
	h.actor = subject
}

func (h *httpRemoteStore) currentActor() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.actor
}

func (h *httpRemoteStore) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return fmt.Errorf("%w: health request: %v", ErrRemoteUnavailable, err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteStore) FetchCollection(ctx context.Context, name string) ([]models.Record, error) {
	resp, err := h.authedRequest(ctx).Get("/api/collections/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrRemoteUnavailable, name, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var records []models.Record
	if err = json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", name, err)
	}

	return records, nil
}

// commitRequest is the wire shape of a batch commit. The backend deletes
// the collection's existing records and writes Records in one atomic batch,
// assigning lastModified itself.
type commitRequest struct {
	Records    []models.Record `json:"records"`
	ModifiedBy string          `json:"modified_by"`
}

func (h *httpRemoteStore) CommitBatch(ctx context.Context, name string, records []models.Record) error {
	// Delete-then-rewrite counts both phases against the backend's batch
	// limit, so the effective record ceiling is half the configured limit.
	if len(records) > h.batchLimit/2 {
		return fmt.Errorf("%w: %d records, limit %d", ErrBatchTooLarge, len(records), h.batchLimit/2)
	}

	body := commitRequest{Records: records, ModifiedBy: h.currentActor()}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Put("/api/collections/" + name)
	if err != nil {
		return fmt.Errorf("%w: commit %s: %v", ErrRemoteUnavailable, name, err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	switch {
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case code == http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w: %s", ErrBatchTooLarge, body)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrRemoteUnavailable, code, body)
	default:
		return fmt.Errorf("http %d: %s", code, body)
	}
}

// deriveWatchURL rewrites an HTTP base URL into its websocket counterpart.
func deriveWatchURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	default:
		return base
	}
}
