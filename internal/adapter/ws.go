package adapter

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mlevitin/teamsync/internal/logger"
	"github.com/mlevitin/teamsync/models"
)

// watchEvent is one frame on the collection watch channel: the full current
// contents of the collection, pushed on attach and after every mutation.
type watchEvent struct {
	Records []models.Record `json:"records"`
}

type wsSubscription struct {
	conn   *websocket.Conn
	closed chan struct{}
	once   sync.Once
}

// Subscribe dials the backend's watch endpoint for the named collection and
// spawns a reader goroutine that forwards every snapshot frame to onChange.
// The first frame arrives immediately after attach. On transport failure
// onError fires exactly once and the subscription is dead; Unsubscribe is
// still safe to call on the dead handle.
func (h *httpRemoteStore) Subscribe(ctx context.Context, name string, onChange func([]models.Record), onError func(error)) (Subscription, error) {
	header := http.Header{}
	if token := h.Token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	endpoint := h.watchURL + "/api/collections/" + name + "/watch"
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("%w: watch %s: %v", ErrRemoteUnavailable, name, err)
	}

	sub := &wsSubscription{conn: conn, closed: make(chan struct{})}
	go sub.readLoop(name, onChange, onError, h.logger)

	return sub, nil
}

func (s *wsSubscription) readLoop(name string, onChange func([]models.Record), onError func(error), log *logger.Logger) {
	for {
		var event watchEvent
		if err := s.conn.ReadJSON(&event); err != nil {
			select {
			case <-s.closed:
				// Torn down by Unsubscribe, not a transport failure.
			default:
				log.Warn().Err(err).
					Str("collection", name).
					Msg("collection watch channel dropped")
				s.Unsubscribe()
				if onError != nil {
					onError(fmt.Errorf("%w: %v", ErrSubscriptionClosed, err))
				}
			}
			return
		}

		if onChange != nil {
			onChange(event.Records)
		}
	}
}

func (s *wsSubscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.closed)
		_ = s.conn.Close()
	})
}
