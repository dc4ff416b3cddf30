package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mlevitin/teamsync/internal/logger"
	"github.com/mlevitin/teamsync/models"
)

// identityKeySuffix is the reserved key under which the last-known session
// identity is persisted, namespaced by the same prefix as collections.
const identityKeySuffix = "current_user"

type localStore struct {
	db     *DB
	prefix string
	logger *logger.Logger
}

// NewLocalStore opens (and migrates) the SQLite cache database at dsn and
// returns a LocalStore whose keys are namespaced with prefix. Keys are
// `{prefix}{collectionName}` plus the reserved `{prefix}current_user` slot.
func NewLocalStore(ctx context.Context, dsn, prefix string, log *logger.Logger) (LocalStore, error) {
	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &localStore{db: db, prefix: prefix, logger: log}, nil
}

// NewLocalStoreWithDB wires a LocalStore over an already-open database
// handle. Used by tests that need to inject failures at the sql layer.
func NewLocalStoreWithDB(db *DB, prefix string, log *logger.Logger) LocalStore {
	return &localStore{db: db, prefix: prefix, logger: log}
}

func (l *localStore) Get(collection string) []models.Record {
	payload, ok := l.read(l.prefix + collection)
	if !ok {
		return nil
	}

	var records []models.Record
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		l.logger.Err(err).
			Str("func", "localStore.Get").
			Str("collection", collection).
			Msg("failed to decode cached collection, treating as absent")
		return nil
	}

	return records
}

func (l *localStore) Put(collection string, records []models.Record) {
	payload, err := json.Marshal(records)
	if err != nil {
		l.logger.Err(err).
			Str("func", "localStore.Put").
			Str("collection", collection).
			Msg("failed to encode collection, cache not updated")
		return
	}

	l.write(l.prefix+collection, string(payload))
}

func (l *localStore) Identity() (models.SessionIdentity, bool) {
	payload, ok := l.read(l.prefix + identityKeySuffix)
	if !ok {
		return models.SessionIdentity{}, false
	}

	var identity models.SessionIdentity
	if err := json.Unmarshal([]byte(payload), &identity); err != nil {
		l.logger.Err(err).
			Str("func", "localStore.Identity").
			Msg("failed to decode persisted identity, treating as absent")
		return models.SessionIdentity{}, false
	}

	return identity, true
}

func (l *localStore) SetIdentity(identity models.SessionIdentity) {
	payload, err := json.Marshal(identity)
	if err != nil {
		l.logger.Err(err).
			Str("func", "localStore.SetIdentity").
			Msg("failed to encode identity, cache not updated")
		return
	}

	l.write(l.prefix+identityKeySuffix, string(payload))
}

func (l *localStore) ClearIdentity() {
	query, args, err := sq.Delete("cache_entries").
		Where(sq.Eq{"key": l.prefix + identityKeySuffix}).
		ToSql()
	if err != nil {
		l.logger.Err(err).Str("func", "localStore.ClearIdentity").Msg("failed to build delete query")
		return
	}

	if _, err = l.db.ExecContext(context.Background(), query, args...); err != nil {
		l.logger.Err(err).Str("func", "localStore.ClearIdentity").Msg("failed to clear persisted identity")
	}
}

func (l *localStore) Close() error {
	return l.db.Close()
}

// read fetches one cache entry by key. Any failure is logged and reported as
// an absent entry so the caller can fall back to empty contents.
func (l *localStore) read(key string) (string, bool) {
	query, args, err := sq.Select("payload").
		From("cache_entries").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		l.logger.Err(err).Str("func", "localStore.read").Str("key", key).Msg("failed to build select query")
		return "", false
	}

	var payload string
	err = l.db.QueryRowContext(context.Background(), query, args...).Scan(&payload)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			l.logger.Err(err).Str("func", "localStore.read").Str("key", key).Msg("failed to read cache entry")
		}
		return "", false
	}

	return payload, true
}

func (l *localStore) write(key, payload string) {
	query, args, err := sq.Insert("cache_entries").
		Columns("key", "payload").
		Values(key, payload).
		Suffix("ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		l.logger.Err(err).Str("func", "localStore.write").Str("key", key).Msg("failed to build upsert query")
		return
	}

	if _, err = l.db.ExecContext(context.Background(), query, args...); err != nil {
		l.logger.Err(err).Str("func", "localStore.write").Str("key", key).Msg("failed to write cache entry")
	}
}
