package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current persisted-blob shape version. Bump it
// whenever a snapshot struct changes shape, and register a Migration for
// the old version.
const SchemaVersion = 1

// ErrFutureSchema is returned when a blob was written by a newer build.
var ErrFutureSchema = fmt.Errorf("storage: blob schema is newer than this build (max %d)", SchemaVersion)

// Envelope wraps every persisted snapshot with versioning and a
// last-writer-wins stamp.
type Envelope struct {
	Version    int             `json:"version"`
	WriteStamp string          `json:"write_stamp"`
	SavedAt    time.Time       `json:"saved_at"`
	Data       json.RawMessage `json:"data"`
}

// Migration rewrites a snapshot payload from version v to v+1.
type Migration func(data json.RawMessage) (json.RawMessage, error)

var migrations = map[int]Migration{}

// RegisterMigration installs the step that lifts payloads from version v to
// v+1. Intended to be called from init when SchemaVersion is bumped.
func RegisterMigration(v int, m Migration) {
	migrations[v] = m
}

// SaveJSON serializes v into a current-version envelope and stores it.
func SaveJSON(ctx context.Context, store Store, key string, v any, now time.Time) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	env := Envelope{
		Version:    SchemaVersion,
		WriteStamp: uuid.New().String(),
		SavedAt:    now.UTC(),
		Data:       data,
	}
	blob, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope %s: %w", key, err)
	}
	return store.Set(ctx, key, blob)
}

// LoadJSON fetches the envelope at key, lifts it through any registered
// migrations and decodes the payload into dst. Returns ErrNotFound when the
// key has never been written and ErrFutureSchema when the blob is from a
// newer build.
func LoadJSON(ctx context.Context, store Store, key string, dst any) error {
	blob, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	var env Envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return fmt.Errorf("decode envelope %s: %w", key, err)
	}
	if env.Version > SchemaVersion {
		return ErrFutureSchema
	}
	data := env.Data
	for v := env.Version; v < SchemaVersion; v++ {
		m, ok := migrations[v]
		if !ok {
			return fmt.Errorf("storage: no migration from schema version %d for %s", v, key)
		}
		if data, err = m(data); err != nil {
			return fmt.Errorf("migrate %s from version %d: %w", key, v, err)
		}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
