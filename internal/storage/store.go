// Package storage persists the engine's state as keyed JSON blobs, the
// durable-storage analog of the browser's per-key local storage. Writes are
// last-writer-wins: two processes sharing a backend can race on a key and
// the later write survives. Each envelope carries a write stamp so the race
// is observable, but nothing prevents it.
package storage

import (
	"context"
	"errors"
)

// Blob keys used by the engine.
const (
	KeyGameState         = "game_state"
	KeyGamificationState = "gamification_state"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store is the keyed blob persistence interface.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
