package repositories

import "context"

// ClientStateReader defines read operations for persisted client state.
type ClientStateReader interface {
	// Get returns the value stored under key, or apperrors.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
}

// ClientStateWriter defines write operations for persisted client state.
// Writes are last-writer-wins; there is no locking across keys.
type ClientStateWriter interface {
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes the keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// ClientStateStore combines all client-state interfaces.
type ClientStateStore interface {
	ClientStateReader
	ClientStateWriter
}
