package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	portsrepo "github.com/SscSPs/mf_receipt_desk/internal/core/ports/repositories"
)

// ClientStateRepository keeps client state in process memory.
type ClientStateRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewClientStateRepository creates an empty in-memory store.
func NewClientStateRepository() *ClientStateRepository {
	return &ClientStateRepository{values: make(map[string]string)}
}

// Ensure implementation matches interface
var _ portsrepo.ClientStateStore = (*ClientStateRepository)(nil)

func (r *ClientStateRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (r *ClientStateRepository) Set(_ context.Context, key string, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *ClientStateRepository) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

// NewRepositoryProvider wires the in-memory store as the client state backend.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{ClientState: NewClientStateRepository()}
}
