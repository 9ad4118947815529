package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	portsrepo "github.com/SscSPs/mf_receipt_desk/internal/core/ports/repositories"
	goredis "github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every client state key.
const KeyPrefix = "mfdesk:state:"

// ClientStateRepository stores client state in Redis.
type ClientStateRepository struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewClientStateRepository wraps an existing client. ttl 0 keeps keys until deleted.
func NewClientStateRepository(client *goredis.Client, ttl time.Duration) *ClientStateRepository {
	return &ClientStateRepository{client: client, ttl: ttl}
}

// Ensure implementation matches interface
var _ portsrepo.ClientStateStore = (*ClientStateRepository)(nil)

// Connect opens a client and pings it.
func Connect(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func (r *ClientStateRepository) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, KeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to read client state %s: %w", key, err)
	}
	return v, nil
}

func (r *ClientStateRepository) Set(ctx context.Context, key string, value string) error {
	if err := r.client.Set(ctx, KeyPrefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write client state %s: %w", key, err)
	}
	return nil
}

func (r *ClientStateRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = KeyPrefix + k
	}
	if err := r.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to delete client state: %w", err)
	}
	return nil
}

// NewRepositoryProvider wires Redis as the client state backend.
func NewRepositoryProvider(client *goredis.Client, ttl time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{ClientState: NewClientStateRepository(client, ttl)}
}
