package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	portsrepo "github.com/SscSPs/mf_receipt_desk/internal/core/ports/repositories"
	"github.com/SscSPs/mf_receipt_desk/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientStateRepository struct {
	BaseRepository
	ttl time.Duration
	now func() time.Time
}

// newPgxClientStateRepository creates a new repository for client state. ttl 0 never expires rows.
func newPgxClientStateRepository(pool *pgxpool.Pool, ttl time.Duration) *PgxClientStateRepository {
	return &PgxClientStateRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ttl:            ttl,
		now:            time.Now,
	}
}

// Ensure implementation matches interface
var _ portsrepo.ClientStateStore = (*PgxClientStateRepository)(nil)

// Get returns the value under key. Expired rows read as missing.
func (r *PgxClientStateRepository) Get(ctx context.Context, key string) (string, error) {
	query := `
		SELECT state_key, state_value, expires_at, created_at, last_updated_at
		FROM client_state
		WHERE state_key = $1;
	`
	var row models.ClientState
	err := r.Pool.QueryRow(ctx, query, key).Scan(
		&row.Key,
		&row.Value,
		&row.ExpiresAt,
		&row.CreatedAt,
		&row.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to find client state %s: %w", key, err)
	}
	if row.Expired(r.now()) {
		return "", apperrors.ErrNotFound
	}
	return row.Value, nil
}

// Set upserts the value under key.
func (r *PgxClientStateRepository) Set(ctx context.Context, key string, value string) error {
	now := r.now().UTC()
	var expiresAt sql.NullTime
	if r.ttl > 0 {
		expiresAt = sql.NullTime{Time: now.Add(r.ttl), Valid: true}
	}

	query := `
		INSERT INTO client_state (state_key, state_value, expires_at, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (state_key) DO UPDATE SET
			state_value = EXCLUDED.state_value,
			expires_at = EXCLUDED.expires_at,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, key, value, expiresAt, now); err != nil {
		return fmt.Errorf("failed to save client state %s: %w", key, err)
	}
	return nil
}

// Delete removes the keys in one transaction.
func (r *PgxClientStateRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM client_state WHERE state_key = ANY($1);`, keys); err != nil {
		return fmt.Errorf("failed to delete client state: %w", err)
	}
	return r.Commit(ctx, tx)
}
