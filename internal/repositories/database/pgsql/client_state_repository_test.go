package pgsql

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live database only when PGSQL_TEST_URL is set. The schema
// is applied from the repository's migrations directory.
func newTestRepository(t *testing.T, ttl time.Duration) *PgxClientStateRepository {
	t.Helper()
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}

	_, err := database.RunMigrations(url, "file://../../../../migrations", slogDiscard())
	require.NoError(t, err)

	pool, err := database.NewPgxPool(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return newPgxClientStateRepository(pool, ttl)
}

func TestPgxClientStateRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, 0)
	key := uuid.NewString() + ":userData"

	_, err := repo.Get(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Set(ctx, key, `{"user":[]}`))
	require.NoError(t, repo.Set(ctx, key, `{"user":[{"FullName":"Jane"}]}`))
	v, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"user":[{"FullName":"Jane"}]}`, v)

	require.NoError(t, repo.Delete(ctx, key, key+"-missing"))
	_, err = repo.Get(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPgxClientStateRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, time.Minute)
	key := uuid.NewString() + ":sessionCookie"
	t.Cleanup(func() { _ = repo.Delete(ctx, key) })

	require.NoError(t, repo.Set(ctx, key, "sid=abc"))
	_, err := repo.Get(ctx, key)
	require.NoError(t, err)

	repo.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = repo.Get(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
