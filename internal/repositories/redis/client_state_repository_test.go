package redis

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, ttl time.Duration) (*ClientStateRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewClientStateRepository(client, ttl), mr
}

func TestClientStateRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepository(t, 0)
	key := "cashier1:userName"

	_, err := repo.Get(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Set(ctx, key, "Jane Cashier"))
	v, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Jane Cashier", v)

	raw, err := mr.Get(KeyPrefix + key)
	require.NoError(t, err)
	assert.Equal(t, "Jane Cashier", raw, "keys are stored under the prefix")
	assert.False(t, mr.Exists(key))

	require.NoError(t, repo.Set(ctx, key, "Jane R. Cashier"))
	v, err = repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Jane R. Cashier", v, "last writer wins")

	require.NoError(t, repo.Delete(ctx, key))
	_, err = repo.Get(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClientStateRepository_DeleteMany(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepository(t, 0)
	for _, k := range []string{"cashier1:userData", "cashier1:userName", "cashier2:userName"} {
		require.NoError(t, repo.Set(ctx, k, "v"))
	}

	require.NoError(t, repo.Delete(ctx, "cashier1:userData", "cashier1:userName", "cashier1:missing"))

	assert.False(t, mr.Exists(KeyPrefix+"cashier1:userData"))
	assert.False(t, mr.Exists(KeyPrefix+"cashier1:userName"))
	assert.True(t, mr.Exists(KeyPrefix+"cashier2:userName"), "other cashiers are untouched")
}

func TestClientStateRepository_TTL(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepository(t, time.Minute)
	key := "cashier1:sessionCookie"

	require.NoError(t, repo.Set(ctx, key, "sid=abc"))
	assert.Equal(t, time.Minute, mr.TTL(KeyPrefix+key))

	mr.FastForward(2 * time.Minute)
	_, err := repo.Get(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClientStateRepository_NoTTL(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepository(t, 0)
	key := "cashier1:userData"

	require.NoError(t, repo.Set(ctx, key, "{}"))
	assert.Equal(t, time.Duration(0), mr.TTL(KeyPrefix+key))

	mr.FastForward(24 * time.Hour)
	_, err := repo.Get(ctx, key)
	assert.NoError(t, err)
}

func TestClientStateRepository_ServerDown(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepository(t, 0)
	mr.Close()

	_, err := repo.Get(ctx, "cashier1:userName")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.Error(t, repo.Set(ctx, "cashier1:userName", "x"))
	assert.Error(t, repo.Delete(ctx, "cashier1:userName"))
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), addr, "", 0)
	assert.Error(t, err)
}

func TestClientStateRepository_DeleteNothing(t *testing.T) {
	repo := NewClientStateRepository(nil, 0)
	assert.NoError(t, repo.Delete(context.Background()))
}
