package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/sortparam/internal/testutil"
)

func TestRedisCacheRepo_Set_Get_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	defer client.Close()

	repo := NewRedisCacheRepo(client)
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		key := "test:key:1"
		value := []byte("test value")
		ttl := 5 * time.Minute

		require.NoError(t, repo.Set(ctx, key, value, ttl))

		result, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, value, result)

		actualTTL := client.TTL(ctx, key).Val()
		assert.True(t, actualTTL > 0 && actualTTL <= ttl)
	})

	t.Run("get non-existent key", func(t *testing.T) {
		result, err := repo.Get(ctx, "non:existent:key")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "test:key:2", []byte("x"), time.Minute))

		deleted, err := repo.Delete(ctx, "test:key:2")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, "test:key:2")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("empty key", func(t *testing.T) {
		assert.Error(t, repo.Set(ctx, "", nil, 0))
		_, err := repo.Get(ctx, "")
		assert.Error(t, err)
	})

	t.Run("health", func(t *testing.T) {
		assert.NoError(t, repo.Health(ctx))
	})
}

func TestCachedSortDefaultsRepo_Redis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	defer client.Close()

	path := t.TempDir() + "/defaults.yaml"
	files, err := NewFileSortDefaultsRepo(path)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = files.Put(ctx, usersDefaults())
	require.NoError(t, err)

	cached := NewCachedSortDefaultsRepo(CachedSortDefaultsRepoOptions{
		Repo:   files,
		Cache:  NewRedisCacheRepo(client),
		Config: CachedSortDefaultsConfig{TTL: time.Minute},
	})

	got, err := cached.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []string{"lastname"}, got.Single.Properties)
	assert.Equal(t, int64(1), client.Exists(ctx, sortDefaultsCacheKey("users")).Val())
}
