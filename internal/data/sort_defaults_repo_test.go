package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/sortparam/internal/domain/model"
	apperrors "github.com/target/sortparam/internal/errors"
	"github.com/target/sortparam/internal/testutil"
)

func TestSortDefaultsRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := testutil.SetupTestDB(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := NewSortDefaultsRepoWithTimeProvider(db, NewFixedTimeProvider(now))
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		_, err := repo.Get(ctx, "missing")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("put and get single", func(t *testing.T) {
		saved, err := repo.Put(ctx, usersDefaults())
		require.NoError(t, err)
		assert.True(t, saved.UpdatedAt.Equal(now))
		assert.Nil(t, saved.Multiple)

		got, err := repo.Get(ctx, "users")
		require.NoError(t, err)
		assert.Equal(t, []string{"lastname"}, got.Single.Properties)
		assert.False(t, got.HasMultiple())
	})

	t.Run("put replaces and keeps empty collection", func(t *testing.T) {
		_, err := repo.Put(ctx, &model.SortDefaults{Site: "users", Multiple: []model.SortDefault{}})
		require.NoError(t, err)

		got, err := repo.Get(ctx, "users")
		require.NoError(t, err)
		assert.Nil(t, got.Single)
		assert.True(t, got.HasMultiple())
		assert.Empty(t, got.Multiple)
	})

	t.Run("list ordered by site", func(t *testing.T) {
		_, err := repo.Put(ctx, &model.SortDefaults{
			Site:   "accounts",
			Single: &model.SortDefault{Properties: []string{"id"}, Direction: model.DirectionDesc},
		})
		require.NoError(t, err)

		page, err := repo.List(ctx, model.SortDefaultsListOptions{})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "accounts", page.Items[0].Site)
		assert.Equal(t, "users", page.Items[1].Site)
	})

	t.Run("list sorted, filtered and paged", func(t *testing.T) {
		page, err := repo.List(ctx, model.SortDefaultsListOptions{
			Sort:  model.SortOf(model.Desc("site")),
			Limit: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "users", page.Items[0].Site)

		page, err = repo.List(ctx, model.SortDefaultsListOptions{
			Sort:   model.SortOf(model.Desc("site")),
			Limit:  1,
			Offset: 1,
		})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "accounts", page.Items[0].Site)

		q := "ACC"
		page, err = repo.List(ctx, model.SortDefaultsListOptions{Q: &q})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "accounts", page.Items[0].Site)
	})

	t.Run("delete", func(t *testing.T) {
		ok, err := repo.Delete(ctx, "accounts")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Delete(ctx, "accounts")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
