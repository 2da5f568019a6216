package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/sortparam/internal/domain/model"
	apperrors "github.com/target/sortparam/internal/errors"
)

const sampleDefaultsYAML = `
sites:
  users:
    single:
      properties: [lastname, " firstname "]
      direction: DESC
  orders:
    multiple:
      - properties: [created_at]
        direction: desc
      - properties: [id]
`

func writeDefaultsFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sort-defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFileSortDefaultsRepo_Load(t *testing.T) {
	repo, err := NewFileSortDefaultsRepo(writeDefaultsFile(t, sampleDefaultsYAML))
	require.NoError(t, err)
	ctx := context.Background()

	users, err := repo.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, "users", users.Site)
	assert.Equal(t, []string{"lastname", "firstname"}, users.Single.Properties)
	assert.Equal(t, model.DirectionDesc, users.Single.Direction)

	orders, err := repo.Get(ctx, "orders")
	require.NoError(t, err)
	require.Len(t, orders.Multiple, 2)
	assert.Equal(t, model.DirectionAsc, orders.Multiple[1].Direction)

	page, err := repo.List(ctx, model.SortDefaultsListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "orders", page.Items[0].Site)

	_, err = repo.Get(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFileSortDefaultsRepo_MissingFileStartsEmpty(t *testing.T) {
	repo, err := NewFileSortDefaultsRepo(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	page, err := repo.List(context.Background(), model.SortDefaultsListOptions{Limit: 10, Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
}

func TestFileSortDefaultsRepo_InvalidFile(t *testing.T) {
	_, err := NewFileSortDefaultsRepo(writeDefaultsFile(t, "sites: [oops"))
	assert.Error(t, err)

	_, err = NewFileSortDefaultsRepo(writeDefaultsFile(t, "sites:\n  users:\n    single: {properties: [a], direction: sideways}\n"))
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestFileSortDefaultsRepo_PutAndDeletePersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "defaults.yaml")
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo, err := NewFileSortDefaultsRepoWithTimeProvider(path, NewFixedTimeProvider(now))
	require.NoError(t, err)
	ctx := context.Background()

	saved, err := repo.Put(ctx, &model.SortDefaults{
		Site:     "events",
		Multiple: []model.SortDefault{{Properties: []string{"ts"}, Direction: model.DirectionDesc}},
	})
	require.NoError(t, err)
	assert.Equal(t, now, saved.UpdatedAt)

	reloaded, err := NewFileSortDefaultsRepo(path)
	require.NoError(t, err)
	got, err := reloaded.Get(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, []string{"ts"}, got.Multiple[0].Properties)
	assert.Equal(t, model.DirectionDesc, got.Multiple[0].Direction)

	ok, err := repo.Delete(ctx, "events")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Delete(ctx, "events")
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded, err = NewFileSortDefaultsRepo(path)
	require.NoError(t, err)
	_, err = reloaded.Get(ctx, "events")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = repo.Put(ctx, &model.SortDefaults{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestFileSortDefaultsRepo_EmptyCollectionSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	repo, err := NewFileSortDefaultsRepo(path)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = repo.Put(ctx, &model.SortDefaults{Site: "unordered", Multiple: []model.SortDefault{}})
	require.NoError(t, err)
	_, err = repo.Put(ctx, &model.SortDefaults{
		Site:   "users",
		Single: &model.SortDefault{Properties: []string{"name"}, Direction: model.DirectionAsc},
	})
	require.NoError(t, err)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "multiple: []")

	reloaded, err := NewFileSortDefaultsRepo(path)
	require.NoError(t, err)

	unordered, err := reloaded.Get(ctx, "unordered")
	require.NoError(t, err)
	assert.True(t, unordered.HasMultiple())
	assert.False(t, unordered.IsEmpty())
	assert.Empty(t, unordered.Multiple)

	users, err := reloaded.Get(ctx, "users")
	require.NoError(t, err)
	assert.True(t, users.HasSingle())
	assert.False(t, users.HasMultiple())
}

func TestFileSortDefaultsRepo_LoadEmptyCollection(t *testing.T) {
	repo, err := NewFileSortDefaultsRepo(writeDefaultsFile(t, "sites:\n  unordered:\n    multiple: []\n  bare:\n"))
	require.NoError(t, err)
	ctx := context.Background()

	unordered, err := repo.Get(ctx, "unordered")
	require.NoError(t, err)
	assert.True(t, unordered.HasMultiple())

	bare, err := repo.Get(ctx, "bare")
	require.NoError(t, err)
	assert.True(t, bare.IsEmpty())
}

func TestFileSortDefaultsRepo_ListSortFilterPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	for i, site := range []string{"users", "accounts", "user_groups"} {
		writer, err := NewFileSortDefaultsRepoWithTimeProvider(path, NewFixedTimeProvider(clock.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
		_, err = writer.Put(ctx, &model.SortDefaults{Site: site, Multiple: []model.SortDefault{}})
		require.NoError(t, err)
	}
	repo, err := NewFileSortDefaultsRepo(path)
	require.NoError(t, err)

	accounts, err := repo.Get(ctx, "accounts")
	require.NoError(t, err)
	assert.True(t, accounts.UpdatedAt.Equal(clock.Add(time.Hour)))

	siteNames := func(page *model.SortDefaultsPage) []string {
		names := make([]string, 0, len(page.Items))
		for _, d := range page.Items {
			names = append(names, d.Site)
		}
		return names
	}

	tests := []struct {
		name      string
		opts      model.SortDefaultsListOptions
		wantSites []string
		wantTotal int
	}{
		{
			name:      "site ascending by default",
			wantSites: []string{"accounts", "user_groups", "users"},
			wantTotal: 3,
		},
		{
			name:      "updated descending",
			opts:      model.SortDefaultsListOptions{Sort: model.SortOf(model.Desc("updated"))},
			wantSites: []string{"user_groups", "accounts", "users"},
			wantTotal: 3,
		},
		{
			name:      "unknown property falls back to site",
			opts:      model.SortDefaultsListOptions{Sort: model.SortOf(model.Desc("password"))},
			wantSites: []string{"accounts", "user_groups", "users"},
			wantTotal: 3,
		},
		{
			name:      "paged",
			opts:      model.SortDefaultsListOptions{Sort: model.SortOf(model.Desc("site")), Limit: 2, Offset: 1},
			wantSites: []string{"user_groups", "accounts"},
			wantTotal: 3,
		},
		{
			name:      "offset past the end",
			opts:      model.SortDefaultsListOptions{Offset: 10},
			wantSites: []string{},
			wantTotal: 3,
		},
		{
			name:      "filtered",
			opts:      model.SortDefaultsListOptions{Q: lo.ToPtr(" USER ")},
			wantSites: []string{"user_groups", "users"},
			wantTotal: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.List(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Equal(t, tt.wantSites, siteNames(page))
		})
	}
}
