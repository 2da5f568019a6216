package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/target/sortparam/internal/core"
	"github.com/target/sortparam/internal/data/database"
	"github.com/target/sortparam/internal/data/pgxutil"
	"github.com/target/sortparam/internal/domain/model"
	apperrors "github.com/target/sortparam/internal/errors"
)

var _ core.SortDefaultsRepository = (*SortDefaultsRepo)(nil)

const (
	sortDefaultsTable = "sort_defaults"

	sortDefaultsGetQuery = `
		SELECT site, single, multiple, updated_at
		FROM sort_defaults WHERE site = $1`

	sortDefaultsUpsertQuery = `
		INSERT INTO sort_defaults (site, single, multiple, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (site) DO UPDATE
		SET single = EXCLUDED.single, multiple = EXCLUDED.multiple, updated_at = EXCLUDED.updated_at
		RETURNING site, single, multiple, updated_at`

	sortDefaultsDeleteQuery = `DELETE FROM sort_defaults WHERE site = $1`
)

// sortDefaultsRow mirrors a sort_defaults row; JSONB columns stay raw until decoded.
type sortDefaultsRow struct {
	Site      string    `db:"site"`
	Single    []byte    `db:"single"`
	Multiple  []byte    `db:"multiple"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row sortDefaultsRow) toModel() (*model.SortDefaults, error) {
	out := &model.SortDefaults{Site: row.Site, UpdatedAt: row.UpdatedAt}
	if row.Single != nil {
		out.Single = &model.SortDefault{}
		if err := json.Unmarshal(row.Single, out.Single); err != nil {
			return nil, fmt.Errorf("decode single default for %s: %w", row.Site, err)
		}
	}
	if row.Multiple != nil {
		if err := json.Unmarshal(row.Multiple, &out.Multiple); err != nil {
			return nil, fmt.Errorf("decode multiple defaults for %s: %w", row.Site, err)
		}
	}
	return out, nil
}

// SortDefaultsRepo stores per-site sort defaults in PostgreSQL.
type SortDefaultsRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSortDefaultsRepo creates a new SortDefaultsRepo with the real clock.
func NewSortDefaultsRepo(db *sql.DB) *SortDefaultsRepo {
	return &SortDefaultsRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSortDefaultsRepoWithTimeProvider creates a SortDefaultsRepo with a custom clock (useful for tests).
func NewSortDefaultsRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SortDefaultsRepo {
	return &SortDefaultsRepo{DB: db, timeProvider: tp}
}

// Get retrieves the defaults of site.
func (r *SortDefaultsRepo) Get(ctx context.Context, site string) (*model.SortDefaults, error) {
	var row sortDefaultsRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, sortDefaultsGetQuery, site)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[sortDefaultsRow])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("no sort defaults for site %q", site)
		}
		return nil, fmt.Errorf("get sort defaults: %w", apperrors.MapDBError(err))
	}
	return row.toModel()
}

// Put inserts or replaces the defaults of a site.
func (r *SortDefaultsRepo) Put(ctx context.Context, defaults *model.SortDefaults) (*model.SortDefaults, error) {
	if defaults == nil || defaults.Site == "" {
		return nil, apperrors.ValidationField("site", "site is required")
	}

	single, err := jsonbArg(defaults.Single != nil, defaults.Single)
	if err != nil {
		return nil, err
	}
	multiple, err := jsonbArg(defaults.Multiple != nil, defaults.Multiple)
	if err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var row sortDefaultsRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, sortDefaultsUpsertQuery, defaults.Site, single, multiple, now)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		row, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[sortDefaultsRow])
		return qErr
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return row.toModel()
}

// Delete removes the defaults of site.
func (r *SortDefaultsRepo) Delete(ctx context.Context, site string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, sortDefaultsDeleteQuery, site)
	if err != nil {
		return false, fmt.Errorf("delete sort defaults: %w", apperrors.MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete sort defaults: %w", err)
	}
	return n > 0, nil
}

// sortDefaultsSortColumns maps listing sort properties to columns.
var sortDefaultsSortColumns = map[string]string{
	model.SortDefaultsBySite:    "site",
	model.SortDefaultsByUpdated: "updated_at",
}

// List returns one page of stored defaults and the number of matching sites.
func (r *SortDefaultsRepo) List(ctx context.Context, opts model.SortDefaultsListOptions) (*model.SortDefaultsPage, error) {
	countQuery, countArgs := database.BuildListQuery(database.NewListQueryOptions(sortDefaultsTable,
		append(sortDefaultsFilters(opts), database.WithCountOnly())...))
	query, args := database.BuildListQuery(r.buildListQueryOptions(opts))

	var (
		total   int
		rowsOut []sortDefaultsRow
	)
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		if err := conn.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return err
		}
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[sortDefaultsRow])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list sort defaults: %w", apperrors.MapDBError(err))
	}

	page := &model.SortDefaultsPage{Items: make([]*model.SortDefaults, 0, len(rowsOut)), Total: total}
	for _, row := range rowsOut {
		d, err := row.toModel()
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, d)
	}
	return page, nil
}

func (r *SortDefaultsRepo) buildListQueryOptions(opts model.SortDefaultsListOptions) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns("site", "single", "multiple", "updated_at"),
		database.WithSort(opts.ListSort()),
		database.WithSortColumns(sortDefaultsSortColumns),
	}
	queryOpts = append(queryOpts, sortDefaultsFilters(opts)...)
	if opts.Limit > 0 {
		queryOpts = append(queryOpts, database.WithLimit(opts.Limit))
	}
	if opts.Offset > 0 {
		queryOpts = append(queryOpts, database.WithOffset(opts.Offset))
	}
	return database.NewListQueryOptions(sortDefaultsTable, queryOpts...)
}

// sortDefaultsFilters returns a fresh slice on every call so callers may append to it.
func sortDefaultsFilters(opts model.SortDefaultsListOptions) []database.ListQueryOption {
	var filters []database.ListQueryOption
	if q := opts.Query(); q != "" {
		filters = append(filters, database.WithCondition(database.WhereCond("site", database.ILike, "%"+q+"%")))
	}
	return filters
}

// jsonbArg encodes v for a JSONB parameter, or SQL NULL when set is false.
func jsonbArg(set bool, v any) (any, error) {
	if !set {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode sort defaults: %w", err)
	}
	return string(b), nil
}
