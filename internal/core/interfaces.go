package core

import (
	"context"

	"github.com/target/sortparam/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Services depend on these interfaces; the data layer provides the implementations.

// SortDefaultsRepository stores the default sort declarations of each call site.
//
// Get returns an AppError with ErrCodeNotFound when the site has no stored defaults.
// Delete reports whether anything was removed.
// List applies opts.ListSort and returns the total number of matches alongside the page.
type SortDefaultsRepository interface {
	Get(ctx context.Context, site string) (*model.SortDefaults, error)
	Put(ctx context.Context, defaults *model.SortDefaults) (*model.SortDefaults, error)
	Delete(ctx context.Context, site string) (bool, error)
	List(ctx context.Context, opts model.SortDefaultsListOptions) (*model.SortDefaultsPage, error)
}
