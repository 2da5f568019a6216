// Package mocks provides gomock implementations of the core ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockSortDefaultsRepository(ctrl)
//	repo.EXPECT().Get(gomock.Any(), "users").Return(defaults, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=sort_defaults_repository_mock.go github.com/target/sortparam/internal/core SortDefaultsRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/target/sortparam/internal/core CacheRepository
