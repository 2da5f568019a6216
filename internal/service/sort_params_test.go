package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/sortparam/config"
	"github.com/target/sortparam/internal/domain/model"
	apperrors "github.com/target/sortparam/internal/errors"
	"github.com/target/sortparam/internal/mocks"
	"github.com/target/sortparam/internal/service/sortcodec"
)

func newTestCodec(t *testing.T, fallback ...string) *sortcodec.Codec {
	t.Helper()
	cfg := config.DefaultSortConfig()
	cfg.Fallback = fallback
	c, err := sortcodec.NewCodec(cfg)
	require.NoError(t, err)
	return c
}

func TestSortParamService_Resolve_FromRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSortDefaultsRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)

	svc := NewSortParamService(SortParamServiceOptions{Codec: newTestCodec(t), Defaults: repo})

	res, err := svc.Resolve(context.Background(), SortRequest{
		Site:      "users",
		Qualifier: "user",
		Values:    []string{"firstname,asc", "lastname,desc"},
		Present:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "user_sort", res.Parameter)
	assert.Equal(t, SortSourceRequest, res.Source)
	assert.Equal(t, []model.Order{model.Asc("firstname"), model.Desc("lastname")}, res.Sort.Orders())
}

func TestSortParamService_Resolve_PresentButOnlyDotsIsUnsorted(t *testing.T) {
	svc := NewSortParamService(SortParamServiceOptions{Codec: newTestCodec(t, "id,desc")})

	res, err := svc.Resolve(context.Background(), SortRequest{Values: []string{"..", "asc"}, Present: true})
	require.NoError(t, err)
	assert.Equal(t, SortSourceRequest, res.Source)
	assert.True(t, res.Sort.IsUnsorted())
}

func TestSortParamService_Resolve_FallsBackToDefaults(t *testing.T) {
	defaults := &model.SortDefaults{
		Site: "users",
		Multiple: []model.SortDefault{
			{Properties: []string{"a", "b"}, Direction: model.DirectionDesc},
			{Properties: []string{"c"}, Direction: model.DirectionAsc},
		},
	}

	tests := []struct {
		name string
		req  SortRequest
	}{
		{name: "parameter missing", req: SortRequest{Site: "users"}},
		{name: "single blank value", req: SortRequest{Site: "users", Values: []string{" "}, Present: true}},
		{name: "present without values", req: SortRequest{Site: "users", Present: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockSortDefaultsRepository(ctrl)
			repo.EXPECT().Get(gomock.Any(), "users").Return(defaults, nil)

			svc := NewSortParamService(SortParamServiceOptions{Codec: newTestCodec(t), Defaults: repo})
			res, err := svc.Resolve(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, SortSourceDefault, res.Source)
			assert.Equal(t,
				[]model.Order{model.Desc("a"), model.Desc("b"), model.Asc("c")},
				res.Sort.Orders())
		})
	}
}

func TestSortParamService_Resolve_MissingDefaultsUsesFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSortDefaultsRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "orders").Return(nil, apperrors.NotFound("sort defaults not found"))

	svc := NewSortParamService(SortParamServiceOptions{Codec: newTestCodec(t, "created_at,desc"), Defaults: repo})

	res, err := svc.Resolve(context.Background(), SortRequest{Site: "orders"})
	require.NoError(t, err)
	assert.Equal(t, SortSourceFallback, res.Source)
	assert.Equal(t, []model.Order{model.Desc("created_at")}, res.Sort.Orders())
}

func TestSortParamService_Resolve_NoSiteSkipsRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSortDefaultsRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)

	cfg := config.DefaultSortConfig()
	cfg.DisableFallback = true
	svc := NewSortParamService(SortParamServiceOptions{Codec: sortcodec.MustNewCodec(cfg), Defaults: repo})

	res, err := svc.Resolve(context.Background(), SortRequest{})
	require.NoError(t, err)
	assert.Equal(t, SortSourceFallback, res.Source)
	assert.Nil(t, res.Sort)
}

func TestSortParamService_Resolve_Errors(t *testing.T) {
	t.Run("ambiguous defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSortDefaultsRepository(ctrl)
		repo.EXPECT().Get(gomock.Any(), "users").Return(&model.SortDefaults{
			Site:     "users",
			Single:   &model.SortDefault{Properties: []string{"a"}, Direction: model.DirectionAsc},
			Multiple: []model.SortDefault{{Properties: []string{"b"}, Direction: model.DirectionAsc}},
		}, nil)

		svc := NewSortParamService(SortParamServiceOptions{Codec: newTestCodec(t), Defaults: repo})
		_, err := svc.Resolve(context.Background(), SortRequest{Site: "users"})
		require.Error(t, err)
		assert.True(t, apperrors.IsAmbiguousDefault(err))
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSortDefaultsRepository(ctrl)
		boom := errors.New("boom")
		repo.EXPECT().Get(gomock.Any(), "users").Return(nil, boom)

		svc := NewSortParamService(SortParamServiceOptions{Codec: newTestCodec(t), Defaults: repo})
		_, err := svc.Resolve(context.Background(), SortRequest{Site: "users"})
		require.ErrorIs(t, err, boom)
	})
}

func TestSortParamService_Expressions(t *testing.T) {
	svc := NewSortParamService(SortParamServiceOptions{Codec: newTestCodec(t)})
	mixed := model.SortOf(model.Asc("a"), model.Asc("b"), model.Desc("c"))

	got, err := svc.Expressions(mixed, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a,b,asc", "c,desc"}, got)

	_, err = svc.Expressions(mixed, true)
	assert.True(t, apperrors.IsUnsupportedDirectionMix(err))
}

func TestNewSortParamService_RequiresCodec(t *testing.T) {
	assert.Panics(t, func() { NewSortParamService(SortParamServiceOptions{}) })
}
