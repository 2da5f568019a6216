package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/target/sortparam/config"
	"github.com/target/sortparam/internal/core"
	"github.com/target/sortparam/internal/data"
	"github.com/target/sortparam/internal/service"
	"github.com/target/sortparam/internal/service/sortcodec"
)

type routerOpts struct {
	repo     core.SortDefaultsRepository
	fallback []string
	legacy   bool
}

func newTestRouter(t *testing.T, opts routerOpts) http.Handler {
	t.Helper()
	cfg := config.DefaultSortConfig()
	cfg.Fallback = opts.fallback
	cfg.LegacyFold = opts.legacy
	codec, err := sortcodec.NewCodec(cfg)
	require.NoError(t, err)

	services := RouterServices{
		SortParams: service.NewSortParamService(service.SortParamServiceOptions{Codec: codec, Defaults: opts.repo}),
	}
	if opts.repo != nil {
		services.SortDefaults = service.NewSortDefaultsService(service.SortDefaultsServiceOptions{
			Repo:  opts.repo,
			Codec: codec,
		})
	}
	return NewRouter(services)
}

func newFileRepo(t *testing.T) *data.FileSortDefaultsRepo {
	t.Helper()
	repo, err := data.NewFileSortDefaultsRepo(filepath.Join(t.TempDir(), "defaults.yaml"))
	require.NoError(t, err)
	return repo
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, target, &buf)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func doRaw(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, target, body)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}
