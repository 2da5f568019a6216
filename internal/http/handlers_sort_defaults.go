package httpx

import (
	"net/http"
	"strings"

	"github.com/target/sortparam/internal/domain/model"
	"github.com/target/sortparam/internal/service"
)

// SortDefaultsHandlers provides HTTP handlers for per-site default sort declarations.
type SortDefaultsHandlers struct {
	Svc *service.SortDefaultsService
	// Params parses the listing's own sort parameter.
	Params *service.SortParamService
}

// QueryFilter is the substring filter on site names for GET /api/sort-defaults.
const QueryFilter = "q"

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// SortDefaultsListResponse is the body of GET /api/sort-defaults.
type SortDefaultsListResponse struct {
	Defaults []*model.SortDefaults `json:"defaults"`
	Total    int                   `json:"total"`
	Limit    int                   `json:"limit"`
	Offset   int                   `json:"offset"`
	Sort     model.Sort            `json:"sort"`
}

// List handles GET /api/sort-defaults?q=&limit=&offset=&sort=updated,desc.
// Sortable properties are site and updated; the listing falls back to site ascending.
func (h *SortDefaultsHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset := ParseLimitOffset(q, defaultListLimit, maxListLimit)
	opts := model.SortDefaultsListOptions{Limit: limit, Offset: offset}
	if filter := strings.TrimSpace(q.Get(QueryFilter)); filter != "" {
		opts.Q = &filter
	}
	if h.Params != nil {
		opts.Sort = h.Params.Codec().Parse(q[h.Params.ParameterName("")])
	}

	page, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err, "list_failed")
		return
	}
	WriteJSON(w, http.StatusOK, SortDefaultsListResponse{
		Defaults: page.Items,
		Total:    page.Total,
		Limit:    limit,
		Offset:   offset,
		Sort:     opts.ListSort(),
	})
}

// Get handles GET /api/sort-defaults/{site}.
func (h *SortDefaultsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	defaults, err := h.Svc.Get(r.Context(), r.PathValue("site"))
	if err != nil {
		WriteAppError(w, err, "get_failed")
		return
	}
	WriteJSON(w, http.StatusOK, defaults)
}

// Put handles PUT /api/sort-defaults/{site}. The path names the site.
func (h *SortDefaultsHandlers) Put(w http.ResponseWriter, r *http.Request) {
	var req model.PutSortDefaultsRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Site = r.PathValue("site")

	saved, err := h.Svc.Put(r.Context(), req)
	if err != nil {
		WriteAppError(w, err, "put_failed")
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}

// Delete handles DELETE /api/sort-defaults/{site}.
func (h *SortDefaultsHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Svc.Delete(r.Context(), r.PathValue("site"))
	if err != nil {
		WriteAppError(w, err, "delete_failed")
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errNoSortDefaults,
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Resolve handles GET /api/sort-defaults/{site}/resolved: the sort the site's
// declarations produce when a request carries no sort parameter.
func (h *SortDefaultsHandlers) Resolve(w http.ResponseWriter, r *http.Request) {
	site := r.PathValue("site")
	sort, err := h.Svc.Resolve(r.Context(), site)
	if err != nil {
		WriteAppError(w, err, "resolve_failed")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"site":   site,
		"sorted": sort != nil && sort.IsSorted(),
		"sort":   sort,
	})
}
