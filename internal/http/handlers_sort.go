package httpx

import (
	"net/http"

	"github.com/target/sortparam/internal/domain/model"
	"github.com/target/sortparam/internal/service"
)

// SortHandlers provides HTTP handlers that bind and fold sort parameters.
type SortHandlers struct {
	Params *service.SortParamService
	Apply  *service.SortApplyService
}

// SortResponse describes a resolved sort and how to write it back into a link.
type SortResponse struct {
	Parameter   string             `json:"parameter"`
	Source      service.SortSource `json:"source,omitempty"`
	Sorted      bool               `json:"sorted"`
	Sort        *model.Sort        `json:"sort"`
	Expressions []string           `json:"expressions"`
	Query       string             `json:"query"`
}

// FoldRequest is the body of POST /api/sort/fold.
// Legacy overrides the configured fold policy when set.
type FoldRequest struct {
	Sort      model.Sort `json:"sort"`
	Qualifier string     `json:"qualifier,omitempty"`
	Legacy    *bool      `json:"legacy,omitempty"`
}

// ApplyRequest is the body of POST /api/sort/apply.
// Expressions, when present, are parsed like request parameter values and win over Sort.
type ApplyRequest struct {
	Documents   []any       `json:"documents"`
	Sort        *model.Sort `json:"sort,omitempty"`
	Expressions []string    `json:"expressions,omitempty"`
}

// ApplyResponse is the body returned by POST /api/sort/apply.
type ApplyResponse struct {
	Sort      model.Sort `json:"sort"`
	Documents []any      `json:"documents"`
}

// Resolve handles GET /api/sort. The sort parameter name follows the qualifier query param,
// so ?qualifier=user&user_sort=name,desc resolves the "user" sort.
func (h *SortHandlers) Resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := h.Params.ParameterName(q.Get(QueryQualifier))
	req := SortRequestFromQuery(q, name)

	res, err := h.Params.Resolve(r.Context(), req)
	if err != nil {
		WriteAppError(w, err, "resolve_failed")
		return
	}

	legacy := parseBoolQuery(q, QueryLegacy, h.legacyDefault())
	resp, err := h.describe(res.Parameter, res.Sort, legacy)
	if err != nil {
		WriteAppError(w, err, "fold_failed")
		return
	}
	resp.Source = res.Source
	WriteJSON(w, http.StatusOK, resp)
}

// Fold handles POST /api/sort/fold.
func (h *SortHandlers) Fold(w http.ResponseWriter, r *http.Request) {
	var req FoldRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	legacy := h.legacyDefault()
	if req.Legacy != nil {
		legacy = *req.Legacy
	}

	resp, err := h.describe(h.Params.ParameterName(req.Qualifier), &req.Sort, legacy)
	if err != nil {
		WriteAppError(w, err, "fold_failed")
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// ApplySort handles POST /api/sort/apply.
func (h *SortHandlers) ApplySort(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sort := model.Unsorted()
	switch {
	case req.Expressions != nil:
		sort = h.Params.Codec().Parse(req.Expressions)
	case req.Sort != nil:
		sort = *req.Sort
	}

	docs := req.Documents
	if docs == nil {
		docs = []any{}
	}
	sorted, err := h.Apply.Apply(r.Context(), docs, sort)
	if err != nil {
		WriteAppError(w, err, "apply_failed")
		return
	}
	WriteJSON(w, http.StatusOK, ApplyResponse{Sort: sort, Documents: sorted})
}

func (h *SortHandlers) legacyDefault() bool {
	return h.Params.Codec().Config().LegacyFold
}

// describe folds sort under parameter. A nil sort means "no sort at all" and folds to nothing.
func (h *SortHandlers) describe(parameter string, sort *model.Sort, legacy bool) (*SortResponse, error) {
	resp := &SortResponse{Parameter: parameter, Sort: sort, Expressions: []string{}}
	if sort == nil {
		return resp, nil
	}

	expressions, err := h.Params.Expressions(*sort, legacy)
	if err != nil {
		return nil, err
	}
	resp.Sorted = sort.IsSorted()
	resp.Expressions = expressions
	resp.Query = AppendSortParams(nil, parameter, expressions).Encode()
	return resp, nil
}
