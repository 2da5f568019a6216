package httpx

import (
	"net/url"
	"strings"

	"github.com/target/sortparam/internal/service"
)

const (
	// QuerySite names the call site whose stored defaults apply.
	QuerySite = "site"
	// QueryQualifier distinguishes several sort parameters on one request.
	QueryQualifier = "qualifier"
	// QueryLegacy selects the single-direction fold.
	QueryLegacy = "legacy"
)

// SortRequestFromQuery reads the sort parameter called name from q.
// Present reports whether the parameter occurred at all, even with no value.
func SortRequestFromQuery(q url.Values, name string) service.SortRequest {
	values, ok := q[name]
	return service.SortRequest{
		Site:      strings.TrimSpace(q.Get(QuerySite)),
		Qualifier: strings.TrimSpace(q.Get(QueryQualifier)),
		Values:    values,
		Present:   ok,
	}
}

// AppendSortParams replaces the parameter called name in q with one value per expression.
// A nil q is allocated. An empty expression list removes the parameter.
func AppendSortParams(q url.Values, name string, expressions []string) url.Values {
	if q == nil {
		q = url.Values{}
	}
	q.Del(name)
	for _, e := range expressions {
		q.Add(name, e)
	}
	return q
}
