package httpx

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortRequestFromQuery(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		param       string
		wantValues  []string
		wantPresent bool
	}{
		{name: "missing", query: "site=users", param: "sort", wantPresent: false},
		{name: "blank", query: "sort=", param: "sort", wantValues: []string{""}, wantPresent: true},
		{
			name:        "repeated",
			query:       "sort=a,asc&sort=b,desc",
			param:       "sort",
			wantValues:  []string{"a,asc", "b,desc"},
			wantPresent: true,
		},
		{name: "qualified", query: "user_sort=name&sort=x", param: "user_sort", wantValues: []string{"name"}, wantPresent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			req := SortRequestFromQuery(q, tt.param)
			assert.Equal(t, tt.wantPresent, req.Present)
			assert.Equal(t, tt.wantValues, req.Values)
		})
	}
}

func TestSortRequestFromQuery_SiteAndQualifier(t *testing.T) {
	q := url.Values{"site": {" users "}, "qualifier": {"user"}}
	req := SortRequestFromQuery(q, "user_sort")
	assert.Equal(t, "users", req.Site)
	assert.Equal(t, "user", req.Qualifier)
}

func TestAppendSortParams(t *testing.T) {
	q := url.Values{"page": {"2"}, "sort": {"stale"}}
	q = AppendSortParams(q, "sort", []string{"a,b,asc", "c,desc"})
	assert.Equal(t, []string{"a,b,asc", "c,desc"}, q["sort"])
	assert.Equal(t, "2", q.Get("page"))

	q = AppendSortParams(q, "sort", nil)
	_, ok := q["sort"]
	assert.False(t, ok)

	assert.Equal(t, "s=x%2Casc", AppendSortParams(nil, "s", []string{"x,asc"}).Encode())
}

func TestParseBoolQuery(t *testing.T) {
	q := url.Values{"a": {"true"}, "b": {"0"}, "c": {"maybe"}}
	assert.True(t, parseBoolQuery(q, "a", false))
	assert.False(t, parseBoolQuery(q, "b", true))
	assert.True(t, parseBoolQuery(q, "c", true))
	assert.False(t, parseBoolQuery(q, "missing", false))
}
