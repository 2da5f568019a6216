package sortcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/target/sortparam/internal/domain/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []model.Order
	}{
		{name: "no values", values: nil, want: nil},
		{name: "single blank value", values: []string{""}, want: nil},
		{
			name:   "properties sharing a direction",
			values: []string{"firstname,lastname,asc"},
			want:   []model.Order{model.Asc("firstname"), model.Asc("lastname")},
		},
		{
			name:   "repeated values concatenate",
			values: []string{"firstname,asc", "lastname,desc"},
			want:   []model.Order{model.Asc("firstname"), model.Desc("lastname")},
		},
		{
			name:   "direction word is case insensitive",
			values: []string{"name,DESC"},
			want:   []model.Order{model.Desc("name")},
		},
		{
			name:   "no direction defaults to ascending",
			values: []string{"name,age"},
			want:   []model.Order{model.Asc("name"), model.Asc("age")},
		},
		{
			name:   "unknown last token is a property",
			values: []string{"name,sideways"},
			want:   []model.Order{model.Asc("name"), model.Asc("sideways")},
		},
		{name: "dot-only token dropped", values: []string{"...,asc"}, want: nil},
		{
			name:   "dot-only token dropped among properties",
			values: []string{"name,..,desc"},
			want:   []model.Order{model.Desc("name")},
		},
		{name: "direction alone yields nothing", values: []string{"asc"}, want: nil},
		{
			name:   "direction alone next to a real value",
			values: []string{"desc", "name"},
			want:   []model.Order{model.Asc("name")},
		},
		{
			name:   "only the last token is a direction",
			values: []string{"asc,name"},
			want:   []model.Order{model.Asc("asc"), model.Asc("name")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.values, ",")
			if tt.want == nil {
				assert.True(t, got.IsUnsorted(), "expected unsorted, got %s", got)
				return
			}
			assert.Equal(t, tt.want, got.Orders())
		})
	}
}

func TestParse_CustomDelimiter(t *testing.T) {
	got := Parse([]string{"a|b|desc"}, "|")
	assert.Equal(t, []model.Order{model.Desc("a"), model.Desc("b")}, got.Orders())

	got = Parse([]string{"a,b"}, "|")
	assert.Equal(t, []model.Order{model.Asc("a,b")}, got.Orders())
}
