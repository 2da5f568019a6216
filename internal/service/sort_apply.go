package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/target/sortparam/internal/domain/model"
	apperrors "github.com/target/sortparam/internal/errors"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (jmespathLibEvaluator) Validate(expr string) error {
	_, err := jmespath.Compile(expr)
	return err
}

func (jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// SortApplyServiceOptions groups dependencies for SortApplyService.
type SortApplyServiceOptions struct {
	Evaluator JMESPathEvaluator // Optional: defaults to go-jmespath
	Logger    *slog.Logger      // Optional
}

// SortApplyService orders decoded JSON documents by a model.Sort.
//
// Every order property is evaluated as a JMESPath expression against each document, so
// "address.city" reaches into nested objects. The sort is stable and missing values always
// sort last, whatever the direction.
type SortApplyService struct {
	jems   JMESPathEvaluator
	logger *slog.Logger
}

// NewSortApplyService constructs a new SortApplyService.
func NewSortApplyService(opts SortApplyServiceOptions) *SortApplyService {
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	return &SortApplyService{jems: jems, logger: opts.Logger}
}

// sortRow pairs a document with its precomputed sort keys.
type sortRow struct {
	doc  any
	keys []any
}

// Apply returns a sorted copy of docs. An unsorted Sort returns docs in their original order.
func (s *SortApplyService) Apply(ctx context.Context, docs []any, sort model.Sort) ([]any, error) {
	orders := sort.Orders()
	for _, o := range orders {
		if err := s.jems.Validate(o.Property); err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrCodeValidation, "invalid sort property %q", o.Property)
		}
	}

	rows := make([]sortRow, len(docs))
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		keys := make([]any, len(orders))
		for j, o := range orders {
			v, err := s.jems.Evaluate(o.Property, doc)
			if err != nil {
				return nil, fmt.Errorf("evaluate sort property %q: %w", o.Property, err)
			}
			keys[j] = v
		}
		rows[i] = sortRow{doc: doc, keys: keys}
	}

	slices.SortStableFunc(rows, func(a, b sortRow) int {
		for j, o := range orders {
			if c := compareKeys(a.keys[j], b.keys[j], o.Direction); c != 0 {
				return c
			}
		}
		return 0
	})

	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r.doc
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "sorted documents", "count", len(out), "sort", sort.String())
	}
	return out, nil
}

// compareKeys orders two JMESPath results. Nil sorts last in both directions.
// Values of different kinds are ordered numbers, strings, booleans, then everything else.
func compareKeys(a, b any, dir model.Direction) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	c := cmp.Compare(kindRank(a), kindRank(b))
	if c == 0 {
		c = compareSameKind(a, b)
	}
	if dir.IsDescending() {
		return -c
	}
	return c
}

func kindRank(v any) int {
	switch v.(type) {
	case float64, int, int64:
		return 0
	case string:
		return 1
	case bool:
		return 2
	default:
		return 3
	}
}

func compareSameKind(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	default:
		an, aok := toFloat(a)
		bn, bok := toFloat(b)
		if aok && bok {
			return cmp.Compare(an, bn)
		}
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
