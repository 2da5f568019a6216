package sortcodec

import (
	"strings"

	"github.com/target/sortparam/internal/domain/model"
	apperrors "github.com/target/sortparam/internal/errors"
)

// batch collects the properties of consecutive orders sharing one direction.
type batch struct {
	direction  model.Direction
	properties []string
}

func (b batch) empty() bool { return len(b.properties) == 0 }

func (b batch) accepts(o model.Order) bool {
	return b.empty() || b.direction == o.Direction
}

func (b batch) add(o model.Order) batch {
	b.direction = o.Direction
	b.properties = append(b.properties, o.Property)
	return b
}

// flush appends the batch as "p1<delim>p2<delim>direction" unless it is empty.
func (b batch) flush(expressions []string, delimiter string) []string {
	if b.empty() {
		return expressions
	}
	parts := make([]string, 0, len(b.properties)+1)
	parts = append(parts, b.properties...)
	parts = append(parts, strings.ToLower(b.direction.String()))
	return append(expressions, strings.Join(parts, delimiter))
}

// Fold serializes s into one expression per run of same-direction orders.
// An unsorted Sort yields an empty slice.
func Fold(s model.Sort, delimiter string) []string {
	expressions := []string{}
	var current batch
	for _, o := range s.Orders() {
		if !current.accepts(o) {
			expressions = current.flush(expressions, delimiter)
			current = batch{}
		}
		current = current.add(o)
	}
	return current.flush(expressions, delimiter)
}

// LegacyFold serializes s into a single expression and fails when s mixes directions.
// It serves targets that can only carry one direction group.
func LegacyFold(s model.Sort, delimiter string) ([]string, error) {
	var current batch
	for _, o := range s.Orders() {
		if !current.accepts(o) {
			return nil, apperrors.UnsupportedDirectionMix(
				"legacy sort expressions only support a single direction to sort by")
		}
		current = current.add(o)
	}
	return current.flush([]string{}, delimiter), nil
}
