//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"errors"
	"strings"
)

// Direction is the direction a single property is sorted in.
type Direction string

const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// Valid reports whether the direction is supported.
func (d Direction) Valid() bool {
	switch d {
	case DirectionAsc, DirectionDesc:
		return true
	default:
		return false
	}
}

// IsAscending reports whether d sorts ascending.
func (d Direction) IsAscending() bool { return d == DirectionAsc }

// IsDescending reports whether d sorts descending.
func (d Direction) IsDescending() bool { return d == DirectionDesc }

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == DirectionDesc {
		return DirectionAsc
	}
	return DirectionDesc
}

func (d Direction) String() string {
	return string(d)
}

// ParseDirection normalizes a direction token and reports whether it is supported.
// Unknown tokens are not an error: callers treat them as "no direction given".
func ParseDirection(value string) (Direction, bool) {
	dir := Direction(strings.ToLower(strings.TrimSpace(value)))
	if dir.Valid() {
		return dir, true
	}
	return "", false
}

// UnmarshalJSON accepts any casing of asc/desc. An empty string leaves the direction unset.
func (d *Direction) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		*d = ""
		return nil
	}
	dir, ok := ParseDirection(raw)
	if !ok {
		return errors.New("invalid direction: " + raw)
	}
	*d = dir
	return nil
}

// Order is a single sort key: a property and the direction to sort it in.
type Order struct {
	Property  string    `json:"property"`
	Direction Direction `json:"direction"`
}

// NewOrder returns an Order for property. An invalid direction falls back to ascending.
func NewOrder(property string, dir Direction) Order {
	if !dir.Valid() {
		dir = DirectionAsc
	}
	return Order{Property: property, Direction: dir}
}

// Asc returns an ascending Order for property.
func Asc(property string) Order { return Order{Property: property, Direction: DirectionAsc} }

// Desc returns a descending Order for property.
func Desc(property string) Order { return Order{Property: property, Direction: DirectionDesc} }

// With returns a copy of o using dir.
func (o Order) With(dir Direction) Order {
	return NewOrder(o.Property, dir)
}

func (o Order) String() string {
	return o.Property + ": " + strings.ToUpper(string(o.Direction))
}

// Sort is an ordered list of Orders. The zero value is unsorted.
// A Sort never holds an Order with a blank property and is never mutated once built.
type Sort struct {
	orders []Order
}

// Unsorted returns the empty Sort.
func Unsorted() Sort { return Sort{} }

// SortBy builds a Sort ordering every property in dir. Blank properties are skipped.
func SortBy(dir Direction, properties ...string) Sort {
	orders := make([]Order, 0, len(properties))
	for _, p := range properties {
		orders = append(orders, NewOrder(p, dir))
	}
	return SortOf(orders...)
}

// SortOf builds a Sort from orders. Properties are trimmed and blank ones are dropped.
func SortOf(orders ...Order) Sort {
	kept := make([]Order, 0, len(orders))
	for _, o := range orders {
		property := strings.TrimSpace(o.Property)
		if property == "" {
			continue
		}
		kept = append(kept, NewOrder(property, o.Direction))
	}
	if len(kept) == 0 {
		return Sort{}
	}
	return Sort{orders: kept}
}

// And returns a new Sort with other's orders appended after s's.
func (s Sort) And(other Sort) Sort {
	if len(other.orders) == 0 {
		return s
	}
	if len(s.orders) == 0 {
		return other
	}
	orders := make([]Order, 0, len(s.orders)+len(other.orders))
	orders = append(orders, s.orders...)
	orders = append(orders, other.orders...)
	return Sort{orders: orders}
}

// Orders returns a copy of the orders in s.
func (s Sort) Orders() []Order {
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Len returns the number of orders.
func (s Sort) Len() int { return len(s.orders) }

// IsSorted reports whether s has at least one order.
func (s Sort) IsSorted() bool { return len(s.orders) > 0 }

// IsUnsorted reports whether s is the empty Sort.
func (s Sort) IsUnsorted() bool { return len(s.orders) == 0 }

// OrderFor returns the first order for property.
func (s Sort) OrderFor(property string) (Order, bool) {
	for _, o := range s.orders {
		if o.Property == property {
			return o, true
		}
	}
	return Order{}, false
}

// Reverse returns a Sort with every direction flipped.
func (s Sort) Reverse() Sort {
	if len(s.orders) == 0 {
		return s
	}
	orders := make([]Order, len(s.orders))
	for i, o := range s.orders {
		orders[i] = o.With(o.Direction.Reverse())
	}
	return Sort{orders: orders}
}

// Equal reports whether both sorts hold the same orders in the same sequence.
func (s Sort) Equal(other Sort) bool {
	if len(s.orders) != len(other.orders) {
		return false
	}
	for i := range s.orders {
		if s.orders[i] != other.orders[i] {
			return false
		}
	}
	return true
}

func (s Sort) String() string {
	if len(s.orders) == 0 {
		return "UNSORTED"
	}
	parts := make([]string, len(s.orders))
	for i, o := range s.orders {
		parts[i] = o.String()
	}
	return strings.Join(parts, ", ")
}

// MarshalJSON encodes s as a list of orders; unsorted encodes as an empty list.
func (s Sort) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Orders())
}

// UnmarshalJSON decodes a list of orders.
func (s *Sort) UnmarshalJSON(b []byte) error {
	var orders []Order
	if err := json.Unmarshal(b, &orders); err != nil {
		return err
	}
	*s = SortOf(orders...)
	return nil
}
