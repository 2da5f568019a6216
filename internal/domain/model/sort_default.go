//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxSortSiteLen = 255

// SortDefault declares a default ordering: properties sorted in one direction.
type SortDefault struct {
	Properties []string  `json:"properties" yaml:"properties"`
	Direction  Direction `json:"direction"  yaml:"direction"`
}

// Sort returns the declaration as a Sort. An empty property list yields unsorted.
func (d SortDefault) Sort() Sort {
	return SortBy(d.Direction, d.Properties...)
}

// SortDefaults holds the default declarations attached to one call site.
// Single and Multiple are mutually exclusive; having both is an authoring error.
type SortDefaults struct {
	Site      string        `json:"site"`
	Single    *SortDefault  `json:"single,omitempty"`
	Multiple  []SortDefault `json:"multiple"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// HasSingle reports whether a single-form default is declared.
func (d *SortDefaults) HasSingle() bool { return d != nil && d.Single != nil }

// HasMultiple reports whether a collection-form default is declared.
func (d *SortDefaults) HasMultiple() bool { return d != nil && d.Multiple != nil }

// IsEmpty reports whether no default is declared.
func (d *SortDefaults) IsEmpty() bool { return !d.HasSingle() && !d.HasMultiple() }

// PutSortDefaultsRequest represents parameters to store the defaults of a site.
type PutSortDefaultsRequest struct {
	Site     string        `json:"site"`
	Single   *SortDefault  `json:"single,omitempty"`
	Multiple []SortDefault `json:"multiple,omitempty"`
}

// Normalize trims the site name and declared properties.
func (r *PutSortDefaultsRequest) Normalize() {
	r.Site = strings.TrimSpace(r.Site)
	if r.Single != nil {
		r.Single.Properties = trimProperties(r.Single.Properties)
		r.Single.Direction = normalizeDirection(r.Single.Direction)
	}
	for i := range r.Multiple {
		r.Multiple[i].Properties = trimProperties(r.Multiple[i].Properties)
		r.Multiple[i].Direction = normalizeDirection(r.Multiple[i].Direction)
	}
}

// Validate validates PutSortDefaultsRequest.
// Declaring both forms is accepted here; resolution reports it.
func (r *PutSortDefaultsRequest) Validate() error {
	if r.Site == "" {
		return errors.New("site is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Site) > maxSortSiteLen {
		return errors.New("site cannot exceed 255 characters")
	}
	if r.Single != nil && !r.Single.Direction.Valid() {
		return errors.New("invalid direction for single default")
	}
	for _, d := range r.Multiple {
		if !d.Direction.Valid() {
			return errors.New("invalid direction in multiple defaults")
		}
	}
	return nil
}

// ToSortDefaults converts the request into stored defaults.
func (r *PutSortDefaultsRequest) ToSortDefaults() SortDefaults {
	return SortDefaults{Site: r.Site, Single: r.Single, Multiple: r.Multiple}
}

// normalizeDirection lowercases the direction, defaulting to ascending when empty.
func normalizeDirection(d Direction) Direction {
	if strings.TrimSpace(string(d)) == "" {
		return DirectionAsc
	}
	if dir, ok := ParseDirection(string(d)); ok {
		return dir
	}
	return d
}

func trimProperties(props []string) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Sortable properties of a sort defaults listing.
const (
	SortDefaultsBySite    = "site"
	SortDefaultsByUpdated = "updated"
)

// SortDefaultsListOptions controls paging, filtering and ordering when listing stored defaults.
// Sort may order by "site" and "updated"; other properties are ignored.
type SortDefaultsListOptions struct {
	Limit  int     // zero or less returns every match
	Offset int
	Q      *string // case-insensitive substring match on site
	Sort   Sort
}

// ListSort returns the ordering to apply: the supported orders of Sort followed by site
// ascending unless site is already ordered.
func (o SortDefaultsListOptions) ListSort() Sort {
	var kept []Order
	bySite := false
	for _, ord := range o.Sort.Orders() {
		switch ord.Property {
		case SortDefaultsBySite:
			bySite = true
		case SortDefaultsByUpdated:
		default:
			continue
		}
		kept = append(kept, ord)
	}
	if !bySite {
		kept = append(kept, Asc(SortDefaultsBySite))
	}
	return SortOf(kept...)
}

// Query returns the trimmed site filter, or "" when none is set.
func (o SortDefaultsListOptions) Query() string {
	if o.Q == nil {
		return ""
	}
	return strings.TrimSpace(*o.Q)
}

// SortDefaultsPage is one page of stored defaults with the number of sites matching overall.
type SortDefaultsPage struct {
	Items []*SortDefaults `json:"defaults"`
	Total int             `json:"total"`
}
