package query

import (
	"net/url"
	"sort"
	"strings"
)

// DefaultSortField is the field every unknown sort request falls back to
const DefaultSortField = "created_at"

// reserved keys control pagination, search and sorting and never become filters
var reservedKeys = map[string]struct{}{
	"page":     {},
	"per_page": {},
	"q":        {},
	"sort":     {},
	"order":    {},
}

// Filter represents a single equality filter of a query
type Filter struct {
	Field string
	Value any
}

// Spec represents the derived filter, search and sort intent of a single request
type Spec struct {
	Filters    []Filter
	Search     string
	Searchable []string
	SortField  string
	SortDesc   bool
}

// Shape derives a query spec from raw request parameters against a record type's field registry.
// It never fails: unknown filter keys, unparsable filter values and unknown sort fields
// degrade silently instead of being rejected.
func Shape[T any](values url.Values, fields Fieldset[T], searchable []string) Spec {
	spec := Spec{
		Search:     strings.TrimSpace(values.Get("q")),
		Searchable: searchable,
		SortField:  values.Get("sort"),
		SortDesc:   values.Get("order") != "asc",
	}
	if !fields.Has(spec.SortField) {
		spec.SortField = DefaultSortField
	}

	for key, raw := range values {
		if _, ok := reservedKeys[key]; ok {
			continue
		}
		field, ok := fields[key]
		if !ok || len(raw) == 0 {
			continue
		}
		value, err := field.Parse(raw[0])
		if err != nil {
			continue
		}
		spec.Filters = append(spec.Filters, Filter{Field: key, Value: value})
	}

	// Keep the filter order independent of map iteration
	sort.Slice(spec.Filters, func(i, j int) bool {
		return spec.Filters[i].Field < spec.Filters[j].Field
	})

	return spec
}
