package query

import (
	"sort"
	"strings"
	"time"
)

// Matches checks whether a record passes the search and filter predicates of a spec.
// The semantics mirror the SQL application: the search term has to match at least one
// searchable field (case-insensitive substring), every filter has to match exactly.
func Matches[T any](fields Fieldset[T], spec Spec, record *T) bool {
	if spec.Search != "" && len(spec.Searchable) > 0 {
		matched := false
		term := strings.ToLower(spec.Search)
		for _, name := range spec.Searchable {
			field, ok := fields[name]
			if !ok {
				continue
			}
			value, ok := field.Value(record).(string)
			if ok && strings.Contains(strings.ToLower(value), term) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, filter := range spec.Filters {
		field, ok := fields[filter.Field]
		if !ok {
			continue
		}
		if !equalValues(field.Value(record), filter.Value) {
			return false
		}
	}
	return true
}

// Sort orders records according to the sort field and direction of a spec.
// The sort is stable; records comparing equal keep their original order.
func Sort[T any](fields Fieldset[T], spec Spec, records []*T) {
	field, ok := fields[spec.SortField]
	if !ok {
		field, ok = fields[DefaultSortField]
		if !ok {
			return
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		less := lessValues(field.Value(records[i]), field.Value(records[j]))
		if spec.SortDesc {
			return lessValues(field.Value(records[j]), field.Value(records[i]))
		}
		return less
	})
}

func equalValues(a, b any) bool {
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return a == b
}

func lessValues(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av < bv
	case int64:
		bv, ok := b.(int64)
		return ok && av < bv
	case bool:
		bv, ok := b.(bool)
		return ok && !av && bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Before(bv)
	default:
		return false
	}
}
