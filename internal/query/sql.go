package query

import (
	"github.com/Masterminds/squirrel"
)

// ApplySearch adds a disjunction of case-insensitive substring predicates over the
// searchable fields to the given select builder.
// An empty search term or searchable field list leaves the builder untouched.
func ApplySearch[T any](builder squirrel.SelectBuilder, fields Fieldset[T], spec Spec) squirrel.SelectBuilder {
	if spec.Search == "" || len(spec.Searchable) == 0 {
		return builder
	}

	or := squirrel.Or{}
	for _, name := range spec.Searchable {
		field, ok := fields[name]
		if !ok {
			continue
		}
		or = append(or, squirrel.ILike{field.Column: "%" + spec.Search + "%"})
	}
	if len(or) == 0 {
		return builder
	}
	return builder.Where(or)
}

// ApplyFilters adds the equality filters of the spec to the given select builder, combined with AND
func ApplyFilters[T any](builder squirrel.SelectBuilder, fields Fieldset[T], spec Spec) squirrel.SelectBuilder {
	for _, filter := range spec.Filters {
		field, ok := fields[filter.Field]
		if !ok {
			continue
		}
		builder = builder.Where(squirrel.Eq{field.Column: filter.Value})
	}
	return builder
}

// ApplyConditions applies search and filters, in this order, to the given select builder
func ApplyConditions[T any](builder squirrel.SelectBuilder, fields Fieldset[T], spec Spec) squirrel.SelectBuilder {
	return ApplyFilters(ApplySearch(builder, fields, spec), fields, spec)
}

// ApplySort adds the ORDER BY clause of the spec to the given select builder
func ApplySort[T any](builder squirrel.SelectBuilder, fields Fieldset[T], spec Spec) squirrel.SelectBuilder {
	field, ok := fields[spec.SortField]
	if !ok {
		field, ok = fields[DefaultSortField]
		if !ok {
			return builder
		}
	}
	direction := " DESC"
	if !spec.SortDesc {
		direction = " ASC"
	}
	return builder.OrderBy(field.Column + direction)
}
