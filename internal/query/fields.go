package query

import (
	"strconv"
	"strings"
	"time"
)

// Field describes a single queryable field of a record type
type Field[T any] struct {
	// Column is the name of the SQL column backing the field
	Column string

	// Parse converts a raw request parameter into the typed filter value of the field.
	// An error marks the raw value as unusable; the corresponding filter is dropped.
	Parse func(raw string) (any, error)

	// Value extracts the field value of a record (used by the in-memory driver)
	Value func(record *T) any
}

// Fieldset is the compile-time field registry of a record type, keyed by the exposed field name
type Fieldset[T any] map[string]Field[T]

// Has checks whether a field with the given name is registered
func (fields Fieldset[T]) Has(name string) bool {
	_, ok := fields[name]
	return ok
}

// ParseString accepts any raw value as-is
func ParseString(raw string) (any, error) {
	return raw, nil
}

// ParseBool parses a raw value into a boolean
func ParseBool(raw string) (any, error) {
	return strconv.ParseBool(strings.ToLower(raw))
}

// ParseInt parses a raw value into a 64-bit integer
func ParseInt(raw string) (any, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// ParseTime parses a raw value into a timestamp (RFC 3339)
func ParseTime(raw string) (any, error) {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return parsed, nil
}
