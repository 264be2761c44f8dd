package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	published := &article{ID: 1, Title: "Go Generics", Published: true}
	draft := &article{ID: 2, Title: "SQL Builders", Published: false}

	t.Run("search matches case-insensitive substrings", func(t *testing.T) {
		spec := Spec{Search: "generics", Searchable: []string{"title"}}
		assert.True(t, Matches(articleFields, spec, published))
		assert.False(t, Matches(articleFields, spec, draft))
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		spec := Spec{Filters: []Filter{
			{Field: "published", Value: true},
			{Field: "id", Value: int64(1)},
		}}
		assert.True(t, Matches(articleFields, spec, published))

		spec.Filters[1].Value = int64(2)
		assert.False(t, Matches(articleFields, spec, published))
	})

	t.Run("search and filters have to pass together", func(t *testing.T) {
		spec := Spec{
			Search:     "sql",
			Searchable: []string{"title"},
			Filters:    []Filter{{Field: "published", Value: true}},
		}
		assert.False(t, Matches(articleFields, spec, draft))
		assert.False(t, Matches(articleFields, spec, published))
	})

	t.Run("empty spec matches everything", func(t *testing.T) {
		assert.True(t, Matches(articleFields, Spec{}, published))
		assert.True(t, Matches(articleFields, Spec{}, draft))
	})
}

func TestSort(t *testing.T) {
	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	records := []*article{
		{ID: 1, Title: "banana", CreatedAt: base.Add(2 * time.Hour)},
		{ID: 2, Title: "apple", CreatedAt: base},
		{ID: 3, Title: "cherry", CreatedAt: base.Add(time.Hour)},
	}

	t.Run("ascending by string field", func(t *testing.T) {
		sorted := append([]*article{}, records...)
		Sort(articleFields, Spec{SortField: "title", SortDesc: false}, sorted)
		assert.Equal(t, []int64{2, 1, 3}, ids(sorted))
	})

	t.Run("descending by timestamp field", func(t *testing.T) {
		sorted := append([]*article{}, records...)
		Sort(articleFields, Spec{SortField: "created_at", SortDesc: true}, sorted)
		assert.Equal(t, []int64{1, 3, 2}, ids(sorted))
	})

	t.Run("unknown sort field falls back to created_at", func(t *testing.T) {
		sorted := append([]*article{}, records...)
		Sort(articleFields, Spec{SortField: "nonexistent", SortDesc: false}, sorted)
		assert.Equal(t, []int64{2, 3, 1}, ids(sorted))
	})

	t.Run("stable for equal keys", func(t *testing.T) {
		equal := []*article{
			{ID: 10, Title: "same", CreatedAt: base},
			{ID: 11, Title: "same", CreatedAt: base},
			{ID: 12, Title: "same", CreatedAt: base},
		}
		Sort(articleFields, Spec{SortField: "title", SortDesc: true}, equal)
		require.Equal(t, []int64{10, 11, 12}, ids(equal))
	})
}

func ids(records []*article) []int64 {
	result := make([]int64, 0, len(records))
	for _, record := range records {
		result = append(result, record.ID)
	}
	return result
}
