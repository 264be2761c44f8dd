package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name        string
		rawQuery    string
		maxPerPage  int
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", 100, 1, 20},
		{"explicit values", "page=3&per_page=50", 100, 3, 50},
		{"zero page", "page=0", 100, 1, 20},
		{"negative page", "page=-5", 100, 1, 20},
		{"unparsable page", "page=abc", 100, 1, 20},
		{"zero per_page", "per_page=0", 100, 1, 20},
		{"negative per_page", "per_page=-1", 100, 1, 20},
		{"unparsable per_page", "per_page=xyz", 100, 1, 20},
		{"per_page above cap", "per_page=500", 100, 1, 100},
		{"per_page at cap", "per_page=100", 100, 1, 100},
		{"custom cap", "per_page=80", 50, 1, 50},
		{"zero cap falls back to default cap", "per_page=500", 0, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.rawQuery)
			require.NoError(t, err)

			request := ParsePageRequest(values, tt.maxPerPage)
			assert.Equal(t, tt.wantPage, request.Page)
			assert.Equal(t, tt.wantPerPage, request.PerPage)
		})
	}
}

func TestNewPageMeta(t *testing.T) {
	t.Run("total pages is the ceiling of total over per_page", func(t *testing.T) {
		tests := []struct {
			total      int
			perPage    int
			wantPages  int
		}{
			{0, 20, 0},
			{1, 20, 1},
			{20, 20, 1},
			{21, 20, 2},
			{25, 10, 3},
			{100, 100, 1},
			{101, 100, 2},
		}
		for _, tt := range tests {
			meta := NewPageMeta(PageRequest{Page: 1, PerPage: tt.perPage}, tt.total)
			assert.Equal(t, tt.wantPages, meta.TotalPages, "total=%d per_page=%d", tt.total, tt.perPage)
		}
	})

	t.Run("page overflow clamps to the last page", func(t *testing.T) {
		meta := NewPageMeta(PageRequest{Page: 999, PerPage: 10}, 25)
		assert.Equal(t, 3, meta.Page)
		assert.Equal(t, 3, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
		assert.Nil(t, meta.NextPage)
		require.NotNil(t, meta.PrevPage)
		assert.Equal(t, 2, *meta.PrevPage)
	})

	t.Run("no clamping on an empty collection", func(t *testing.T) {
		meta := NewPageMeta(PageRequest{Page: 5, PerPage: 10}, 0)
		assert.Equal(t, 5, meta.Page)
		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
	})

	t.Run("navigation metadata on a middle page", func(t *testing.T) {
		meta := NewPageMeta(PageRequest{Page: 2, PerPage: 10}, 25)
		assert.True(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
		require.NotNil(t, meta.NextPage)
		require.NotNil(t, meta.PrevPage)
		assert.Equal(t, 3, *meta.NextPage)
		assert.Equal(t, 1, *meta.PrevPage)
		assert.Equal(t, 10, meta.Offset())
	})

	t.Run("navigation metadata on the first page", func(t *testing.T) {
		meta := NewPageMeta(PageRequest{Page: 1, PerPage: 10}, 25)
		assert.True(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
		assert.Nil(t, meta.PrevPage)
		assert.Equal(t, 0, meta.Offset())
	})

	t.Run("consistency of has_next and has_prev", func(t *testing.T) {
		for total := 0; total <= 50; total += 7 {
			for page := 1; page <= 5; page++ {
				meta := NewPageMeta(PageRequest{Page: page, PerPage: 10}, total)
				assert.Equal(t, meta.Page < meta.TotalPages, meta.HasNext)
				assert.Equal(t, meta.Page > 1, meta.HasPrev)
			}
		}
	})
}
