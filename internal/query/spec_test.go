package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type article struct {
	ID        int64
	Title     string
	Published bool
	CreatedAt time.Time
}

var articleFields = Fieldset[article]{
	"id": {
		Column: "article_id",
		Parse:  ParseInt,
		Value:  func(record *article) any { return record.ID },
	},
	"title": {
		Column: "title",
		Parse:  ParseString,
		Value:  func(record *article) any { return record.Title },
	},
	"published": {
		Column: "published",
		Parse:  ParseBool,
		Value:  func(record *article) any { return record.Published },
	},
	"created_at": {
		Column: "created_at",
		Parse:  ParseTime,
		Value:  func(record *article) any { return record.CreatedAt },
	},
}

func TestShape(t *testing.T) {
	t.Run("reserved keys never become filters", func(t *testing.T) {
		values, _ := url.ParseQuery("page=2&per_page=10&q=foo&sort=title&order=asc")
		spec := Shape(values, articleFields, []string{"title"})
		assert.Empty(t, spec.Filters)
		assert.Equal(t, "foo", spec.Search)
		assert.Equal(t, "title", spec.SortField)
		assert.False(t, spec.SortDesc)
	})

	t.Run("known keys become typed equality filters", func(t *testing.T) {
		values, _ := url.ParseQuery("published=true&id=42")
		spec := Shape(values, articleFields, nil)
		require.Len(t, spec.Filters, 2)
		assert.Equal(t, Filter{Field: "id", Value: int64(42)}, spec.Filters[0])
		assert.Equal(t, Filter{Field: "published", Value: true}, spec.Filters[1])
	})

	t.Run("unknown keys are silently ignored", func(t *testing.T) {
		values, _ := url.ParseQuery("nonexistent=1&title=hello")
		spec := Shape(values, articleFields, nil)
		require.Len(t, spec.Filters, 1)
		assert.Equal(t, Filter{Field: "title", Value: "hello"}, spec.Filters[0])
	})

	t.Run("unparsable filter values are dropped", func(t *testing.T) {
		values, _ := url.ParseQuery("published=maybe&id=abc")
		spec := Shape(values, articleFields, nil)
		assert.Empty(t, spec.Filters)
	})

	t.Run("unknown sort field falls back to created_at descending", func(t *testing.T) {
		values, _ := url.ParseQuery("sort=nonexistent")
		spec := Shape(values, articleFields, nil)
		assert.Equal(t, DefaultSortField, spec.SortField)
		assert.True(t, spec.SortDesc)
	})

	t.Run("absent sort defaults to created_at descending", func(t *testing.T) {
		spec := Shape(url.Values{}, articleFields, nil)
		assert.Equal(t, DefaultSortField, spec.SortField)
		assert.True(t, spec.SortDesc)
	})

	t.Run("any order value except asc sorts descending", func(t *testing.T) {
		for _, order := range []string{"desc", "DESC", "banana", ""} {
			values := url.Values{"order": {order}}
			assert.True(t, Shape(values, articleFields, nil).SortDesc, "order=%q", order)
		}
	})

	t.Run("search term is trimmed", func(t *testing.T) {
		values := url.Values{"q": {"  john  "}}
		spec := Shape(values, articleFields, []string{"title"})
		assert.Equal(t, "john", spec.Search)
	})
}

func TestApplySearch(t *testing.T) {
	base := squirrel.Select("*").From("articles")

	t.Run("builds a disjunction over the searchable fields", func(t *testing.T) {
		spec := Spec{Search: "go", Searchable: []string{"title", "content"}}
		sql, args, err := ApplySearch(base, articleFields, spec).ToSql()
		require.NoError(t, err)
		// 'content' is not registered on the article fieldset and is skipped silently
		assert.Equal(t, "SELECT * FROM articles WHERE (title ILIKE ?)", sql)
		assert.Equal(t, []interface{}{"%go%"}, args)
	})

	t.Run("empty term leaves the query untouched", func(t *testing.T) {
		spec := Spec{Search: "", Searchable: []string{"title"}}
		sql, _, err := ApplySearch(base, articleFields, spec).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM articles", sql)
	})

	t.Run("empty searchable field list leaves the query untouched", func(t *testing.T) {
		spec := Spec{Search: "go"}
		sql, _, err := ApplySearch(base, articleFields, spec).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM articles", sql)
	})
}

func TestApplyFilters(t *testing.T) {
	base := squirrel.Select("*").From("articles")

	spec := Spec{Filters: []Filter{
		{Field: "published", Value: true},
		{Field: "title", Value: "hello"},
	}}
	sql, args, err := ApplyFilters(base, articleFields, spec).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM articles WHERE published = ? AND title = ?", sql)
	assert.Equal(t, []interface{}{true, "hello"}, args)
}

func TestApplySort(t *testing.T) {
	base := squirrel.Select("*").From("articles")

	t.Run("ascending", func(t *testing.T) {
		spec := Spec{SortField: "title", SortDesc: false}
		sql, _, err := ApplySort(base, articleFields, spec).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM articles ORDER BY title ASC", sql)
	})

	t.Run("descending", func(t *testing.T) {
		spec := Spec{SortField: "title", SortDesc: true}
		sql, _, err := ApplySort(base, articleFields, spec).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM articles ORDER BY title DESC", sql)
	})

	t.Run("unknown sort field falls back to created_at", func(t *testing.T) {
		spec := Spec{SortField: "nonexistent", SortDesc: true}
		sql, _, err := ApplySort(base, articleFields, spec).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM articles ORDER BY created_at DESC", sql)
	})
}

func TestApplyConditions(t *testing.T) {
	base := squirrel.Select("*").From("articles")

	spec := Spec{
		Search:     "go",
		Searchable: []string{"title"},
		Filters:    []Filter{{Field: "published", Value: true}},
	}
	sql, args, err := ApplyConditions(base, articleFields, spec).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM articles WHERE (title ILIKE ?) AND published = ?", sql)
	assert.Equal(t, []interface{}{"%go%", true}, args)
}
