package post

import (
	"time"

	"github.com/scribehq/blog-server/internal/query"
)

// Post represents a blog post written by a user
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary"`
	Published bool      `json:"published"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchableFields lists the fields eligible for substring search matching
var SearchableFields = []string{"title", "content", "summary"}

// Fields is the queryable field registry of the post record type
var Fields = query.Fieldset[Post]{
	"id": {
		Column: "post_id",
		Parse:  query.ParseInt,
		Value:  func(post *Post) any { return post.ID },
	},
	"title": {
		Column: "title",
		Parse:  query.ParseString,
		Value:  func(post *Post) any { return post.Title },
	},
	"content": {
		Column: "content",
		Parse:  query.ParseString,
		Value:  func(post *Post) any { return post.Content },
	},
	"summary": {
		Column: "summary",
		Parse:  query.ParseString,
		Value:  func(post *Post) any { return post.Summary },
	},
	"published": {
		Column: "published",
		Parse:  query.ParseBool,
		Value:  func(post *Post) any { return post.Published },
	},
	"user_id": {
		Column: "user_id",
		Parse:  query.ParseInt,
		Value:  func(post *Post) any { return post.UserID },
	},
	"created_at": {
		Column: "created_at",
		Parse:  query.ParseTime,
		Value:  func(post *Post) any { return post.CreatedAt },
	},
	"updated_at": {
		Column: "updated_at",
		Parse:  query.ParseTime,
		Value:  func(post *Post) any { return post.UpdatedAt },
	},
}
