package post

import (
	"context"

	"github.com/scribehq/blog-server/internal/query"
)

// Repository defines the post repository API
type Repository interface {
	// List retrieves one page of posts matching the given query spec
	List(ctx context.Context, spec query.Spec, page query.PageRequest) ([]*Post, *query.PageMeta, error)

	// GetByID retrieves a post by its ID
	GetByID(ctx context.Context, id int64) (*Post, error)

	// CountByAuthor counts the posts written by a specific user
	CountByAuthor(ctx context.Context, userID int64) (int64, error)

	// Create creates a new post
	Create(ctx context.Context, create *Create) (*Post, error)

	// Update updates an existing post
	Update(ctx context.Context, id int64, update *Update) (*Post, error)

	// Delete deletes a post by its ID
	Delete(ctx context.Context, id int64) error
}

// Create is used to create a new post
type Create struct {
	Title     string
	Content   string
	Summary   string
	Published bool
	UserID    int64
}

// Update is used to update an existing post
type Update struct {
	Title     *string
	Content   *string
	Summary   *string
	Published *bool
}
