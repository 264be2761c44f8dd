package storage

import (
	"context"

	"github.com/scribehq/blog-server/internal/post"
	"github.com/scribehq/blog-server/internal/user"
)

// Driver represents a storage driver
type Driver interface {
	// Initialize initializes the storage driver (i.e. opens a database connection)
	Initialize(ctx context.Context) error

	// Users provides a user repository implementation
	Users() user.Repository

	// Posts provides a post repository implementation
	Posts() post.Repository

	// Close closes the storage driver (i.e. closes a database connection)
	Close()
}
