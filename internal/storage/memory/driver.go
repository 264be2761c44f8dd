package memory

import (
	"context"

	"github.com/hashicorp/go-memdb"
	"github.com/scribehq/blog-server/internal/post"
	"github.com/scribehq/blog-server/internal/storage"
	"github.com/scribehq/blog-server/internal/user"
)

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"users": {
			Name: "users",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.IntFieldIndex{Field: "ID"},
				},
				"username": {
					Name:         "username",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Username"},
				},
				"email": {
					Name:         "email",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Email"},
				},
			},
		},
		"posts": {
			Name: "posts",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.IntFieldIndex{Field: "ID"},
				},
				"userID": {
					Name:         "userID",
					Unique:       false,
					AllowMissing: false,
					Indexer:      &memdb.IntFieldIndex{Field: "UserID"},
				},
			},
		},
	},
}

// Driver represents an in-memory storage driver implementation built using hashicorp/go-memdb.
// It is used in development mode and by the handler tests; data does not survive a restart.
type Driver struct {
	db    *memdb.MemDB
	users *UserRepository
	posts *PostRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty in-memory storage driver
func New() *Driver {
	return &Driver{}
}

// Initialize creates the in-memory database and initializes the repository implementations
func (driver *Driver) Initialize(_ context.Context) error {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return err
	}
	driver.db = db
	driver.users = &UserRepository{db: db}
	driver.posts = &PostRepository{db: db}
	return nil
}

// Users provides the in-memory user repository implementation
func (driver *Driver) Users() user.Repository {
	return driver.users
}

// Posts provides the in-memory post repository implementation
func (driver *Driver) Posts() post.Repository {
	return driver.posts
}

// Close discards the repository implementations and the in-memory database
func (driver *Driver) Close() {
	driver.users = nil
	driver.posts = nil
	driver.db = nil
}
