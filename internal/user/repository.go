package user

import (
	"context"
	"time"

	"github.com/scribehq/blog-server/internal/query"
)

// Repository defines the user repository API
type Repository interface {
	// List retrieves one page of users matching the given query spec
	List(ctx context.Context, spec query.Spec, page query.PageRequest) ([]*User, *query.PageMeta, error)

	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByUsername retrieves a user by their exact username
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByEmail retrieves a user by their exact email address
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create creates a new user
	Create(ctx context.Context, create *Create) (*User, error)

	// Update updates an existing user
	Update(ctx context.Context, id int64, update *Update) (*User, error)

	// RecordLogin stores the timestamp of a user's latest successful login
	RecordLogin(ctx context.Context, id int64, at time.Time) error

	// Delete deletes a user by their ID
	Delete(ctx context.Context, id int64) error
}

// Create is used to create a new user
type Create struct {
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// Update is used to update an existing user
type Update struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}
