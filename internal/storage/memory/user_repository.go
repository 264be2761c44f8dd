package memory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/scribehq/blog-server/internal/query"
	"github.com/scribehq/blog-server/internal/user"
)

// UserRepository implements the user.Repository interface using an in-memory database
type UserRepository struct {
	db     *memdb.MemDB
	lastID int64
}

var _ user.Repository = (*UserRepository)(nil)

// List retrieves one page of users matching the given query spec
func (repo *UserRepository) List(_ context.Context, spec query.Spec, page query.PageRequest) ([]*user.User, *query.PageMeta, error) {
	txn := repo.db.Txn(false)
	it, err := txn.Get("users", "id")
	if err != nil {
		return nil, nil, err
	}

	matching := []*user.User{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		record := obj.(*user.User)
		if query.Matches(user.Fields, spec, record) {
			matching = append(matching, record)
		}
	}
	query.Sort(user.Fields, spec, matching)

	meta := query.NewPageMeta(page, len(matching))
	return pageSlice(matching, meta), meta, nil
}

// GetByID retrieves a user by their ID
func (repo *UserRepository) GetByID(_ context.Context, id int64) (*user.User, error) {
	return repo.first("id", id)
}

// GetByUsername retrieves a user by their exact username
func (repo *UserRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	return repo.first("username", username)
}

// GetByEmail retrieves a user by their exact email address
func (repo *UserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return repo.first("email", email)
}

// Create creates a new user
func (repo *UserRepository) Create(_ context.Context, create *user.Create) (*user.User, error) {
	now := time.Now().UTC()
	obj := &user.User{
		ID:           atomic.AddInt64(&repo.lastID, 1),
		Username:     create.Username,
		Email:        create.Email,
		PasswordHash: create.PasswordHash,
		FirstName:    create.FirstName,
		LastName:     create.LastName,
		IsAdmin:      false,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	txn := repo.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert("users", obj); err != nil {
		return nil, err
	}
	txn.Commit()

	return obj, nil
}

// Update updates an existing user
func (repo *UserRepository) Update(_ context.Context, id int64, update *user.Update) (*user.User, error) {
	obj, err := repo.first("id", id)
	if err != nil || obj == nil {
		return nil, err
	}

	cpy := *obj
	if update.Username != nil {
		cpy.Username = *update.Username
	}
	if update.Email != nil {
		cpy.Email = *update.Email
	}
	if update.FirstName != nil {
		cpy.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		cpy.LastName = *update.LastName
	}
	cpy.UpdatedAt = time.Now().UTC()

	txn := repo.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert("users", &cpy); err != nil {
		return nil, err
	}
	txn.Commit()

	return &cpy, nil
}

// RecordLogin stores the timestamp of a user's latest successful login
func (repo *UserRepository) RecordLogin(_ context.Context, id int64, at time.Time) error {
	obj, err := repo.first("id", id)
	if err != nil || obj == nil {
		return err
	}

	cpy := *obj
	cpy.LastLogin = &at

	txn := repo.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert("users", &cpy); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// Delete deletes a user by their ID.
// The user's posts are deleted along with them, mirroring the SQL cascade.
func (repo *UserRepository) Delete(_ context.Context, id int64) error {
	obj, err := repo.first("id", id)
	if err != nil || obj == nil {
		return err
	}

	txn := repo.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll("posts", "userID", id); err != nil {
		return err
	}
	if err := txn.Delete("users", obj); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (repo *UserRepository) first(index string, value any) (*user.User, error) {
	txn := repo.db.Txn(false)
	obj, err := txn.First("users", index, value)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*user.User), nil
}
