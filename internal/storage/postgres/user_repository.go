package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/scribehq/blog-server/internal/query"
	"github.com/scribehq/blog-server/internal/user"
)

var userColumns = []string{
	"user_id",
	"username",
	"email",
	"password_hash",
	"first_name",
	"last_name",
	"is_admin",
	"is_active",
	"last_login",
	"created_at",
	"updated_at",
}

// UserRepository implements the user.Repository interface using PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

var _ user.Repository = (*UserRepository)(nil)

// List retrieves one page of users matching the given query spec
func (repo *UserRepository) List(ctx context.Context, spec query.Spec, page query.PageRequest) ([]*user.User, *query.PageMeta, error) {
	// Count the matching users to calculate the page bounds
	countQuery := query.ApplyConditions(squirrel.Select("COUNT(*)").From("users"), user.Fields, spec)
	countSQL, countVals, err := countQuery.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, nil, err
	}
	var total int
	if err := repo.db.QueryRow(ctx, countSQL, countVals...).Scan(&total); err != nil {
		return nil, nil, err
	}

	meta := query.NewPageMeta(page, total)
	if total == 0 {
		return []*user.User{}, meta, nil
	}

	// Fetch the page itself; the offset applies to the filtered and sorted set
	fetchQuery := query.ApplySort(query.ApplyConditions(squirrel.Select(userColumns...).From("users"), user.Fields, spec), user.Fields, spec).
		Offset(uint64(meta.Offset())).
		Limit(uint64(meta.PerPage))
	fetchSQL, fetchVals, err := fetchQuery.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, nil, err
	}

	rows, err := repo.db.Query(ctx, fetchSQL, fetchVals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*user.User{}, meta, nil
		}
		return nil, nil, err
	}
	defer rows.Close()

	users := []*user.User{}
	for rows.Next() {
		obj, err := repo.rowToUser(rows)
		if err != nil {
			return nil, nil, err
		}
		users = append(users, obj)
	}

	return users, meta, nil
}

// GetByID retrieves a user by their ID
func (repo *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return repo.getBy(ctx, squirrel.Eq{"user_id": id})
}

// GetByUsername retrieves a user by their exact username
func (repo *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return repo.getBy(ctx, squirrel.Eq{"username": username})
}

// GetByEmail retrieves a user by their exact email address
func (repo *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return repo.getBy(ctx, squirrel.Eq{"email": email})
}

// Create creates a new user
func (repo *UserRepository) Create(ctx context.Context, create *user.Create) (*user.User, error) {
	row := repo.db.QueryRow(
		ctx,
		`INSERT INTO users (username, email, password_hash, first_name, last_name)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+strings.Join(userColumns, ", "),
		create.Username,
		create.Email,
		create.PasswordHash,
		create.FirstName,
		create.LastName,
	)
	return repo.rowToUser(row)
}

// Update updates an existing user
func (repo *UserRepository) Update(ctx context.Context, id int64, update *user.Update) (*user.User, error) {
	if update.Username != nil || update.Email != nil || update.FirstName != nil || update.LastName != nil {
		builder := squirrel.Update("users").Where(squirrel.Eq{"user_id": id}).Set("updated_at", time.Now().UTC())
		if update.Username != nil {
			builder = builder.Set("username", *update.Username)
		}
		if update.Email != nil {
			builder = builder.Set("email", *update.Email)
		}
		if update.FirstName != nil {
			builder = builder.Set("first_name", *update.FirstName)
		}
		if update.LastName != nil {
			builder = builder.Set("last_name", *update.LastName)
		}

		sql, values, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
		if err != nil {
			return nil, err
		}
		if _, err := repo.db.Exec(ctx, sql, values...); err != nil {
			return nil, err
		}
	}

	// Re-fetch the user
	return repo.GetByID(ctx, id)
}

// RecordLogin stores the timestamp of a user's latest successful login
func (repo *UserRepository) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := repo.db.Exec(ctx, "UPDATE users SET last_login = $2 WHERE user_id = $1", id, at)
	return err
}

// Delete deletes a user by their ID
func (repo *UserRepository) Delete(ctx context.Context, id int64) error {
	_, err := repo.db.Exec(ctx, "DELETE FROM users WHERE user_id = $1", id)
	return err
}

func (repo *UserRepository) getBy(ctx context.Context, condition squirrel.Eq) (*user.User, error) {
	sql, values, err := squirrel.Select(userColumns...).From("users").Where(condition).PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	obj, err := repo.rowToUser(repo.db.QueryRow(ctx, sql, values...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

func (repo *UserRepository) rowToUser(row pgx.Row) (*user.User, error) {
	obj := new(user.User)
	err := row.Scan(
		&obj.ID,
		&obj.Username,
		&obj.Email,
		&obj.PasswordHash,
		&obj.FirstName,
		&obj.LastName,
		&obj.IsAdmin,
		&obj.IsActive,
		&obj.LastLogin,
		&obj.CreatedAt,
		&obj.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return obj, nil
}
