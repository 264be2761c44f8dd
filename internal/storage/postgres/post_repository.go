package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/scribehq/blog-server/internal/post"
	"github.com/scribehq/blog-server/internal/query"
)

var postColumns = []string{
	"post_id",
	"title",
	"content",
	"summary",
	"published",
	"user_id",
	"created_at",
	"updated_at",
}

// PostRepository implements the post.Repository interface using PostgreSQL
type PostRepository struct {
	db *pgxpool.Pool
}

var _ post.Repository = (*PostRepository)(nil)

// List retrieves one page of posts matching the given query spec
func (repo *PostRepository) List(ctx context.Context, spec query.Spec, page query.PageRequest) ([]*post.Post, *query.PageMeta, error) {
	// Count the matching posts to calculate the page bounds
	countQuery := query.ApplyConditions(squirrel.Select("COUNT(*)").From("posts"), post.Fields, spec)
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
		return []*post.Post{}, meta, nil
	}

	// Fetch the page itself; the offset applies to the filtered and sorted set
	fetchQuery := query.ApplySort(query.ApplyConditions(squirrel.Select(postColumns...).From("posts"), post.Fields, spec), post.Fields, spec).
		Offset(uint64(meta.Offset())).
		Limit(uint64(meta.PerPage))
	fetchSQL, fetchVals, err := fetchQuery.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, nil, err
	}

	rows, err := repo.db.Query(ctx, fetchSQL, fetchVals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*post.Post{}, meta, nil
		}
		return nil, nil, err
	}
	defer rows.Close()

	posts := []*post.Post{}
	for rows.Next() {
		obj, err := repo.rowToPost(rows)
		if err != nil {
			return nil, nil, err
		}
		posts = append(posts, obj)
	}

	return posts, meta, nil
}

// GetByID retrieves a post by its ID
func (repo *PostRepository) GetByID(ctx context.Context, id int64) (*post.Post, error) {
	row := repo.db.QueryRow(ctx, "SELECT "+strings.Join(postColumns, ", ")+" FROM posts WHERE post_id = $1", id)
	obj, err := repo.rowToPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// CountByAuthor counts the posts written by a specific user
func (repo *PostRepository) CountByAuthor(ctx context.Context, userID int64) (int64, error) {
	var n int64
	if err := repo.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE user_id = $1", userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Create creates a new post
func (repo *PostRepository) Create(ctx context.Context, create *post.Create) (*post.Post, error) {
	row := repo.db.QueryRow(
		ctx,
		`INSERT INTO posts (title, content, summary, published, user_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+strings.Join(postColumns, ", "),
		create.Title,
		create.Content,
		create.Summary,
		create.Published,
		create.UserID,
	)
	return repo.rowToPost(row)
}

// Update updates an existing post
func (repo *PostRepository) Update(ctx context.Context, id int64, update *post.Update) (*post.Post, error) {
	if update.Title != nil || update.Content != nil || update.Summary != nil || update.Published != nil {
		builder := squirrel.Update("posts").Where(squirrel.Eq{"post_id": id}).Set("updated_at", time.Now().UTC())
		if update.Title != nil {
			builder = builder.Set("title", *update.Title)
		}
		if update.Content != nil {
			builder = builder.Set("content", *update.Content)
		}
		if update.Summary != nil {
			builder = builder.Set("summary", *update.Summary)
		}
		if update.Published != nil {
			builder = builder.Set("published", *update.Published)
		}

		sql, values, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
		if err != nil {
			return nil, err
		}
		if _, err := repo.db.Exec(ctx, sql, values...); err != nil {
			return nil, err
		}
	}

	// Re-fetch the post
	return repo.GetByID(ctx, id)
}

// Delete deletes a post by its ID
func (repo *PostRepository) Delete(ctx context.Context, id int64) error {
	_, err := repo.db.Exec(ctx, "DELETE FROM posts WHERE post_id = $1", id)
	return err
}

func (repo *PostRepository) rowToPost(row pgx.Row) (*post.Post, error) {
	obj := new(post.Post)
	err := row.Scan(
		&obj.ID,
		&obj.Title,
		&obj.Content,
		&obj.Summary,
		&obj.Published,
		&obj.UserID,
		&obj.CreatedAt,
		&obj.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return obj, nil
}
