package memory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/scribehq/blog-server/internal/post"
	"github.com/scribehq/blog-server/internal/query"
)

// PostRepository implements the post.Repository interface using an in-memory database
type PostRepository struct {
	db     *memdb.MemDB
	lastID int64
}

var _ post.Repository = (*PostRepository)(nil)

// List retrieves one page of posts matching the given query spec
func (repo *PostRepository) List(_ context.Context, spec query.Spec, page query.PageRequest) ([]*post.Post, *query.PageMeta, error) {
	txn := repo.db.Txn(false)
	it, err := txn.Get("posts", "id")
	if err != nil {
		return nil, nil, err
	}

	matching := []*post.Post{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		record := obj.(*post.Post)
		if query.Matches(post.Fields, spec, record) {
			matching = append(matching, record)
		}
	}
	query.Sort(post.Fields, spec, matching)

	meta := query.NewPageMeta(page, len(matching))
	return pageSlice(matching, meta), meta, nil
}

// GetByID retrieves a post by its ID
func (repo *PostRepository) GetByID(_ context.Context, id int64) (*post.Post, error) {
	return repo.first(id)
}

// CountByAuthor counts the posts written by a specific user
func (repo *PostRepository) CountByAuthor(_ context.Context, userID int64) (int64, error) {
	txn := repo.db.Txn(false)
	it, err := txn.Get("posts", "userID", userID)
	if err != nil {
		return 0, err
	}
	var n int64
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n, nil
}

// Create creates a new post
func (repo *PostRepository) Create(_ context.Context, create *post.Create) (*post.Post, error) {
	now := time.Now().UTC()
	obj := &post.Post{
		ID:        atomic.AddInt64(&repo.lastID, 1),
		Title:     create.Title,
		Content:   create.Content,
		Summary:   create.Summary,
		Published: create.Published,
		UserID:    create.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	txn := repo.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert("posts", obj); err != nil {
		return nil, err
	}
	txn.Commit()

	return obj, nil
}

// Update updates an existing post
func (repo *PostRepository) Update(_ context.Context, id int64, update *post.Update) (*post.Post, error) {
	obj, err := repo.first(id)
	if err != nil || obj == nil {
		return nil, err
	}

	cpy := *obj
	if update.Title != nil {
		cpy.Title = *update.Title
	}
	if update.Content != nil {
		cpy.Content = *update.Content
	}
	if update.Summary != nil {
		cpy.Summary = *update.Summary
	}
	if update.Published != nil {
		cpy.Published = *update.Published
	}
	cpy.UpdatedAt = time.Now().UTC()

	txn := repo.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert("posts", &cpy); err != nil {
		return nil, err
	}
	txn.Commit()

	return &cpy, nil
}

// Delete deletes a post by its ID
func (repo *PostRepository) Delete(_ context.Context, id int64) error {
	obj, err := repo.first(id)
	if err != nil || obj == nil {
		return err
	}

	txn := repo.db.Txn(true)
	defer txn.Abort()
	if err := txn.Delete("posts", obj); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (repo *PostRepository) first(id int64) (*post.Post, error) {
	txn := repo.db.Txn(false)
	obj, err := txn.First("posts", "id", id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*post.Post), nil
}

// pageSlice cuts the page described by the metadata out of the full result set
func pageSlice[T any](records []*T, meta *query.PageMeta) []*T {
	offset := meta.Offset()
	if offset >= len(records) {
		return []*T{}
	}
	end := offset + meta.PerPage
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
