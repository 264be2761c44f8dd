package api

import (
	"github.com/scribehq/blog-server/internal/post"
	"github.com/scribehq/blog-server/internal/user"
)

// Request payload structures.
// The 'validate' constraints mirror the field rules of the persistence schema;
// uniqueness of username/email is checked against the live record set by the handlers.

type userCreateRequestPayload struct {
	Username  string `json:"username" validate:"required,min=3,max=80"`
	Email     string `json:"email" validate:"required,email,max=120"`
	Password  string `json:"password" validate:"required,min=6,max=128"`
	FirstName string `json:"first_name" validate:"omitempty,max=50"`
	LastName  string `json:"last_name" validate:"omitempty,max=50"`
}

type userUpdateRequestPayload struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=80"`
	Email     *string `json:"email" validate:"omitempty,email,max=120"`
	FirstName *string `json:"first_name" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,max=50"`
}

type postCreateRequestPayload struct {
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Content   string `json:"content" validate:"required,min=1"`
	Summary   string `json:"summary" validate:"omitempty,max=500"`
	Published *bool  `json:"published"`
}

type postUpdateRequestPayload struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content   *string `json:"content" validate:"omitempty,min=1"`
	Summary   *string `json:"summary" validate:"omitempty,max=500"`
	Published *bool   `json:"published"`
}

type loginRequestPayload struct {
	// Username accepts either a username or an email address
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response structures

// userResponse decorates a user with the amount of posts they have written
type userResponse struct {
	*user.User
	PostCount int64 `json:"post_count"`
}

// postResponse decorates a post with the username of its author
type postResponse struct {
	*post.Post
	AuthorUsername *string `json:"author_username"`
}

// loginResponse is sent after a successful authentication
type loginResponse struct {
	AccessToken string     `json:"access_token"`
	User        *user.User `json:"user"`
}
