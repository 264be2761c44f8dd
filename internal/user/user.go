package user

import (
	"time"

	"github.com/scribehq/blog-server/internal/query"
)

// User represents a user registered to the service
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	IsAdmin      bool       `json:"is_admin"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SearchableFields lists the fields eligible for substring search matching
var SearchableFields = []string{"username", "email", "first_name", "last_name"}

// Fields is the queryable field registry of the user record type.
// The password hash is deliberately absent; it can neither be filtered nor sorted on.
var Fields = query.Fieldset[User]{
	"id": {
		Column: "user_id",
		Parse:  query.ParseInt,
		Value:  func(user *User) any { return user.ID },
	},
	"username": {
		Column: "username",
		Parse:  query.ParseString,
		Value:  func(user *User) any { return user.Username },
	},
	"email": {
		Column: "email",
		Parse:  query.ParseString,
		Value:  func(user *User) any { return user.Email },
	},
	"first_name": {
		Column: "first_name",
		Parse:  query.ParseString,
		Value:  func(user *User) any { return user.FirstName },
	},
	"last_name": {
		Column: "last_name",
		Parse:  query.ParseString,
		Value:  func(user *User) any { return user.LastName },
	},
	"is_admin": {
		Column: "is_admin",
		Parse:  query.ParseBool,
		Value:  func(user *User) any { return user.IsAdmin },
	},
	"is_active": {
		Column: "is_active",
		Parse:  query.ParseBool,
		Value:  func(user *User) any { return user.IsActive },
	},
	"last_login": {
		Column: "last_login",
		Parse:  query.ParseTime,
		Value: func(user *User) any {
			if user.LastLogin == nil {
				return time.Time{}
			}
			return *user.LastLogin
		},
	},
	"created_at": {
		Column: "created_at",
		Parse:  query.ParseTime,
		Value:  func(user *User) any { return user.CreatedAt },
	},
	"updated_at": {
		Column: "updated_at",
		Parse:  query.ParseTime,
		Value:  func(user *User) any { return user.UpdatedAt },
	},
}
