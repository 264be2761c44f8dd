package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userPayload struct {
	Username  string `json:"username" validate:"required,min=3,max=80"`
	Email     string `json:"email" validate:"required,email,max=120"`
	Password  string `json:"password" validate:"required,min=6,max=128"`
	FirstName string `json:"first_name" validate:"omitempty,max=50"`
}

type postPayload struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1"`
}

func unmarshal[T any](t *testing.T, body string) (*T, FieldErrors) {
	t.Helper()
	request := httptest.NewRequest("POST", "/", strings.NewReader(body))
	target, errs, err := UnmarshalBody[T](request)
	require.NoError(t, err)
	return target, errs
}

func TestUnmarshalBody(t *testing.T) {
	t.Run("valid payload passes", func(t *testing.T) {
		payload, errs := unmarshal[userPayload](t, `{"username":"testuser","email":"test@example.com","password":"pw12345"}`)
		assert.Nil(t, errs)
		assert.Equal(t, "testuser", payload.Username)
	})

	t.Run("too short username is rejected", func(t *testing.T) {
		_, errs := unmarshal[userPayload](t, `{"username":"ab","email":"test@example.com","password":"pw12345"}`)
		require.Contains(t, errs, "username")
		assert.Equal(t, []string{"Shorter than minimum length 3."}, errs["username"])
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		_, errs := unmarshal[userPayload](t, `{"username":"testuser","email":"not-an-email","password":"pw12345"}`)
		require.Contains(t, errs, "email")
		assert.Equal(t, []string{"Not a valid email address."}, errs["email"])
	})

	t.Run("errors of independent fields union together", func(t *testing.T) {
		_, errs := unmarshal[userPayload](t, `{"username":"ab","email":"nope","password":"short"}`)
		assert.Contains(t, errs, "username")
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "password")
	})

	t.Run("missing required fields are reported per field", func(t *testing.T) {
		_, errs := unmarshal[userPayload](t, `{}`)
		assert.Equal(t, []string{"Missing data for required field."}, errs["username"])
		assert.Equal(t, []string{"Missing data for required field."}, errs["email"])
		assert.Equal(t, []string{"Missing data for required field."}, errs["password"])
	})

	t.Run("title above maximum length is rejected", func(t *testing.T) {
		body := `{"title":"` + strings.Repeat("x", 201) + `","content":"c"}`
		_, errs := unmarshal[postPayload](t, body)
		require.Contains(t, errs, "title")
		assert.Equal(t, []string{"Longer than maximum length 200."}, errs["title"])
	})

	t.Run("title at maximum length passes", func(t *testing.T) {
		body := `{"title":"` + strings.Repeat("x", 200) + `","content":"c"}`
		_, errs := unmarshal[postPayload](t, body)
		assert.Nil(t, errs)
	})

	t.Run("invalid JSON is rejected", func(t *testing.T) {
		_, errs := unmarshal[postPayload](t, `{"title":`)
		require.Contains(t, errs, "_schema")
	})

	t.Run("type mismatch is reported under the field name", func(t *testing.T) {
		_, errs := unmarshal[postPayload](t, `{"title":123,"content":"c"}`)
		require.Contains(t, errs, "title")
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		payload, errs := unmarshal[userPayload](t, `{"username":"testuser","email":"test@example.com","password":"pw12345"}`)
		assert.Nil(t, errs)
		assert.Empty(t, payload.FirstName)
	})

	t.Run("optional fields are still constrained when present", func(t *testing.T) {
		body := `{"username":"testuser","email":"test@example.com","password":"pw12345","first_name":"` + strings.Repeat("a", 51) + `"}`
		_, errs := unmarshal[userPayload](t, body)
		require.Contains(t, errs, "first_name")
		assert.Equal(t, []string{"Longer than maximum length 50."}, errs["first_name"])
	})
}
