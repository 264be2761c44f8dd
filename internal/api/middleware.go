package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/scribehq/blog-server/internal/user"
)

type contextKey string

var contextValueUser = contextKey("user")

// MiddlewareVerifyToken makes sure that the requesting client has provided a valid access token
// belonging to an active user. Additionally, it injects the user object itself into the request context.
func (service *Service) MiddlewareVerifyToken(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		// Try to read the 'Authorization' header and verify it is of type 'Bearer'
		header := request.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer") {
			service.writer.WriteError(writer, http.StatusUnauthorized, "Authorization required")
			return
		}

		// Verify the access token itself
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		userID, err := service.Tokens.Verify(raw)
		if err != nil {
			service.writer.WriteError(writer, http.StatusUnauthorized, "Authorization required")
			return
		}

		// Try to retrieve the acting user out of the database
		obj, err := service.Storage.Users().GetByID(request.Context(), userID)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		if obj == nil {
			service.writer.WriteError(writer, http.StatusUnauthorized, "Authorization required")
			return
		}
		if !obj.IsActive {
			service.writer.WriteError(writer, http.StatusUnauthorized, "Account is inactive")
			return
		}

		// Delegate to the next handler
		request = request.WithContext(context.WithValue(request.Context(), contextValueUser, obj))
		next(writer, request)
	}
}

func actingUser(request *http.Request) *user.User {
	return request.Context().Value(contextValueUser).(*user.User)
}
