package api

import (
	"net/http"
	"time"

	"github.com/scribehq/blog-server/internal/api/validation"
	"github.com/scribehq/blog-server/internal/auth"
)

// EndpointLogin handles the 'POST /api/v2/auth/login' endpoint.
// It accepts either a username or an email address together with a password
// and returns a signed JWT access token on success.
func (service *Service) EndpointLogin(writer http.ResponseWriter, request *http.Request) {
	payload, fieldErrs, err := validation.UnmarshalBody[loginRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(fieldErrs) > 0 {
		service.writer.WriteValidationFailed(writer, fieldErrs)
		return
	}

	// Try the username first, then the email address
	obj, err := service.Storage.Users().GetByUsername(request.Context(), payload.Username)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		obj, err = service.Storage.Users().GetByEmail(request.Context(), payload.Username)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
	}

	if obj == nil || !auth.CheckPassword(obj.PasswordHash, payload.Password) {
		service.writer.WriteError(writer, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !obj.IsActive {
		service.writer.WriteError(writer, http.StatusUnauthorized, "Account is inactive")
		return
	}

	now := time.Now().UTC()
	if err := service.Storage.Users().RecordLogin(request.Context(), obj.ID, now); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	obj.LastLogin = &now

	token, err := service.Tokens.Generate(obj.ID)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, &loginResponse{
		AccessToken: token,
		User:        obj,
	})
}
