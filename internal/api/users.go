package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/scribehq/blog-server/internal/api/schema"
	"github.com/scribehq/blog-server/internal/api/validation"
	"github.com/scribehq/blog-server/internal/auth"
	"github.com/scribehq/blog-server/internal/query"
	"github.com/scribehq/blog-server/internal/user"
)

// EndpointGetUsers handles the 'GET /api/v2/users' endpoint.
// It supports pagination (page, per_page), substring search (q), sorting (sort, order)
// and equality filtering by any user field.
func (service *Service) EndpointGetUsers(writer http.ResponseWriter, request *http.Request) {
	spec := query.Shape(request.URL.Query(), user.Fields, user.SearchableFields)
	page := query.ParsePageRequest(request.URL.Query(), service.Config.MaxPageSize)

	users, meta, err := service.Storage.Users().List(request.Context(), spec, page)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	items := make([]*userResponse, 0, len(users))
	for _, obj := range users {
		count, err := service.Storage.Posts().CountByAuthor(request.Context(), obj.ID)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		items = append(items, &userResponse{User: obj, PostCount: count})
	}

	service.writer.WriteJSON(writer, schema.BuildPaginatedResponse(items, meta))
}

// EndpointCreateUser handles the 'POST /api/v2/users' endpoint
func (service *Service) EndpointCreateUser(writer http.ResponseWriter, request *http.Request) {
	payload, fieldErrs, err := validation.UnmarshalBody[userCreateRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if fieldErrs == nil {
		fieldErrs = validation.FieldErrors{}
	}

	// Check username & email uniqueness against the live record set.
	// The unique constraints of the storage layer remain the true guard against races.
	if len(fieldErrs["username"]) == 0 {
		existing, err := service.Storage.Users().GetByUsername(request.Context(), payload.Username)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		if existing != nil {
			fieldErrs.Add("username", "Username already exists")
		}
	}
	if len(fieldErrs["email"]) == 0 {
		existing, err := service.Storage.Users().GetByEmail(request.Context(), payload.Email)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		if existing != nil {
			fieldErrs.Add("email", "Email already exists")
		}
	}

	if len(fieldErrs) > 0 {
		service.writer.WriteValidationFailed(writer, fieldErrs)
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	obj, err := service.Storage.Users().Create(request.Context(), &user.Create{
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: hash,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
	})
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSONCode(writer, http.StatusCreated, &userResponse{User: obj})
}

// EndpointGetUser handles the 'GET /api/v2/users/{id}' endpoint
func (service *Service) EndpointGetUser(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.userIDParam(writer, request)
	if !ok {
		return
	}

	obj, err := service.Storage.Users().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteError(writer, http.StatusNotFound, "User not found")
		return
	}

	count, err := service.Storage.Posts().CountByAuthor(request.Context(), obj.ID)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, &userResponse{User: obj, PostCount: count})
}

// EndpointUpdateUser handles the 'PUT /api/v2/users/{id}' endpoint.
// Users can only update their own profile unless they are admins.
func (service *Service) EndpointUpdateUser(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.userIDParam(writer, request)
	if !ok {
		return
	}

	acting := actingUser(request)
	if acting.ID != id && !acting.IsAdmin {
		service.writer.WriteError(writer, http.StatusForbidden, "Unauthorized - can only update own profile")
		return
	}

	obj, err := service.Storage.Users().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteError(writer, http.StatusNotFound, "User not found")
		return
	}

	payload, fieldErrs, err := validation.UnmarshalBody[userUpdateRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if fieldErrs == nil {
		fieldErrs = validation.FieldErrors{}
	}

	// Re-check username & email uniqueness, excluding the record's own ID
	if payload.Username != nil && len(fieldErrs["username"]) == 0 {
		existing, err := service.Storage.Users().GetByUsername(request.Context(), *payload.Username)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		if existing != nil && existing.ID != id {
			fieldErrs.Add("username", "Username already exists")
		}
	}
	if payload.Email != nil && len(fieldErrs["email"]) == 0 {
		existing, err := service.Storage.Users().GetByEmail(request.Context(), *payload.Email)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		if existing != nil && existing.ID != id {
			fieldErrs.Add("email", "Email already exists")
		}
	}

	if len(fieldErrs) > 0 {
		service.writer.WriteValidationFailed(writer, fieldErrs)
		return
	}

	newObj, err := service.Storage.Users().Update(request.Context(), id, &user.Update{
		Username:  payload.Username,
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	})
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	count, err := service.Storage.Posts().CountByAuthor(request.Context(), newObj.ID)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, &userResponse{User: newObj, PostCount: count})
}

// EndpointDeleteUser handles the 'DELETE /api/v2/users/{id}' endpoint.
// Users can only delete themselves unless they are admins.
func (service *Service) EndpointDeleteUser(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.userIDParam(writer, request)
	if !ok {
		return
	}

	acting := actingUser(request)
	if acting.ID != id && !acting.IsAdmin {
		service.writer.WriteError(writer, http.StatusForbidden, "Unauthorized - can only delete own profile")
		return
	}

	obj, err := service.Storage.Users().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteError(writer, http.StatusNotFound, "User not found")
		return
	}

	if err := service.Storage.Users().Delete(request.Context(), obj.ID); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

func (service *Service) userIDParam(writer http.ResponseWriter, request *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(request, "id"), 10, 64)
	if err != nil {
		service.writer.WriteError(writer, http.StatusBadRequest, "Invalid user ID")
		return 0, false
	}
	return id, true
}
