package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/scribehq/blog-server/internal/api/schema"
	"github.com/scribehq/blog-server/internal/api/validation"
	"github.com/scribehq/blog-server/internal/post"
	"github.com/scribehq/blog-server/internal/query"
)

// EndpointGetPosts handles the 'GET /api/v2/posts' endpoint.
// It supports pagination (page, per_page), substring search (q), sorting (sort, order)
// and equality filtering by any post field (most notably 'published').
func (service *Service) EndpointGetPosts(writer http.ResponseWriter, request *http.Request) {
	spec := query.Shape(request.URL.Query(), post.Fields, post.SearchableFields)
	page := query.ParsePageRequest(request.URL.Query(), service.Config.MaxPageSize)

	posts, meta, err := service.Storage.Posts().List(request.Context(), spec, page)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	items := make([]*postResponse, 0, len(posts))
	for _, obj := range posts {
		item, err := service.buildPostResponse(request, obj)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		items = append(items, item)
	}

	service.writer.WriteJSON(writer, schema.BuildPaginatedResponse(items, meta))
}

// EndpointCreatePost handles the 'POST /api/v2/posts' endpoint.
// The author is always the authenticated user; a client-provided 'user_id' is ignored.
func (service *Service) EndpointCreatePost(writer http.ResponseWriter, request *http.Request) {
	payload, fieldErrs, err := validation.UnmarshalBody[postCreateRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(fieldErrs) > 0 {
		service.writer.WriteValidationFailed(writer, fieldErrs)
		return
	}

	acting := actingUser(request)

	published := false
	if payload.Published != nil {
		published = *payload.Published
	}

	obj, err := service.Storage.Posts().Create(request.Context(), &post.Create{
		Title:     payload.Title,
		Content:   payload.Content,
		Summary:   payload.Summary,
		Published: published,
		UserID:    acting.ID,
	})
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	username := acting.Username
	service.writer.WriteJSONCode(writer, http.StatusCreated, &postResponse{Post: obj, AuthorUsername: &username})
}

// EndpointGetPost handles the 'GET /api/v2/posts/{id}' endpoint
func (service *Service) EndpointGetPost(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.postIDParam(writer, request)
	if !ok {
		return
	}

	obj, err := service.Storage.Posts().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteError(writer, http.StatusNotFound, "Post not found")
		return
	}

	item, err := service.buildPostResponse(request, obj)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, item)
}

// EndpointUpdatePost handles the 'PUT /api/v2/posts/{id}' endpoint.
// Only the author can update their posts.
func (service *Service) EndpointUpdatePost(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.postIDParam(writer, request)
	if !ok {
		return
	}

	obj, err := service.Storage.Posts().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteError(writer, http.StatusNotFound, "Post not found")
		return
	}

	acting := actingUser(request)
	if obj.UserID != acting.ID {
		service.writer.WriteError(writer, http.StatusForbidden, "Unauthorized - can only update own posts")
		return
	}

	payload, fieldErrs, err := validation.UnmarshalBody[postUpdateRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(fieldErrs) > 0 {
		service.writer.WriteValidationFailed(writer, fieldErrs)
		return
	}

	newObj, err := service.Storage.Posts().Update(request.Context(), id, &post.Update{
		Title:     payload.Title,
		Content:   payload.Content,
		Summary:   payload.Summary,
		Published: payload.Published,
	})
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	item, err := service.buildPostResponse(request, newObj)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, item)
}

// EndpointDeletePost handles the 'DELETE /api/v2/posts/{id}' endpoint.
// Only the author can delete their posts.
func (service *Service) EndpointDeletePost(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.postIDParam(writer, request)
	if !ok {
		return
	}

	obj, err := service.Storage.Posts().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteError(writer, http.StatusNotFound, "Post not found")
		return
	}

	acting := actingUser(request)
	if obj.UserID != acting.ID {
		service.writer.WriteError(writer, http.StatusForbidden, "Unauthorized - can only delete own posts")
		return
	}

	if err := service.Storage.Posts().Delete(request.Context(), obj.ID); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

// buildPostResponse decorates a post with the username of its author.
// The author may have been deleted in the meantime; the username is null in that case.
func (service *Service) buildPostResponse(request *http.Request, obj *post.Post) (*postResponse, error) {
	author, err := service.Storage.Users().GetByID(request.Context(), obj.UserID)
	if err != nil {
		return nil, err
	}
	item := &postResponse{Post: obj}
	if author != nil {
		item.AuthorUsername = &author.Username
	}
	return item, nil
}

func (service *Service) postIDParam(writer http.ResponseWriter, request *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(request, "id"), 10, 64)
	if err != nil {
		service.writer.WriteError(writer, http.StatusBadRequest, "Invalid post ID")
		return 0, false
	}
	return id, true
}
