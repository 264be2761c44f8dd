package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/scribehq/blog-server/internal/api/schema"
	"github.com/scribehq/blog-server/internal/auth"
	"github.com/scribehq/blog-server/internal/config"
	"github.com/scribehq/blog-server/internal/function"
	"github.com/scribehq/blog-server/internal/storage"
)

// Service represents the blog REST API service
type Service struct {
	server *http.Server

	Config  *config.Config
	Storage storage.Driver
	Tokens  *auth.TokenService

	writer *schema.Writer
}

// Router builds the HTTP handler of the API service
func (service *Service) Router() http.Handler {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the API experienced an unexpected error")
		},
	}

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{service.Config.AllowedOrigin},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteError(writer, http.StatusNotFound, "Resource not found")
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteError(writer, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Register the authentication endpoints
	router.Post("/api/v2/auth/login", service.EndpointLogin)

	// Register the user controller endpoints
	router.Get("/api/v2/users", service.EndpointGetUsers)
	router.Post("/api/v2/users", service.EndpointCreateUser)
	router.Get("/api/v2/users/{id}", service.EndpointGetUser)
	router.Put("/api/v2/users/{id}", withMiddlewares(service.EndpointUpdateUser, service.MiddlewareVerifyToken))
	router.Delete("/api/v2/users/{id}", withMiddlewares(service.EndpointDeleteUser, service.MiddlewareVerifyToken))

	// Register the post controller endpoints
	router.Get("/api/v2/posts", service.EndpointGetPosts)
	router.Post("/api/v2/posts", withMiddlewares(service.EndpointCreatePost, service.MiddlewareVerifyToken))
	router.Get("/api/v2/posts/{id}", service.EndpointGetPost)
	router.Put("/api/v2/posts/{id}", withMiddlewares(service.EndpointUpdatePost, service.MiddlewareVerifyToken))
	router.Delete("/api/v2/posts/{id}", withMiddlewares(service.EndpointDeletePost, service.MiddlewareVerifyToken))

	return router
}

// Startup starts up the API service
func (service *Service) Startup() error {
	server := &http.Server{
		Addr:    service.Config.ListenAddress,
		Handler: service.Router(),
	}
	service.server = server
	return server.ListenAndServe()
}

// Shutdown shuts down the API service
func (service *Service) Shutdown() {
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}

func withMiddlewares(end http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	return function.Nest(end, middlewares...)
}
