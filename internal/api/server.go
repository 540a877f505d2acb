// Package api provides the HTTP API of the reference library service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/boibazaar/boibazaar/internal/http/response"
	"github.com/boibazaar/boibazaar/internal/logger"
	"github.com/boibazaar/boibazaar/internal/ratelimit"
	"github.com/boibazaar/boibazaar/internal/service"
)

// Pinger reports whether the backing database answers.
type Pinger interface {
	Ping() error
}

// DocumentCounter reports the size of the search index.
type DocumentCounter interface {
	DocumentCount() (uint64, error)
}

// Options holds the dependencies of a Server.
type Options struct {
	Books       *service.BookService
	Borrows     *service.BorrowService
	Database    Pinger
	Search      DocumentCounter
	Limiter     *ratelimit.KeyedRateLimiter // nil disables rate limiting
	CORSOrigins []string
	Logger      *slog.Logger
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	books    *service.BookService
	borrows  *service.BorrowService
	database Pinger
	search   DocumentCounter
	limiter  *ratelimit.KeyedRateLimiter
	origins  []string
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(opts Options) *Server {
	s := &Server{
		books:    opts.Books,
		borrows:  opts.Borrows,
		database: opts.Database,
		search:   opts.Search,
		limiter:  opts.Limiter,
		origins:  opts.CORSOrigins,
		router:   chi.NewRouter(),
		logger:   opts.Logger,
	}

	s.setupMiddleware()

	config := huma.DefaultConfig("BoiBazaar Library API", "1.0.0")
	config.Info.Description = "Book catalog and lending API"
	// Bodies stay free of $schema links; clients read the envelope only.
	config.CreateHooks = nil
	config.Transformers = append(config.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, config)

	RegisterErrorHandler(s.logger)
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logger.Middleware(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if s.limiter != nil {
		rejected := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			response.TooManyRequests(w, "Too many requests, please try again later.", s.logger)
		})
		s.router.Use(ratelimit.Middleware(s.limiter, s.logger, rejected))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerBookRoutes()
	s.registerBorrowRoutes()

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found", s.logger)
	})
}
