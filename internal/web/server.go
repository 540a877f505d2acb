// Package web is the BoiBazaar front end: server-rendered pages over the
// library API.
//
// Every action follows post/redirect/get. A form is validated, at most one
// remote call is made, a toast is queued and the browser is redirected to the
// page that shows it.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/boibazaar/boibazaar/internal/catalog"
	"github.com/boibazaar/boibazaar/internal/domain"
	"github.com/boibazaar/boibazaar/internal/flash"
	"github.com/boibazaar/boibazaar/internal/libraryclient"
	"github.com/boibazaar/boibazaar/internal/logger"
	"github.com/boibazaar/boibazaar/internal/validation"
)

// Library is the remote API the pages are built on.
type Library interface {
	ListBooks(ctx context.Context, params libraryclient.ListParams) ([]domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	CreateBook(ctx context.Context, in domain.BookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, id string, in domain.BookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id string) error
	BorrowBook(ctx context.Context, in domain.BorrowInput) (*domain.Borrow, error)
	BorrowSummary(ctx context.Context) ([]domain.BorrowSummary, error)
	Ping(ctx context.Context) error
}

// Options holds the dependencies of a Server.
type Options struct {
	Library   Library
	Flash     *flash.Store
	Renderer  *Renderer
	Validator *validation.Validator
	Static    http.FileSystem

	BooksPerPage int
	HomeBooks    int
	Location     *time.Location
	Now          func() time.Time
	Logger       *slog.Logger
}

// Server serves the front end.
type Server struct {
	library   Library
	flash     *flash.Store
	renderer  *Renderer
	validator *validation.Validator
	static    http.FileSystem

	perPage   int
	homeBooks int
	loc       *time.Location
	now       func() time.Time

	router *chi.Mux
	logger *slog.Logger
}

// NewServer creates the front end with all routes configured.
func NewServer(opts Options) *Server {
	s := &Server{
		library:   opts.Library,
		flash:     opts.Flash,
		renderer:  opts.Renderer,
		validator: opts.Validator,
		static:    opts.Static,
		perPage:   opts.BooksPerPage,
		homeBooks: opts.HomeBooks,
		loc:       opts.Location,
		now:       opts.Now,
		router:    chi.NewRouter(),
		logger:    opts.Logger,
	}

	if s.perPage <= 0 {
		s.perPage = catalog.DefaultPageSize
	}
	if s.homeBooks <= 0 {
		s.homeBooks = catalog.DefaultWindowSize
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.static == nil {
		s.static = http.FS(StaticFiles())
	}

	s.setupMiddleware()
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
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(s.static)))

	s.router.Get("/", s.handleHome)
	s.router.Get("/books", s.handleListBooks)
	s.router.Get("/create-book", s.handleCreateBookForm)
	s.router.Post("/create-book", s.handleCreateBook)
	s.router.Get("/borrow-summary", s.handleBorrowSummary)

	s.router.Route("/books/{id}", func(r chi.Router) {
		r.Get("/", s.handleBookDetails)
		r.Get("/edit", s.handleEditBookForm)
		r.Post("/edit", s.handleUpdateBook)
		r.Get("/delete", s.handleDeleteConfirm)
		r.Post("/delete", s.handleDeleteBook)
		r.Get("/borrow", s.handleBorrowForm)
		r.Post("/borrow", s.handleBorrowBook)
	})

	s.router.NotFound(s.handleNotFound)
}
