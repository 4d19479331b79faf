// Package api provides the HTTP API server and handlers for the Shelfmark
// application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shelfmark/shelfmark-server/internal/auth"
	"github.com/shelfmark/shelfmark-server/internal/http/response"
	"github.com/shelfmark/shelfmark-server/internal/ratelimit"
	"github.com/shelfmark/shelfmark-server/internal/service"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	tokens          *auth.TokenService
	authService     *service.AuthService
	userService     *service.UserService
	authorService   *service.AuthorService
	genreService    *service.GenreService
	statusService   *service.StatusService
	bookService     *service.BookService
	booklistService *service.BooklistService
	reviewService   *service.ReviewService
	loginLimiter    *ratelimit.KeyedRateLimiter
	router          *chi.Mux
	logger          *slog.Logger
}

// Services bundles the application services the server routes to.
type Services struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Authors  *service.AuthorService
	Genres   *service.GenreService
	Statuses *service.StatusService
	Books    *service.BookService
	Booklist *service.BooklistService
	Reviews  *service.ReviewService
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, tokens *auth.TokenService, svcs Services, loginRatePerMinute int, logger *slog.Logger) *Server {
	s := &Server{
		store:           st,
		tokens:          tokens,
		authService:     svcs.Auth,
		userService:     svcs.Users,
		authorService:   svcs.Authors,
		genreService:    svcs.Genres,
		statusService:   svcs.Statuses,
		bookService:     svcs.Books,
		booklistService: svcs.Booklist,
		reviewService:   svcs.Reviews,
		loginLimiter:    ratelimit.PerMinute(loginRatePerMinute),
		router:          chi.NewRouter(),
		logger:          logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.With(s.rateLimitByIP(s.loginLimiter)).Post("/login", s.handleLogin)
		})

		// Roles (read-only reference data).
		r.Route("/roles", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListRoles)
		})

		// Users, including each user's booklist.
		r.Route("/users", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListUsers)
			r.Get("/{id}", s.handleGetUser)
			r.Patch("/{id}", s.handleUpdateUser)
			r.With(s.requireAdmin).Patch("/{id}/role", s.handleUpdateUserRole)
			r.With(s.requireAdmin).Delete("/{id}", s.handleDeleteUser)

			r.Get("/{id}/booklist", s.handleListBooklist)
			r.Get("/{id}/booklist/{bookID}", s.handleGetBooklistItem)
			r.Post("/{id}/booklist/{bookID}", s.handleCreateBooklistItem)
			r.Patch("/{id}/booklist/{bookID}", s.handleUpdateBooklistItem)
			r.Delete("/{id}/booklist/{bookID}", s.handleDeleteBooklistItem)
		})

		// Authors (reads for all, writes for admins).
		r.Route("/authors", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListAuthors)
			r.Get("/{id}", s.handleGetAuthor)
			r.With(s.requireAdmin).Post("/", s.handleCreateAuthor)
			r.With(s.requireAdmin).Patch("/{id}", s.handleUpdateAuthor)
			r.With(s.requireAdmin).Delete("/{id}", s.handleDeleteAuthor)
		})

		// Genres.
		r.Route("/genres", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListGenres)
			r.Get("/{id}", s.handleGetGenre)
			r.With(s.requireAdmin).Post("/", s.handleCreateGenre)
			r.With(s.requireAdmin).Patch("/{id}", s.handleUpdateGenre)
			r.With(s.requireAdmin).Delete("/{id}", s.handleDeleteGenre)
		})

		// Booklist statuses.
		r.Route("/statuses", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListStatuses)
			r.Get("/{id}", s.handleGetStatus)
			r.With(s.requireAdmin).Post("/", s.handleCreateStatus)
			r.With(s.requireAdmin).Patch("/{id}", s.handleUpdateStatus)
			r.With(s.requireAdmin).Delete("/{id}", s.handleDeleteStatus)
		})

		// Books.
		r.Route("/books", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListBooks)
			r.Get("/{id}", s.handleGetBook)
			r.With(s.requireAdmin).Post("/", s.handleCreateBook)
			r.With(s.requireAdmin).Patch("/{id}", s.handleUpdateBook)
			r.With(s.requireAdmin).Delete("/{id}", s.handleDeleteBook)
		})

		// Reviews, keyed by the (user, book) pair.
		r.Route("/reviews", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListReviews)
			r.Get("/{userID}/{bookID}", s.handleGetReview)
			r.Post("/{userID}/{bookID}", s.handleCreateReview)
			r.Patch("/{userID}/{bookID}", s.handleUpdateReview)
			r.Delete("/{userID}/{bookID}", s.handleDeleteReview)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
