package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/internal/user"
	"github.com/marcelsud/bookshelf/internal/validation"
	"github.com/marcelsud/bookshelf/recommend"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// Options holds the router settings that come from configuration
type Options struct {
	AllowedOrigins     []string
	RateLimitPerMinute int // 0 disables the limiter
	Timeout            time.Duration
	// Metrics is mounted on /metrics when not nil
	Metrics http.Handler
}

func Handlers(ctx context.Context, logger zerolog.Logger, userService user.UseCase, bookService book.UseCase, recommender recommend.UseCase, opts Options) *chi.Mux {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	v := validation.New()

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	if opts.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(opts.RateLimitPerMinute, time.Minute))
	}
	r.Use(middleware.Timeout(opts.Timeout))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"message": "Book Recommendation API"})
	})
	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Method(http.MethodGet, "/users", getUsers(userService))
		r.Method(http.MethodPost, "/users", postUser(userService, v))
		r.Method(http.MethodGet, "/users/{id}", getUser(userService))
		r.Method(http.MethodGet, "/users/{id}/books", getUserBooks(bookService))
		r.Method(http.MethodPost, "/users/{id}/books", postUserBook(bookService, v))
		r.Method(http.MethodGet, "/users/{id}/read-books", getUserReadBooks(bookService))
		r.Method(http.MethodGet, "/users/{id}/stats", getStats(recommender))
		r.Method(http.MethodGet, "/users/{id}/recommendations", getRecommendations(recommender))

		r.Method(http.MethodGet, "/books", getBooks(bookService))
		r.Method(http.MethodGet, "/books/{id}", getBook(bookService))
		r.Method(http.MethodPut, "/books/{id}/mark-read", putMarkRead(bookService, v))
	})

	return r
}

// requestID keeps the caller's X-Request-ID or assigns a uuid, and exposes it to chi and httplog
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
