package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-activity-locations/docs"
	"github.com/FACorreiaa/go-activity-locations/internal/api/activitylocation"
)

// Config contains dependencies needed for the router setup
type Config struct {
	LocationHandler *activitylocation.HandlerImpl
	// Timeout bounds every request except the event stream.
	Timeout         time.Duration
	AllowedOrigins  []string
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, request id, recoverer) is applied in
// main.go before mounting this router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id", "Last-Event-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Server-sent events stay open for as long as the client listens.
		cfg.LocationHandler.StreamRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(timeout))
			r.Use(middleware.Compress(5, "application/json"))
			cfg.LocationHandler.Routes(r)
		})
	})

	return r
}
