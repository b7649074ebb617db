package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/FACorreiaa/go-typeahead/internal/api/city"
	"github.com/FACorreiaa/go-typeahead/internal/api/person"
)

// Config contains dependencies needed for the router setup
type Config struct {
	PersonHandler *person.Handler
	CityHandler   *city.Handler
	// SearchRateLimit is requests per minute per client IP on the JSON routes. 0 disables it.
	SearchRateLimit int
	AllowedOrigins  []string
}

// SetupRouter builds the application routes. Server-wide middleware (request
// id, logging, recoverer) is applied in main before mounting this router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		if cfg.SearchRateLimit > 0 {
			r.Use(httprate.LimitByIP(cfg.SearchRateLimit, time.Minute))
		}

		r.Get("/person/json/search", cfg.PersonHandler.Search)
		r.Get("/person/json/{personID}", cfg.PersonHandler.GetByID)

		r.Get("/city/json/search", cfg.CityHandler.Search)
		r.Get("/city/json/{cityID}", cfg.CityHandler.GetByID)
	})

	return r
}
