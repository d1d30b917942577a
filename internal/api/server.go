package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tcassidy/brotherhood-data/internal/api/handler"
	"github.com/tcassidy/brotherhood-data/internal/api/respond"
	"github.com/tcassidy/brotherhood-data/internal/cache"
	"github.com/tcassidy/brotherhood-data/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *pgxpool.Pool, appCache *cache.Cache, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS — permissive for the admin UI; preflight OPTIONS returns 200.
	c := corslib.New(corslib.Options{
		AllowedOrigins:       cfg.CORSAllowOrigins,
		AllowedMethods:       []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:       []string{"Accept", "Accept-Encoding", "Authorization", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:       []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials:     false,
		OptionsSuccessStatus: http.StatusOK,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// Unsupported verbs get a 405 with an Allow header.
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Allow", "GET, POST, PUT, DELETE, OPTIONS")
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// --- Handler dependencies ---
	h := handler.New(pool, appCache, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/areas", func(r chi.Router) {
			r.Get("/", h.ListAreas)
			r.Post("/", h.CreateArea)
			r.Get("/{id}", h.GetArea)
			r.Put("/{id}", h.UpdateArea)
			r.Delete("/{id}", h.ArchiveArea)
		})

		r.Route("/communities", func(r chi.Router) {
			r.Get("/", h.ListCommunities)
			r.Post("/", h.CreateCommunity)
			r.Get("/{id}", h.GetCommunity)
			r.Put("/{id}", h.UpdateCommunity)
			r.Delete("/{id}", h.ArchiveCommunity)
		})

		r.Route("/venues", func(r chi.Router) {
			r.Get("/", h.ListVenues)
			r.Post("/", h.CreateVenue)
			r.Get("/{id}", h.GetVenue)
			r.Put("/{id}", h.UpdateVenue)
			r.Delete("/{id}", h.DeleteVenue)
		})

		r.Route("/i-groups", func(r chi.Router) {
			r.Get("/", h.SearchIGroups)
			r.Post("/", h.CreateIGroup)
			r.Get("/{id}", h.GetIGroup)
			r.Put("/{id}", h.UpdateIGroup)
			r.Delete("/{id}", h.ArchiveIGroup)
		})

		r.Route("/f-groups", func(r chi.Router) {
			r.Get("/", h.ListFGroups)
			r.Post("/", h.CreateFGroup)
			r.Get("/{id}", h.GetFGroup)
			r.Put("/{id}", h.UpdateFGroup)
			r.Delete("/{id}", h.ArchiveFGroup)
		})

		r.Route("/warriors", func(r chi.Router) {
			r.Get("/", h.ListWarriors)
			r.Post("/", h.CreateWarrior)
			r.Get("/{id}", h.GetWarrior)
			r.Put("/{id}", h.UpdateWarrior)
			r.Delete("/{id}", h.ArchiveWarrior)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Get("/{id}", h.GetUser)
			r.Put("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.ArchiveUser)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.ListEvents)
			r.Post("/", h.CreateEvent)
			r.Get("/{id}", h.GetEvent)
			r.Put("/{id}", h.UpdateEvent)
			r.Delete("/{id}", h.ArchiveEvent)
		})

		r.Route("/nwta-events", func(r chi.Router) {
			r.Get("/", h.ListNWTAEvents)
			r.Post("/", h.CreateNWTAEvent)
			r.Get("/{id}", h.GetNWTAEvent)
			r.Put("/{id}", h.UpdateNWTAEvent)
			r.Post("/{id}/participants", h.RegisterNWTAParticipant)
			r.Post("/{id}/staff", h.RegisterNWTAStaff)
		})
	})

	return r
}
