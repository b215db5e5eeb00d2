package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lien-travel/planner-backend/api/controllers"
	"github.com/lien-travel/planner-backend/api/middleware"
	"github.com/lien-travel/planner-backend/internal/auth"
	"github.com/lien-travel/planner-backend/internal/locations"
	"github.com/lien-travel/planner-backend/internal/places"
	"github.com/lien-travel/planner-backend/internal/templates"
	"github.com/lien-travel/planner-backend/pkg/auth/session"
	"github.com/lien-travel/planner-backend/pkg/config"
	"github.com/lien-travel/planner-backend/pkg/logger"
	"github.com/lien-travel/planner-backend/pkg/metrics"
	"github.com/lien-travel/planner-backend/pkg/redis"
)

// redisStore is the redis surface the HTTP layer needs for rate limits and
// idempotent replays.
type redisStore interface {
	redis.IdempotencyStore
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Dependencies bundles everything the router mounts.
type Dependencies struct {
	Config    *config.Config
	Logger    *logger.Logger
	Sessions  session.AccessSessionChecker
	Redis     redisStore
	Health    map[string]controllers.Pinger
	Gatherer  prometheus.Gatherer
	HTTP      *metrics.HTTPMetrics
	Auth      auth.Service
	Locations locations.Service
	Templates templates.Service
	Places    places.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Logging(logg, deps.HTTP),
	)

	var (
		rateStore        middleware.RateLimitStore
		idempotencyStore redis.IdempotencyStore
	)
	if deps.Redis != nil {
		rateStore = deps.Redis
		idempotencyStore = deps.Redis
	}
	idempotent := middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Health, logg))
	})

	if cfg.Metrics.Enabled && deps.Gatherer != nil {
		r.Handle(metricsPath(cfg.Metrics), promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(middleware.LoginRateLimitPolicy(cfg.AuthRateLimit), rateStore, logg)).
			Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(
			middleware.AuthRateLimit(middleware.RegisterRateLimitPolicy(cfg.AuthRateLimit), rateStore, logg),
			idempotent,
		).Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(idempotent)

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", controllers.LocationsList(deps.Locations, logg))
			r.Post("/", controllers.LocationsCreate(deps.Locations, logg))
			r.Get("/{locationId}", controllers.LocationsGet(deps.Locations, logg))
			r.Put("/{locationId}", controllers.LocationsUpdate(deps.Locations, logg))
			r.Delete("/{locationId}", controllers.LocationsDelete(deps.Locations, logg))
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", controllers.TemplatesList(deps.Templates, cfg.Pagination, logg))
			r.Post("/", controllers.TemplatesCreate(deps.Templates, logg))

			r.Route("/{templateId}", func(r chi.Router) {
				r.Get("/", controllers.TemplatesGet(deps.Templates, logg))
				r.Put("/", controllers.TemplatesUpdate(deps.Templates, logg))
				r.Delete("/", controllers.TemplatesDelete(deps.Templates, logg))

				r.Post("/checklist-sections", controllers.ChecklistSectionsCreate(deps.Templates, logg))
				r.Put("/checklist-sections/{sectionId}", controllers.ChecklistSectionsUpdate(deps.Templates, logg))
				r.Delete("/checklist-sections/{sectionId}", controllers.ChecklistSectionsDelete(deps.Templates, logg))

				r.Post("/days", controllers.DaysCreate(deps.Templates, logg))
				r.Route("/days/{dayId}", func(r chi.Router) {
					r.Put("/", controllers.DaysUpdate(deps.Templates, logg))
					r.Delete("/", controllers.DaysDelete(deps.Templates, logg))

					r.Post("/activities", controllers.ActivitiesCreate(deps.Templates, logg))
					r.Put("/activities/{activityId}", controllers.ActivitiesUpdate(deps.Templates, logg))
					r.Delete("/activities/{activityId}", controllers.ActivitiesDelete(deps.Templates, logg))
				})
			})
		})

		r.Route("/places", func(r chi.Router) {
			r.Get("/autocomplete", controllers.PlacesAutocomplete(deps.Places, logg))
			r.Get("/{placeId}", controllers.PlacesResolve(deps.Places, logg))
		})
	})

	return r
}

func metricsPath(cfg config.MetricsConfig) string {
	if cfg.Path == "" {
		return "/metrics"
	}
	return cfg.Path
}
