package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/lien-travel/planner-backend/api/controllers"
	"github.com/lien-travel/planner-backend/api/routes"
	"github.com/lien-travel/planner-backend/internal/auth"
	"github.com/lien-travel/planner-backend/internal/locations"
	"github.com/lien-travel/planner-backend/internal/places"
	"github.com/lien-travel/planner-backend/internal/templates"
	"github.com/lien-travel/planner-backend/pkg/auth/session"
	"github.com/lien-travel/planner-backend/pkg/config"
	"github.com/lien-travel/planner-backend/pkg/db"
	"github.com/lien-travel/planner-backend/pkg/instance"
	"github.com/lien-travel/planner-backend/pkg/logger"
	"github.com/lien-travel/planner-backend/pkg/maps"
	"github.com/lien-travel/planner-backend/pkg/metrics"
	"github.com/lien-travel/planner-backend/pkg/migrate"
	"github.com/lien-travel/planner-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	operationMetrics := metrics.NewOperationMetrics(registry)

	authService, err := auth.NewService(auth.ServiceParams{
		Tx:              dbClient,
		UserRepoFactory: auth.UserRepoFactory,
		SessionManager:  sessionManager,
		JWTConfig:       cfg.JWT,
		PasswordConfig:  cfg.Password,
	})
	if err != nil {
		return err
	}

	locationRepo := locations.NewRepository(dbClient.DB())
	locationService, err := locations.NewService(locations.ServiceParams{
		Repo:    locationRepo,
		Tx:      dbClient,
		Metrics: operationMetrics,
	})
	if err != nil {
		return err
	}

	templateService, err := templates.NewService(templates.ServiceParams{
		Repo:      templates.NewRepository(dbClient.DB()),
		Locations: locationRepo,
		Tx:        dbClient,
		Metrics:   operationMetrics,
	})
	if err != nil {
		return err
	}

	placesService := places.NewService(nil)
	if cfg.GoogleMaps.Enabled() {
		mapsClient, err := maps.NewClient(ctx, cfg.GoogleMaps)
		if err != nil {
			return err
		}
		placesService = places.NewService(mapsClient)
	} else {
		logg.Warn(ctx, "google maps api key not configured, place lookups disabled")
	}

	handler := routes.NewRouter(routes.Dependencies{
		Config:   cfg,
		Logger:   logg,
		Sessions: sessionManager,
		Redis:    redisClient,
		Health: map[string]controllers.Pinger{
			"db":    dbClient,
			"redis": redisClient,
		},
		Gatherer:  registry,
		HTTP:      metrics.NewHTTPMetrics(registry),
		Auth:      authService,
		Locations: locationService,
		Templates: templateService,
		Places:    placesService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(logCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
