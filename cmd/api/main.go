// @title                       ServiceHub Marketplace API
// @version                     1.0
// @description                 Home-services marketplace: accounts, sessions, bookings, provider dashboard and discovery.
// @BasePath                    /
// @securityDefinitions.apikey  SessionAuth
// @in                          header
// @name                        Authorization
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/servicehub/marketplace/docs"
	"github.com/servicehub/marketplace/internal/api"
	"github.com/servicehub/marketplace/internal/api/handler"
	"github.com/servicehub/marketplace/internal/core/service"
	"github.com/servicehub/marketplace/internal/infrastructure/db/mongo"
	"github.com/servicehub/marketplace/internal/infrastructure/db/redis"
	"github.com/servicehub/marketplace/internal/infrastructure/geocode"
	"github.com/servicehub/marketplace/internal/infrastructure/queue"
	"github.com/servicehub/marketplace/internal/pkg/config"
	"github.com/servicehub/marketplace/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "servicehub",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Stores
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, Timeout: cfg.Mongo.Timeout})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}()

	// Adapters
	users := mongo.NewUserRepository(db)
	providers := mongo.NewProviderRepository(db)
	bookings := mongo.NewBookingRepository(db)
	bookingEvents := mongo.NewBookingEventRepository(db)

	// Core services
	accountSvc := service.NewAccountService(users, providers, cfg.Auth.BcryptCost, logger.Component("accounts"))
	sessionSvc := service.NewSessionService(users, providers, redis.NewSessionStore(rdb), cfg.Auth.SessionTTL, logger.Component("sessions"))
	bookingSvc := service.NewBookingService(bookings, users, providers, bookingEvents, loc, logger.Component("bookings"))
	dashboardSvc := service.NewDashboardService(bookings, users, providers, loc, logger.Component("dashboard"))
	directorySvc := service.NewDirectoryService(providers)
	geocodeSvc := service.NewGeocodeService(
		geocode.NewNominatim(cfg.Geocoder.BaseURL, cfg.Geocoder.Timeout),
		redis.NewGeocodeCache(rdb),
		logger.Component("geocode"),
	)
	eventSvc := service.NewEventService(bookingSvc, redis.NewDedupChecker(rdb), logger.Component("events"))

	// Completion event workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Dispatcher.Workers, eventSvc, logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	// HTTP
	e := api.NewRouter(api.Deps{
		Accounts:   accountSvc,
		Sessions:   sessionSvc,
		Bookings:   bookingSvc,
		Dashboard:  dashboardSvc,
		Directory:  directorySvc,
		Geocode:    geocodeSvc,
		Dispatcher: dispatcher,
		Health: []handler.Dependency{
			{Name: "mongodb", Ping: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
		Location: loc,
		Cookie: handler.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
			TTL:    cfg.Auth.SessionTTL,
		},
		LoginRateLimit:    cfg.Auth.LoginRateLimit,
		IntegrationSecret: cfg.Auth.IntegrationJWTSecret,
		Log:               logger.Component("http"),
	})

	if cfg.Auth.IntegrationJWTSecret == "" {
		log.Warn().Msg("INTEGRATION_JWT_SECRET not set, completion events are disabled")
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("timezone", loc.String()).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
