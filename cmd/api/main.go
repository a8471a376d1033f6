package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blanca/commerce-api/internal/api"
	"github.com/blanca/commerce-api/internal/api/handler"
	"github.com/blanca/commerce-api/internal/core/service"
	"github.com/blanca/commerce-api/internal/infrastructure/config"
	"github.com/blanca/commerce-api/internal/infrastructure/crypto"
	"github.com/blanca/commerce-api/internal/infrastructure/db/postgres"
	redisdb "github.com/blanca/commerce-api/internal/infrastructure/db/redis"
	"github.com/blanca/commerce-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "commerce-api",
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Postgres ---
	store, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	countryRepo := postgres.NewCountryRepository(store)
	userRepo := postgres.NewUserRepository(store)
	productRepo := postgres.NewProductRepository(store)
	orderRepo := postgres.NewOrderRepository(store)

	// --- Services ---
	hasher := crypto.NewBcryptHasher()
	throttle := redisdb.NewLoginThrottle(rdb)

	countryService := service.NewCountryService(countryRepo, log)
	userService := service.NewUserService(userRepo, countryRepo, hasher, log)
	productService := service.NewProductService(productRepo, log)
	orderService := service.NewOrderService(orderRepo, userRepo, productRepo, log)
	authService := service.NewAuthService(userService, userRepo, hasher, throttle, cfg.JWTSecret, cfg.JWTTTL, log)

	// --- HTTP ---
	e := api.NewRouter(api.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Country:    handler.NewCountryHandler(countryService),
		User:       handler.NewUserHandler(userService),
		Product:    handler.NewProductHandler(productService),
		Order:      handler.NewOrderHandler(orderService),
		Health:     handler.NewHealthHandler(),
		HealthDeps: handler.NewHealthDependenciesHandler(store, rdb),
	}, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting commerce api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("commerce api stopped")
}
