package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/igilife/insurance-portal/internal/api"
	"github.com/igilife/insurance-portal/internal/core/domain"
	"github.com/igilife/insurance-portal/internal/core/ports"
	"github.com/igilife/insurance-portal/internal/core/service"
	"github.com/igilife/insurance-portal/internal/infrastructure/config"
	"github.com/igilife/insurance-portal/internal/infrastructure/notify"
	"github.com/igilife/insurance-portal/internal/infrastructure/store"
	mongostore "github.com/igilife/insurance-portal/internal/infrastructure/store/mongo"
	redisstore "github.com/igilife/insurance-portal/internal/infrastructure/store/redis"
	sqlitestore "github.com/igilife/insurance-portal/internal/infrastructure/store/sqlite"
	"github.com/igilife/insurance-portal/pkg/logger"
)

// @title        IGI Life Insurance Portal API
// @version      1.0
// @description  Role-based identity and authorization core for the insurance portal.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "insurance-portal",
	})

	ctx := context.Background()

	kv, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("store unavailable")
	}
	defer cleanup()
	kv = store.Instrument(kv, cfg.StoreBackend)

	manager := service.NewSessionManager(kv, log)
	if err := manager.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}

	initialRole := domain.Role(cfg.InitialRole)
	if !domain.IsValidRole(initialRole) {
		initialRole = domain.RoleUser
	}
	engine := service.NewAccessEngine(initialRole)

	notifier := notify.NewLogNotifier(log)
	navigate := func(viewID string) {
		log.Debug().Str("view", viewID).Msg("navigate")
	}
	roleSync := service.NewRoleSync(manager, engine, notifier, navigate, initialRole, log)

	clients := service.NewClientService(kv, log)

	e := api.NewRouter(api.Dependencies{
		Manager:      manager,
		Engine:       engine,
		Switcher:     roleSync,
		Clients:      clients,
		Store:        kv,
		StoreBackend: cfg.StoreBackend,
		JWTSecret:    cfg.JWTSecret,
		Log:          log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.StoreBackend).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openStore selects and connects the persisted-store backend.
func openStore(ctx context.Context, cfg *config.Config) (ports.KVStore, func(), error) {
	switch cfg.StoreBackend {
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		return mongostore.NewStore(db), cleanup, nil

	case "redis":
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() { _ = client.Close() }
		return redisstore.NewStore(client), cleanup, nil

	default: // "sqlite"
		s, err := sqlitestore.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() { _ = s.Close() }
		return s, cleanup, nil
	}
}
