// @title        User Service API
// @version      1.0
// @description  CRUD service for users with photo upload and retrieval.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/99minutos/user-service/internal/api"
	"github.com/99minutos/user-service/internal/api/handler"
	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
	"github.com/99minutos/user-service/internal/core/service"
	"github.com/99minutos/user-service/internal/infrastructure/config"
	mongostore "github.com/99minutos/user-service/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/user-service/internal/infrastructure/db/redis"
	"github.com/99minutos/user-service/internal/infrastructure/storage"
	"github.com/99minutos/user-service/pkg/logger"
)

const serviceName = "user-service"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Service: serviceName})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Service: serviceName,
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- MongoDB ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	userRepo := mongostore.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx, cfg.Users.UniqueEmail); err != nil {
		return err
	}

	checks := map[string]handler.DependencyCheck{
		"mongodb": func(ctx context.Context) error { return mongostore.Ping(ctx, db) },
	}

	// --- Redis (optional) ---
	var userCache ports.UserCache
	if cfg.Redis.Enabled {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:       cfg.Redis.Addr,
			DB:         cfg.Redis.DB,
			ClientName: serviceName,
			PoolSize:   cfg.Redis.PoolSize,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		userCache = redisstore.NewUserCache(rdb, cfg.Redis.CacheTTL)
		checks["redis"] = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("redis user cache enabled")
	}

	// --- Uploads ---
	store, err := storage.NewLocalStore(afero.NewOsFs(), cfg.Upload.Dir)
	if err != nil {
		return err
	}

	// --- Services ---
	users := service.NewUserService(userRepo, userCache, domain.NewUserValidator(cfg.Users.RequirePhoto), log)
	files := service.NewFileService(store, log)

	e := api.NewRouter(api.Server{
		Users:         users,
		Files:         files,
		Logger:        log,
		HealthChecks:  checks,
		UploadLimitMB: cfg.Upload.MaxMB,
		AllowOrigins:  cfg.AllowOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("http server stopped gracefully")
	return nil
}
