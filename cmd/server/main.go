package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crackit360/practice-platform/internal/api"
	"github.com/crackit360/practice-platform/internal/core/service"
	"github.com/crackit360/practice-platform/internal/infrastructure/config"
	mongodb "github.com/crackit360/practice-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/crackit360/practice-platform/internal/infrastructure/db/redis"
	"github.com/crackit360/practice-platform/internal/infrastructure/queue"
	"github.com/crackit360/practice-platform/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        CrackIt360 Practice Platform API
// @version      1.0
// @description  Quiz and practice backend: auth, practice sets, speed tests, daily quizzes, discussions and uploads.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in    header
// @name  Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{Level: "info"})
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// The dispatcher outlives the signal context so events enqueued while
	// the server drains in-flight requests are still written out.
	activityService := service.NewActivityService(mongodb.NewActivityRepository(db), log)
	dispatcher := queue.NewDispatcher(0, activityService, log)
	dispatcher.Start(context.Background())

	e, err := api.NewRouter(ctx, cfg, db, rdb, dispatcher, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// Drain buffered activity events only after the last request finished.
	dispatcher.Stop()
}
