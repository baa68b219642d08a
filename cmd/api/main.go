package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/recipebox/recipe-api/internal/api"
	"github.com/recipebox/recipe-api/internal/infrastructure/config"
	mongodb "github.com/recipebox/recipe-api/internal/infrastructure/db/mongo"
	redisdb "github.com/recipebox/recipe-api/internal/infrastructure/db/redis"
	"github.com/recipebox/recipe-api/pkg/logger"

	_ "github.com/recipebox/recipe-api/docs"
)

// @title        Recipebox API
// @version      1.0
// @description  Multi-user recipe management: token auth plus CRUD over recipes, tags and ingredients, scoped per user.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	e := api.NewRouter(db, rdb, cfg.TokenTTL, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting HTTP server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	if err := e.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
