package app

import (
	"context"
	"net/http"
	"time"

	"go-leave/internal/config"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the stores, migrates the schema and mounts every route
// on router. The returned cleanup closes what BuildApp opened.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	if err := Migrate(ctx, gormDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	log.Info("schema migrated")

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			log.Warn("redis unavailable, running without cache and idempotency", zap.Error(err))
			rdb = nil
		} else {
			log.Info("redis connection established")
		}
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		cors.New(corsConfig(cfg.Server.CORSAllowedOrigins)),
	)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	if err := registerModules(ctx, router, cfg, gormDB, sqlDB, rdb, logger); err != nil {
		sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		if rdb != nil {
			rdb.Close()
		}
		sqlDB.Close()
	}
	return cleanup, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	c.AllowHeaders = []string{
		"Origin", "Content-Length", "Content-Type", "Authorization", "Accept",
		middleware.HeaderRequestID, middleware.HeaderIdempotencyKey,
	}
	c.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	c.ExposeHeaders = []string{"Content-Disposition", middleware.HeaderRequestID}
	return c
}
