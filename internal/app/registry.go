package app

import (
	"context"
	"database/sql"

	"go-leave/internal/config"
	"go-leave/internal/leave"
	"go-leave/internal/manager"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"
	"go-leave/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	sqlDB *sql.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	managerRepo := manager.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- Realtime ---
	hub := realtime.NewHub(cfg.Server.CORSAllowedOrigins, logger)
	go hub.Run(ctx)

	// --- Services ---
	managerService := manager.NewService(managerRepo, manager.TokenConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL,
	}, logger)
	leaveService := leave.NewService(
		gormDB,
		leaveRepo,
		managerRepo,
		newDispatcher(cfg.Notification, sqlDB, logger),
		leave.WithManagerPhoneNumbers(cfg.Notification.ManagerPhoneNumbers),
		leave.WithBroadcaster(hub),
		leave.WithRedis(rdb),
		leave.WithLogger(logger),
	)

	// --- Handlers ---
	managerHandler := manager.NewHandler(managerService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		manager.RegisterRoutes(api, managerHandler)
		realtime.RegisterRoutes(api, hub, rbacService, cfg.JWT.Secret)
		leave.RegisterRoutes(api, leaveHandler, rbacService, cfg.JWT.Secret, rdb)
	}

	return nil
}
