package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go-leave/internal/app"
	"go-leave/internal/config"
	"go-leave/internal/manager"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/connection"

	"go.uber.org/zap"
)

func main() {
	username := flag.String("username", "", "login name")
	password := flag.String("password", "", "initial password (min 8 characters)")
	name := flag.String("name", "", "display name")
	role := flag.String("role", string(manager.RoleManager), "MANAGER or DEPARTMENT_MANAGER")
	phone := flag.String("phone", "", "phone number for new request notifications")
	flag.Parse()

	if *username == "" || *password == "" || *name == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 3)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("open database handle failed", zap.Error(err))
	}
	defer sqlDB.Close()

	svc := manager.NewService(
		manager.NewRepository(gormDB),
		manager.TokenConfig{Secret: cfg.JWT.Secret, TTL: cfg.JWT.TTL},
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Migrate(ctx, gormDB); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	created, err := svc.Create(ctx, manager.CreateManagerRequest{
		Username:    *username,
		Password:    *password,
		Name:        *name,
		Role:        manager.Role(*role),
		PhoneNumber: *phone,
	})
	if err != nil {
		logger.Fatal("create manager failed", zap.Error(err))
	}

	fmt.Printf("created manager %d (%s, %s)\n", created.ID, created.Username, created.Role)
}
