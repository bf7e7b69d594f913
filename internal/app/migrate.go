package app

import (
	"context"
	"fmt"
	"strings"

	"go-leave/internal/leave"
	"go-leave/internal/manager"
	"go-leave/internal/messaging/kafka"

	"gorm.io/gorm"
)

func enumDDL(name string, values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return fmt.Sprintf(
		`DO $$ BEGIN CREATE TYPE %s AS ENUM (%s); EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
		name, strings.Join(quoted, ", "),
	)
}

// Migrate creates the enum types, tables and outbox. Every step is idempotent.
func Migrate(ctx context.Context, db *gorm.DB) error {
	departments := make([]string, len(leave.Departments))
	for i, d := range leave.Departments {
		departments[i] = string(d)
	}

	enums := []string{
		enumDDL("department", departments),
		enumDDL("leave_status", []string{
			string(leave.StatusPending),
			string(leave.StatusApproved),
			string(leave.StatusRejected),
		}),
		enumDDL("manager_role", []string{
			string(manager.RoleManager),
			string(manager.RoleDepartmentManager),
		}),
	}
	for _, ddl := range enums {
		if err := db.WithContext(ctx).Exec(ddl).Error; err != nil {
			return fmt.Errorf("create enum: %w", err)
		}
	}

	if err := db.WithContext(ctx).AutoMigrate(&manager.Manager{}, &leave.LeaveRequest{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := kafka.EnsureSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("outbox schema: %w", err)
	}
	return nil
}
