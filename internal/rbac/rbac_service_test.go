package rbac_test

import (
	"testing"

	"go-leave/internal/manager"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := rbac.NewService(enforcer, zap.NewNop())
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	roles := []manager.Role{manager.RoleManager, manager.RoleDepartmentManager}
	actions := []string{rbac.ActionRead, rbac.ActionApprove, rbac.ActionExport}

	for _, role := range roles {
		for _, action := range actions {
			allowed, err := svc.Enforce(string(role), rbac.ResourceLeave, action)
			assert.NoError(t, err)
			assert.True(t, allowed, "%s should be allowed to %s", role, action)
		}
	}
}

func TestRBACService_Deny(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
	}{
		{"unknown role", "EMPLOYEE", rbac.ResourceLeave, rbac.ActionRead},
		{"empty role", "", rbac.ResourceLeave, rbac.ActionApprove},
		{"unknown action", string(manager.RoleManager), rbac.ResourceLeave, "delete"},
		{"unknown resource", string(manager.RoleManager), "payroll", rbac.ActionRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tt.role, tt.resource, tt.action)
			assert.NoError(t, err)
			assert.False(t, allowed)
		})
	}
}
