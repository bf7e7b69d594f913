package rbac

import "go-leave/internal/manager"

const (
	ResourceLeave = "leave"

	ActionRead    = "read"
	ActionApprove = "approve"
	ActionExport  = "export"
)

// Permission is one resource/action pair.
type Permission struct {
	Resource string
	Action   string
}

// baseRole holds the permissions every manager role inherits.
const baseRole = "role:manager"

var basePermissions = []Permission{
	{ResourceLeave, ActionRead},
	{ResourceLeave, ActionApprove},
	{ResourceLeave, ActionExport},
}

// MANAGER and DEPARTMENT_MANAGER have identical privileges.
var roleInheritance = map[manager.Role]string{
	manager.RoleManager:           baseRole,
	manager.RoleDepartmentManager: baseRole,
}
