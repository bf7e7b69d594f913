package manager

import "time"

type Role string

const (
	RoleManager           Role = "MANAGER"
	RoleDepartmentManager Role = "DEPARTMENT_MANAGER"
)

// Both roles carry the same privileges.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleDepartmentManager:
		return true
	default:
		return false
	}
}

type Manager struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"type:text;not null;uniqueIndex:uq_managers_username"`
	PasswordHash string    `gorm:"type:text;not null"`
	Name         string    `gorm:"type:text;not null"`
	Role         Role      `gorm:"type:manager_role;not null"`
	PhoneNumber  string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
}

func (Manager) TableName() string {
	return "managers"
}
