package leave

import (
	"time"

	"go-leave/internal/manager"
)

type Department string

const (
	DepartmentHR             Department = "HR"
	DepartmentFinance        Department = "FINANCE"
	DepartmentProduction     Department = "PRODUCTION"
	DepartmentMarketing      Department = "MARKETING"
	DepartmentIT             Department = "IT"
	DepartmentOperations     Department = "OPERATIONS"
	DepartmentQualityControl Department = "QUALITY_CONTROL"
	DepartmentLogistics      Department = "LOGISTICS"
)

var Departments = []Department{
	DepartmentHR,
	DepartmentFinance,
	DepartmentProduction,
	DepartmentMarketing,
	DepartmentIT,
	DepartmentOperations,
	DepartmentQualityControl,
	DepartmentLogistics,
}

func (d Department) Valid() bool {
	switch d {
	case DepartmentHR, DepartmentFinance, DepartmentProduction, DepartmentMarketing,
		DepartmentIT, DepartmentOperations, DepartmentQualityControl, DepartmentLogistics:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Decision reports whether s is a status a manager can move a request to.
func (s Status) Decision() bool {
	switch s {
	case StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// LeaveRequest rows go PENDING -> APPROVED|REJECTED exactly once.
// ApprovedBy and ApprovedAt are set together with the decision.
type LeaveRequest struct {
	ID              uint       `gorm:"primaryKey"`
	EmployeeID      string     `gorm:"type:text;not null;index:idx_leave_requests_employee"`
	Department      Department `gorm:"type:department;not null"`
	Reason          string     `gorm:"type:text;not null"`
	LeaveDate       time.Time  `gorm:"type:date;not null"`
	Location        string     `gorm:"type:text;not null"`
	ContactPhone    *string    `gorm:"type:text"`
	Status          Status     `gorm:"type:leave_status;not null;default:'PENDING';index:idx_leave_requests_status"`
	ApprovedBy      *uint
	ApprovedAt      *time.Time
	RejectionReason *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null;default:now();index:idx_leave_requests_created_at"`

	Approver *manager.Manager `gorm:"foreignKey:ApprovedBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// ApproverName is the display name of the deciding manager, or "" when the
// request is still pending or the approver was not loaded.
func (l LeaveRequest) ApproverName() string {
	if l.Approver == nil {
		return ""
	}
	return l.Approver.Name
}

// Transition is the single write that records a manager's decision.
type Transition struct {
	Status          Status
	ApprovedBy      uint
	ApprovedAt      time.Time
	RejectionReason *string
}
