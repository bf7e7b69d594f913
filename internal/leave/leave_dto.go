package leave

type CreateLeaveRequest struct {
	EmployeeID   string  `json:"employee_id" binding:"required"`
	Department   string  `json:"department" binding:"required,oneof=HR FINANCE PRODUCTION MARKETING IT OPERATIONS QUALITY_CONTROL LOGISTICS"`
	Reason       string  `json:"reason" binding:"required"`
	LeaveDate    string  `json:"leave_date" binding:"required"`
	Location     string  `json:"location" binding:"required"`
	ContactPhone *string `json:"contact_phone"`
}

type UpdateLeaveStatusRequest struct {
	ID              uint    `json:"id"`
	Status          string  `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	ManagerID       uint    `json:"manager_id"`
	RejectionReason *string `json:"rejection_reason"`
}

type LeaveResponse struct {
	ID              uint    `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	Department      string  `json:"department"`
	Reason          string  `json:"reason"`
	LeaveDate       string  `json:"leave_date"`
	Location        string  `json:"location"`
	ContactPhone    *string `json:"contact_phone,omitempty"`
	Status          string  `json:"status"`
	ApprovedBy      *uint   `json:"approved_by"`
	ApprovedByName  *string `json:"approved_by_name"`
	ApprovedAt      *string `json:"approved_at"`
	RejectionReason *string `json:"rejection_reason"`
	CreatedAt       string  `json:"created_at"`
}
