package leave

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id uint) (*LeaveRequest, error)
	TransitionStatus(ctx context.Context, id uint, t Transition) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("Approver").Create(l).Error
}

// FindAll returns every request newest first, with the approving manager
// joined in. Requests created in the same instant are ordered by id.
func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Joins("Approver").
		Order(`"leave_requests"."created_at" DESC`).
		Order(`"leave_requests"."id" DESC`).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Joins("Approver").
		Where(`"leave_requests"."id" = ?`, id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// TransitionStatus applies the decision only if the row is still PENDING.
// It reports false when another decision got there first.
func (r *repository) TransitionStatus(ctx context.Context, id uint, t Transition) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":           t.Status,
			"approved_by":      t.ApprovedBy,
			"approved_at":      t.ApprovedAt,
			"rejection_reason": t.RejectionReason,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
