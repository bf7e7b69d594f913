package manager

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=manager_repo.go -destination=mock/manager_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uint) (*Manager, error)
	FindByUsername(ctx context.Context, username string) (*Manager, error)
	Create(ctx context.Context, m *Manager) error
	ListPhoneNumbers(ctx context.Context) ([]string, error)
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

func (r *repository) FindByID(ctx context.Context, id uint) (*Manager, error) {
	var m Manager
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindByUsername matches the username exactly (case sensitive).
func (r *repository) FindByUsername(ctx context.Context, username string) (*Manager, error) {
	var m Manager
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) Create(ctx context.Context, m *Manager) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) ListPhoneNumbers(ctx context.Context) ([]string, error) {
	var phones []string
	err := r.db.WithContext(ctx).
		Model(&Manager{}).
		Where("phone_number <> ''").
		Order("id ASC").
		Pluck("phone_number", &phones).Error
	return phones, err
}
