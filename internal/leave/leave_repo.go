package leave

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByUser(ctx context.Context, userID string) ([]Leave, error)
	FindByDepartment(ctx context.Context, departmentID string) ([]Leave, error)
	FindByStatus(ctx context.Context, status string) ([]Leave, error)
	FindByType(ctx context.Context, leaveType string) ([]Leave, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]Leave, error)
	FindApprovedByUserAndYear(ctx context.Context, userID string, year int) ([]Leave, error)
	SumApprovedWorkDays(ctx context.Context, userID string, year int) (int, error)
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Department").
		Preload("Department")
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.preloaded(ctx).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.preloaded(ctx).First(&l, "leaves.id = ?", id).Error
	return &l, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]Leave, error) {
	var leaves []Leave
	err := r.preloaded(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByDepartment(ctx context.Context, departmentID string) ([]Leave, error) {
	var leaves []Leave
	err := r.preloaded(ctx).
		Where("department_id = ?", departmentID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]Leave, error) {
	var leaves []Leave
	err := r.preloaded(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByType(ctx context.Context, leaveType string) ([]Leave, error) {
	var leaves []Leave
	err := r.preloaded(ctx).
		Where("leave_type = ?", leaveType).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

// FindByDateRange returns leaves whose start or end date falls inside the
// bounds.
func (r *repository) FindByDateRange(ctx context.Context, start, end time.Time) ([]Leave, error) {
	var leaves []Leave
	err := r.preloaded(ctx).
		Where("(start_date BETWEEN ? AND ?) OR (end_date BETWEEN ? AND ?)", start, end, start, end).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindApprovedByUserAndYear(ctx context.Context, userID string, year int) ([]Leave, error) {
	var leaves []Leave
	err := r.preloaded(ctx).
		Where("user_id = ? AND year = ? AND status = ?", userID, year, StatusApproved).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) SumApprovedWorkDays(ctx context.Context, userID string, year int) (int, error) {
	var used int
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Select("COALESCE(SUM(work_days), 0)").
		Where("user_id = ? AND year = ? AND status = ?", userID, year, StatusApproved).
		Scan(&used).Error
	return used, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Leave{}, "id = ?", id).Error
}
