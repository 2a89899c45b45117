package auth

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, t *RefreshToken) error
	FindByToken(ctx context.Context, token string) (*RefreshToken, error)
	FindByUser(ctx context.Context, userID string) (*RefreshToken, error)
	DeleteByUser(ctx context.Context, userID string) error
	DeleteByToken(ctx context.Context, token string) error
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

func (r *repository) Create(ctx context.Context, t *RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindByToken(ctx context.Context, token string) (*RefreshToken, error) {
	var t RefreshToken
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Department").
		First(&t, "token = ?", token).Error
	return &t, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) (*RefreshToken, error) {
	var t RefreshToken
	err := r.db.WithContext(ctx).First(&t, "user_id = ?", userID).Error
	return &t, err
}

func (r *repository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&RefreshToken{}, "user_id = ?", userID).Error
}

func (r *repository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&RefreshToken{}, "token = ?", token).Error
}
