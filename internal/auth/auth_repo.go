package auth

import (
	"context"
	"time"

	"proryx/internal/tenancy"
	"proryx/internal/user"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateRefreshToken(ctx context.Context, token *RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, hash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, hash string) error
	RevokeAllForUser(ctx context.Context, userID int64) error

	// GetUserByIDInTenant re-checks the tenant pair from the token
	// claims against the row. A stale token whose user moved tenants
	// resolves to not found.
	GetUserByIDInTenant(ctx context.Context, tc tenancy.Context, userID int64) (*user.User, error)
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

func (r *repository) CreateRefreshToken(ctx context.Context, token *RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *repository) GetRefreshTokenByHash(ctx context.Context, hash string) (*RefreshToken, error) {
	var token RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *repository) RevokeRefreshToken(ctx context.Context, hash string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", now).Error
}

func (r *repository) RevokeAllForUser(ctx context.Context, userID int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

func (r *repository) GetUserByIDInTenant(ctx context.Context, tc tenancy.Context, userID int64) (*user.User, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	var u user.User
	err := r.db.WithContext(ctx).
		Scopes(tenancy.Scope(tc)).
		First(&u, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
