package user

import (
	"context"
	"errors"
	"time"

	usererrors "proryx/internal/user/errors"

	"proryx/internal/shared/apperror"
	"proryx/internal/shared/contextutil"
	"proryx/internal/tenancy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tc tenancy.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context, tc tenancy.Context) ([]UserResponse, error)
	GetByUUID(ctx context.Context, tc tenancy.Context, id string) (UserResponse, error)
	Update(ctx context.Context, tc tenancy.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, tc tenancy.Context, id string) error
	ChangePassword(ctx context.Context, tc tenancy.Context, id string, req ChangePasswordRequest) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, tenancy.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usererrors.ErrUserAlreadyExists
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "user repository failure", 500)
}

func (s *service) Create(
	ctx context.Context,
	tc tenancy.Context,
	req CreateUserRequest,
) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create user requested",
		zap.String("request_id", rid),
		zap.Int64("account_id", tc.AccountID),
		zap.Int64("company_id", tc.CompanyID),
		zap.String("email", req.Email),
	)

	if !ValidRole(req.RoleSlug) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create user hash failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		RoleSlug:     req.RoleSlug,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, tc, u); err != nil {
		s.logger.Error("create user failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(u), nil
}

func (s *service) GetAll(ctx context.Context, tc tenancy.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx, tc)
	if err != nil {
		s.logger.Error("get all users failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, mapToResponse(&users[i]))
	}
	return result, nil
}

func (s *service) GetByUUID(ctx context.Context, tc tenancy.Context, id string) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByUUID(ctx, tc, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(u), nil
}

func (s *service) Update(
	ctx context.Context,
	tc tenancy.Context,
	id string,
	req UpdateUserRequest,
) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByUUID(ctx, tc, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.RoleSlug != "" {
		if !ValidRole(req.RoleSlug) {
			return UserResponse{}, usererrors.ErrInvalidRole
		}
		u.RoleSlug = req.RoleSlug
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, tc, u); err != nil {
		s.logger.Error("update user failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(u), nil
}

func (s *service) Delete(ctx context.Context, tc tenancy.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	if err := s.repo.Delete(ctx, tc, uid); err != nil {
		s.logger.Error("delete user failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) ChangePassword(
	ctx context.Context,
	tc tenancy.Context,
	id string,
	req ChangePasswordRequest,
) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByUUID(ctx, tc, uid)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	now := time.Now()
	u.UpdatedAt = now

	if err := s.repo.Update(ctx, tc, u); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func mapToResponse(u *User) UserResponse {
	return UserResponse{
		UUID:        u.UUID.String(),
		Email:       u.Email,
		FullName:    u.FullName,
		RoleSlug:    u.RoleSlug,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
