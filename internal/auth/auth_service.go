package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	autherrors "proryx/internal/auth/errors"
	"proryx/internal/rbac"
	"proryx/internal/shared/contextutil"
	"proryx/internal/tenancy"
	"proryx/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetMe(ctx context.Context, tc tenancy.Context, userID int64) (*AuthResponse, error)
}

// Options carries everything Login needs from configuration. The
// service never reads the environment.
type Options struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	MaxFailedLogins int
	LockoutDuration time.Duration
}

type service struct {
	repo     Repository
	userRepo user.Repository
	rbac     rbac.Service
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, userRepo user.Repository, rbacService rbac.Service, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:     repo,
		userRepo: userRepo,
		rbac:     rbacService,
		opts:     opts,
		logger:   l,
		now:      time.Now,
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *service) generateToken(u *user.User, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":    u.ID,
		"account_id": u.AccountID,
		"company_id": u.CompanyID,
		"role":       u.RoleSlug,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.opts.JWTSecret))
	if err != nil {
		return "", autherrors.ErrTokenGenerationFailed
	}
	return signed, nil
}

func (s *service) issuePair(ctx context.Context, u *user.User) (TokenPair, error) {
	accessToken, err := s.generateToken(u, s.opts.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := s.generateToken(u, s.opts.RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	record := &RefreshToken{
		UserID:    u.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: s.now().Add(s.opts.RefreshTokenTTL),
	}
	if err := s.repo.CreateRefreshToken(ctx, record); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Login is the one entry point that starts without a tenant context.
// The row found by email carries the tenant pair, which then goes into
// the token claims.
func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	u, err := s.userRepo.FindByEmailGlobal(ctx, email)
	if err != nil {
		// Same error for unknown email and bad password.
		s.logger.Warn("login unknown email", zap.String("request_id", rid))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	now := s.now()
	if u.IsLocked(now) {
		s.logger.Warn("login on locked account",
			zap.String("request_id", rid),
			zap.Int64("user_id", u.ID),
		)
		return TokenPair{}, AuthResponse{}, autherrors.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		u.FailedLoginAttempts++
		if u.FailedLoginAttempts >= s.opts.MaxFailedLogins {
			lockedUntil := now.Add(s.opts.LockoutDuration)
			u.LockedUntil = &lockedUntil
			u.FailedLoginAttempts = 0
			s.logger.Warn("account locked after repeated failures",
				zap.String("request_id", rid),
				zap.Int64("user_id", u.ID),
			)
		}
		if saveErr := s.userRepo.SaveGlobal(ctx, u); saveErr != nil {
			s.logger.Error("persist failed-login counter failed", zap.Error(saveErr))
		}
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	// Successful login resets the lockout state.
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	u.LastLoginAt = &now
	if err := s.userRepo.SaveGlobal(ctx, u); err != nil {
		s.logger.Error("persist last login failed", zap.Error(err))
	}

	if err := s.rbac.LoadCompanyPolicy(u.AccountID, u.CompanyID); err != nil {
		s.logger.Error("load company policy failed", zap.Error(err))
		return TokenPair{}, AuthResponse{}, err
	}

	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	s.logger.Info("login succeeded",
		zap.String("request_id", rid),
		zap.Int64("user_id", u.ID),
		zap.Int64("account_id", u.AccountID),
		zap.Int64("company_id", u.CompanyID),
	)

	return pair, mapToAuthResponse(u), nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.opts.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}
	accountID, ok1 := claims["account_id"].(float64)
	companyID, ok2 := claims["company_id"].(float64)
	if !ok1 || !ok2 {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}

	// The token must still be known and unrevoked server-side.
	hash := hashToken(refreshToken)
	record, err := s.repo.GetRefreshTokenByHash(ctx, hash)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !record.Usable(s.now()) {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	tc, err := tenancy.NewContext(int64(accountID), int64(companyID))
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.repo.GetUserByIDInTenant(ctx, tc, int64(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPair{}, AuthResponse{}, autherrors.ErrUserNotFound
		}
		return TokenPair{}, AuthResponse{}, err
	}
	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	// Rotate: the old token dies with the new issuance.
	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil {
		s.logger.Error("revoke old refresh token failed", zap.Error(err))
	}

	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	return pair, mapToAuthResponse(u), nil
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repo.RevokeRefreshToken(ctx, hashToken(refreshToken))
}

func (s *service) GetMe(ctx context.Context, tc tenancy.Context, userID int64) (*AuthResponse, error) {
	u, err := s.repo.GetUserByIDInTenant(ctx, tc, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, err
	}

	resp := mapToAuthResponse(u)
	return &resp, nil
}

func mapToAuthResponse(u *user.User) AuthResponse {
	return AuthResponse{
		UUID:        u.UUID.String(),
		Email:       u.Email,
		FullName:    u.FullName,
		RoleSlug:    u.RoleSlug,
		LastLoginAt: u.LastLoginAt,
	}
}
