package account

import (
	"context"
	"errors"
	"strings"

	accounterrors "proryx/internal/account/errors"
	"proryx/internal/shared/apperror"
	"proryx/internal/shared/contextutil"
	"proryx/internal/tenancy"
	"proryx/internal/user"
	usererrors "proryx/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=account_service.go -destination=mock/account_service_mock.go -package=mock
type Service interface {
	// Onboard creates the account, its first company, and the first
	// admin user in one transaction. Nothing is visible until all
	// three rows commit.
	Onboard(ctx context.Context, req OnboardRequest) (OnboardResponse, error)

	GetAccount(ctx context.Context, accountID int64) (*AccountResponse, error)
	CreateCompany(ctx context.Context, accountID int64, req CreateCompanyRequest) (*CompanyResponse, error)
	ListCompanies(ctx context.Context, accountID int64) ([]CompanyResponse, error)
	UpdateCompany(ctx context.Context, accountID int64, companyUUID string, req UpdateCompanyRequest) (*CompanyResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	userRepo user.Repository
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, userRepo user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("account.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("account.service")
	}
	return &service{db: db, repo: repo, userRepo: userRepo, logger: l}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return accounterrors.ErrAccountNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "company_name") {
			return accounterrors.ErrCompanyNameTaken
		}
		if strings.Contains(pgErr.ConstraintName, "email") {
			return usererrors.ErrUserAlreadyExists
		}
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "account repository failure", 500)
}

func (s *service) Onboard(ctx context.Context, req OnboardRequest) (OnboardResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Info("onboarding requested",
		zap.String("request_id", rid),
		zap.String("account_name", req.AccountName),
		zap.String("admin_email", req.AdminEmail),
	)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return OnboardResponse{}, err
	}

	var (
		acc   Account
		comp  Company
		admin user.User
	)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		acc = Account{
			UUID:   uuid.New(),
			Name:   req.AccountName,
			Status: StatusActive,
		}
		if err := repo.CreateAccount(ctx, &acc); err != nil {
			return err
		}

		comp = Company{
			UUID:      uuid.New(),
			AccountID: acc.ID,
			Name:      req.CompanyName,
			Status:    StatusActive,
		}
		if err := repo.CreateCompany(ctx, &comp); err != nil {
			return err
		}

		// The new rows form the tenant pair for the admin user.
		tc, err := tenancy.NewContext(acc.ID, comp.ID)
		if err != nil {
			return err
		}

		admin = user.User{
			Email:        req.AdminEmail,
			PasswordHash: string(hash),
			FullName:     req.AdminFullName,
			RoleSlug:     user.RoleAdmin,
			IsActive:     true,
		}
		return s.userRepo.WithTx(tx).Create(ctx, tc, &admin)
	})
	if err != nil {
		s.logger.Error("onboarding failed", zap.String("request_id", rid), zap.Error(err))
		return OnboardResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("onboarding completed",
		zap.String("request_id", rid),
		zap.Int64("account_id", acc.ID),
		zap.Int64("company_id", comp.ID),
	)

	return OnboardResponse{
		Account:   mapAccountToResponse(&acc, nil),
		Company:   mapCompanyToResponse(&comp),
		AdminUUID: admin.UUID.String(),
	}, nil
}

func (s *service) GetAccount(ctx context.Context, accountID int64) (*AccountResponse, error) {
	acc, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	comps, err := s.repo.ListCompanies(ctx, accountID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := mapAccountToResponse(acc, comps)
	return &resp, nil
}

func (s *service) CreateCompany(ctx context.Context, accountID int64, req CreateCompanyRequest) (*CompanyResponse, error) {
	acc, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if acc.Status != StatusActive {
		return nil, accounterrors.ErrAccountSuspended
	}

	comp := Company{
		UUID:      uuid.New(),
		AccountID: accountID,
		Name:      req.Name,
		LegalName: req.LegalName,
		Status:    StatusActive,
	}
	if err := s.repo.CreateCompany(ctx, &comp); err != nil {
		s.logger.Error("create company failed", zap.Int64("account_id", accountID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := mapCompanyToResponse(&comp)
	return &resp, nil
}

func (s *service) ListCompanies(ctx context.Context, accountID int64) ([]CompanyResponse, error) {
	comps, err := s.repo.ListCompanies(ctx, accountID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	result := make([]CompanyResponse, 0, len(comps))
	for i := range comps {
		result = append(result, mapCompanyToResponse(&comps[i]))
	}
	return result, nil
}

func (s *service) UpdateCompany(ctx context.Context, accountID int64, companyUUID string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	cid, err := uuid.Parse(companyUUID)
	if err != nil {
		return nil, accounterrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetCompanyByUUID(ctx, accountID, cid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accounterrors.ErrCompanyNotFound
		}
		return nil, mapRepositoryError(err)
	}

	if req.Name != "" {
		comp.Name = req.Name
	}
	if req.LegalName != "" {
		comp.LegalName = req.LegalName
	}
	if req.Status == StatusActive || req.Status == StatusSuspended {
		comp.Status = req.Status
	}

	if err := s.repo.UpdateCompany(ctx, comp); err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := mapCompanyToResponse(comp)
	return &resp, nil
}

func mapAccountToResponse(acc *Account, comps []Company) AccountResponse {
	resp := AccountResponse{
		UUID:      acc.UUID.String(),
		Name:      acc.Name,
		Status:    acc.Status,
		CreatedAt: acc.CreatedAt,
	}
	for i := range comps {
		resp.Companies = append(resp.Companies, mapCompanyToResponse(&comps[i]))
	}
	return resp
}

func mapCompanyToResponse(comp *Company) CompanyResponse {
	return CompanyResponse{
		UUID:      comp.UUID.String(),
		Name:      comp.Name,
		LegalName: comp.LegalName,
		Status:    comp.Status,
		CreatedAt: comp.CreatedAt,
	}
}
