package vendor

import (
	"context"
	"errors"
	"strings"

	"proryx/internal/shared/apperror"
	"proryx/internal/tenancy"
	vendorerrors "proryx/internal/vendors/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

//go:generate mockgen -source=vendor_service.go -destination=mock/vendor_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tc tenancy.Context, req CreateVendorRequest) (VendorResponse, error)
	GetAll(ctx context.Context, tc tenancy.Context) ([]VendorResponse, error)
	GetByUUID(ctx context.Context, tc tenancy.Context, id string) (VendorResponse, error)
	Update(ctx context.Context, tc tenancy.Context, id string, req UpdateVendorRequest) (VendorResponse, error)
	Delete(ctx context.Context, tc tenancy.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("vendor.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vendor.service")
	}
	return &service{repo: repo, logger: l}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, tenancy.ErrNotFound) {
		return vendorerrors.ErrVendorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "vendor_code") {
			return vendorerrors.ErrVendorCodeTaken
		}
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "vendor repository failure", 500)
}

func (s *service) Create(
	ctx context.Context,
	tc tenancy.Context,
	req CreateVendorRequest,
) (VendorResponse, error) {
	if !ValidVendorType(req.VendorType) {
		return VendorResponse{}, vendorerrors.ErrInvalidVendorType
	}

	if _, err := s.repo.FindByCode(ctx, tc, req.VendorCode); err == nil {
		return VendorResponse{}, vendorerrors.ErrVendorCodeTaken
	}

	v := &Vendor{
		VendorCode:            strings.TrimSpace(req.VendorCode),
		VendorName:            req.VendorName,
		VendorType:            req.VendorType,
		ContactName:           req.ContactName,
		ContactEmail:          strings.ToLower(strings.TrimSpace(req.ContactEmail)),
		ContactPhone:          req.ContactPhone,
		City:                  req.City,
		Country:               req.Country,
		BankName:              req.BankName,
		BankIBAN:              strings.ToUpper(strings.ReplaceAll(req.BankIBAN, " ", "")),
		TaxRegistrationNumber: req.TaxRegistrationNumber,
		Status:                StatusActive,
		Notes:                 req.Notes,
	}

	if err := s.repo.Create(ctx, tc, v); err != nil {
		s.logger.Error("create vendor failed", zap.Error(err))
		return VendorResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(v), nil
}

func (s *service) GetAll(ctx context.Context, tc tenancy.Context) ([]VendorResponse, error) {
	vendors, err := s.repo.FindAll(ctx, tc)
	if err != nil {
		s.logger.Error("get all vendors failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	result := make([]VendorResponse, 0, len(vendors))
	for i := range vendors {
		result = append(result, mapToResponse(&vendors[i]))
	}
	return result, nil
}

func (s *service) GetByUUID(ctx context.Context, tc tenancy.Context, id string) (VendorResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return VendorResponse{}, vendorerrors.ErrInvalidVendorID
	}

	v, err := s.repo.FindByUUID(ctx, tc, uid)
	if err != nil {
		return VendorResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(v), nil
}

func (s *service) Update(
	ctx context.Context,
	tc tenancy.Context,
	id string,
	req UpdateVendorRequest,
) (VendorResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return VendorResponse{}, vendorerrors.ErrInvalidVendorID
	}

	v, err := s.repo.FindByUUID(ctx, tc, uid)
	if err != nil {
		return VendorResponse{}, mapRepositoryError(err)
	}

	if req.VendorName != "" {
		v.VendorName = req.VendorName
	}
	if req.ContactName != "" {
		v.ContactName = req.ContactName
	}
	if req.ContactEmail != "" {
		v.ContactEmail = strings.ToLower(strings.TrimSpace(req.ContactEmail))
	}
	if req.ContactPhone != "" {
		v.ContactPhone = req.ContactPhone
	}
	if req.City != "" {
		v.City = req.City
	}
	if req.Country != "" {
		v.Country = req.Country
	}
	if req.BankName != "" {
		v.BankName = req.BankName
	}
	if req.BankIBAN != "" {
		v.BankIBAN = strings.ToUpper(strings.ReplaceAll(req.BankIBAN, " ", ""))
	}
	if req.TaxRegistrationNumber != "" {
		v.TaxRegistrationNumber = req.TaxRegistrationNumber
	}
	if req.Notes != "" {
		v.Notes = req.Notes
	}
	if req.Status != "" {
		if !ValidVendorStatus(req.Status) {
			return VendorResponse{}, vendorerrors.ErrInvalidStatus
		}
		v.Status = req.Status
	}

	if err := s.repo.Update(ctx, tc, v); err != nil {
		s.logger.Error("update vendor failed", zap.Error(err))
		return VendorResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(v), nil
}

func (s *service) Delete(ctx context.Context, tc tenancy.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return vendorerrors.ErrInvalidVendorID
	}

	if err := s.repo.Delete(ctx, tc, uid); err != nil {
		s.logger.Error("delete vendor failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func mapToResponse(v *Vendor) VendorResponse {
	return VendorResponse{
		UUID:                  v.UUID.String(),
		VendorCode:            v.VendorCode,
		VendorName:            v.VendorName,
		VendorType:            v.VendorType,
		ContactName:           v.ContactName,
		ContactEmail:          v.ContactEmail,
		ContactPhone:          v.ContactPhone,
		City:                  v.City,
		Country:               v.Country,
		BankName:              v.BankName,
		BankIBAN:              v.BankIBAN,
		TaxRegistrationNumber: v.TaxRegistrationNumber,
		Status:                v.Status,
		CreatedAt:             v.CreatedAt,
	}
}
