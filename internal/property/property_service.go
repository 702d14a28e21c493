package property

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	propertyerrors "proryx/internal/property/errors"
	"proryx/internal/shared/apperror"
	"proryx/internal/shared/contextutil"
	"proryx/internal/tenancy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const PropertyOptionsKeyPrefix = "properties:options:"

// GetPropertyOptionsKey scopes the cache entry by the tenant pair so
// one tenant can never be served another's cached list.
func GetPropertyOptionsKey(tc tenancy.Context) string {
	return fmt.Sprintf("%s%d:%d", PropertyOptionsKeyPrefix, tc.AccountID, tc.CompanyID)
}

//go:generate mockgen -source=property_service.go -destination=mock/property_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tc tenancy.Context, req CreatePropertyRequest) (PropertyResponse, error)
	GetAll(ctx context.Context, tc tenancy.Context) ([]PropertyResponse, error)
	GetOptions(ctx context.Context, tc tenancy.Context) ([]PropertyOption, error)
	GetByUUID(ctx context.Context, tc tenancy.Context, id string) (PropertyResponse, error)
	Update(ctx context.Context, tc tenancy.Context, id string, req UpdatePropertyRequest) (PropertyResponse, error)
	Delete(ctx context.Context, tc tenancy.Context, id string) error

	CreateUnit(ctx context.Context, tc tenancy.Context, propertyUUID string, req CreateUnitRequest) (UnitResponse, error)
	ListUnits(ctx context.Context, tc tenancy.Context, propertyUUID string) ([]UnitResponse, error)
	UpdateUnit(ctx context.Context, tc tenancy.Context, unitUUID string, req UpdateUnitRequest) (UnitResponse, error)
	DeleteUnit(ctx context.Context, tc tenancy.Context, unitUUID string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("property.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("property.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, tenancy.ErrNotFound) {
		return propertyerrors.ErrPropertyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "unit_code") {
			return propertyerrors.ErrUnitCodeTaken
		}
		if strings.Contains(pgErr.ConstraintName, "property_code") {
			return propertyerrors.ErrPropertyCodeTaken
		}
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "property repository failure", 500)
}

func (s *service) invalidateOptions(ctx context.Context, tc tenancy.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, GetPropertyOptionsKey(tc)).Err(); err != nil {
		s.logger.Warn("invalidate property options cache failed", zap.Error(err))
	}
}

func (s *service) Create(
	ctx context.Context,
	tc tenancy.Context,
	req CreatePropertyRequest,
) (PropertyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create property requested",
		zap.String("request_id", rid),
		zap.Int64("account_id", tc.AccountID),
		zap.Int64("company_id", tc.CompanyID),
		zap.String("property_code", req.PropertyCode),
	)

	if !ValidUsageType(req.UsageType) {
		return PropertyResponse{}, propertyerrors.ErrInvalidUsageType
	}

	// The unique index is the real guard, this pre-check just gives a
	// friendlier error on the common path.
	if _, err := s.repo.FindByCode(ctx, tc, req.PropertyCode); err == nil {
		return PropertyResponse{}, propertyerrors.ErrPropertyCodeTaken
	}

	p := &Property{
		PropertyCode: strings.TrimSpace(req.PropertyCode),
		Name:         req.Name,
		UsageType:    req.UsageType,
		Status:       StatusActive,
		AddressLine:  req.AddressLine,
		City:         req.City,
		Country:      strings.ToUpper(req.Country),
	}

	if err := s.repo.Create(ctx, tc, p); err != nil {
		s.logger.Error("create property failed", zap.String("request_id", rid), zap.Error(err))
		return PropertyResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, tc)
	return mapToResponse(p), nil
}

func (s *service) GetAll(ctx context.Context, tc tenancy.Context) ([]PropertyResponse, error) {
	props, err := s.repo.FindAll(ctx, tc)
	if err != nil {
		s.logger.Error("get all properties failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	result := make([]PropertyResponse, 0, len(props))
	for i := range props {
		result = append(result, mapToResponse(&props[i]))
	}
	return result, nil
}

func (s *service) GetOptions(ctx context.Context, tc tenancy.Context) ([]PropertyOption, error) {
	cacheKey := GetPropertyOptionsKey(tc)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []PropertyOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses the stampede when a form opens on many
	// screens at once.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		props, err := s.repo.FindAll(ctx, tc)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]PropertyOption, 0, len(props))
		for i := range props {
			resp = append(resp, PropertyOption{
				UUID:         props[i].UUID.String(),
				PropertyCode: props[i].PropertyCode,
				Name:         props[i].Name,
			})
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]PropertyOption), nil
}

func (s *service) GetByUUID(ctx context.Context, tc tenancy.Context, id string) (PropertyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return PropertyResponse{}, propertyerrors.ErrInvalidPropertyID
	}

	p, err := s.repo.FindByUUID(ctx, tc, uid)
	if err != nil {
		return PropertyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(p), nil
}

func (s *service) Update(
	ctx context.Context,
	tc tenancy.Context,
	id string,
	req UpdatePropertyRequest,
) (PropertyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return PropertyResponse{}, propertyerrors.ErrInvalidPropertyID
	}

	p, err := s.repo.FindByUUID(ctx, tc, uid)
	if err != nil {
		return PropertyResponse{}, mapRepositoryError(err)
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.UsageType != "" {
		if !ValidUsageType(req.UsageType) {
			return PropertyResponse{}, propertyerrors.ErrInvalidUsageType
		}
		p.UsageType = req.UsageType
	}
	if req.Status != "" {
		if !ValidPropertyStatus(req.Status) {
			return PropertyResponse{}, propertyerrors.ErrInvalidStatus
		}
		p.Status = req.Status
	}
	if req.AddressLine != "" {
		p.AddressLine = req.AddressLine
	}
	if req.City != "" {
		p.City = req.City
	}
	if req.Country != "" {
		p.Country = strings.ToUpper(req.Country)
	}

	if err := s.repo.Update(ctx, tc, p); err != nil {
		s.logger.Error("update property failed", zap.Error(err))
		return PropertyResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, tc)
	return mapToResponse(p), nil
}

func (s *service) Delete(ctx context.Context, tc tenancy.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return propertyerrors.ErrInvalidPropertyID
	}

	p, err := s.repo.FindByUUID(ctx, tc, uid)
	if err != nil {
		return mapRepositoryError(err)
	}

	count, err := s.repo.CountUnits(ctx, tc, p.ID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if count > 0 {
		return propertyerrors.ErrPropertyHasUnits
	}

	if err := s.repo.Delete(ctx, tc, uid); err != nil {
		s.logger.Error("delete property failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, tc)
	return nil
}

func (s *service) CreateUnit(
	ctx context.Context,
	tc tenancy.Context,
	propertyUUID string,
	req CreateUnitRequest,
) (UnitResponse, error) {
	pid, err := uuid.Parse(propertyUUID)
	if err != nil {
		return UnitResponse{}, propertyerrors.ErrInvalidPropertyID
	}

	p, err := s.repo.FindByUUID(ctx, tc, pid)
	if err != nil {
		return UnitResponse{}, mapRepositoryError(err)
	}

	u := &Unit{
		PropertyID: p.ID,
		UnitCode:   strings.TrimSpace(req.UnitCode),
		Floor:      req.Floor,
		AreaSqm:    req.AreaSqm,
		Status:     UnitVacant,
	}

	if req.ParentUnitUUID != "" {
		parentUUID, err := uuid.Parse(req.ParentUnitUUID)
		if err != nil {
			return UnitResponse{}, propertyerrors.ErrInvalidUnitID
		}
		parent, err := s.repo.FindUnitByUUID(ctx, tc, parentUUID)
		if err != nil || parent.PropertyID != p.ID {
			// A parent uuid from another tenant resolves the same way
			// as one that does not exist.
			return UnitResponse{}, propertyerrors.ErrParentUnitNotFound
		}
		u.ParentUnitID = &parent.ID
	}

	if err := s.repo.CreateUnit(ctx, tc, u); err != nil {
		s.logger.Error("create unit failed", zap.Error(err))
		return UnitResponse{}, mapUnitRepositoryError(err)
	}

	return s.mapUnitToResponse(ctx, tc, u), nil
}

func (s *service) ListUnits(ctx context.Context, tc tenancy.Context, propertyUUID string) ([]UnitResponse, error) {
	pid, err := uuid.Parse(propertyUUID)
	if err != nil {
		return nil, propertyerrors.ErrInvalidPropertyID
	}

	p, err := s.repo.FindByUUID(ctx, tc, pid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	units, err := s.repo.ListUnits(ctx, tc, p.ID)
	if err != nil {
		return nil, mapUnitRepositoryError(err)
	}

	result := make([]UnitResponse, 0, len(units))
	for i := range units {
		result = append(result, s.mapUnitToResponse(ctx, tc, &units[i]))
	}
	return result, nil
}

func (s *service) UpdateUnit(
	ctx context.Context,
	tc tenancy.Context,
	unitUUID string,
	req UpdateUnitRequest,
) (UnitResponse, error) {
	uid, err := uuid.Parse(unitUUID)
	if err != nil {
		return UnitResponse{}, propertyerrors.ErrInvalidUnitID
	}

	u, err := s.repo.FindUnitByUUID(ctx, tc, uid)
	if err != nil {
		return UnitResponse{}, mapUnitRepositoryError(err)
	}

	if req.Floor != "" {
		u.Floor = req.Floor
	}
	if req.AreaSqm != nil {
		u.AreaSqm = *req.AreaSqm
	}
	if req.Status != "" {
		if !ValidUnitStatus(req.Status) {
			return UnitResponse{}, propertyerrors.ErrInvalidStatus
		}
		u.Status = req.Status
	}

	if err := s.repo.UpdateUnit(ctx, tc, u); err != nil {
		return UnitResponse{}, mapUnitRepositoryError(err)
	}

	return s.mapUnitToResponse(ctx, tc, u), nil
}

func (s *service) DeleteUnit(ctx context.Context, tc tenancy.Context, unitUUID string) error {
	uid, err := uuid.Parse(unitUUID)
	if err != nil {
		return propertyerrors.ErrInvalidUnitID
	}

	if err := s.repo.DeleteUnit(ctx, tc, uid); err != nil {
		return mapUnitRepositoryError(err)
	}
	return nil
}

func mapUnitRepositoryError(err error) error {
	if errors.Is(err, tenancy.ErrNotFound) {
		return propertyerrors.ErrUnitNotFound
	}
	return mapRepositoryError(err)
}

func (s *service) mapUnitToResponse(ctx context.Context, tc tenancy.Context, u *Unit) UnitResponse {
	resp := UnitResponse{
		UUID:      u.UUID.String(),
		UnitCode:  u.UnitCode,
		Floor:     u.Floor,
		AreaSqm:   u.AreaSqm,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}

	if u.ParentUnitID != nil {
		if parent, err := s.repo.FindUnitByLocalID(ctx, tc, *u.ParentUnitID); err == nil {
			resp.ParentUnitUUID = parent.UUID.String()
		}
	}

	return resp
}

func mapToResponse(p *Property) PropertyResponse {
	return PropertyResponse{
		UUID:         p.UUID.String(),
		PropertyCode: p.PropertyCode,
		Name:         p.Name,
		UsageType:    p.UsageType,
		Status:       p.Status,
		AddressLine:  p.AddressLine,
		City:         p.City,
		Country:      p.Country,
		CreatedAt:    p.CreatedAt,
	}
}
