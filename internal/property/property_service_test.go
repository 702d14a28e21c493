package property_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"proryx/internal/property"
	propertyerrors "proryx/internal/property/errors"
	"proryx/internal/tenancy"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// =========================================
// Fake Repository
// =========================================

type tenantCode struct {
	tc   tenancy.Context
	code string
}

type fakePropertyRepo struct {
	properties map[tenancy.Context]map[uuid.UUID]*property.Property
	units      map[tenancy.Context]map[uuid.UUID]*property.Unit
	codes      map[tenantCode]bool
	nextID     int64
	findAllHit int
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{
		properties: make(map[tenancy.Context]map[uuid.UUID]*property.Property),
		units:      make(map[tenancy.Context]map[uuid.UUID]*property.Unit),
		codes:      make(map[tenantCode]bool),
	}
}

func (f *fakePropertyRepo) WithTx(tx *gorm.DB) property.Repository { return f }

func (f *fakePropertyRepo) Create(ctx context.Context, tc tenancy.Context, p *property.Property) error {
	if err := tc.Validate(); err != nil {
		return err
	}
	f.nextID++
	p.AccountID = tc.AccountID
	p.CompanyID = tc.CompanyID
	p.ID = f.nextID
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if f.properties[tc] == nil {
		f.properties[tc] = make(map[uuid.UUID]*property.Property)
	}
	f.properties[tc][p.UUID] = p
	f.codes[tenantCode{tc, p.PropertyCode}] = true
	return nil
}

func (f *fakePropertyRepo) FindAll(ctx context.Context, tc tenancy.Context) ([]property.Property, error) {
	f.findAllHit++
	var result []property.Property
	for _, p := range f.properties[tc] {
		result = append(result, *p)
	}
	return result, nil
}

func (f *fakePropertyRepo) FindByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*property.Property, error) {
	if p, ok := f.properties[tc][id]; ok {
		return p, nil
	}
	return nil, tenancy.ErrNotFound
}

func (f *fakePropertyRepo) FindByCode(ctx context.Context, tc tenancy.Context, code string) (*property.Property, error) {
	for _, p := range f.properties[tc] {
		if p.PropertyCode == code {
			return p, nil
		}
	}
	return nil, tenancy.ErrNotFound
}

func (f *fakePropertyRepo) Update(ctx context.Context, tc tenancy.Context, p *property.Property) error {
	if _, ok := f.properties[tc][p.UUID]; !ok {
		return tenancy.ErrNotFound
	}
	f.properties[tc][p.UUID] = p
	return nil
}

func (f *fakePropertyRepo) Delete(ctx context.Context, tc tenancy.Context, id uuid.UUID) error {
	if _, ok := f.properties[tc][id]; !ok {
		return tenancy.ErrNotFound
	}
	delete(f.properties[tc], id)
	return nil
}

func (f *fakePropertyRepo) CountUnits(ctx context.Context, tc tenancy.Context, propertyID int64) (int64, error) {
	var count int64
	for _, u := range f.units[tc] {
		if u.PropertyID == propertyID {
			count++
		}
	}
	return count, nil
}

func (f *fakePropertyRepo) CreateUnit(ctx context.Context, tc tenancy.Context, u *property.Unit) error {
	f.nextID++
	u.AccountID = tc.AccountID
	u.CompanyID = tc.CompanyID
	u.ID = f.nextID
	if u.UUID == uuid.Nil {
		u.UUID = uuid.New()
	}
	if f.units[tc] == nil {
		f.units[tc] = make(map[uuid.UUID]*property.Unit)
	}
	f.units[tc][u.UUID] = u
	return nil
}

func (f *fakePropertyRepo) ListUnits(ctx context.Context, tc tenancy.Context, propertyID int64) ([]property.Unit, error) {
	var result []property.Unit
	for _, u := range f.units[tc] {
		if u.PropertyID == propertyID {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (f *fakePropertyRepo) FindUnitByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*property.Unit, error) {
	if u, ok := f.units[tc][id]; ok {
		return u, nil
	}
	return nil, tenancy.ErrNotFound
}

func (f *fakePropertyRepo) FindUnitByLocalID(ctx context.Context, tc tenancy.Context, id int64) (*property.Unit, error) {
	for _, u := range f.units[tc] {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, tenancy.ErrNotFound
}

func (f *fakePropertyRepo) UpdateUnit(ctx context.Context, tc tenancy.Context, u *property.Unit) error {
	f.units[tc][u.UUID] = u
	return nil
}

func (f *fakePropertyRepo) DeleteUnit(ctx context.Context, tc tenancy.Context, id uuid.UUID) error {
	if _, ok := f.units[tc][id]; !ok {
		return tenancy.ErrNotFound
	}
	delete(f.units[tc], id)
	return nil
}

// =========================================
// Helpers
// =========================================

func mustTenant(t *testing.T, accountID, companyID int64) tenancy.Context {
	t.Helper()
	tc, err := tenancy.NewContext(accountID, companyID)
	assert.NoError(t, err)
	return tc
}

func createProperty(t *testing.T, svc property.Service, tc tenancy.Context, code string) property.PropertyResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), tc, property.CreatePropertyRequest{
		PropertyCode: code,
		Name:         "Tower " + code,
		UsageType:    property.UsageResidential,
		City:         "Berlin",
		Country:      "de",
	})
	assert.NoError(t, err)
	return resp
}

// =========================================
// Tests
// =========================================

func TestPropertyService_Create(t *testing.T) {
	repo := newFakePropertyRepo()
	svc := property.NewService(repo, nil)
	ctx := context.Background()

	tenantA := mustTenant(t, 1, 1)
	tenantB := mustTenant(t, 1, 2)

	t.Run("success normalizes country", func(t *testing.T) {
		resp := createProperty(t, svc, tenantA, "TWR-001")
		assert.Equal(t, "TWR-001", resp.PropertyCode)
		assert.Equal(t, "DE", resp.Country)
		assert.Equal(t, property.StatusActive, resp.Status)
	})

	t.Run("code is unique per tenant only", func(t *testing.T) {
		// Same code in a sibling company is fine.
		resp := createProperty(t, svc, tenantB, "TWR-001")
		assert.Equal(t, "TWR-001", resp.PropertyCode)

		// Same code in the same tenant is not.
		_, err := svc.Create(ctx, tenantA, property.CreatePropertyRequest{
			PropertyCode: "TWR-001",
			Name:         "Duplicate",
			UsageType:    property.UsageCommercial,
		})
		assert.ErrorIs(t, err, propertyerrors.ErrPropertyCodeTaken)
	})

	t.Run("unknown usage type rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, tenantA, property.CreatePropertyRequest{
			PropertyCode: "TWR-002",
			Name:         "Tower 2",
			UsageType:    "industrial",
		})
		assert.ErrorIs(t, err, propertyerrors.ErrInvalidUsageType)
	})
}

func TestPropertyService_CrossTenantLookupIsNotFound(t *testing.T) {
	repo := newFakePropertyRepo()
	svc := property.NewService(repo, nil)
	ctx := context.Background()

	tenantA := mustTenant(t, 1, 1)
	tenantB := mustTenant(t, 2, 1)

	created := createProperty(t, svc, tenantA, "TWR-001")

	_, err := svc.GetByUUID(ctx, tenantB, created.UUID)
	assert.ErrorIs(t, err, propertyerrors.ErrPropertyNotFound)

	_, err = svc.Update(ctx, tenantB, created.UUID, property.UpdatePropertyRequest{Name: "Hijack"})
	assert.ErrorIs(t, err, propertyerrors.ErrPropertyNotFound)

	err = svc.Delete(ctx, tenantB, created.UUID)
	assert.ErrorIs(t, err, propertyerrors.ErrPropertyNotFound)
}

func TestPropertyService_Units(t *testing.T) {
	repo := newFakePropertyRepo()
	svc := property.NewService(repo, nil)
	ctx := context.Background()
	tc := mustTenant(t, 1, 1)

	prop := createProperty(t, svc, tc, "TWR-001")

	building, err := svc.CreateUnit(ctx, tc, prop.UUID, property.CreateUnitRequest{
		UnitCode: "B1",
	})
	assert.NoError(t, err)
	assert.Equal(t, property.UnitVacant, building.Status)

	t.Run("nested unit carries parent", func(t *testing.T) {
		room, err := svc.CreateUnit(ctx, tc, prop.UUID, property.CreateUnitRequest{
			UnitCode:       "B1-101",
			ParentUnitUUID: building.UUID,
			Floor:          "1",
			AreaSqm:        42.5,
		})
		assert.NoError(t, err)
		assert.Equal(t, building.UUID, room.ParentUnitUUID)
	})

	t.Run("parent from another property rejected", func(t *testing.T) {
		other := createProperty(t, svc, tc, "TWR-002")
		_, err := svc.CreateUnit(ctx, tc, other.UUID, property.CreateUnitRequest{
			UnitCode:       "X1",
			ParentUnitUUID: building.UUID,
		})
		assert.ErrorIs(t, err, propertyerrors.ErrParentUnitNotFound)
	})

	t.Run("delete property with units refused", func(t *testing.T) {
		err := svc.Delete(ctx, tc, prop.UUID)
		assert.ErrorIs(t, err, propertyerrors.ErrPropertyHasUnits)
	})

	t.Run("unit status transition", func(t *testing.T) {
		updated, err := svc.UpdateUnit(ctx, tc, building.UUID, property.UpdateUnitRequest{
			Status: property.UnitOccupied,
		})
		assert.NoError(t, err)
		assert.Equal(t, property.UnitOccupied, updated.Status)

		_, err = svc.UpdateUnit(ctx, tc, building.UUID, property.UpdateUnitRequest{
			Status: "demolished",
		})
		assert.ErrorIs(t, err, propertyerrors.ErrInvalidStatus)
	})
}

func TestPropertyService_GetOptions(t *testing.T) {
	tc := mustTenant(t, 1, 1)
	cacheKey := property.GetPropertyOptionsKey(tc)

	t.Run("miss fills cache", func(t *testing.T) {
		repo := newFakePropertyRepo()
		rdb, redisMock := redismock.NewClientMock()
		svc := property.NewService(repo, rdb)

		created := createProperty(t, svc, tc, "TWR-001")

		expected := []property.PropertyOption{{
			UUID:         created.UUID,
			PropertyCode: "TWR-001",
			Name:         "Tower TWR-001",
		}}
		jsonData, _ := json.Marshal(expected)

		// Create invalidates once, then the read misses and fills.
		redisMock.ExpectDel(cacheKey).SetVal(1)
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSet(cacheKey, jsonData, 1*time.Hour).SetVal("OK")

		opts, err := svc.GetOptions(context.Background(), tc)
		assert.NoError(t, err)
		assert.Equal(t, expected, opts)
	})

	t.Run("hit skips repository", func(t *testing.T) {
		repo := newFakePropertyRepo()
		rdb, redisMock := redismock.NewClientMock()
		svc := property.NewService(repo, rdb)

		cached := []property.PropertyOption{{
			UUID:         uuid.New().String(),
			PropertyCode: "CCH-001",
			Name:         "Cached Tower",
		}}
		jsonData, _ := json.Marshal(cached)
		redisMock.ExpectGet(cacheKey).SetVal(string(jsonData))

		opts, err := svc.GetOptions(context.Background(), tc)
		assert.NoError(t, err)
		assert.Equal(t, cached, opts)
		assert.Equal(t, 0, repo.findAllHit)
	})

	t.Run("cache key carries the tenant pair", func(t *testing.T) {
		otherKey := property.GetPropertyOptionsKey(mustTenant(t, 1, 2))
		assert.NotEqual(t, cacheKey, otherKey)
	})
}
