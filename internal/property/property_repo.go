package property

import (
	"context"
	"errors"

	"proryx/internal/tenancy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=property_repo.go -destination=mock/property_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, tc tenancy.Context, p *Property) error
	FindAll(ctx context.Context, tc tenancy.Context) ([]Property, error)
	FindByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*Property, error)
	FindByCode(ctx context.Context, tc tenancy.Context, code string) (*Property, error)
	Update(ctx context.Context, tc tenancy.Context, p *Property) error
	Delete(ctx context.Context, tc tenancy.Context, id uuid.UUID) error
	CountUnits(ctx context.Context, tc tenancy.Context, propertyID int64) (int64, error)

	CreateUnit(ctx context.Context, tc tenancy.Context, u *Unit) error
	ListUnits(ctx context.Context, tc tenancy.Context, propertyID int64) ([]Unit, error)
	FindUnitByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*Unit, error)
	FindUnitByLocalID(ctx context.Context, tc tenancy.Context, id int64) (*Unit, error)
	UpdateUnit(ctx context.Context, tc tenancy.Context, u *Unit) error
	DeleteUnit(ctx context.Context, tc tenancy.Context, id uuid.UUID) error
}

type repository struct {
	db  *gorm.DB
	seq tenancy.SequenceRepository
}

func NewRepository(db *gorm.DB, seq tenancy.SequenceRepository) Repository {
	return &repository{db: db, seq: seq}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx, seq: r.seq}
}

func (r *repository) properties(tc tenancy.Context) (*tenancy.Accessor[Property, *Property], error) {
	return tenancy.Bind[Property](r.db, r.seq, tc)
}

func (r *repository) units(tc tenancy.Context) (*tenancy.Accessor[Unit, *Unit], error) {
	return tenancy.Bind[Unit](r.db, r.seq, tc)
}

func (r *repository) Create(ctx context.Context, tc tenancy.Context, p *Property) error {
	acc, err := r.properties(tc)
	if err != nil {
		return err
	}
	return acc.Create(ctx, p)
}

func (r *repository) FindAll(ctx context.Context, tc tenancy.Context) ([]Property, error) {
	acc, err := r.properties(tc)
	if err != nil {
		return nil, err
	}
	return acc.List(ctx)
}

func (r *repository) FindByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*Property, error) {
	acc, err := r.properties(tc)
	if err != nil {
		return nil, err
	}
	return acc.ResolveByUUID(ctx, id)
}

func (r *repository) FindByCode(ctx context.Context, tc tenancy.Context, code string) (*Property, error) {
	acc, err := r.properties(tc)
	if err != nil {
		return nil, err
	}

	var p Property
	err = acc.Scoped(ctx).First(&p, "property_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenancy.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, tc tenancy.Context, p *Property) error {
	acc, err := r.properties(tc)
	if err != nil {
		return err
	}
	return acc.Save(ctx, p)
}

func (r *repository) Delete(ctx context.Context, tc tenancy.Context, id uuid.UUID) error {
	acc, err := r.properties(tc)
	if err != nil {
		return err
	}
	return acc.DeleteByUUID(ctx, id)
}

func (r *repository) CountUnits(ctx context.Context, tc tenancy.Context, propertyID int64) (int64, error) {
	acc, err := r.units(tc)
	if err != nil {
		return 0, err
	}

	var count int64
	err = acc.Scoped(ctx).Where("property_id = ?", propertyID).Count(&count).Error
	return count, err
}

func (r *repository) CreateUnit(ctx context.Context, tc tenancy.Context, u *Unit) error {
	acc, err := r.units(tc)
	if err != nil {
		return err
	}
	return acc.Create(ctx, u)
}

func (r *repository) ListUnits(ctx context.Context, tc tenancy.Context, propertyID int64) ([]Unit, error) {
	acc, err := r.units(tc)
	if err != nil {
		return nil, err
	}
	return acc.List(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("property_id = ?", propertyID).Order("unit_code")
	})
}

func (r *repository) FindUnitByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*Unit, error) {
	acc, err := r.units(tc)
	if err != nil {
		return nil, err
	}
	return acc.ResolveByUUID(ctx, id)
}

func (r *repository) FindUnitByLocalID(ctx context.Context, tc tenancy.Context, id int64) (*Unit, error) {
	acc, err := r.units(tc)
	if err != nil {
		return nil, err
	}

	var u Unit
	err = acc.Scoped(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenancy.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) UpdateUnit(ctx context.Context, tc tenancy.Context, u *Unit) error {
	acc, err := r.units(tc)
	if err != nil {
		return err
	}
	return acc.Save(ctx, u)
}

func (r *repository) DeleteUnit(ctx context.Context, tc tenancy.Context, id uuid.UUID) error {
	acc, err := r.units(tc)
	if err != nil {
		return err
	}
	return acc.DeleteByUUID(ctx, id)
}
