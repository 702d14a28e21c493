package vendor

import (
	"context"
	"errors"

	"proryx/internal/tenancy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=vendor_repo.go -destination=mock/vendor_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, tc tenancy.Context, v *Vendor) error
	FindAll(ctx context.Context, tc tenancy.Context) ([]Vendor, error)
	FindByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*Vendor, error)
	FindByCode(ctx context.Context, tc tenancy.Context, code string) (*Vendor, error)
	Update(ctx context.Context, tc tenancy.Context, v *Vendor) error
	Delete(ctx context.Context, tc tenancy.Context, id uuid.UUID) error
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

func (r *repository) vendors(tc tenancy.Context) (*tenancy.Accessor[Vendor, *Vendor], error) {
	return tenancy.Bind[Vendor](r.db, r.seq, tc)
}

func (r *repository) Create(ctx context.Context, tc tenancy.Context, v *Vendor) error {
	acc, err := r.vendors(tc)
	if err != nil {
		return err
	}
	return acc.Create(ctx, v)
}

func (r *repository) FindAll(ctx context.Context, tc tenancy.Context) ([]Vendor, error) {
	acc, err := r.vendors(tc)
	if err != nil {
		return nil, err
	}
	return acc.List(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Order("vendor_code")
	})
}

func (r *repository) FindByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*Vendor, error) {
	acc, err := r.vendors(tc)
	if err != nil {
		return nil, err
	}
	return acc.ResolveByUUID(ctx, id)
}

func (r *repository) FindByCode(ctx context.Context, tc tenancy.Context, code string) (*Vendor, error) {
	acc, err := r.vendors(tc)
	if err != nil {
		return nil, err
	}

	var v Vendor
	err = acc.Scoped(ctx).First(&v, "vendor_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenancy.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *repository) Update(ctx context.Context, tc tenancy.Context, v *Vendor) error {
	acc, err := r.vendors(tc)
	if err != nil {
		return err
	}
	return acc.Save(ctx, v)
}

func (r *repository) Delete(ctx context.Context, tc tenancy.Context, id uuid.UUID) error {
	acc, err := r.vendors(tc)
	if err != nil {
		return err
	}
	return acc.DeleteByUUID(ctx, id)
}
