package renter

import (
	"context"
	"errors"

	"proryx/internal/tenancy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=renter_repo.go -destination=mock/renter_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, tc tenancy.Context, r *Renter) error
	FindAll(ctx context.Context, tc tenancy.Context) ([]Renter, error)
	FindByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*Renter, error)
	FindByCode(ctx context.Context, tc tenancy.Context, code string) (*Renter, error)
	Update(ctx context.Context, tc tenancy.Context, r *Renter) error
	Delete(ctx context.Context, tc tenancy.Context, id uuid.UUID) error

	CreateContact(ctx context.Context, tc tenancy.Context, c *RenterContact) error
	ListContacts(ctx context.Context, tc tenancy.Context, renterID int64) ([]RenterContact, error)
	FindContactByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*RenterContact, error)
	UpdateContact(ctx context.Context, tc tenancy.Context, c *RenterContact) error
	DeleteContact(ctx context.Context, tc tenancy.Context, id uuid.UUID) error
	ClearPrimaryContacts(ctx context.Context, tc tenancy.Context, renterID int64) error

	CreateDocument(ctx context.Context, tc tenancy.Context, d *RenterDocument) error
	ListDocuments(ctx context.Context, tc tenancy.Context, renterID int64) ([]RenterDocument, error)
	FindDocumentByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*RenterDocument, error)
	UpdateDocument(ctx context.Context, tc tenancy.Context, d *RenterDocument) error
	DeleteDocument(ctx context.Context, tc tenancy.Context, id uuid.UUID) error
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

func (r *repository) renters(tc tenancy.Context) (*tenancy.Accessor[Renter, *Renter], error) {
	return tenancy.Bind[Renter](r.db, r.seq, tc)
}

func (r *repository) contacts(tc tenancy.Context) (*tenancy.Accessor[RenterContact, *RenterContact], error) {
	return tenancy.Bind[RenterContact](r.db, r.seq, tc)
}

func (r *repository) documents(tc tenancy.Context) (*tenancy.Accessor[RenterDocument, *RenterDocument], error) {
	return tenancy.Bind[RenterDocument](r.db, r.seq, tc)
}

func (r *repository) Create(ctx context.Context, tc tenancy.Context, rn *Renter) error {
	acc, err := r.renters(tc)
	if err != nil {
		return err
	}
	return acc.Create(ctx, rn)
}

func (r *repository) FindAll(ctx context.Context, tc tenancy.Context) ([]Renter, error) {
	acc, err := r.renters(tc)
	if err != nil {
		return nil, err
	}
	return acc.List(ctx)
}

func (r *repository) FindByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*Renter, error) {
	acc, err := r.renters(tc)
	if err != nil {
		return nil, err
	}
	return acc.ResolveByUUID(ctx, id)
}

func (r *repository) FindByCode(ctx context.Context, tc tenancy.Context, code string) (*Renter, error) {
	acc, err := r.renters(tc)
	if err != nil {
		return nil, err
	}

	var rn Renter
	err = acc.Scoped(ctx).First(&rn, "renter_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenancy.ErrNotFound
		}
		return nil, err
	}
	return &rn, nil
}

func (r *repository) Update(ctx context.Context, tc tenancy.Context, rn *Renter) error {
	acc, err := r.renters(tc)
	if err != nil {
		return err
	}
	return acc.Save(ctx, rn)
}

func (r *repository) Delete(ctx context.Context, tc tenancy.Context, id uuid.UUID) error {
	acc, err := r.renters(tc)
	if err != nil {
		return err
	}
	return acc.DeleteByUUID(ctx, id)
}

func (r *repository) CreateContact(ctx context.Context, tc tenancy.Context, c *RenterContact) error {
	acc, err := r.contacts(tc)
	if err != nil {
		return err
	}
	return acc.Create(ctx, c)
}

func (r *repository) ListContacts(ctx context.Context, tc tenancy.Context, renterID int64) ([]RenterContact, error) {
	acc, err := r.contacts(tc)
	if err != nil {
		return nil, err
	}
	return acc.List(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("renter_id = ?", renterID).Order("contact_name")
	})
}

func (r *repository) FindContactByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*RenterContact, error) {
	acc, err := r.contacts(tc)
	if err != nil {
		return nil, err
	}
	return acc.ResolveByUUID(ctx, id)
}

func (r *repository) UpdateContact(ctx context.Context, tc tenancy.Context, c *RenterContact) error {
	acc, err := r.contacts(tc)
	if err != nil {
		return err
	}
	return acc.Save(ctx, c)
}

func (r *repository) DeleteContact(ctx context.Context, tc tenancy.Context, id uuid.UUID) error {
	acc, err := r.contacts(tc)
	if err != nil {
		return err
	}
	return acc.DeleteByUUID(ctx, id)
}

func (r *repository) ClearPrimaryContacts(ctx context.Context, tc tenancy.Context, renterID int64) error {
	acc, err := r.contacts(tc)
	if err != nil {
		return err
	}
	return acc.Scoped(ctx).
		Where("renter_id = ? AND is_primary", renterID).
		Update("is_primary", false).Error
}

func (r *repository) CreateDocument(ctx context.Context, tc tenancy.Context, d *RenterDocument) error {
	acc, err := r.documents(tc)
	if err != nil {
		return err
	}
	return acc.Create(ctx, d)
}

func (r *repository) ListDocuments(ctx context.Context, tc tenancy.Context, renterID int64) ([]RenterDocument, error) {
	acc, err := r.documents(tc)
	if err != nil {
		return nil, err
	}
	return acc.List(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("renter_id = ?", renterID).Order("created_at")
	})
}

func (r *repository) FindDocumentByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*RenterDocument, error) {
	acc, err := r.documents(tc)
	if err != nil {
		return nil, err
	}
	return acc.ResolveByUUID(ctx, id)
}

func (r *repository) UpdateDocument(ctx context.Context, tc tenancy.Context, d *RenterDocument) error {
	acc, err := r.documents(tc)
	if err != nil {
		return err
	}
	return acc.Save(ctx, d)
}

func (r *repository) DeleteDocument(ctx context.Context, tc tenancy.Context, id uuid.UUID) error {
	acc, err := r.documents(tc)
	if err != nil {
		return err
	}
	return acc.DeleteByUUID(ctx, id)
}
