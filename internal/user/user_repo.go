package user

import (
	"context"

	"proryx/internal/tenancy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, tc tenancy.Context, u *User) error
	FindAll(ctx context.Context, tc tenancy.Context) ([]User, error)
	FindByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, tc tenancy.Context, u *User) error
	Delete(ctx context.Context, tc tenancy.Context, id uuid.UUID) error

	// FindByEmailGlobal is the one deliberate hole in tenant scoping:
	// login only has an email, the tenant pair comes from the row.
	// Emails are unique per tenant, so the lookup resolves duplicates
	// to the most recently active identity.
	FindByEmailGlobal(ctx context.Context, email string) (*User, error)
	SaveGlobal(ctx context.Context, u *User) error
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

func (r *repository) bind(tc tenancy.Context) (*tenancy.Accessor[User, *User], error) {
	return tenancy.Bind[User](r.db, r.seq, tc)
}

func (r *repository) Create(ctx context.Context, tc tenancy.Context, u *User) error {
	acc, err := r.bind(tc)
	if err != nil {
		return err
	}
	return acc.Create(ctx, u)
}

func (r *repository) FindAll(ctx context.Context, tc tenancy.Context) ([]User, error) {
	acc, err := r.bind(tc)
	if err != nil {
		return nil, err
	}
	return acc.List(ctx)
}

func (r *repository) FindByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*User, error) {
	acc, err := r.bind(tc)
	if err != nil {
		return nil, err
	}
	return acc.ResolveByUUID(ctx, id)
}

func (r *repository) Update(ctx context.Context, tc tenancy.Context, u *User) error {
	acc, err := r.bind(tc)
	if err != nil {
		return err
	}
	return acc.Save(ctx, u)
}

func (r *repository) Delete(ctx context.Context, tc tenancy.Context, id uuid.UUID) error {
	acc, err := r.bind(tc)
	if err != nil {
		return err
	}
	return acc.DeleteByUUID(ctx, id)
}

func (r *repository) FindByEmailGlobal(ctx context.Context, email string) (*User, error) {
	var u User
	// Emails are unique per tenant only, so the same address may match
	// several rows. The most recently active identity wins, with the
	// key as a deterministic tie-break.
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("last_login_at DESC NULLS LAST, account_id, company_id, id").
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveGlobal persists lockout counters during login, before any tenant
// context exists.
func (r *repository) SaveGlobal(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}
