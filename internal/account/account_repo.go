package account

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=account_repo.go -destination=mock/account_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateAccount(ctx context.Context, acc *Account) error
	GetAccountByID(ctx context.Context, id int64) (*Account, error)
	GetAccountByUUID(ctx context.Context, id uuid.UUID) (*Account, error)
	UpdateAccount(ctx context.Context, acc *Account) error

	CreateCompany(ctx context.Context, comp *Company) error
	GetCompanyByID(ctx context.Context, accountID, id int64) (*Company, error)
	GetCompanyByUUID(ctx context.Context, accountID int64, id uuid.UUID) (*Company, error)
	ListCompanies(ctx context.Context, accountID int64) ([]Company, error)
	UpdateCompany(ctx context.Context, comp *Company) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateAccount(ctx context.Context, acc *Account) error {
	return r.db.WithContext(ctx).Create(acc).Error
}

func (r *repository) GetAccountByID(ctx context.Context, id int64) (*Account, error) {
	var acc Account
	err := r.db.WithContext(ctx).First(&acc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *repository) GetAccountByUUID(ctx context.Context, id uuid.UUID) (*Account, error) {
	var acc Account
	err := r.db.WithContext(ctx).First(&acc, "uuid = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *repository) UpdateAccount(ctx context.Context, acc *Account) error {
	return r.db.WithContext(ctx).Save(acc).Error
}

func (r *repository) CreateCompany(ctx context.Context, comp *Company) error {
	return r.db.WithContext(ctx).Create(comp).Error
}

// Company lookups always carry the account id, a company uuid from a
// foreign account resolves to record not found.
func (r *repository) GetCompanyByID(ctx context.Context, accountID, id int64) (*Company, error) {
	var comp Company
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&comp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func (r *repository) GetCompanyByUUID(ctx context.Context, accountID int64, id uuid.UUID) (*Company, error) {
	var comp Company
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&comp, "uuid = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func (r *repository) ListCompanies(ctx context.Context, accountID int64) ([]Company, error) {
	var comps []Company
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id").
		Find(&comps).Error
	return comps, err
}

func (r *repository) UpdateCompany(ctx context.Context, comp *Company) error {
	return r.db.WithContext(ctx).Save(comp).Error
}
