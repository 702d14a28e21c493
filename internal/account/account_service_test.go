package account_test

import (
	"context"
	"testing"

	"proryx/internal/account"
	accounterrors "proryx/internal/account/errors"
	"proryx/internal/tenancy"
	"proryx/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// =========================================
// Fakes
// =========================================

type fakeAccountRepo struct {
	accounts      map[int64]*account.Account
	companies     map[int64]*account.Company
	nextAccountID int64
	nextCompanyID int64
	companyNames  map[string]bool
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts:     make(map[int64]*account.Account),
		companies:    make(map[int64]*account.Company),
		companyNames: make(map[string]bool),
	}
}

func (f *fakeAccountRepo) WithTx(tx *gorm.DB) account.Repository { return f }

func (f *fakeAccountRepo) CreateAccount(ctx context.Context, acc *account.Account) error {
	f.nextAccountID++
	acc.ID = f.nextAccountID
	f.accounts[acc.ID] = acc
	return nil
}

func (f *fakeAccountRepo) GetAccountByID(ctx context.Context, id int64) (*account.Account, error) {
	if acc, ok := f.accounts[id]; ok {
		return acc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) GetAccountByUUID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	for _, acc := range f.accounts {
		if acc.UUID == id {
			return acc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) UpdateAccount(ctx context.Context, acc *account.Account) error {
	f.accounts[acc.ID] = acc
	return nil
}

func (f *fakeAccountRepo) CreateCompany(ctx context.Context, comp *account.Company) error {
	key := comp.Name
	if f.companyNames[key] {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uniq_account_company_name"}
	}
	f.nextCompanyID++
	comp.ID = f.nextCompanyID
	f.companies[comp.ID] = comp
	f.companyNames[key] = true
	return nil
}

func (f *fakeAccountRepo) GetCompanyByID(ctx context.Context, accountID, id int64) (*account.Company, error) {
	if comp, ok := f.companies[id]; ok && comp.AccountID == accountID {
		return comp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) GetCompanyByUUID(ctx context.Context, accountID int64, id uuid.UUID) (*account.Company, error) {
	for _, comp := range f.companies {
		if comp.UUID == id && comp.AccountID == accountID {
			return comp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) ListCompanies(ctx context.Context, accountID int64) ([]account.Company, error) {
	var result []account.Company
	for _, comp := range f.companies {
		if comp.AccountID == accountID {
			result = append(result, *comp)
		}
	}
	return result, nil
}

func (f *fakeAccountRepo) UpdateCompany(ctx context.Context, comp *account.Company) error {
	f.companies[comp.ID] = comp
	return nil
}

type fakeUserRepo struct {
	created []user.User
	tenants []tenancy.Context
}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) user.Repository { return f }

func (f *fakeUserRepo) Create(ctx context.Context, tc tenancy.Context, u *user.User) error {
	if err := tc.Validate(); err != nil {
		return err
	}
	u.AccountID = tc.AccountID
	u.CompanyID = tc.CompanyID
	u.ID = int64(len(f.created) + 1)
	u.UUID = uuid.New()
	f.created = append(f.created, *u)
	f.tenants = append(f.tenants, tc)
	return nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, tc tenancy.Context) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*user.User, error) {
	return nil, tenancy.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, tc tenancy.Context, u *user.User) error {
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, tc tenancy.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeUserRepo) FindByEmailGlobal(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SaveGlobal(ctx context.Context, u *user.User) error { return nil }

// =========================================
// Helpers
// =========================================

func setupGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	return gdb, mock
}

// =========================================
// Tests
// =========================================

func TestAccountService_Onboard(t *testing.T) {
	gdb, mock := setupGorm(t)
	repo := newFakeAccountRepo()
	userRepo := &fakeUserRepo{}

	svc := account.NewService(gdb, repo, userRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Onboard(context.Background(), account.OnboardRequest{
		AccountName:   "Acme Holdings",
		CompanyName:   "Acme Property North",
		AdminEmail:    "admin@acme.test",
		AdminPassword: "supersecret",
		AdminFullName: "Admin",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Acme Holdings", resp.Account.Name)
	assert.Equal(t, "Acme Property North", resp.Company.Name)
	assert.NotEmpty(t, resp.AdminUUID)

	// Admin user was stamped with the freshly created tenant pair.
	assert.Len(t, userRepo.created, 1)
	admin := userRepo.created[0]
	assert.Equal(t, int64(1), admin.AccountID)
	assert.Equal(t, int64(1), admin.CompanyID)
	assert.Equal(t, user.RoleAdmin, admin.RoleSlug)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("supersecret")))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountService_CreateCompany(t *testing.T) {
	gdb, mock := setupGorm(t)
	repo := newFakeAccountRepo()
	svc := account.NewService(gdb, repo, &fakeUserRepo{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Onboard(context.Background(), account.OnboardRequest{
		AccountName:   "Acme Holdings",
		CompanyName:   "North",
		AdminEmail:    "admin@acme.test",
		AdminPassword: "supersecret",
		AdminFullName: "Admin",
	})
	assert.NoError(t, err)

	t.Run("second company under the same account", func(t *testing.T) {
		comp, err := svc.CreateCompany(context.Background(), 1, account.CreateCompanyRequest{
			Name: "South",
		})
		assert.NoError(t, err)
		assert.Equal(t, "South", comp.Name)

		comps, err := svc.ListCompanies(context.Background(), 1)
		assert.NoError(t, err)
		assert.Len(t, comps, 2)
	})

	t.Run("duplicate name maps to conflict", func(t *testing.T) {
		_, err := svc.CreateCompany(context.Background(), 1, account.CreateCompanyRequest{
			Name: "South",
		})
		assert.ErrorIs(t, err, accounterrors.ErrCompanyNameTaken)
	})

	t.Run("suspended account rejected", func(t *testing.T) {
		acc, err := repo.GetAccountByID(context.Background(), 1)
		assert.NoError(t, err)
		acc.Status = account.StatusSuspended

		_, err = svc.CreateCompany(context.Background(), 1, account.CreateCompanyRequest{
			Name: "East",
		})
		assert.ErrorIs(t, err, accounterrors.ErrAccountSuspended)
	})
}

func TestAccountService_UpdateCompany_ForeignAccountIsNotFound(t *testing.T) {
	gdb, mock := setupGorm(t)
	repo := newFakeAccountRepo()
	svc := account.NewService(gdb, repo, &fakeUserRepo{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Onboard(context.Background(), account.OnboardRequest{
		AccountName:   "Acme Holdings",
		CompanyName:   "North",
		AdminEmail:    "admin@acme.test",
		AdminPassword: "supersecret",
		AdminFullName: "Admin",
	})
	assert.NoError(t, err)

	// Account 2 probing account 1's company uuid gets not found, not
	// forbidden.
	_, err = svc.UpdateCompany(context.Background(), 2, resp.Company.UUID, account.UpdateCompanyRequest{
		Name: "Hijacked",
	})
	assert.ErrorIs(t, err, accounterrors.ErrCompanyNotFound)
}
