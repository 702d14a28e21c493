package user_test

import (
	"context"
	"testing"

	"proryx/internal/tenancy"
	"proryx/internal/user"
	usererrors "proryx/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// =========================================
// Fake Repository
// =========================================

// fakeUserRepo keys rows by the full composite key, the same shape the
// real table has. Lookups from the wrong tenant fall through to not
// found, which is exactly what the scoped accessor produces.
type fakeUserRepo struct {
	rows   map[tenancy.Context]map[uuid.UUID]*user.User
	emails map[tenancy.Context]map[string]bool
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		rows:   make(map[tenancy.Context]map[uuid.UUID]*user.User),
		emails: make(map[tenancy.Context]map[string]bool),
	}
}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) user.Repository { return f }

func (f *fakeUserRepo) Create(ctx context.Context, tc tenancy.Context, u *user.User) error {
	if err := tc.Validate(); err != nil {
		return err
	}
	// Emails are unique per tenant, the same address under a sibling
	// company is fine.
	if f.emails[tc][u.Email] {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uniq_tenant_user_email"}
	}
	f.nextID++
	u.AccountID = tc.AccountID
	u.CompanyID = tc.CompanyID
	u.ID = f.nextID
	if u.UUID == uuid.Nil {
		u.UUID = uuid.New()
	}
	if f.rows[tc] == nil {
		f.rows[tc] = make(map[uuid.UUID]*user.User)
	}
	f.rows[tc][u.UUID] = u
	if f.emails[tc] == nil {
		f.emails[tc] = make(map[string]bool)
	}
	f.emails[tc][u.Email] = true
	return nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, tc tenancy.Context) ([]user.User, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	var result []user.User
	for _, u := range f.rows[tc] {
		result = append(result, *u)
	}
	return result, nil
}

func (f *fakeUserRepo) FindByUUID(ctx context.Context, tc tenancy.Context, id uuid.UUID) (*user.User, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if u, ok := f.rows[tc][id]; ok {
		return u, nil
	}
	return nil, tenancy.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, tc tenancy.Context, u *user.User) error {
	if _, ok := f.rows[tc][u.UUID]; !ok {
		return tenancy.ErrNotFound
	}
	f.rows[tc][u.UUID] = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, tc tenancy.Context, id uuid.UUID) error {
	if _, ok := f.rows[tc][id]; !ok {
		return tenancy.ErrNotFound
	}
	delete(f.rows[tc], id)
	return nil
}

func (f *fakeUserRepo) FindByEmailGlobal(ctx context.Context, email string) (*user.User, error) {
	// Mirrors the repository ordering: most recent login first, then
	// the composite key as a tie-break.
	var best *user.User
	for _, tenantRows := range f.rows {
		for _, u := range tenantRows {
			if u.Email != email {
				continue
			}
			if best == nil || loginMoreRecent(u, best) {
				best = u
			}
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

func loginMoreRecent(a, b *user.User) bool {
	switch {
	case a.LastLoginAt != nil && b.LastLoginAt == nil:
		return true
	case a.LastLoginAt == nil && b.LastLoginAt != nil:
		return false
	case a.LastLoginAt != nil && b.LastLoginAt != nil && !a.LastLoginAt.Equal(*b.LastLoginAt):
		return a.LastLoginAt.After(*b.LastLoginAt)
	}
	if a.AccountID != b.AccountID {
		return a.AccountID < b.AccountID
	}
	if a.CompanyID != b.CompanyID {
		return a.CompanyID < b.CompanyID
	}
	return a.ID < b.ID
}

func (f *fakeUserRepo) SaveGlobal(ctx context.Context, u *user.User) error {
	return nil
}

// =========================================
// Tests
// =========================================

func mustTenant(t *testing.T, accountID, companyID int64) tenancy.Context {
	t.Helper()
	tc, err := tenancy.NewContext(accountID, companyID)
	assert.NoError(t, err)
	return tc
}

func TestUserService_Create(t *testing.T) {
	repo := newFakeUserRepo()
	svc := user.NewService(repo)
	ctx := context.Background()
	tc := mustTenant(t, 1, 1)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Create(ctx, tc, user.CreateUserRequest{
			Email:    "ana@example.com",
			Password: "supersecret",
			FullName: "Ana",
			RoleSlug: user.RoleManager,
		})

		assert.NoError(t, err)
		assert.Equal(t, "ana@example.com", resp.Email)
		assert.Equal(t, user.RoleManager, resp.RoleSlug)
		assert.NotEmpty(t, resp.UUID)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		_, err := svc.Create(ctx, tc, user.CreateUserRequest{
			Email:    "ana@example.com",
			Password: "supersecret",
			FullName: "Ana Again",
			RoleSlug: user.RoleViewer,
		})

		assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
	})

	t.Run("same email under a sibling company is allowed", func(t *testing.T) {
		sibling := mustTenant(t, 1, 2)

		resp, err := svc.Create(ctx, sibling, user.CreateUserRequest{
			Email:    "ana@example.com",
			Password: "supersecret",
			FullName: "Ana Elsewhere",
			RoleSlug: user.RoleViewer,
		})

		assert.NoError(t, err)
		assert.Equal(t, "ana@example.com", resp.Email)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, tc, user.CreateUserRequest{
			Email:    "bob@example.com",
			Password: "supersecret",
			FullName: "Bob",
			RoleSlug: "superuser",
		})

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestUserService_CrossTenantLookupIsNotFound(t *testing.T) {
	repo := newFakeUserRepo()
	svc := user.NewService(repo)
	ctx := context.Background()

	tenantA := mustTenant(t, 1, 1)
	siblingCompany := mustTenant(t, 1, 2)
	otherAccount := mustTenant(t, 2, 1)

	created, err := svc.Create(ctx, tenantA, user.CreateUserRequest{
		Email:    "ana@example.com",
		Password: "supersecret",
		FullName: "Ana",
		RoleSlug: user.RoleAdmin,
	})
	assert.NoError(t, err)

	// Visible inside its own tenant.
	got, err := svc.GetByUUID(ctx, tenantA, created.UUID)
	assert.NoError(t, err)
	assert.Equal(t, created.UUID, got.UUID)

	// A sibling company under the same account sees nothing, and the
	// error is indistinguishable from a plain miss.
	_, err = svc.GetByUUID(ctx, siblingCompany, created.UUID)
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)

	_, err = svc.GetByUUID(ctx, otherAccount, created.UUID)
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)

	// Same for mutation paths.
	_, err = svc.Update(ctx, siblingCompany, created.UUID, user.UpdateUserRequest{FullName: "Hijack"})
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)

	err = svc.Delete(ctx, otherAccount, created.UUID)
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := user.NewService(repo)
	ctx := context.Background()
	tc := mustTenant(t, 1, 1)

	created, err := svc.Create(ctx, tc, user.CreateUserRequest{
		Email:    "ana@example.com",
		Password: "supersecret",
		FullName: "Ana",
		RoleSlug: user.RoleAdmin,
	})
	assert.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, tc, created.UUID, user.ChangePasswordRequest{
			CurrentPassword: "nope",
			NewPassword:     "anothersecret",
		})
		assert.ErrorIs(t, err, usererrors.ErrWrongPassword)
	})

	t.Run("success", func(t *testing.T) {
		err := svc.ChangePassword(ctx, tc, created.UUID, user.ChangePasswordRequest{
			CurrentPassword: "supersecret",
			NewPassword:     "anothersecret",
		})
		assert.NoError(t, err)

		stored, err := repo.FindByUUID(ctx, tc, uuid.MustParse(created.UUID))
		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("anothersecret")))
	})
}

func TestUserService_GetAllScopedToTenant(t *testing.T) {
	repo := newFakeUserRepo()
	svc := user.NewService(repo)
	ctx := context.Background()

	tenantA := mustTenant(t, 1, 1)
	tenantB := mustTenant(t, 1, 2)

	for _, email := range []string{"a1@example.com", "a2@example.com"} {
		_, err := svc.Create(ctx, tenantA, user.CreateUserRequest{
			Email: email, Password: "supersecret", FullName: "A", RoleSlug: user.RoleViewer,
		})
		assert.NoError(t, err)
	}
	_, err := svc.Create(ctx, tenantB, user.CreateUserRequest{
		Email: "b1@example.com", Password: "supersecret", FullName: "B", RoleSlug: user.RoleViewer,
	})
	assert.NoError(t, err)

	listA, err := svc.GetAll(ctx, tenantA)
	assert.NoError(t, err)
	assert.Len(t, listA, 2)

	listB, err := svc.GetAll(ctx, tenantB)
	assert.NoError(t, err)
	assert.Len(t, listB, 1)
	assert.Equal(t, "b1@example.com", listB[0].Email)
}
