package auth_test

import (
	"context"
	"testing"
	"time"

	"proryx/internal/auth"
	autherrors "proryx/internal/auth/errors"
	"proryx/internal/rbac"
	"proryx/internal/tenancy"
	"proryx/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// =========================================
// Fakes
// =========================================

type fakeAuthRepo struct {
	tokens map[string]*auth.RefreshToken
	users  map[int64]*user.User
	nextID int64
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		tokens: make(map[string]*auth.RefreshToken),
		users:  make(map[int64]*user.User),
	}
}

func (f *fakeAuthRepo) WithTx(tx *gorm.DB) auth.Repository { return f }

func (f *fakeAuthRepo) CreateRefreshToken(ctx context.Context, token *auth.RefreshToken) error {
	f.nextID++
	token.ID = f.nextID
	f.tokens[token.TokenHash] = token
	return nil
}

func (f *fakeAuthRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (*auth.RefreshToken, error) {
	if t, ok := f.tokens[hash]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) RevokeRefreshToken(ctx context.Context, hash string) error {
	if t, ok := f.tokens[hash]; ok && t.RevokedAt == nil {
		now := time.Now()
		t.RevokedAt = &now
	}
	return nil
}

func (f *fakeAuthRepo) RevokeAllForUser(ctx context.Context, userID int64) error {
	now := time.Now()
	for _, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeAuthRepo) GetUserByIDInTenant(ctx context.Context, tc tenancy.Context, userID int64) (*user.User, error) {
	u, ok := f.users[userID]
	if !ok || u.AccountID != tc.AccountID || u.CompanyID != tc.CompanyID {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type fakeUserRepo struct {
	byEmail map[string]*user.User
}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) user.Repository { return f }

func (f *fakeUserRepo) Create(ctx context.Context, tc tenancy.Context, u *user.User) error {
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
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SaveGlobal(ctx context.Context, u *user.User) error {
	f.byEmail[u.Email] = u
	return nil
}

type fakeRBAC struct {
	loaded [][2]int64
}

func (f *fakeRBAC) LoadCompanyPolicy(accountID, companyID int64) error {
	f.loaded = append(f.loaded, [2]int64{accountID, companyID})
	return nil
}

func (f *fakeRBAC) Enforce(req rbac.EnforceRequest) (bool, error)       { return true, nil }
func (f *fakeRBAC) ListRoles() ([]rbac.RoleResponse, error)             { return nil, nil }
func (f *fakeRBAC) GetRole(slug string) (*rbac.RoleResponse, error)     { return nil, nil }
func (f *fakeRBAC) ListPermissions() ([]rbac.PermissionResponse, error) { return nil, nil }
func (f *fakeRBAC) UpdateRolePermissions(slug string, permIDs []int64) error {
	return nil
}

// =========================================
// Setup
// =========================================

func testOptions() auth.Options {
	return auth.Options{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		MaxFailedLogins: 5,
		LockoutDuration: 15 * time.Minute,
	}
}

func seedUser(t *testing.T, repo *fakeUserRepo, authRepo *fakeAuthRepo, accountID, companyID int64) *user.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	assert.NoError(t, err)

	u := &user.User{
		Key: tenancy.Key{
			AccountID: accountID,
			CompanyID: companyID,
			ID:        1,
			UUID:      uuid.New(),
		},
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		FullName:     "Ana",
		RoleSlug:     user.RoleAdmin,
		IsActive:     true,
	}
	repo.byEmail[u.Email] = u
	authRepo.users[u.ID] = u
	return u
}

// =========================================
// Tests
// =========================================

func TestAuthService_Login(t *testing.T) {
	authRepo := newFakeAuthRepo()
	userRepo := &fakeUserRepo{byEmail: make(map[string]*user.User)}
	rbacSvc := &fakeRBAC{}
	seedUser(t, userRepo, authRepo, 3, 9)

	svc := auth.NewService(authRepo, userRepo, rbacSvc, testOptions())

	pair, resp, err := svc.Login(context.Background(), "ana@example.com", "supersecret")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "ana@example.com", resp.Email)

	// The tenant pair rides in the claims as numbers.
	token, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(3), claims["account_id"])
	assert.Equal(t, float64(9), claims["company_id"])
	assert.Equal(t, float64(1), claims["user_id"])
	assert.Equal(t, user.RoleAdmin, claims["role"])

	// Policy preloaded for the user's tenant.
	assert.Equal(t, [][2]int64{{3, 9}}, rbacSvc.loaded)
}

func TestAuthService_Login_InvalidCredentialsUniform(t *testing.T) {
	authRepo := newFakeAuthRepo()
	userRepo := &fakeUserRepo{byEmail: make(map[string]*user.User)}
	seedUser(t, userRepo, authRepo, 1, 1)

	svc := auth.NewService(authRepo, userRepo, &fakeRBAC{}, testOptions())

	_, _, errUnknown := svc.Login(context.Background(), "ghost@example.com", "whatever")
	_, _, errWrong := svc.Login(context.Background(), "ana@example.com", "wrongpass")

	// Unknown email and wrong password are indistinguishable.
	assert.ErrorIs(t, errUnknown, autherrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, autherrors.ErrInvalidCredentials)
}

func TestAuthService_Login_Lockout(t *testing.T) {
	authRepo := newFakeAuthRepo()
	userRepo := &fakeUserRepo{byEmail: make(map[string]*user.User)}
	u := seedUser(t, userRepo, authRepo, 1, 1)

	svc := auth.NewService(authRepo, userRepo, &fakeRBAC{}, testOptions())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := svc.Login(ctx, "ana@example.com", "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	}

	assert.NotNil(t, u.LockedUntil)

	// Even the right password is refused while locked.
	_, _, err := svc.Login(ctx, "ana@example.com", "supersecret")
	assert.ErrorIs(t, err, autherrors.ErrAccountLocked)

	// After the window passes, login works and resets the state.
	past := time.Now().Add(-time.Minute)
	u.LockedUntil = &past

	_, _, err = svc.Login(ctx, "ana@example.com", "supersecret")
	assert.NoError(t, err)
	assert.Nil(t, u.LockedUntil)
	assert.Equal(t, 0, u.FailedLoginAttempts)
}

func TestAuthService_RefreshRotation(t *testing.T) {
	authRepo := newFakeAuthRepo()
	userRepo := &fakeUserRepo{byEmail: make(map[string]*user.User)}
	seedUser(t, userRepo, authRepo, 1, 1)

	svc := auth.NewService(authRepo, userRepo, &fakeRBAC{}, testOptions())
	ctx := context.Background()

	pair, _, err := svc.Login(ctx, "ana@example.com", "supersecret")
	assert.NoError(t, err)

	newPair, resp, err := svc.Refresh(ctx, pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)
	assert.Equal(t, "ana@example.com", resp.Email)

	// The rotated-out token is dead.
	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)

	// A token we never issued is dead too.
	_, _, err = svc.Refresh(ctx, "garbage.token.value")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestAuthService_Logout(t *testing.T) {
	authRepo := newFakeAuthRepo()
	userRepo := &fakeUserRepo{byEmail: make(map[string]*user.User)}
	seedUser(t, userRepo, authRepo, 1, 1)

	svc := auth.NewService(authRepo, userRepo, &fakeRBAC{}, testOptions())
	ctx := context.Background()

	pair, _, err := svc.Login(ctx, "ana@example.com", "supersecret")
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestAuthService_GetMe_TenantMismatch(t *testing.T) {
	authRepo := newFakeAuthRepo()
	userRepo := &fakeUserRepo{byEmail: make(map[string]*user.User)}
	u := seedUser(t, userRepo, authRepo, 1, 1)

	svc := auth.NewService(authRepo, userRepo, &fakeRBAC{}, testOptions())
	ctx := context.Background()

	own, _ := tenancy.NewContext(1, 1)
	resp, err := svc.GetMe(ctx, own, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.Email)

	// Claims pointing at a sibling company resolve to nothing.
	other, _ := tenancy.NewContext(1, 2)
	_, err = svc.GetMe(ctx, other, u.ID)
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}
