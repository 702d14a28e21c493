package user_test

import (
	"context"
	"testing"
	"time"

	"proryx/internal/tenancy"
	"proryx/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

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

type noopSeq struct{}

func (noopSeq) NextID(ctx context.Context, tc tenancy.Context, kind string) (int64, error) {
	return 1, nil
}

func TestUserRepository_FindByEmailGlobal_PrefersMostRecentLogin(t *testing.T) {
	gdb, mock := setupGorm(t)
	repo := user.NewRepository(gdb, noopSeq{})

	lastLogin := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	// Per-tenant email uniqueness means several rows can match; the
	// query must order by login recency with the key as a tie-break.
	mock.ExpectQuery(`ORDER BY last_login_at DESC NULLS LAST, account_id, company_id, id`).
		WithArgs("ana@example.com", 1).
		WillReturnRows(sqlmock.
			NewRows([]string{"account_id", "company_id", "id", "email", "last_login_at"}).
			AddRow(int64(2), int64(5), int64(3), "ana@example.com", lastLogin))

	u, err := repo.FindByEmailGlobal(context.Background(), "ana@example.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), u.AccountID)
	assert.Equal(t, int64(5), u.CompanyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
