package user_test

import (
	"context"
	"errors"
	"testing"

	"proryx/internal/user"
	usererrors "proryx/internal/user/errors"
	mock_user "proryx/internal/user/mock"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupMock(t *testing.T) (*mock_user.MockRepository, user.Service) {
	ctrl := gomock.NewController(t)
	mockRepo := mock_user.NewMockRepository(ctrl)
	svc := user.NewService(mockRepo)
	return mockRepo, svc
}

func TestUserService_GetAll_RepositoryFailure(t *testing.T) {
	mockRepo, svc := setupMock(t)
	tc := mustTenant(t, 1, 1)

	mockRepo.EXPECT().
		FindAll(gomock.Any(), tc).
		Return(nil, errors.New("connection reset"))

	_, err := svc.GetAll(context.Background(), tc)
	assert.Error(t, err)
}

func TestUserService_Create_DuplicateEmailMapsToConflict(t *testing.T) {
	mockRepo, svc := setupMock(t)
	tc := mustTenant(t, 1, 1)

	mockRepo.EXPECT().
		Create(gomock.Any(), tc, gomock.Any()).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := svc.Create(context.Background(), tc, user.CreateUserRequest{
		Email:    "dup@example.com",
		Password: "supersecret",
		FullName: "Dup",
		RoleSlug: user.RoleViewer,
	})
	assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
}

func TestUserService_Create_RejectsUnknownRole(t *testing.T) {
	// The repository must never be reached with an invalid role.
	_, svc := setupMock(t)
	tc := mustTenant(t, 1, 1)

	_, err := svc.Create(context.Background(), tc, user.CreateUserRequest{
		Email:    "x@example.com",
		Password: "supersecret",
		FullName: "X",
		RoleSlug: "superuser",
	})
	assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
}
