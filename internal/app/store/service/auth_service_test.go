package service

import (
	"context"
	"testing"
	"time"

	"storetrack/internal/app/store/entity"
	"storetrack/internal/app/store/repository"
	"storetrack/internal/app/store/repository/mocks"
	"storetrack/internal/app/store/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*AuthService, *mocks.MockUserRepository) {
	userRepo := new(mocks.MockUserRepository)
	jwtManager := util.NewJWTManager("test-secret", time.Hour)

	return NewAuthService(userRepo, jwtManager), userRepo
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	svc, userRepo := newAuthService()

	passwordHash, err := util.HashPassword("secret123")
	require.NoError(t, err)

	user := &entity.User{
		ID:           uuid.New(),
		Username:     "ipetrov",
		PasswordHash: passwordHash,
	}
	userRepo.On("GetByUsername", ctx, "ipetrov").Return(user, nil)

	resp, err := svc.Login(ctx, &entity.LoginRequest{Username: "ipetrov", Password: "secret123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID.String(), resp.UserID)
	assert.Equal(t, "ipetrov", resp.Username)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, userRepo := newAuthService()

	passwordHash, err := util.HashPassword("secret123")
	require.NoError(t, err)

	user := &entity.User{ID: uuid.New(), Username: "ipetrov", PasswordHash: passwordHash}
	userRepo.On("GetByUsername", ctx, "ipetrov").Return(user, nil)

	resp, err := svc.Login(ctx, &entity.LoginRequest{Username: "ipetrov", Password: "wrong"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, userRepo := newAuthService()

	userRepo.On("GetByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	resp, err := svc.Login(ctx, &entity.LoginRequest{Username: "ghost", Password: "secret123"})

	// Несуществующий пользователь и неверный пароль неразличимы снаружи
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
