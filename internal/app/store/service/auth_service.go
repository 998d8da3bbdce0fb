package service

import (
	"context"
	"errors"
	"fmt"

	"storetrack/internal/app/store/entity"
	"storetrack/internal/app/store/repository"
	"storetrack/internal/app/store/util"
	"storetrack/pkg/metrics"
)

// AuthService проверяет учетные данные и выдает JWT токены
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *util.JWTManager
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtManager *util.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Login проверяет пару логин/пароль и возвращает access токен
// Несуществующий пользователь и неверный пароль дают одинаковую ошибку
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.LoginAttempts.WithLabelValues("failed").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		metrics.LoginAttempts.WithLabelValues("failed").Inc()
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()

	return &entity.LoginResponse{
		AccessToken: token,
		UserID:      user.ID.String(),
		Username:    user.Username,
	}, nil
}
