package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storetrack/internal/app/store/entity"
	"storetrack/internal/app/store/service"
	"storetrack/internal/app/store/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockAuthService реализует service.AuthServiceInterface для тестов обработчика
type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LoginResponse), args.Error(1)
}

func newAuthRouter() (*gin.Engine, *mockAuthService) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	router := gin.New()
	router.POST("/auth/login", h.Login)

	return router, svc
}

// ===================== Login Tests =====================

func TestAuthHandler_Login_Success(t *testing.T) {
	router, svc := newAuthRouter()

	resp := &entity.LoginResponse{
		AccessToken: "token",
		UserID:      uuid.NewString(),
		Username:    "ipetrov",
	}
	svc.On("Login", mock.Anything, mock.MatchedBy(func(req *entity.LoginRequest) bool {
		return req.Username == "ipetrov"
	})).Return(resp, nil)

	w := postJSON(router, "/auth/login", entity.LoginRequest{Username: "ipetrov", Password: "secret123"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	router, svc := newAuthRouter()

	svc.On("Login", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidCredentials)

	w := postJSON(router, "/auth/login", entity.LoginRequest{Username: "ipetrov", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	router, svc := newAuthRouter()

	w := postJSON(router, "/auth/login", entity.LoginRequest{Username: "ipetrov"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Login")
}

// ===================== AuthMiddleware Tests =====================

func newProtectedRouter(jwtManager *util.JWTManager) *gin.Engine {
	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(jwtManager).Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString("username")})
	})
	return router
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	router := newProtectedRouter(jwtManager)

	token, err := jwtManager.GenerateAccessToken(uuid.New(), "ipetrov")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ipetrov")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := newProtectedRouter(util.NewJWTManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := newProtectedRouter(util.NewJWTManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := util.NewJWTManager("test-secret", -time.Minute)
	router := newProtectedRouter(util.NewJWTManager("test-secret", time.Hour))

	token, err := expired.GenerateAccessToken(uuid.New(), "ipetrov")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
