package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"otpshare/internal/domain"
	"otpshare/internal/handler"
	"otpshare/internal/middleware"
	"otpshare/internal/router"
	"otpshare/internal/service"
	"otpshare/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type fixture struct {
	engine   *gin.Engine
	auth     *mocks.MockAuthService
	otp      *mocks.MockOTPService
	imports  *mocks.MockImportService
	settings *mocks.MockSettingsService
}

func newFixture(opts router.Options) *fixture {
	f := &fixture{
		auth:     new(mocks.MockAuthService),
		otp:      new(mocks.MockOTPService),
		imports:  new(mocks.MockImportService),
		settings: new(mocks.MockSettingsService),
	}
	f.engine = router.Setup(f.auth, router.Handlers{
		Auth:     handler.NewAuthHandler(f.auth),
		OTP:      handler.NewOTPHandler(f.otp),
		Import:   handler.NewImportHandler(f.imports, 1<<20),
		User:     handler.NewUserHandler(new(mocks.MockUserService)),
		Settings: handler.NewSettingsHandler(f.settings),
		Backup:   handler.NewBackupHandler(new(mocks.MockBackupService)),
		Health:   handler.NewHealthHandler(okPinger{}),
	}, opts)
	return f
}

func (f *fixture) signIn(token string, role domain.UserRole) {
	userID := uuid.New()
	f.auth.On("ValidateToken", token).Return(&service.Claims{UserID: userID, Role: role}, nil)
	f.auth.On("Me", mock.Anything, userID).Return(&domain.User{ID: userID, Username: "u", Role: role}, nil)
}

func (f *fixture) do(method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, http.NoBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	f.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicRoutes(t *testing.T) {
	f := newFixture(router.Options{})
	f.imports.On("ParserMetadata").Return([]domain.ParserMetadata{})

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/readyz", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/parsers/metadata", "").Code)
}

func TestRouter_ProtectedRequiresToken(t *testing.T) {
	f := newFixture(router.Options{})

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/otps", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/admin/otp", "").Code)
}

func TestRouter_AdminRequiresAdminRole(t *testing.T) {
	f := newFixture(router.Options{})
	f.signIn("user-token", domain.RoleUser)
	f.signIn("admin-token", domain.RoleAdmin)
	f.settings.On("GetAll", mock.Anything).Return(map[string]string{"jwt_expiration_hours": "24"}, nil)

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/v1/admin/settings", "user-token").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/admin/settings", "admin-token").Code)
}

func TestRouter_UserDashboard(t *testing.T) {
	f := newFixture(router.Options{})
	f.signIn("user-token", domain.RoleUser)
	f.otp.On("Dashboard", mock.Anything).Return(&service.Dashboard{}, nil)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/otps", "user-token").Code)
}

func TestRouter_LoginRateLimited(t *testing.T) {
	f := newFixture(router.Options{LoginLimiter: middleware.NewRateLimiter(0.001, 1)})
	f.auth.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", http.NoBody)
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/login", http.NoBody)
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
