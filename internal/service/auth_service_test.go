package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"otpshare/internal/config"
	"otpshare/internal/domain"
	"otpshare/internal/service"
	"otpshare/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  24 * time.Hour,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "otpshare-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func newAuthService() (service.AuthService, *mocks.MockUserRepo, *mocks.MockSettingsService) {
	userRepo := new(mocks.MockUserRepo)
	settings := new(mocks.MockSettingsService)
	settings.On("JWTExpiration", mock.Anything).Return(24 * time.Hour).Maybe()
	return service.NewAuthService(userRepo, settings, testJWTConfig()), userRepo, settings
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo, _ := newAuthService()

	user := &domain.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: hashPassword("password123"),
		Role:         domain.RoleUser,
	}
	userRepo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Username: "alice",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, user, result.User)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), result.ExpiresAt, time.Minute)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_UsesConfiguredExpiration(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	settings := new(mocks.MockSettingsService)
	settings.On("JWTExpiration", mock.Anything).Return(2 * time.Hour)
	svc := service.NewAuthService(userRepo, settings, testJWTConfig())

	user := &domain.User{ID: uuid.New(), Username: "alice", PasswordHash: hashPassword("pw1234")}
	userRepo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{Username: "alice", Password: "pw1234"})

	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), result.ExpiresAt, time.Minute)
	settings.AssertExpectations(t)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, userRepo, _ := newAuthService()

	user := &domain.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: hashPassword("correct-password"),
	}
	userRepo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Username: "alice",
		Password: "wrong-password",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, userRepo, _ := newAuthService()
	userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	result, err := svc.Login(context.Background(), service.LoginInput{Username: "ghost", Password: "x"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_RoundTrip(t *testing.T) {
	svc, userRepo, _ := newAuthService()

	user := &domain.User{ID: uuid.New(), Username: "bob", PasswordHash: hashPassword("secret1"), Role: domain.RoleAdmin}
	userRepo.On("GetByUsername", mock.Anything, "bob").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{Username: "bob", Password: "secret1"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	svc, userRepo, _ := newAuthService()

	user := &domain.User{ID: uuid.New(), Username: "bob", PasswordHash: hashPassword("secret1")}
	userRepo.On("GetByUsername", mock.Anything, "bob").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{Username: "bob", Password: "secret1"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(result.RefreshToken)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc, _, _ := newAuthService()

	claims, err := svc.ValidateToken("not-a-token")

	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, userRepo, _ := newAuthService()

	user := &domain.User{ID: uuid.New(), Username: "bob", PasswordHash: hashPassword("secret1")}
	userRepo.On("GetByUsername", mock.Anything, "bob").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	login, err := svc.Login(context.Background(), service.LoginInput{Username: "bob", Password: "secret1"})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), login.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	userRepo.AssertExpectations(t)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, userRepo, _ := newAuthService()

	user := &domain.User{ID: uuid.New(), Username: "bob", PasswordHash: hashPassword("secret1")}
	userRepo.On("GetByUsername", mock.Anything, "bob").Return(user, nil)

	login, err := svc.Login(context.Background(), service.LoginInput{Username: "bob", Password: "secret1"})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), login.AccessToken)

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RefreshToken_DeletedUser(t *testing.T) {
	svc, userRepo, _ := newAuthService()

	user := &domain.User{ID: uuid.New(), Username: "bob", PasswordHash: hashPassword("secret1")}
	userRepo.On("GetByUsername", mock.Anything, "bob").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(nil, domain.ErrNotFound)

	login, err := svc.Login(context.Background(), service.LoginInput{Username: "bob", Password: "secret1"})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), login.RefreshToken)

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_HasAdmin(t *testing.T) {
	svc, userRepo, _ := newAuthService()
	userRepo.On("CountByRole", mock.Anything, domain.RoleAdmin).Return(1, nil)

	ok, err := svc.HasAdmin(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthService_CreateInitialAdmin_Success(t *testing.T) {
	svc, userRepo, _ := newAuthService()

	userRepo.On("CountByRole", mock.Anything, domain.RoleAdmin).Return(0, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "root" && u.Role == domain.RoleAdmin &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("rootpw")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = uuid.New()
	}).Return(nil)

	result, err := svc.CreateInitialAdmin(context.Background(), service.InitialAdminInput{
		Username: "root",
		Password: "rootpw",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, domain.RoleAdmin, result.User.Role)
	userRepo.AssertExpectations(t)
}

func TestAuthService_CreateInitialAdmin_AlreadyExists(t *testing.T) {
	svc, userRepo, _ := newAuthService()
	userRepo.On("CountByRole", mock.Anything, domain.RoleAdmin).Return(1, nil)

	result, err := svc.CreateInitialAdmin(context.Background(), service.InitialAdminInput{
		Username: "root",
		Password: "rootpw",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrAdminExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	svc, userRepo, _ := newAuthService()

	user := &domain.User{ID: uuid.New(), PasswordHash: hashPassword("old-password")}
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), user.ID, service.ChangePasswordInput{
		CurrentPassword: "nope",
		NewPassword:     "new-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, userRepo, _ := newAuthService()

	user := &domain.User{ID: uuid.New(), PasswordHash: hashPassword("old-password")}
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password")) == nil
	})).Return(nil)

	err := svc.ChangePassword(context.Background(), user.ID, service.ChangePasswordInput{
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	})

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAuthService_UpdatePreferences(t *testing.T) {
	svc, userRepo, _ := newAuthService()

	user := &domain.User{ID: uuid.New(), Username: "alice"}
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	dark := true
	updated, err := svc.UpdatePreferences(context.Background(), user.ID, service.PreferencesInput{DarkMode: &dark})

	require.NoError(t, err)
	assert.True(t, updated.DarkMode)
}
