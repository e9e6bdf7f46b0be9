package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"otpshare/internal/domain"
	"otpshare/internal/service"
	"otpshare/mocks"
)

func TestUserService_Create_Success(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "carol" && u.Role == domain.RoleUser &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pass1234")) == nil
	})).Return(nil)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Username: "carol",
		Password: "pass1234",
		Role:     domain.RoleUser,
	})

	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
	repo.AssertExpectations(t)
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Username: "carol",
		Password: "pass1234",
		Role:     "superuser",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateUsername)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Username: "carol",
		Password: "pass1234",
		Role:     domain.RoleUser,
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestUserService_Update_DemoteLastAdmin(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	admin := &domain.User{ID: uuid.New(), Username: "root", Role: domain.RoleAdmin}
	repo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)
	repo.On("CountByRole", mock.Anything, domain.RoleAdmin).Return(1, nil)

	role := domain.RoleUser
	user, err := svc.Update(context.Background(), admin.ID, service.UpdateUserInput{Role: &role})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrLastAdmin)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_Update_DemoteWithAnotherAdmin(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	admin := &domain.User{ID: uuid.New(), Username: "root", Role: domain.RoleAdmin}
	repo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)
	repo.On("CountByRole", mock.Anything, domain.RoleAdmin).Return(2, nil)
	repo.On("Update", mock.Anything, admin).Return(nil)

	role := domain.RoleUser
	user, err := svc.Update(context.Background(), admin.ID, service.UpdateUserInput{Role: &role})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestUserService_Update_RenameAndPassword(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	existing := &domain.User{ID: uuid.New(), Username: "dave", Role: domain.RoleUser, PasswordHash: "old"}
	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	name, pw := "david", "fresh-pass"
	user, err := svc.Update(context.Background(), existing.ID, service.UpdateUserInput{
		Username: &name,
		Password: &pw,
	})

	require.NoError(t, err)
	assert.Equal(t, "david", user.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("fresh-pass")))
	repo.AssertNotCalled(t, "CountByRole", mock.Anything, mock.Anything)
}

func TestUserService_Delete_LastAdmin(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}
	repo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)
	repo.On("CountByRole", mock.Anything, domain.RoleAdmin).Return(1, nil)

	err := svc.Delete(context.Background(), admin.ID)

	assert.ErrorIs(t, err, domain.ErrLastAdmin)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserService_Delete_RegularUser(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	user := &domain.User{ID: uuid.New(), Role: domain.RoleUser}
	repo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Delete", mock.Anything, user.ID).Return(nil)

	err := svc.Delete(context.Background(), user.ID)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
