package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"otpshare/internal/domain"
	"otpshare/internal/service"
)

// MockOTPService is a mock implementation of service.OTPService.
type MockOTPService struct {
	mock.Mock
}

func (m *MockOTPService) Dashboard(ctx context.Context) (*service.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

func (m *MockOTPService) MarkUsed(ctx context.Context, otpID, userID uuid.UUID) (*domain.OTP, error) {
	args := m.Called(ctx, otpID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTP), args.Error(1)
}

func (m *MockOTPService) List(ctx context.Context, filter domain.OTPFilter) (*service.OTPList, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OTPList), args.Error(1)
}

func (m *MockOTPService) Delete(ctx context.Context, otpID uuid.UUID) error {
	args := m.Called(ctx, otpID)
	return args.Error(0)
}

func (m *MockOTPService) DeleteBulk(ctx context.Context, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockOTPService) MarkBulkUsed(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, ids, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockOTPService) MarkBulkUnused(ctx context.Context, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockOTPService) DeleteAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
