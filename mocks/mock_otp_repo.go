package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"otpshare/internal/domain"
)

// MockOTPRepo is a mock implementation of port.OTPRepository.
type MockOTPRepo struct {
	mock.Mock
}

func (m *MockOTPRepo) CreateBulk(ctx context.Context, codes []string, createdBy uuid.UUID) (int, error) {
	args := m.Called(ctx, codes, createdBy)
	return args.Int(0), args.Error(1)
}

func (m *MockOTPRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OTP, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTP), args.Error(1)
}

func (m *MockOTPRepo) ListAvailable(ctx context.Context, limit int) ([]domain.OTP, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OTP), args.Error(1)
}

func (m *MockOTPRepo) ListUsedSince(ctx context.Context, since time.Time) ([]domain.OTPWithUser, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OTPWithUser), args.Error(1)
}

func (m *MockOTPRepo) List(ctx context.Context, filter domain.OTPFilter) ([]domain.OTPWithUser, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.OTPWithUser), args.Int(1), args.Error(2)
}

func (m *MockOTPRepo) ListAll(ctx context.Context) ([]domain.OTPWithUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OTPWithUser), args.Error(1)
}

func (m *MockOTPRepo) Stats(ctx context.Context) (*domain.OTPStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTPStats), args.Error(1)
}

func (m *MockOTPRepo) MarkUsed(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockOTPRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOTPRepo) DeleteBulk(ctx context.Context, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockOTPRepo) MarkBulkUsed(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, ids, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockOTPRepo) MarkBulkUnused(ctx context.Context, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockOTPRepo) DeleteAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
