package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockSettingsService is a mock implementation of service.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetAll(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, values map[string]string) (map[string]string, error) {
	args := m.Called(ctx, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingsService) JWTExpiration(ctx context.Context) time.Duration {
	args := m.Called(ctx)
	return args.Get(0).(time.Duration)
}
