package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"otpshare/internal/service"
)

// MockBackupService is a mock implementation of service.BackupService.
type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) Export(ctx context.Context, format string) (*service.BackupSnapshot, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BackupSnapshot), args.Error(1)
}

func (m *MockBackupService) Archive(ctx context.Context, format string) (*service.ArchiveResult, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}
