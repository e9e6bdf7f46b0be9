package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"otpshare/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context, role domain.UserRole) (int, error)
}

// OTPRepository defines the contract for voucher code persistence.
// Bulk mutations return the number of rows they touched.
type OTPRepository interface {
	CreateBulk(ctx context.Context, codes []string, createdBy uuid.UUID) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OTP, error)
	ListAvailable(ctx context.Context, limit int) ([]domain.OTP, error)
	ListUsedSince(ctx context.Context, since time.Time) ([]domain.OTPWithUser, error)
	List(ctx context.Context, filter domain.OTPFilter) ([]domain.OTPWithUser, int, error)
	ListAll(ctx context.Context) ([]domain.OTPWithUser, error)
	Stats(ctx context.Context) (*domain.OTPStats, error)
	MarkUsed(ctx context.Context, id, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBulk(ctx context.Context, ids []uuid.UUID) (int, error)
	MarkBulkUsed(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int, error)
	MarkBulkUnused(ctx context.Context, ids []uuid.UUID) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}

// SettingRepository defines the contract for key/value settings.
type SettingRepository interface {
	GetAll(ctx context.Context) ([]domain.Setting, error)
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, key, value string) error
}
