package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"otpshare/internal/domain"
	"otpshare/internal/port"
)

// Dashboard is what a signed-in user sees: the next code to hand out and
// what was handed out recently.
type Dashboard struct {
	Available      []domain.OTP         `json:"available"`
	RecentlyUsed   []domain.OTPWithUser `json:"recently_used"`
	TotalAvailable int                  `json:"total_available"`
}

// OTPList is a page of codes plus pool-wide statistics.
type OTPList struct {
	OTPs  []domain.OTPWithUser `json:"otps"`
	Total int                  `json:"-"`
	Stats *domain.OTPStats     `json:"stats"`
}

// BulkIDsInput is the DTO for bulk operations on codes.
type BulkIDsInput struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// OTPService defines the voucher pool contract.
type OTPService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	MarkUsed(ctx context.Context, otpID, userID uuid.UUID) (*domain.OTP, error)
	List(ctx context.Context, filter domain.OTPFilter) (*OTPList, error)
	Delete(ctx context.Context, otpID uuid.UUID) error
	DeleteBulk(ctx context.Context, ids []uuid.UUID) (int, error)
	MarkBulkUsed(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int, error)
	MarkBulkUnused(ctx context.Context, ids []uuid.UUID) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}

type otpService struct {
	repo port.OTPRepository
	now  func() time.Time
}

// NewOTPService creates a new OTPService implementation.
func NewOTPService(repo port.OTPRepository) OTPService {
	return &otpService{repo: repo, now: time.Now}
}

func (s *otpService) Dashboard(ctx context.Context) (*Dashboard, error) {
	available, err := s.repo.ListAvailable(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("otp.Dashboard: %w", err)
	}
	recent, err := s.repo.ListUsedSince(ctx, s.now().Add(-domain.DashboardRecentlyUsedWindow))
	if err != nil {
		return nil, fmt.Errorf("otp.Dashboard: %w", err)
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("otp.Dashboard: %w", err)
	}
	return &Dashboard{
		Available:      available,
		RecentlyUsed:   recent,
		TotalAvailable: stats.Unused,
	}, nil
}

func (s *otpService) MarkUsed(ctx context.Context, otpID, userID uuid.UUID) (*domain.OTP, error) {
	if err := s.repo.MarkUsed(ctx, otpID, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, otpID)
}

func (s *otpService) List(ctx context.Context, filter domain.OTPFilter) (*OTPList, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		filter.Status = ""
	}
	if filter.Limit <= 0 || filter.Limit > domain.MaxListLimit {
		filter.Limit = domain.MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	otps, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("otp.List: %w", err)
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("otp.List: %w", err)
	}
	return &OTPList{OTPs: otps, Total: total, Stats: stats}, nil
}

func (s *otpService) Delete(ctx context.Context, otpID uuid.UUID) error {
	return s.repo.Delete(ctx, otpID)
}

func (s *otpService) DeleteBulk(ctx context.Context, ids []uuid.UUID) (int, error) {
	n, err := s.repo.DeleteBulk(ctx, ids)
	if err != nil {
		return 0, err
	}
	log.Printf("otp.DeleteBulk: deleted %d of %d requested", n, len(ids))
	return n, nil
}

func (s *otpService) MarkBulkUsed(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int, error) {
	n, err := s.repo.MarkBulkUsed(ctx, ids, userID)
	if err != nil {
		return 0, err
	}
	log.Printf("otp.MarkBulkUsed: marked %d of %d requested", n, len(ids))
	return n, nil
}

func (s *otpService) MarkBulkUnused(ctx context.Context, ids []uuid.UUID) (int, error) {
	n, err := s.repo.MarkBulkUnused(ctx, ids)
	if err != nil {
		return 0, err
	}
	log.Printf("otp.MarkBulkUnused: reset %d of %d requested", n, len(ids))
	return n, nil
}

func (s *otpService) DeleteAll(ctx context.Context) (int, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	log.Printf("otp.DeleteAll: deleted %d codes", n)
	return n, nil
}
