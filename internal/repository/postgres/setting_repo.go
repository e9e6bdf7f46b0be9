package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"otpshare/internal/domain"
	"otpshare/internal/port"
)

type settingRepo struct {
	db *sqlx.DB
}

// NewSettingRepo creates a new PostgreSQL-backed SettingRepository.
func NewSettingRepo(db *sqlx.DB) port.SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) GetAll(ctx context.Context) ([]domain.Setting, error) {
	var settings []domain.Setting
	if err := r.db.SelectContext(ctx, &settings, "SELECT * FROM settings ORDER BY key"); err != nil {
		return nil, fmt.Errorf("settingRepo.GetAll: %w", err)
	}
	return settings, nil
}

func (r *settingRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var s domain.Setting
	err := r.db.GetContext(ctx, &s, "SELECT * FROM settings WHERE key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("settingRepo.Get: %w", err)
	}
	return &s, nil
}

func (r *settingRepo) Upsert(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value)
	if err != nil {
		return fmt.Errorf("settingRepo.Upsert: %w", err)
	}
	return nil
}
