package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"otpshare/internal/domain"
	"otpshare/internal/port"
)

// insertChunkSize keeps multi-row inserts well below the 65535 bind parameter limit.
const insertChunkSize = 1000

const otpWithUserColumns = `o.id, o.code, o.status, o.created_by, o.created_at, o.used_at, o.used_by,
	u.username AS used_by_username`

type otpRepo struct {
	db *sqlx.DB
}

// NewOTPRepo creates a new PostgreSQL-backed OTPRepository.
func NewOTPRepo(db *sqlx.DB) port.OTPRepository {
	return &otpRepo{db: db}
}

func (r *otpRepo) CreateBulk(ctx context.Context, codes []string, createdBy uuid.UUID) (int, error) {
	if len(codes) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for start := 0; start < len(codes); start += insertChunkSize {
			end := min(start+insertChunkSize, len(codes))
			chunk := codes[start:end]

			valueStrings := make([]string, 0, len(chunk))
			valueArgs := make([]interface{}, 0, len(chunk)*5)
			for i, code := range chunk {
				base := i * 5
				valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
					base+1, base+2, base+3, base+4, base+5))
				valueArgs = append(valueArgs, uuid.New(), code, domain.OTPStatusUnused, createdBy, now)
			}

			query := fmt.Sprintf(
				`INSERT INTO otps (id, code, status, created_by, created_at) VALUES %s`,
				strings.Join(valueStrings, ", "))
			if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("otpRepo.CreateBulk: %w", err)
	}
	return len(codes), nil
}

func (r *otpRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OTP, error) {
	var otp domain.OTP
	err := r.db.GetContext(ctx, &otp, "SELECT * FROM otps WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("otpRepo.GetByID: %w", err)
	}
	return &otp, nil
}

func (r *otpRepo) ListAvailable(ctx context.Context, limit int) ([]domain.OTP, error) {
	otps := []domain.OTP{}
	err := r.db.SelectContext(ctx, &otps,
		`SELECT * FROM otps WHERE status = $1 ORDER BY created_at ASC, id ASC LIMIT $2`,
		domain.OTPStatusUnused, limit)
	if err != nil {
		return nil, fmt.Errorf("otpRepo.ListAvailable: %w", err)
	}
	return otps, nil
}

func (r *otpRepo) ListUsedSince(ctx context.Context, since time.Time) ([]domain.OTPWithUser, error) {
	otps := []domain.OTPWithUser{}
	err := r.db.SelectContext(ctx, &otps,
		`SELECT `+otpWithUserColumns+`
		 FROM otps o LEFT JOIN users u ON o.used_by = u.id
		 WHERE o.status = $1 AND o.used_at >= $2
		 ORDER BY o.used_at DESC`,
		domain.OTPStatusUsed, since)
	if err != nil {
		return nil, fmt.Errorf("otpRepo.ListUsedSince: %w", err)
	}
	return otps, nil
}

func (r *otpRepo) List(ctx context.Context, filter domain.OTPFilter) ([]domain.OTPWithUser, int, error) {
	var conds []string
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, containsPattern(filter.Search))
		conds = append(conds, fmt.Sprintf(`o.code ILIKE $%d ESCAPE '\'`, len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM otps o"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("otpRepo.List count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM otps o LEFT JOIN users u ON o.used_by = u.id%s
		ORDER BY o.created_at DESC, o.id DESC LIMIT $%d OFFSET $%d`,
		otpWithUserColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	otps := []domain.OTPWithUser{}
	if err := r.db.SelectContext(ctx, &otps, query, args...); err != nil {
		return nil, 0, fmt.Errorf("otpRepo.List: %w", err)
	}
	return otps, total, nil
}

func (r *otpRepo) ListAll(ctx context.Context) ([]domain.OTPWithUser, error) {
	otps := []domain.OTPWithUser{}
	err := r.db.SelectContext(ctx, &otps,
		`SELECT `+otpWithUserColumns+`
		 FROM otps o LEFT JOIN users u ON o.used_by = u.id
		 ORDER BY o.created_at ASC, o.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("otpRepo.ListAll: %w", err)
	}
	return otps, nil
}

func (r *otpRepo) Stats(ctx context.Context) (*domain.OTPStats, error) {
	var stats domain.OTPStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'used') AS used,
			COUNT(*) FILTER (WHERE status = 'unused') AS unused
		FROM otps`)
	if err != nil {
		return nil, fmt.Errorf("otpRepo.Stats: %w", err)
	}
	return &stats, nil
}

func (r *otpRepo) MarkUsed(ctx context.Context, id, userID uuid.UUID) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE otps SET status = $1, used_at = NOW(), used_by = $2
			 WHERE id = $3 AND status = $4`,
			domain.OTPStatusUsed, userID, id, domain.OTPStatusUnused)
		if err != nil {
			return err
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			var status domain.OTPStatus
			err := tx.GetContext(ctx, &status, "SELECT status FROM otps WHERE id = $1", id)
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			if err != nil {
				return err
			}
			return domain.ErrOTPAlreadyUsed
		}
		return insertUsageLogs(ctx, tx, []uuid.UUID{id}, userID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrOTPAlreadyUsed) {
			return err
		}
		return fmt.Errorf("otpRepo.MarkUsed: %w", err)
	}
	return nil
}

func (r *otpRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM otps WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("otpRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *otpRepo) DeleteBulk(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In("DELETE FROM otps WHERE id IN (?)", ids)
	if err != nil {
		return 0, fmt.Errorf("otpRepo.DeleteBulk: %w", err)
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("otpRepo.DeleteBulk: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

func (r *otpRepo) MarkBulkUsed(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var changed []uuid.UUID
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query, args, err := sqlx.In(
			`UPDATE otps SET status = ?, used_at = NOW(), used_by = ?
			 WHERE id IN (?) AND status = ? RETURNING id`,
			domain.OTPStatusUsed, userID, ids, domain.OTPStatusUnused)
		if err != nil {
			return err
		}
		if err := tx.SelectContext(ctx, &changed, tx.Rebind(query), args...); err != nil {
			return err
		}
		return insertUsageLogs(ctx, tx, changed, userID)
	})
	if err != nil {
		return 0, fmt.Errorf("otpRepo.MarkBulkUsed: %w", err)
	}
	return len(changed), nil
}

func (r *otpRepo) MarkBulkUnused(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(
		`UPDATE otps SET status = ?, used_at = NULL, used_by = NULL
		 WHERE id IN (?) AND status = ?`,
		domain.OTPStatusUnused, ids, domain.OTPStatusUsed)
	if err != nil {
		return 0, fmt.Errorf("otpRepo.MarkBulkUnused: %w", err)
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("otpRepo.MarkBulkUnused: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

func (r *otpRepo) DeleteAll(ctx context.Context) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM otps")
	if err != nil {
		return 0, fmt.Errorf("otpRepo.DeleteAll: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE substring pattern matching term literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func insertUsageLogs(ctx context.Context, tx *sqlx.Tx, otpIDs []uuid.UUID, userID uuid.UUID) error {
	for start := 0; start < len(otpIDs); start += insertChunkSize {
		chunk := otpIDs[start:min(start+insertChunkSize, len(otpIDs))]

		valueStrings := make([]string, 0, len(chunk))
		valueArgs := make([]interface{}, 0, len(chunk)*4)
		for i, otpID := range chunk {
			base := i * 4
			valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, NOW())",
				base+1, base+2, base+3, base+4))
			valueArgs = append(valueArgs, uuid.New(), otpID, userID, domain.UsageActionMarkedUsed)
		}
		query := fmt.Sprintf(
			`INSERT INTO usage_logs (id, otp_id, user_id, action, timestamp) VALUES %s`,
			strings.Join(valueStrings, ", "))
		if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
			return err
		}
	}
	return nil
}
