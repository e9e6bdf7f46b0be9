package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"otpshare/internal/config"
	"otpshare/internal/domain"
	"otpshare/internal/export"
	"otpshare/internal/port"
)

// BackupSnapshot is a rendered export of the whole pool.
type BackupSnapshot struct {
	FileName    string
	ContentType string
	Data        []byte
	Count       int
}

// ArchiveResult describes a snapshot stored in the backup bucket.
type ArchiveResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupService exports the OTP pool for safekeeping.
type BackupService interface {
	Export(ctx context.Context, format string) (*BackupSnapshot, error)
	Archive(ctx context.Context, format string) (*ArchiveResult, error)
}

type backupService struct {
	repo    port.OTPRepository
	storage port.ObjectStorage
	s3Cfg   config.S3Config
	cfg     config.BackupConfig
	now     func() time.Time
}

// NewBackupService creates a new BackupService implementation. storage may be
// nil, in which case Archive reports ErrBackupStorageDisabled.
func NewBackupService(
	repo port.OTPRepository,
	storage port.ObjectStorage,
	s3Cfg config.S3Config,
	cfg config.BackupConfig,
) BackupService {
	return &backupService{
		repo:    repo,
		storage: storage,
		s3Cfg:   s3Cfg,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *backupService) Export(ctx context.Context, format string) (*BackupSnapshot, error) {
	f, err := s.resolveFormat(format)
	if err != nil {
		return nil, err
	}

	otps, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup.Export: %w", err)
	}

	var buf bytes.Buffer
	switch f {
	case domain.ExportFormatXLSX:
		err = export.WriteXLSX(&buf, otps)
	default:
		err = export.WriteCSV(&buf, otps)
	}
	if err != nil {
		return nil, fmt.Errorf("backup.Export: rendering %s: %w", f, err)
	}

	return &BackupSnapshot{
		FileName:    export.BuildFilename(f, s.now()),
		ContentType: export.ContentType(f),
		Data:        buf.Bytes(),
		Count:       len(otps),
	}, nil
}

func (s *backupService) Archive(ctx context.Context, format string) (*ArchiveResult, error) {
	if s.storage == nil {
		return nil, domain.ErrBackupStorageDisabled
	}

	snap, err := s.Export(ctx, format)
	if err != nil {
		return nil, err
	}

	key := path.Join(s.cfg.KeyPrefix, snap.FileName)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(snap.Data),
		ContentType: snap.ContentType,
		Size:        int64(len(snap.Data)),
	})
	if err != nil {
		return nil, fmt.Errorf("backup.Archive: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, key, s.s3Cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("backup.Archive: %w", err)
	}
	log.Printf("backup.Archive: stored %d codes at s3://%s/%s", snap.Count, s.s3Cfg.Bucket, key)

	return &ArchiveResult{Key: key, URL: url, Count: snap.Count, CreatedAt: s.now().UTC()}, nil
}

func (s *backupService) resolveFormat(format string) (domain.ExportFormat, error) {
	if format == "" {
		format = s.cfg.DefaultFormat
	}
	switch f := domain.ExportFormat(strings.ToLower(format)); f {
	case domain.ExportFormatCSV, domain.ExportFormatXLSX:
		return f, nil
	default:
		return "", domain.ErrUnsupportedExportFormat
	}
}
