package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"otpshare/internal/config"
	"otpshare/internal/domain"
	"otpshare/internal/parser"
	"otpshare/internal/port"
)

// ParserFactory returns a fresh parser for a vendor.
type ParserFactory func(vendor domain.VendorType) (port.CodeParser, error)

// ImportFileInput carries an uploaded vendor export.
type ImportFileInput struct {
	UserID     uuid.UUID
	VendorType string
	FileName   string
	Data       []byte
}

// ImportCodesInput is the DTO for importing codes typed in by an admin.
type ImportCodesInput struct {
	Codes []string `json:"codes" binding:"required,min=1"`
}

// ImportResult reports how many codes were added to the pool.
type ImportResult struct {
	Count      int               `json:"count"`
	VendorType domain.VendorType `json:"vendor_type,omitempty"`
}

// ImportService turns vendor exports and manual lists into pool entries.
type ImportService interface {
	ImportFile(ctx context.Context, input ImportFileInput) (*ImportResult, error)
	ImportCodes(ctx context.Context, userID uuid.UUID, codes []string) (*ImportResult, error)
	ParserMetadata() []domain.ParserMetadata
}

type importService struct {
	repo      port.OTPRepository
	newParser ParserFactory
	cfg       config.ImportConfig
}

// NewImportService creates a new ImportService implementation. A nil
// newParser uses the built-in vendor parsers.
func NewImportService(repo port.OTPRepository, newParser ParserFactory, cfg config.ImportConfig) ImportService {
	if newParser == nil {
		newParser = parser.NewParser
	}
	return &importService{
		repo:      repo,
		newParser: newParser,
		cfg:       cfg,
	}
}

func (s *importService) ImportFile(ctx context.Context, input ImportFileInput) (*ImportResult, error) {
	if int64(len(input.Data)) > s.cfg.MaxFileSizeBytes() {
		return nil, domain.ErrFileTooLarge
	}

	vendor, err := domain.ParseVendorType(input.VendorType)
	if err != nil {
		return nil, err
	}
	p, err := s.newParser(vendor)
	if err != nil {
		return nil, err
	}

	codes, err := s.parse(ctx, p, input.Data)
	if err != nil {
		log.Printf("import.ImportFile: %s parse of %q failed: %v", vendor, input.FileName, err)
		return nil, err
	}
	if len(codes) == 0 {
		return nil, domain.ErrNoCodesFound
	}

	n, err := s.repo.CreateBulk(ctx, codes, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("import.ImportFile: %w", err)
	}
	log.Printf("import.ImportFile: imported %d codes from %q (%s, %d bytes)", n, input.FileName, vendor, len(input.Data))
	return &ImportResult{Count: n, VendorType: vendor}, nil
}

func (s *importService) ImportCodes(ctx context.Context, userID uuid.UUID, codes []string) (*ImportResult, error) {
	cleaned := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	if len(cleaned) == 0 {
		return nil, domain.ErrEmptyCodes
	}

	n, err := s.repo.CreateBulk(ctx, cleaned, userID)
	if err != nil {
		return nil, fmt.Errorf("import.ImportCodes: %w", err)
	}
	log.Printf("import.ImportCodes: imported %d codes", n)
	return &ImportResult{Count: n}, nil
}

func (s *importService) ParserMetadata() []domain.ParserMetadata {
	return parser.Describe(s.newParser)
}

type parseResult struct {
	codes []string
	err   error
}

// parse bounds the decoder by the configured timeout. A decoder that overruns
// is abandoned and its result discarded.
func (s *importService) parse(ctx context.Context, p port.CodeParser, data []byte) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ParseTimeout)
	defer cancel()

	done := make(chan parseResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- parseResult{err: fmt.Errorf("%w: decoder panic: %v", domain.ErrMalformedInput, r)}
			}
		}()
		codes, err := p.Parse(data)
		done <- parseResult{codes: codes, err: err}
	}()

	select {
	case res := <-done:
		return res.codes, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, domain.ErrParseTimeout
		}
		return nil, ctx.Err()
	}
}
