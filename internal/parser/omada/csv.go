package omada

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"regexp"
	"strings"

	"otpshare/internal/domain"
)

var csvCodePattern = regexp.MustCompile(`^\d{6,8}$`)

var utf8BOM = []byte("\xef\xbb\xbf")

// columns holds header positions. code is -1 when absent; states lists every
// "type" or "status" column.
type columns struct {
	code   int
	states []int
}

// ParseCSV extracts voucher codes from an Omada CSV export. Rows whose
// voucher state is "expired" are skipped and codes are returned in first
// occurrence order without duplicates. An empty or header-only file yields
// an empty list.
func ParseCSV(data []byte) ([]string, error) {
	codes := []string{}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return codes, nil
	}
	if err != nil {
		return nil, &domain.DecodeError{Vendor: vendorName, Format: "CSV", Err: err}
	}
	cols := locateColumns(header)

	seen := make(map[string]struct{})
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.DecodeError{Vendor: vendorName, Format: "CSV", Err: err}
		}
		if isExpired(record, cols.states) {
			continue
		}
		code := field(record, cols.code)
		if !csvCodePattern.MatchString(code) {
			continue
		}
		codes = appendUnique(codes, seen, code)
	}
	return codes, nil
}

func locateColumns(header []string) columns {
	cols := columns{code: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "code":
			if cols.code < 0 {
				cols.code = i
			}
		case "type", "status":
			cols.states = append(cols.states, i)
		}
	}
	if cols.code >= 0 {
		return cols
	}
	// Older controller versions label the column "Voucher Code".
	for i, h := range header {
		if strings.Contains(strings.ToLower(h), "code") {
			cols.code = i
			break
		}
	}
	return cols
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// isExpired reports whether any state column reads "expired". Controller
// exports carry both Type and Status; the voucher state lives in Status.
func isExpired(record []string, states []int) bool {
	for _, idx := range states {
		if strings.EqualFold(field(record, idx), "expired") {
			return true
		}
	}
	return false
}
