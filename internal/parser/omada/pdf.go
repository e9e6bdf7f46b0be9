package omada

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"otpshare/internal/domain"
)

var pdfCodePattern = regexp.MustCompile(`\b\d{8}\b`)

// ParsePDF extracts every standalone 8-digit token from the text of an
// Omada voucher PDF. Codes keep their first occurrence order across pages.
// A document the PDF engine cannot read fails as a whole.
func ParsePDF(data []byte) ([]string, error) {
	text, err := extractText(data)
	if err != nil {
		return nil, &domain.DecodeError{Vendor: vendorName, Format: "PDF", Err: err}
	}

	codes := []string{}
	seen := make(map[string]struct{})
	for _, code := range pdfCodePattern.FindAllString(text, -1) {
		codes = appendUnique(codes, seen, code)
	}
	return codes, nil
}

// extractText joins the text runs of all pages with single spaces.
func extractText(data []byte) (text string, err error) {
	// The engine panics on some corrupt inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf engine: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var runs []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		for _, row := range rows {
			for _, run := range row.Content {
				if run.S != "" {
					runs = append(runs, run.S)
				}
			}
		}
	}
	return strings.Join(runs, " "), nil
}
