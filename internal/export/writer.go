package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"otpshare/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// SheetName is the worksheet OTP snapshots are written to.
const SheetName = "OTPs"

// columns defines the header row shared by CSV and XLSX snapshots.
var columns = []string{
	"ID",
	"Code",
	"Status",
	"Created At",
	"Used At",
	"Used By",
}

// CSVWriter wraps csv.Writer for exporting OTPs.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteOTPs writes one row per OTP.
func (w *CSVWriter) WriteOTPs(otps []domain.OTPWithUser) error {
	for i := range otps {
		if err := w.csv.Write(otpToRow(&otps[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a complete snapshot, BOM included.
func WriteCSV(out io.Writer, otps []domain.OTPWithUser) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewCSVWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteOTPs(otps); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteXLSX writes a complete snapshot as a single-sheet workbook.
func WriteXLSX(out io.Writer, otps []domain.OTPWithUser) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i := range otps {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := otpToRow(&otps[i])
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.Write(out)
}

// ContentType returns the MIME type for a snapshot format.
func ContentType(format domain.ExportFormat) string {
	if format == domain.ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// BuildFilename returns the download name for a snapshot taken at t.
// Format: otp-backup_{YYYY-MM-DD_HHMMSS}.{ext}
func BuildFilename(format domain.ExportFormat, t time.Time) string {
	return fmt.Sprintf("otp-backup_%s.%s", t.UTC().Format("2006-01-02_150405"), format)
}

func otpToRow(otp *domain.OTPWithUser) []string {
	row := make([]string, len(columns))
	row[0] = otp.ID.String()
	row[1] = otp.Code
	row[2] = string(otp.Status)
	row[3] = otp.CreatedAt.Format(time.RFC3339)
	row[4] = formatTime(otp.UsedAt)
	if otp.UsedByUsername != nil {
		row[5] = *otp.UsedByUsername
	}
	return row
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
