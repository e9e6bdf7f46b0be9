package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"otpshare/internal/domain"
)

func sampleOTPs() []domain.OTPWithUser {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	used := created.Add(2 * time.Hour)
	alice := "alice"
	return []domain.OTPWithUser{
		{OTP: domain.OTP{ID: uuid.New(), Code: "123456", Status: domain.OTPStatusUnused, CreatedAt: created}},
		{
			OTP:            domain.OTP{ID: uuid.New(), Code: "04538612", Status: domain.OTPStatusUsed, CreatedAt: created, UsedAt: &used},
			UsedByUsername: &alice,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	otps := sampleOTPs()
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, otps))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, columns, rows[0])
	assert.Equal(t, []string{otps[0].ID.String(), "123456", "unused", "2025-03-01T10:00:00Z", "", ""}, rows[1])
	assert.Equal(t, "04538612", rows[2][1])
	assert.Equal(t, "2025-03-01T12:00:00Z", rows[2][4])
	assert.Equal(t, "alice", rows[2][5])
}

func TestWriteCSV_KeepsLeadingZeros(t *testing.T) {
	var buf bytes.Buffer
	otps := []domain.OTPWithUser{{OTP: domain.OTP{ID: uuid.New(), Code: "000123", Status: domain.OTPStatusUnused}}}

	require.NoError(t, WriteCSV(&buf, otps))

	assert.Contains(t, buf.String(), ",000123,")
}

func TestWriteXLSX(t *testing.T) {
	otps := sampleOTPs()
	var buf bytes.Buffer

	require.NoError(t, WriteXLSX(&buf, otps))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, SheetName, f.GetSheetName(0))
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, columns, rows[0])
	assert.Equal(t, "123456", rows[1][1])
	assert.Equal(t, "alice", rows[2][5])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestBuildFilename(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "otp-backup_2025-01-02_030405.csv", BuildFilename(domain.ExportFormatCSV, ts))
	assert.Equal(t, "otp-backup_2025-01-02_030405.xlsx", BuildFilename(domain.ExportFormatXLSX, ts))
}

func TestContentType(t *testing.T) {
	assert.Contains(t, ContentType(domain.ExportFormatCSV), "text/csv")
	assert.Contains(t, ContentType(domain.ExportFormatXLSX), "spreadsheetml")
}
