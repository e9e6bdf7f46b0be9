package omada_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otpshare/internal/domain"
	"otpshare/internal/parser/omada"
)

func TestParsePDF_ExtractsEightDigitCodes(t *testing.T) {
	doc := buildPDF([]string{
		"Omada Voucher List",
		"Voucher Code: 04538612 Duration: 8 Hours",
		"Voucher Code: 23425334 Duration: 8 Hours",
	})

	codes, err := omada.ParsePDF(doc)

	require.NoError(t, err)
	assert.Equal(t, []string{"04538612", "23425334"}, codes)
}

func TestParsePDF_IgnoresOtherDigitRuns(t *testing.T) {
	doc := buildPDF([]string{"1234567 12345678 123456789 87654321"})

	codes, err := omada.ParsePDF(doc)

	require.NoError(t, err)
	assert.Equal(t, []string{"12345678", "87654321"}, codes)
}

func TestParsePDF_DeduplicatesAcrossPages(t *testing.T) {
	doc := buildPDF(
		[]string{"11111111 22222222"},
		[]string{"22222222 33333333"},
	)

	codes, err := omada.ParsePDF(doc)

	require.NoError(t, err)
	assert.Equal(t, []string{"11111111", "22222222", "33333333"}, codes)
}

func TestParsePDF_NoCodes(t *testing.T) {
	codes, err := omada.ParsePDF(buildPDF([]string{"No vouchers were generated"}))

	require.NoError(t, err)
	assert.NotNil(t, codes)
	assert.Empty(t, codes)
}

func TestParsePDF_NotAPDF(t *testing.T) {
	codes, err := omada.ParsePDF([]byte("this is not a pdf"))

	require.Error(t, err)
	assert.Nil(t, codes)
	assert.True(t, errors.Is(err, domain.ErrMalformedInput))
	assert.Contains(t, err.Error(), "failed to parse TP-Link Omada PDF file")
}

func TestParsePDF_Truncated(t *testing.T) {
	doc := buildPDF([]string{"12345678"})

	_, err := omada.ParsePDF(doc[:len(doc)/2])

	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}
