package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otpshare/internal/domain"
)

func TestParseVendorType(t *testing.T) {
	v, err := domain.ParseVendorType("plain_text")
	require.NoError(t, err)
	assert.Equal(t, domain.VendorPlainText, v)

	v, err = domain.ParseVendorType("tplink_omada")
	require.NoError(t, err)
	assert.Equal(t, domain.VendorTPLinkOmada, v)
}

func TestParseVendorType_Unknown(t *testing.T) {
	for _, in := range []string{"", "PLAIN_TEXT", "omada", "csv"} {
		_, err := domain.ParseVendorType(in)
		assert.True(t, errors.Is(err, domain.ErrUnsupportedVendor), in)
	}
}

func TestDecodeError(t *testing.T) {
	inner := errors.New("bad quote")
	err := &domain.DecodeError{Vendor: "Acme", Format: "CSV", Err: inner}

	assert.EqualError(t, err, "failed to parse Acme CSV file: bad quote")
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
	assert.ErrorIs(t, err, inner)
	assert.False(t, errors.Is(err, domain.ErrNoCodesFound))
}

func TestRoleAndStatusValidation(t *testing.T) {
	assert.True(t, domain.RoleAdmin.IsValid())
	assert.True(t, domain.RoleUser.IsValid())
	assert.False(t, domain.UserRole("member").IsValid())

	assert.True(t, domain.OTPStatusUsed.IsValid())
	assert.False(t, domain.OTPStatus("expired").IsValid())
}
