package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrDuplicateUsername       = errors.New("username already exists")
	ErrAdminExists             = errors.New("an admin account already exists")
	ErrLastAdmin               = errors.New("cannot remove the last admin")
	ErrInvalidRole             = errors.New("invalid role")
	ErrOTPAlreadyUsed          = errors.New("otp has already been used")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrEmptyCodes              = errors.New("no codes provided")
	ErrUnsupportedVendor       = errors.New("unsupported vendor type")
	ErrMalformedInput          = errors.New("malformed import file")
	ErrNoCodesFound            = errors.New("no valid codes found in the file")
	ErrParseTimeout            = errors.New("parsing the import file timed out")
	ErrInvalidSetting          = errors.New("invalid setting value")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrBackupStorageDisabled   = errors.New("backup storage is not configured")
)

// UnsupportedVendorError is returned when a vendor identifier is not one of VendorTypes.
type UnsupportedVendorError struct {
	Value string
}

func (e *UnsupportedVendorError) Error() string {
	return fmt.Sprintf("unsupported vendor type: %s", e.Value)
}

func (e *UnsupportedVendorError) Is(target error) bool {
	return target == ErrUnsupportedVendor
}

// DecodeError reports a vendor decoder that could not read its input at all.
// It unwraps to the underlying library error and matches ErrMalformedInput.
type DecodeError struct {
	Vendor string
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse %s %s file: %v", e.Vendor, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformedInput
}
