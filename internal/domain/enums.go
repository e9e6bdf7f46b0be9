package domain

// UserRole defines what an account may do.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// OTPStatus represents whether a voucher code has been handed out.
type OTPStatus string

const (
	OTPStatusUnused OTPStatus = "unused"
	OTPStatusUsed   OTPStatus = "used"
)

// IsValid reports whether s is a known status.
func (s OTPStatus) IsValid() bool {
	return s == OTPStatusUnused || s == OTPStatusUsed
}

// VendorType identifies the export format an import file was produced in.
type VendorType string

const (
	VendorPlainText   VendorType = "plain_text"
	VendorTPLinkOmada VendorType = "tplink_omada"
)

// VendorTypes returns every supported vendor in declaration order.
func VendorTypes() []VendorType {
	return []VendorType{VendorPlainText, VendorTPLinkOmada}
}

// ParseVendorType converts a wire value into a VendorType.
func ParseVendorType(s string) (VendorType, error) {
	for _, v := range VendorTypes() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", &UnsupportedVendorError{Value: s}
}

// UsageAction records what happened to an OTP in the usage log.
type UsageAction string

const (
	UsageActionMarkedUsed UsageAction = "marked_as_used"
)

// ExportFormat is the file format of a backup snapshot.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)
