package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SettingJWTExpirationHours is the settings key for the access token lifetime.
	SettingJWTExpirationHours   = "jwt_expiration_hours"
	DefaultJWTExpirationHours   = 24
	DashboardRecentlyUsedWindow = 7 * 24 * time.Hour
	MaxListLimit                = 100
)

// User represents an account that can sign in and hand out codes.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	DarkMode     bool      `db:"dark_mode" json:"dark_mode"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// OTP is a single voucher code held in the pool.
type OTP struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Code      string     `db:"code" json:"code"`
	Status    OTPStatus  `db:"status" json:"status"`
	CreatedBy *uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UsedAt    *time.Time `db:"used_at" json:"used_at"`
	UsedBy    *uuid.UUID `db:"used_by" json:"used_by"`
}

// OTPWithUser is an OTP joined with the username of whoever used it.
type OTPWithUser struct {
	OTP
	UsedByUsername *string `db:"used_by_username" json:"used_by_username"`
}

// OTPStats summarises the pool.
type OTPStats struct {
	Total  int `db:"total" json:"total"`
	Used   int `db:"used" json:"used"`
	Unused int `db:"unused" json:"unused"`
}

// OTPFilter narrows an admin listing of codes.
type OTPFilter struct {
	Status OTPStatus
	Search string
	Offset int
	Limit  int
}

// UsageLog is an audit row written whenever a code is handed out.
type UsageLog struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	OTPID     uuid.UUID   `db:"otp_id" json:"otp_id"`
	UserID    uuid.UUID   `db:"user_id" json:"user_id"`
	Action    UsageAction `db:"action" json:"action"`
	Timestamp time.Time   `db:"timestamp" json:"timestamp"`
}

// Setting is a runtime-tunable key/value pair.
type Setting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ParserMetadata describes an import format for upload forms.
type ParserMetadata struct {
	VendorType     VendorType `json:"vendor_type"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	FileExtensions []string   `json:"file_extensions"`
	MimeTypes      []string   `json:"mime_types"`
}
