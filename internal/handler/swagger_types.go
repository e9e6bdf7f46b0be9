package handler

import (
	"time"

	"otpshare/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"frontdesk"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// InitialAdminRequest represents the first-run admin request body.
type InitialAdminRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"changeme123"`
}

// ChangePasswordRequest represents the change password request body.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required" example:"oldpassword"`
	NewPassword     string `json:"new_password" binding:"required" example:"newpassword123"`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Username string          `json:"username" binding:"required" example:"frontdesk"`
	Password string          `json:"password" binding:"required" example:"securepassword123"`
	Role     domain.UserRole `json:"role" binding:"required" example:"user"`
}

// UpdateUserRequest represents the update user request body.
type UpdateUserRequest struct {
	Username *string          `json:"username" example:"frontdesk2"`
	Password *string          `json:"password" example:"newpassword123"`
	Role     *domain.UserRole `json:"role" example:"admin"`
}

// BulkIDsRequest represents a bulk operation request body.
type BulkIDsRequest struct {
	IDs []string `json:"ids" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2026-01-15T10:30:00Z"`
}

// CheckAdminResponse reports whether first-run setup is done.
type CheckAdminResponse struct {
	HasAdmin bool `json:"has_admin" example:"true"`
}

// CountResponse reports how many codes a bulk operation touched.
type CountResponse struct {
	Count int `json:"count" example:"25"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
