package dto

import (
	"time"

	"github.com/spec-kit/shift-tracker/internal/auth"
	"github.com/spec-kit/shift-tracker/internal/domain"
)

// SignUpRequest payload for new users.
type SignUpRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// SignInRequest payload for login.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PasswordResetRequest asks for a verification code.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirmRequest redeems a verification code.
type PasswordResetConfirmRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ChangePasswordRequest updates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of a profile.
type UserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	DisplayName  string     `json:"display_name"`
	BranchID     *string    `json:"branch_id,omitempty"`
	DepartmentID *string    `json:"department_id,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	HourlyRate   *float64   `json:"hourly_rate,omitempty"`
	HireDate     *time.Time `json:"hire_date,omitempty"`
	IsActive     bool       `json:"is_active"`
}

// NewUserResponse maps a profile.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		DisplayName:  u.DisplayName(),
		BranchID:     u.BranchID,
		DepartmentID: u.DepartmentID,
		Phone:        u.Phone,
		HourlyRate:   u.HourlyRate,
		HireDate:     u.HireDate,
		IsActive:     u.IsActive,
	}
}

// MeResponse describes the signed-in principal and what it may open.
type MeResponse struct {
	User     UserResponse `json:"user"`
	Role     domain.Role  `json:"role"`
	RoleName string       `json:"role_name"`
	Routes   []auth.Route `json:"routes"`
}
