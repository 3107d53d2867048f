package domain

import (
	"strings"
	"time"
)

// User is the stored profile of a person who signs in. It carries no role; roles are
// derived from the email on every access check.
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	BranchID     *string
	DepartmentID *string
	Phone        string
	HourlyRate   *float64
	HireDate     *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName joins the name parts, falling back to the local part of the email.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}
