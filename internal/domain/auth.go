package domain

import "time"

// PasswordResetCode is an email verification code issued for a password reset.
type PasswordResetCode struct {
	ID        string
	Email     string
	CodeHash  string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Usable reports whether the code may still be redeemed at now.
func (p *PasswordResetCode) Usable(now time.Time) bool {
	return p.UsedAt == nil && now.Before(p.ExpiresAt)
}
