package domain

import "time"

// Branch is a physical work location.
type Branch struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	ManagerID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
