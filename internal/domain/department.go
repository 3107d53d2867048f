package domain

import "time"

// Department groups employees inside a branch.
type Department struct {
	ID        string
	Name      string
	BranchID  string
	CreatedAt time.Time
}
