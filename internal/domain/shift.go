package domain

import "time"

// ShiftStatus enumerates lifecycle states for a scheduled shift.
type ShiftStatus string

const (
	ShiftStatusScheduled  ShiftStatus = "scheduled"
	ShiftStatusInProgress ShiftStatus = "in_progress"
	ShiftStatusCompleted  ShiftStatus = "completed"
	ShiftStatusCancelled  ShiftStatus = "cancelled"
)

// Shift is a planned work period for one employee.
type Shift struct {
	ID            string
	Title         string
	EmployeeID    string
	BranchID      string
	DepartmentID  *string
	StartTime     time.Time
	EndTime       time.Time
	BreakDuration int
	HourlyRate    *float64
	Status        ShiftStatus
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var allowedShiftTransitions = map[ShiftStatus][]ShiftStatus{
	ShiftStatusScheduled:  {ShiftStatusInProgress, ShiftStatusCancelled},
	ShiftStatusInProgress: {ShiftStatusCompleted, ShiftStatusCancelled},
	ShiftStatusCompleted:  {},
	ShiftStatusCancelled:  {},
}

// CanTransitionShift reports whether a shift may move from current to next.
func CanTransitionShift(current, next ShiftStatus) bool {
	for _, candidate := range allowedShiftTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ValidShiftStatus reports whether s is a known shift status.
func ValidShiftStatus(s ShiftStatus) bool {
	_, ok := allowedShiftTransitions[s]
	return ok
}
