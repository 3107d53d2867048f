package dto

import (
	"time"

	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/service"
)

// CreateShiftRequest payload for scheduling a shift.
type CreateShiftRequest struct {
	Title         string    `json:"title" validate:"max=200"`
	EmployeeID    string    `json:"employee_id" validate:"required"`
	BranchID      string    `json:"branch_id" validate:"required"`
	DepartmentID  *string   `json:"department_id"`
	StartTime     time.Time `json:"start_time" validate:"required"`
	EndTime       time.Time `json:"end_time" validate:"required"`
	BreakDuration int       `json:"break_duration" validate:"gte=0,lte=720"`
	HourlyRate    *float64  `json:"hourly_rate" validate:"omitempty,gte=0"`
	Notes         string    `json:"notes" validate:"max=1000"`
}

// ToInput converts the payload to a service input.
func (r CreateShiftRequest) ToInput() service.CreateShiftInput {
	return service.CreateShiftInput{
		Title:         r.Title,
		EmployeeID:    r.EmployeeID,
		BranchID:      r.BranchID,
		DepartmentID:  r.DepartmentID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		BreakDuration: r.BreakDuration,
		HourlyRate:    r.HourlyRate,
		Notes:         r.Notes,
	}
}

// UpdateShiftStatusRequest moves a shift along its lifecycle.
type UpdateShiftStatusRequest struct {
	Status domain.ShiftStatus `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
}

// ShiftResponse is the public view of a shift.
type ShiftResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	EmployeeID    string             `json:"employee_id"`
	BranchID      string             `json:"branch_id"`
	DepartmentID  *string            `json:"department_id,omitempty"`
	StartTime     time.Time          `json:"start_time"`
	EndTime       time.Time          `json:"end_time"`
	BreakDuration int                `json:"break_duration"`
	HourlyRate    *float64           `json:"hourly_rate,omitempty"`
	Status        domain.ShiftStatus `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	CreatedBy     string             `json:"created_by"`
}

// NewShiftResponse maps a shift.
func NewShiftResponse(s domain.Shift) ShiftResponse {
	return ShiftResponse{
		ID:            s.ID,
		Title:         s.Title,
		EmployeeID:    s.EmployeeID,
		BranchID:      s.BranchID,
		DepartmentID:  s.DepartmentID,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		BreakDuration: s.BreakDuration,
		HourlyRate:    s.HourlyRate,
		Status:        s.Status,
		Notes:         s.Notes,
		CreatedBy:     s.CreatedBy,
	}
}

// NewShiftResponses maps a list, never returning nil.
func NewShiftResponses(shifts []domain.Shift) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, NewShiftResponse(s))
	}
	return out
}

// DayResponse is one bucket of the week view.
type DayResponse struct {
	Date   string          `json:"date"`
	Shifts []ShiftResponse `json:"shifts"`
}

// WeekResponse is the Sunday-start week view.
type WeekResponse struct {
	Start string        `json:"start"`
	Days  []DayResponse `json:"days"`
}

// NewWeekResponse maps a week view.
func NewWeekResponse(w *service.WeekView) WeekResponse {
	out := WeekResponse{Start: w.Start, Days: make([]DayResponse, 0, len(w.Days))}
	for _, d := range w.Days {
		out.Days = append(out.Days, DayResponse{Date: d.Date, Shifts: NewShiftResponses(d.Shifts)})
	}
	return out
}
