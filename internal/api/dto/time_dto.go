package dto

import (
	"time"

	"github.com/spec-kit/shift-tracker/internal/domain"
)

// ClockInRequest carries optional clock-in details. The timestamp is always the server's.
type ClockInRequest struct {
	Location string  `json:"location" validate:"max=255"`
	ShiftID  *string `json:"shift_id" validate:"omitempty,uuid"`
	Notes    string  `json:"notes" validate:"max=1000"`
}

// ClockOutRequest carries the optional clock-out location.
type ClockOutRequest struct {
	Location string `json:"location" validate:"max=255"`
}

// TimeEntryResponse is the public view of a time entry.
type TimeEntryResponse struct {
	ID               string                 `json:"id"`
	UserID           string                 `json:"user_id"`
	ShiftID          *string                `json:"shift_id,omitempty"`
	Status           domain.TimeEntryStatus `json:"status"`
	CheckInTime      time.Time              `json:"check_in_time"`
	CheckOutTime     *time.Time             `json:"check_out_time,omitempty"`
	CheckInLocation  string                 `json:"check_in_location,omitempty"`
	CheckOutLocation string                 `json:"check_out_location,omitempty"`
	BreakStartTime   *time.Time             `json:"break_start_time,omitempty"`
	BreakEndTime     *time.Time             `json:"break_end_time,omitempty"`
	BreakSeconds     int64                  `json:"break_seconds"`
	TotalHours       *float64               `json:"total_hours,omitempty"`
	ElapsedSeconds   int64                  `json:"elapsed_seconds"`
	Notes            string                 `json:"notes,omitempty"`
}

// NewTimeEntryResponse maps an entry along with its elapsed duration.
func NewTimeEntryResponse(e *domain.TimeEntry, elapsed time.Duration) TimeEntryResponse {
	return TimeEntryResponse{
		ID:               e.ID,
		UserID:           e.UserID,
		ShiftID:          e.ShiftID,
		Status:           e.Status,
		CheckInTime:      e.CheckInTime,
		CheckOutTime:     e.CheckOutTime,
		CheckInLocation:  e.CheckInLocation,
		CheckOutLocation: e.CheckOutLocation,
		BreakStartTime:   e.BreakStartTime,
		BreakEndTime:     e.BreakEndTime,
		BreakSeconds:     e.BreakSeconds,
		TotalHours:       e.TotalHours,
		ElapsedSeconds:   int64(elapsed / time.Second),
		Notes:            e.Notes,
	}
}
