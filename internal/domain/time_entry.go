package domain

import (
	"math"
	"time"
)

// TimeEntryStatus tracks where an attendance session is in its lifecycle.
type TimeEntryStatus string

const (
	TimeEntryCheckedIn  TimeEntryStatus = "checked_in"
	TimeEntryOnBreak    TimeEntryStatus = "on_break"
	TimeEntryCheckedOut TimeEntryStatus = "checked_out"
)

// HoursPolicy decides how worked time is derived from an entry.
type HoursPolicy struct {
	// DeductBreaks subtracts recorded break time from elapsed duration and total hours.
	DeductBreaks bool
}

// TimeEntry is one continuous attendance session for one user.
type TimeEntry struct {
	ID               string
	UserID           string
	ShiftID          *string
	CheckInTime      time.Time
	CheckOutTime     *time.Time
	CheckInLocation  string
	CheckOutLocation string
	BreakStartTime   *time.Time
	BreakEndTime     *time.Time
	BreakSeconds     int64
	TotalHours       *float64
	Status           TimeEntryStatus
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewTimeEntry opens a session at now.
func NewTimeEntry(userID string, now time.Time) *TimeEntry {
	return &TimeEntry{
		UserID:      userID,
		CheckInTime: now,
		Status:      TimeEntryCheckedIn,
	}
}

// IsOpen reports whether the entry still counts against the one-open-entry rule.
func (e *TimeEntry) IsOpen() bool {
	return e.Status != TimeEntryCheckedOut
}

// StartBreak moves a checked-in entry onto a break.
func (e *TimeEntry) StartBreak(now time.Time) error {
	if e.Status != TimeEntryCheckedIn {
		return ErrInvalidTransition
	}
	start := now
	e.BreakStartTime = &start
	e.BreakEndTime = nil
	e.Status = TimeEntryOnBreak
	return nil
}

// EndBreak returns an entry from its break to checked-in.
func (e *TimeEntry) EndBreak(now time.Time) error {
	if e.Status != TimeEntryOnBreak {
		return ErrInvalidTransition
	}
	end := now
	e.BreakEndTime = &end
	e.BreakSeconds += breakSeconds(e.BreakStartTime, now)
	e.Status = TimeEntryCheckedIn
	return nil
}

// ClockOut closes the entry and fixes TotalHours. The entry is left untouched on error.
func (e *TimeEntry) ClockOut(now time.Time, policy HoursPolicy) error {
	if e.Status != TimeEntryCheckedIn && e.Status != TimeEntryOnBreak {
		return ErrInvalidTransition
	}
	if !now.After(e.CheckInTime) {
		return ErrNonMonotonicTime
	}

	out := now
	if e.Status == TimeEntryOnBreak {
		e.BreakSeconds += breakSeconds(e.BreakStartTime, now)
		e.BreakEndTime = &out
	}
	e.CheckOutTime = &out
	e.Status = TimeEntryCheckedOut
	hours := RoundHours(e.worked(now, policy))
	e.TotalHours = &hours
	return nil
}

// ElapsedDuration is the time counted for the entry so far. Closed entries are measured to
// their check-out time.
func (e *TimeEntry) ElapsedDuration(now time.Time, policy HoursPolicy) time.Duration {
	if e.Status == TimeEntryCheckedOut && e.CheckOutTime != nil {
		return e.worked(*e.CheckOutTime, policy)
	}
	pending := int64(0)
	if e.Status == TimeEntryOnBreak {
		pending = breakSeconds(e.BreakStartTime, now)
	}
	elapsed := now.Sub(e.CheckInTime)
	if policy.DeductBreaks {
		elapsed -= time.Duration(e.BreakSeconds+pending) * time.Second
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (e *TimeEntry) worked(end time.Time, policy HoursPolicy) time.Duration {
	d := end.Sub(e.CheckInTime)
	if policy.DeductBreaks {
		d -= time.Duration(e.BreakSeconds) * time.Second
	}
	if d < 0 {
		return 0
	}
	return d
}

// RoundHours converts a duration to hours rounded to two decimal places.
func RoundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

func breakSeconds(start *time.Time, end time.Time) int64 {
	if start == nil || !end.After(*start) {
		return 0
	}
	return int64(end.Sub(*start) / time.Second)
}
