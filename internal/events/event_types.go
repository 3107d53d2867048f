package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventClockedIn     EventType = "time_entry_clocked_in"
	EventClockedOut    EventType = "time_entry_clocked_out"
	EventShiftAssigned EventType = "shift_assigned"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with a fresh id.
func New(eventType EventType, userID string, at time.Time, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: at,
		Payload:   payload,
	}
}

// ClockedInPayload payload.
type ClockedInPayload struct {
	EntryID     string    `json:"entry_id"`
	CheckInTime time.Time `json:"check_in_time"`
}

// ClockedOutPayload payload.
type ClockedOutPayload struct {
	EntryID      string    `json:"entry_id"`
	CheckOutTime time.Time `json:"check_out_time"`
	TotalHours   float64   `json:"total_hours"`
}

// ShiftAssignedPayload payload.
type ShiftAssignedPayload struct {
	ShiftID   string    `json:"shift_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
