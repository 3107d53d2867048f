package domain

import "time"

// NotificationType classifies a notification for the display collaborator.
type NotificationType string

const (
	NotificationShiftReminder   NotificationType = "shift_reminder"
	NotificationShiftAssigned   NotificationType = "shift_assigned"
	NotificationShiftCancelled  NotificationType = "shift_cancelled"
	NotificationCheckInReminder NotificationType = "check_in_reminder"
	NotificationOvertimeAlert   NotificationType = "overtime_alert"
)

// Notification is an outbound message addressed to one user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	RelatedID *string          `json:"related_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
