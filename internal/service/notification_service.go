package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-tracker/internal/config"
	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/events"
	"github.com/spec-kit/shift-tracker/internal/observability"
	"github.com/spec-kit/shift-tracker/internal/repository"
)

// Publisher fans a payload out to live subscribers.
type Publisher interface {
	PublishJSON(ctx context.Context, channel string, payload any) error
}

// NotificationService turns domain events into stored notifications and pushes them to
// the user's live channel. Delivery is best effort: failures are logged and counted.
type NotificationService struct {
	dispatcher events.Dispatcher
	repo       repository.NotificationRepository
	publisher  Publisher
	metrics    *observability.Metrics
	logger     *zap.Logger
	cfg        config.NotificationConfig
	location   *time.Location
}

// NotificationDependencies bundles collaborators for NotificationService.
type NotificationDependencies struct {
	Dispatcher events.Dispatcher
	Repo       repository.NotificationRepository
	Publisher  Publisher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(cfg config.NotificationConfig, loc *time.Location, deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &NotificationService{
		dispatcher: deps.Dispatcher,
		repo:       deps.Repo,
		publisher:  deps.Publisher,
		metrics:    deps.Metrics,
		logger:     logger,
		cfg:        cfg,
		location:   loc,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventClockedIn, n.handleClockedIn)
	n.dispatcher.Subscribe(events.EventClockedOut, n.handleClockedOut)
	n.dispatcher.Subscribe(events.EventShiftAssigned, n.handleShiftAssigned)
}

func (n *NotificationService) handleClockedIn(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ClockedInPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.deliver(ctx, &domain.Notification{
		UserID:  event.UserID,
		Title:   "Clocked In Successfully",
		Message: fmt.Sprintf("You clocked in at %s", payload.CheckInTime.In(n.location).Format("15:04:05")),
		Type:    domain.NotificationCheckInReminder,
	})
	return nil
}

func (n *NotificationService) handleClockedOut(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ClockedOutPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.deliver(ctx, &domain.Notification{
		UserID: event.UserID,
		Title:  "Clocked Out Successfully",
		Message: fmt.Sprintf("You clocked out at %s. Total hours: %.2f",
			payload.CheckOutTime.In(n.location).Format("15:04:05"), payload.TotalHours),
		Type: domain.NotificationCheckInReminder,
	})
	return nil
}

func (n *NotificationService) handleShiftAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ShiftAssignedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	start := payload.StartTime.In(n.location)
	shiftID := payload.ShiftID
	n.deliver(ctx, &domain.Notification{
		UserID: event.UserID,
		Title:  "New Shift Assigned",
		Message: fmt.Sprintf("You have been scheduled for %s on %s from %s to %s",
			shiftTitle(payload.Title), start.Format("Mon, Jan 2"), start.Format("15:04"),
			payload.EndTime.In(n.location).Format("15:04")),
		Type:      domain.NotificationShiftAssigned,
		RelatedID: &shiftID,
	})
	return nil
}

// Notify stores and publishes an ad-hoc notification, such as a shift reminder.
func (n *NotificationService) Notify(ctx context.Context, note *domain.Notification) {
	n.deliver(ctx, note)
}

// ShiftReminder builds the reminder sent ahead of a scheduled shift.
func (n *NotificationService) ShiftReminder(shift domain.Shift) *domain.Notification {
	start := shift.StartTime.In(n.location)
	shiftID := shift.ID
	return &domain.Notification{
		UserID:    shift.EmployeeID,
		Title:     "Upcoming Shift",
		Message:   fmt.Sprintf("Your shift %s starts at %s", shiftTitle(shift.Title), start.Format("15:04")),
		Type:      domain.NotificationShiftReminder,
		RelatedID: &shiftID,
	}
}

// deliver never returns an error: the transition that triggered it has already committed.
func (n *NotificationService) deliver(ctx context.Context, note *domain.Notification) {
	// The request may finish before delivery does.
	ctx = context.WithoutCancel(ctx)

	err := n.repo.Create(ctx, note)
	n.metrics.RecordNotification(string(note.Type), err)
	if err != nil {
		n.logger.Warn("notification not stored",
			zap.String("user_id", note.UserID),
			zap.String("type", string(note.Type)),
			zap.Error(err))
		return
	}

	if n.publisher == nil {
		return
	}
	if err := n.publisher.PublishJSON(ctx, n.channel(note.UserID), note); err != nil {
		n.logger.Warn("notification not published",
			zap.String("notification_id", note.ID),
			zap.String("user_id", note.UserID),
			zap.Error(err))
	}
}

func (n *NotificationService) channel(userID string) string {
	return n.cfg.ChannelPrefix + userID
}

// List returns the user's newest notifications.
func (n *NotificationService) List(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	return n.repo.ListByUser(ctx, userID, limit)
}

// MarkRead flags one of the user's notifications as read.
func (n *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return n.repo.MarkRead(ctx, id, userID)
}

// UnreadCount counts the user's unread notifications.
func (n *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return n.repo.CountUnread(ctx, userID)
}

func shiftTitle(title string) string {
	if title == "" {
		return "a shift"
	}
	return title
}
