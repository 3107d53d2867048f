package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-tracker/internal/config"
	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/events"
	"github.com/spec-kit/shift-tracker/internal/observability"
	"github.com/spec-kit/shift-tracker/internal/repository"
)

// ClockInInput carries optional details captured at clock-in.
type ClockInInput struct {
	Location string
	ShiftID  *string
	Notes    string
}

// TimeSessionDependencies bundles collaborators for TimeSessionService.
type TimeSessionDependencies struct {
	Entries    repository.TimeEntryRepository
	Clock      Clock
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// TimeSessionService drives the clock-in, break and clock-out lifecycle. Every operation
// reads the clock once and persists through a conditional write, so a failed call leaves
// the stored entry as it was.
type TimeSessionService struct {
	entries    repository.TimeEntryRepository
	clock      Clock
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	policy     domain.HoursPolicy
	location   *time.Location
}

// NewTimeSessionService builds the service.
func NewTimeSessionService(cfg config.SessionConfig, deps TimeSessionDependencies) *TimeSessionService {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimeSessionService{
		entries:    deps.Entries,
		clock:      clock,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		policy:     domain.HoursPolicy{DeductBreaks: cfg.DeductBreaks},
		location:   cfg.Location(),
	}
}

// Policy returns the hours policy in effect.
func (s *TimeSessionService) Policy() domain.HoursPolicy {
	return s.policy
}

// ClockIn opens a new entry for the user.
func (s *TimeSessionService) ClockIn(ctx context.Context, userID string, in ClockInInput) (entry *domain.TimeEntry, err error) {
	defer func() { s.record("clock_in", userID, err) }()

	if _, err := s.entries.FindOpenByUser(ctx, userID); err == nil {
		return nil, domain.ErrAlreadyClockedIn
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	entry = domain.NewTimeEntry(userID, now)
	entry.CheckInLocation = strings.TrimSpace(in.Location)
	entry.ShiftID = in.ShiftID
	entry.Notes = strings.TrimSpace(in.Notes)

	// The store re-checks the open entry constraint; a retried request racing the lookup
	// above still gets ErrAlreadyClockedIn.
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.EventClockedIn, userID, now, events.ClockedInPayload{
		EntryID:     entry.ID,
		CheckInTime: entry.CheckInTime,
	}))
	return entry, nil
}

// StartBreak moves the user's entry onto a break.
func (s *TimeSessionService) StartBreak(ctx context.Context, userID, entryID string) (entry *domain.TimeEntry, err error) {
	defer func() { s.record("start_break", userID, err) }()
	return s.transition(ctx, userID, entryID, func(e *domain.TimeEntry, now time.Time) error {
		return e.StartBreak(now)
	})
}

// EndBreak returns the user's entry from its break.
func (s *TimeSessionService) EndBreak(ctx context.Context, userID, entryID string) (entry *domain.TimeEntry, err error) {
	defer func() { s.record("end_break", userID, err) }()
	return s.transition(ctx, userID, entryID, func(e *domain.TimeEntry, now time.Time) error {
		return e.EndBreak(now)
	})
}

// ClockOut closes the user's entry and fixes its total hours.
func (s *TimeSessionService) ClockOut(ctx context.Context, userID, entryID, location string) (entry *domain.TimeEntry, err error) {
	defer func() { s.record("clock_out", userID, err) }()

	entry, err = s.transition(ctx, userID, entryID, func(e *domain.TimeEntry, now time.Time) error {
		if err := e.ClockOut(now, s.policy); err != nil {
			return err
		}
		e.CheckOutLocation = strings.TrimSpace(location)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var total float64
	if entry.TotalHours != nil {
		total = *entry.TotalHours
	}
	s.publish(ctx, events.New(events.EventClockedOut, userID, *entry.CheckOutTime, events.ClockedOutPayload{
		EntryID:      entry.ID,
		CheckOutTime: *entry.CheckOutTime,
		TotalHours:   total,
	}))
	return entry, nil
}

func (s *TimeSessionService) transition(ctx context.Context, userID, entryID string, apply func(*domain.TimeEntry, time.Time) error) (*domain.TimeEntry, error) {
	entry, err := s.owned(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	from := entry.Status
	if err := apply(entry, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.entries.Transition(ctx, entry, from); err != nil {
		return nil, err
	}
	return entry, nil
}

// owned loads an entry and hides entries that belong to someone else.
func (s *TimeSessionService) owned(ctx context.Context, userID, entryID string) (*domain.TimeEntry, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// Get returns one of the user's entries.
func (s *TimeSessionService) Get(ctx context.Context, userID, entryID string) (*domain.TimeEntry, error) {
	return s.owned(ctx, userID, entryID)
}

// Active returns the user's open entry, or nil when the user is not clocked in.
func (s *TimeSessionService) Active(ctx context.Context, userID string) (*domain.TimeEntry, error) {
	entry, err := s.entries.FindOpenByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListToday returns the user's entries checked in during the current local day.
func (s *TimeSessionService) ListToday(ctx context.Context, userID string) ([]domain.TimeEntry, error) {
	start, end := dayBounds(s.clock.Now(), s.location)
	return s.entries.List(ctx, repository.TimeEntryFilter{
		UserID:      &userID,
		CheckInFrom: &start,
		CheckInTo:   &end,
	})
}

// History returns the user's most recent entries, newest first.
func (s *TimeSessionService) History(ctx context.Context, userID string, limit int) ([]domain.TimeEntry, error) {
	return s.entries.List(ctx, repository.TimeEntryFilter{UserID: &userID, Limit: limit})
}

// Elapsed reports the counted duration of entry at the current time.
func (s *TimeSessionService) Elapsed(entry *domain.TimeEntry) time.Duration {
	return entry.ElapsedDuration(s.clock.Now(), s.policy)
}

func (s *TimeSessionService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, event)
}

func (s *TimeSessionService) record(action, userID string, err error) {
	s.metrics.RecordTransition(action, err)
	if err == nil {
		return
	}
	level := s.logger.Info
	if errors.Is(err, domain.ErrPersistenceUnavailable) {
		level = s.logger.Error
	}
	level("time session action rejected",
		zap.String("action", action),
		zap.String("user_id", userID),
		zap.Error(err))
}
