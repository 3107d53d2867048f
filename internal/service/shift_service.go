package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/events"
	"github.com/spec-kit/shift-tracker/internal/repository"
	apperrors "github.com/spec-kit/shift-tracker/pkg/util"
)

const dateLayout = "2006-01-02"

// Viewer is the caller of a read or write, with the role resolved for this request.
type Viewer struct {
	UserID string
	Role   domain.Role
}

// CanManage reports whether the viewer has at least manager rank.
func (v Viewer) CanManage() bool {
	return v.Role.Rank() >= domain.RoleManager.Rank()
}

// CreateShiftInput describes a shift to schedule.
type CreateShiftInput struct {
	Title         string
	EmployeeID    string
	BranchID      string
	DepartmentID  *string
	StartTime     time.Time
	EndTime       time.Time
	BreakDuration int
	HourlyRate    *float64
	Notes         string
}

// ShiftQuery narrows shift listings.
type ShiftQuery struct {
	EmployeeID *string
	BranchID   *string
	Status     *domain.ShiftStatus
	From       *time.Time
	To         *time.Time
	Limit      int
}

// DayBucket groups the shifts starting on one local calendar day.
type DayBucket struct {
	Date   string
	Shifts []domain.Shift
}

// WeekView is a Sunday-start week of day buckets.
type WeekView struct {
	Start string
	Days  []DayBucket
}

// ShiftDependencies bundles collaborators for ShiftService.
type ShiftDependencies struct {
	Shifts     repository.ShiftRepository
	Users      repository.UserRepository
	Branches   repository.BranchRepository
	Dispatcher events.Dispatcher
	Clock      Clock
	Logger     *zap.Logger
}

// ShiftService schedules shifts and serves the schedule views.
type ShiftService struct {
	shifts     repository.ShiftRepository
	users      repository.UserRepository
	branches   repository.BranchRepository
	dispatcher events.Dispatcher
	clock      Clock
	logger     *zap.Logger
	location   *time.Location
}

// NewShiftService constructs the service. Day boundaries are taken in loc.
func NewShiftService(loc *time.Location, deps ShiftDependencies) *ShiftService {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ShiftService{
		shifts:     deps.Shifts,
		users:      deps.Users,
		branches:   deps.Branches,
		dispatcher: deps.Dispatcher,
		clock:      clock,
		logger:     logger,
		location:   loc,
	}
}

// Create schedules a shift for an employee and notifies them.
func (s *ShiftService) Create(ctx context.Context, actor Viewer, in CreateShiftInput) (*domain.Shift, error) {
	if !actor.CanManage() {
		return nil, apperrors.NewForbidden("manager role required", nil)
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, apperrors.NewValidationError("end_time must be after start_time", map[string]any{
			"start_time": in.StartTime,
			"end_time":   in.EndTime,
		})
	}
	if in.BreakDuration < 0 {
		return nil, apperrors.NewValidationError("break_duration must not be negative", nil)
	}
	if _, err := s.users.GetByID(ctx, in.EmployeeID); err != nil {
		return nil, err
	}
	if _, err := s.branches.GetByID(ctx, in.BranchID); err != nil {
		return nil, err
	}

	shift := &domain.Shift{
		Title:         strings.TrimSpace(in.Title),
		EmployeeID:    in.EmployeeID,
		BranchID:      in.BranchID,
		DepartmentID:  in.DepartmentID,
		StartTime:     in.StartTime.UTC(),
		EndTime:       in.EndTime.UTC(),
		BreakDuration: in.BreakDuration,
		HourlyRate:    in.HourlyRate,
		Status:        domain.ShiftStatusScheduled,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedBy:     actor.UserID,
	}
	if err := s.shifts.Create(ctx, shift); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.New(events.EventShiftAssigned, shift.EmployeeID, s.clock.Now(), events.ShiftAssignedPayload{
			ShiftID:   shift.ID,
			Title:     shift.Title,
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
		}))
	}
	return shift, nil
}

// List returns shifts visible to the viewer. Employees only ever see their own.
func (s *ShiftService) List(ctx context.Context, viewer Viewer, q ShiftQuery) ([]domain.Shift, error) {
	filter := repository.ShiftFilter{
		EmployeeID: q.EmployeeID,
		BranchID:   q.BranchID,
		StartFrom:  q.From,
		StartTo:    q.To,
		Limit:      q.Limit,
	}
	if q.Status != nil {
		filter.Statuses = []domain.ShiftStatus{*q.Status}
	}
	if !viewer.CanManage() {
		filter.EmployeeID = &viewer.UserID
	}
	return s.shifts.List(ctx, filter)
}

// ForDay returns the visible shifts starting on the given YYYY-MM-DD day. An empty day
// means today.
func (s *ShiftService) ForDay(ctx context.Context, viewer Viewer, day string) ([]domain.Shift, error) {
	start, end, err := s.dayRange(day)
	if err != nil {
		return nil, err
	}
	return s.List(ctx, viewer, ShiftQuery{From: &start, To: &end})
}

// Week buckets the visible shifts of the Sunday-start week containing day.
func (s *ShiftService) Week(ctx context.Context, viewer Viewer, day string) (*WeekView, error) {
	anchor, _, err := s.dayRange(day)
	if err != nil {
		return nil, err
	}
	local := anchor.In(s.location)
	sunday := local.AddDate(0, 0, -int(local.Weekday()))
	weekStart := sunday.UTC()
	weekEnd := sunday.AddDate(0, 0, 7).UTC()

	shifts, err := s.List(ctx, viewer, ShiftQuery{From: &weekStart, To: &weekEnd})
	if err != nil {
		return nil, err
	}

	view := &WeekView{Start: sunday.Format(dateLayout), Days: make([]DayBucket, 7)}
	index := make(map[string]int, 7)
	for i := range view.Days {
		key := sunday.AddDate(0, 0, i).Format(dateLayout)
		view.Days[i] = DayBucket{Date: key, Shifts: []domain.Shift{}}
		index[key] = i
	}
	for _, shift := range shifts {
		key := shift.StartTime.In(s.location).Format(dateLayout)
		if i, ok := index[key]; ok {
			view.Days[i].Shifts = append(view.Days[i].Shifts, shift)
		}
	}
	return view, nil
}

// UpdateStatus moves a shift along its lifecycle. Employees may only start or complete
// their own shifts; cancelling needs a manager.
func (s *ShiftService) UpdateStatus(ctx context.Context, viewer Viewer, id string, next domain.ShiftStatus) (*domain.Shift, error) {
	if !domain.ValidShiftStatus(next) {
		return nil, apperrors.NewValidationError("unknown shift status", map[string]any{"status": next})
	}
	shift, err := s.shifts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.CanManage() {
		if shift.EmployeeID != viewer.UserID {
			return nil, domain.ErrNotFound
		}
		if next == domain.ShiftStatusCancelled {
			return nil, apperrors.NewForbidden("manager role required to cancel a shift", nil)
		}
	}
	if !domain.CanTransitionShift(shift.Status, next) {
		return nil, domain.ErrInvalidTransition
	}
	updated, err := s.shifts.UpdateStatus(ctx, id, shift.Status, next)
	if err != nil {
		return nil, err
	}
	s.logger.Info("shift status changed",
		zap.String("shift_id", id),
		zap.String("from", string(shift.Status)),
		zap.String("to", string(next)))
	return updated, nil
}

func (s *ShiftService) dayRange(day string) (time.Time, time.Time, error) {
	if strings.TrimSpace(day) == "" {
		start, end := dayBounds(s.clock.Now(), s.location)
		return start, end, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, day, s.location)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": day})
	}
	start, end := dayBounds(parsed, s.location)
	return start, end, nil
}
