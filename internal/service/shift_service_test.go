package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-tracker/internal/config"
	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/events"
	"github.com/spec-kit/shift-tracker/internal/repository/memory"
	apperrors "github.com/spec-kit/shift-tracker/pkg/util"
)

type orgFixture struct {
	store    *memory.Store
	clock    *fakeClock
	shifts   *ShiftService
	notes    *NotificationService
	branch   *domain.Branch
	employee *domain.User
	manager  Viewer
	viewer   Viewer
}

func newOrgFixture(t *testing.T) *orgFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	// Monday 2 March 2026.
	clock := newFakeClock(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())

	notes := NewNotificationService(config.NotificationConfig{}, time.UTC, NotificationDependencies{
		Dispatcher: dispatcher,
		Repo:       store.Notifications(),
	})
	notes.RegisterHandlers()

	branch := &domain.Branch{Name: "Downtown"}
	require.NoError(t, store.Branches().Create(ctx, branch))
	employee := &domain.User{Email: "emp@example.com", FirstName: "Eve", IsActive: true}
	require.NoError(t, store.Users().Create(ctx, employee))
	manager := &domain.User{Email: "boss@example.com", FirstName: "Max", IsActive: true}
	require.NoError(t, store.Users().Create(ctx, manager))

	shifts := NewShiftService(time.UTC, ShiftDependencies{
		Shifts:     store.Shifts(),
		Users:      store.Users(),
		Branches:   store.Branches(),
		Dispatcher: dispatcher,
		Clock:      clock,
	})
	return &orgFixture{
		store:    store,
		clock:    clock,
		shifts:   shifts,
		notes:    notes,
		branch:   branch,
		employee: employee,
		manager:  Viewer{UserID: manager.ID, Role: domain.RoleManager},
		viewer:   Viewer{UserID: employee.ID, Role: domain.RoleEmployee},
	}
}

func (f *orgFixture) schedule(t *testing.T, employeeID string, start time.Time) *domain.Shift {
	t.Helper()
	shift, err := f.shifts.Create(context.Background(), f.manager, CreateShiftInput{
		Title:      "Front desk",
		EmployeeID: employeeID,
		BranchID:   f.branch.ID,
		StartTime:  start,
		EndTime:    start.Add(8 * time.Hour),
	})
	require.NoError(t, err)
	return shift
}

func TestCreateShiftNotifiesEmployee(t *testing.T) {
	f := newOrgFixture(t)
	shift := f.schedule(t, f.employee.ID, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, domain.ShiftStatusScheduled, shift.Status)
	assert.Equal(t, f.manager.UserID, shift.CreatedBy)

	notes, err := f.notes.List(context.Background(), f.employee.ID, 10)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationShiftAssigned, notes[0].Type)
	require.NotNil(t, notes[0].RelatedID)
	assert.Equal(t, shift.ID, *notes[0].RelatedID)
	assert.Equal(t, "You have been scheduled for Front desk on Tue, Mar 3 from 09:00 to 17:00", notes[0].Message)
}

func TestCreateShiftValidation(t *testing.T) {
	f := newOrgFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	_, err := f.shifts.Create(ctx, f.viewer, CreateShiftInput{EmployeeID: f.employee.ID, BranchID: f.branch.ID, StartTime: start, EndTime: start.Add(time.Hour)})
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	_, err = f.shifts.Create(ctx, f.manager, CreateShiftInput{EmployeeID: f.employee.ID, BranchID: f.branch.ID, StartTime: start, EndTime: start})
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = f.shifts.Create(ctx, f.manager, CreateShiftInput{EmployeeID: "ghost", BranchID: f.branch.ID, StartTime: start, EndTime: start.Add(time.Hour)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeesOnlySeeTheirOwnShifts(t *testing.T) {
	f := newOrgFixture(t)
	ctx := context.Background()
	today := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f.schedule(t, f.employee.ID, today)
	f.schedule(t, f.manager.UserID, today)

	mine, err := f.shifts.ForDay(ctx, f.viewer, "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.employee.ID, mine[0].EmployeeID)

	all, err := f.shifts.ForDay(ctx, f.manager, "2026-03-02")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := f.shifts.ForDay(ctx, f.manager, "2026-03-03")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.shifts.ForDay(ctx, f.manager, "03/02/2026")
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestWeekViewBucketsFromSunday(t *testing.T) {
	f := newOrgFixture(t)
	ctx := context.Background()
	f.schedule(t, f.employee.ID, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))  // Sunday
	f.schedule(t, f.employee.ID, time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC))  // Wednesday
	f.schedule(t, f.employee.ID, time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC))  // next Sunday
	f.schedule(t, f.employee.ID, time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)) // previous Saturday

	week, err := f.shifts.Week(ctx, f.viewer, "2026-03-04")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", week.Start)
	require.Len(t, week.Days, 7)
	assert.Equal(t, "2026-03-01", week.Days[0].Date)
	assert.Equal(t, "2026-03-07", week.Days[6].Date)
	assert.Len(t, week.Days[0].Shifts, 1)
	assert.Len(t, week.Days[3].Shifts, 1)
	assert.Empty(t, week.Days[6].Shifts)
}

func TestShiftStatusRules(t *testing.T) {
	f := newOrgFixture(t)
	ctx := context.Background()
	shift := f.schedule(t, f.employee.ID, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	other := f.schedule(t, f.manager.UserID, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	_, err := f.shifts.UpdateStatus(ctx, f.viewer, other.ID, domain.ShiftStatusInProgress)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.shifts.UpdateStatus(ctx, f.viewer, shift.ID, domain.ShiftStatusCancelled)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	_, err = f.shifts.UpdateStatus(ctx, f.viewer, shift.ID, domain.ShiftStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	updated, err := f.shifts.UpdateStatus(ctx, f.viewer, shift.ID, domain.ShiftStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftStatusInProgress, updated.Status)

	updated, err = f.shifts.UpdateStatus(ctx, f.manager, shift.ID, domain.ShiftStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftStatusCancelled, updated.Status)

	_, err = f.shifts.UpdateStatus(ctx, f.manager, shift.ID, "paused")
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
