package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shift-tracker/internal/config"
	"github.com/spec-kit/shift-tracker/internal/domain"
)

func TestEmployeeSearchFiltersByDerivedRole(t *testing.T) {
	f := newOrgFixture(t)
	ctx := context.Background()
	org := NewOrgService(OrgDependencies{BranchRepo: f.store.Branches(), DepartmentRepo: f.store.Departments()})
	dept, err := org.CreateDepartment(ctx, "Kitchen", f.branch.ID)
	require.NoError(t, err)

	roles := staticRoles{"boss@example.com": domain.RoleManager}
	employees := NewEmployeeService(f.store.Users(), f.store.Departments(), roles)

	updated, err := employees.Update(ctx, f.employee.ID, UpdateEmployeeInput{DepartmentID: &dept.ID})
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", updated.DepartmentName)
	require.NotNil(t, updated.BranchID)
	assert.Equal(t, f.branch.ID, *updated.BranchID)

	found, err := employees.Search(ctx, EmployeeQuery{Search: "KITCH"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, domain.RoleEmployee, found[0].Role)

	managerRole := domain.RoleManager
	found, err = employees.Search(ctx, EmployeeQuery{Role: &managerRole})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "boss@example.com", found[0].Email)

	other := "elsewhere"
	_, err = employees.Update(ctx, f.employee.ID, UpdateEmployeeInput{DepartmentID: &dept.ID, BranchID: &other})
	assert.Error(t, err)
}

func TestOrgServiceValidation(t *testing.T) {
	f := newOrgFixture(t)
	ctx := context.Background()
	org := NewOrgService(OrgDependencies{BranchRepo: f.store.Branches(), DepartmentRepo: f.store.Departments()})

	_, err := org.CreateBranch(ctx, CreateBranchInput{Name: "  "})
	assert.Error(t, err)
	_, err = org.CreateDepartment(ctx, "Bar", "missing-branch")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	b, err := org.CreateBranch(ctx, CreateBranchInput{Name: "Airport"})
	require.NoError(t, err)
	branches, err := org.ListBranches(ctx)
	require.NoError(t, err)
	assert.Len(t, branches, 2)

	_, err = org.CreateDepartment(ctx, "Bar", b.ID)
	require.NoError(t, err)
	depts, err := org.ListDepartments(ctx, &b.ID)
	require.NoError(t, err)
	assert.Len(t, depts, 1)
}

func TestDashboardForManagerIncludesStats(t *testing.T) {
	f := newOrgFixture(t)
	ctx := context.Background()
	roles := staticRoles{"boss@example.com": domain.RoleManager}

	sessions := NewTimeSessionService(config.SessionConfig{Timezone: "UTC"}, TimeSessionDependencies{
		Entries: f.store.TimeEntries(),
		Clock:   f.clock,
	})
	dash := NewDashboardService(time.UTC, DashboardDependencies{
		Shifts:        f.shifts,
		Sessions:      sessions,
		Notifications: f.notes,
		Users:         f.store.Users(),
		ShiftRepo:     f.store.Shifts(),
		Entries:       f.store.TimeEntries(),
		Roles:         roles,
		Clock:         f.clock,
	})

	shift := f.schedule(t, f.employee.ID, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	_, err := f.shifts.UpdateStatus(ctx, f.manager, shift.ID, domain.ShiftStatusInProgress)
	require.NoError(t, err)

	entry, err := sessions.ClockIn(ctx, f.employee.ID, ClockInInput{})
	require.NoError(t, err)
	f.clock.Advance(2*time.Hour + 15*time.Minute)
	_, err = sessions.ClockOut(ctx, f.employee.ID, entry.ID, "")
	require.NoError(t, err)

	_, err = sessions.ClockIn(ctx, f.manager.UserID, ClockInInput{})
	require.NoError(t, err)
	f.clock.Advance(30 * time.Minute)

	d, err := dash.Build(ctx, f.manager)
	require.NoError(t, err)
	require.NotNil(t, d.Stats)
	assert.Equal(t, 1, d.Stats.TotalEmployees)
	assert.Equal(t, 1, d.Stats.ActiveShifts)
	assert.Equal(t, 2.25, d.Stats.TodayHours)
	require.NotNil(t, d.ActiveEntry)
	assert.Equal(t, 30*time.Minute, d.Elapsed)
	assert.Len(t, d.TodayShifts, 1)

	e, err := dash.Build(ctx, f.viewer)
	require.NoError(t, err)
	assert.Nil(t, e.Stats)
	assert.Nil(t, e.ActiveEntry)
	assert.Equal(t, 1, e.UnreadCount)
}
