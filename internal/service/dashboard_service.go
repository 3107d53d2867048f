package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/repository"
)

// DashboardStats are the manager-level counters.
type DashboardStats struct {
	TotalEmployees int
	ActiveShifts   int
	TodayHours     float64
}

// Dashboard is the landing view for the signed-in user.
type Dashboard struct {
	Role        domain.Role
	TodayShifts []domain.Shift
	ActiveEntry *domain.TimeEntry
	Elapsed     time.Duration
	UnreadCount int
	Stats       *DashboardStats
}

// DashboardDependencies bundles collaborators for DashboardService.
type DashboardDependencies struct {
	Shifts        *ShiftService
	Sessions      *TimeSessionService
	Notifications *NotificationService
	Users         repository.UserRepository
	ShiftRepo     repository.ShiftRepository
	Entries       repository.TimeEntryRepository
	Roles         RoleResolver
	Clock         Clock
}

// DashboardService assembles dashboard views.
type DashboardService struct {
	deps     DashboardDependencies
	location *time.Location
}

// NewDashboardService constructs the service.
func NewDashboardService(loc *time.Location, deps DashboardDependencies) *DashboardService {
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{deps: deps, location: loc}
}

// Build returns the viewer's dashboard. Managers and admins also get stats.
func (s *DashboardService) Build(ctx context.Context, viewer Viewer) (*Dashboard, error) {
	today, err := s.deps.Shifts.ForDay(ctx, viewer, "")
	if err != nil {
		return nil, err
	}
	active, err := s.deps.Sessions.Active(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}
	unread, err := s.deps.Notifications.UnreadCount(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Role:        viewer.Role,
		TodayShifts: today,
		ActiveEntry: active,
		UnreadCount: unread,
	}
	if active != nil {
		d.Elapsed = s.deps.Sessions.Elapsed(active)
	}
	if viewer.CanManage() {
		stats, err := s.Stats(ctx)
		if err != nil {
			return nil, err
		}
		d.Stats = stats
	}
	return d, nil
}

// Stats computes the manager counters for the current local day.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var (
		users      []repository.UserProfile
		inProgress []domain.Shift
		entries    []domain.TimeEntry
	)
	start, end := dayBounds(s.deps.Clock.Now(), s.location)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.deps.Users.List(gctx, repository.UserFilter{Limit: 1000})
		return err
	})
	g.Go(func() error {
		var err error
		inProgress, err = s.deps.ShiftRepo.List(gctx, repository.ShiftFilter{
			Statuses: []domain.ShiftStatus{domain.ShiftStatusInProgress},
			Limit:    1000,
		})
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.deps.Entries.List(gctx, repository.TimeEntryFilter{
			CheckInFrom: &start,
			CheckInTo:   &end,
			Limit:       500,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &DashboardStats{ActiveShifts: len(inProgress)}
	for _, u := range users {
		if s.deps.Roles.ResolveRole(u.Email) == domain.RoleEmployee {
			stats.TotalEmployees++
		}
	}
	var total float64
	for _, e := range entries {
		if e.TotalHours != nil {
			total += *e.TotalHours
		}
	}
	stats.TodayHours = domain.RoundHours(time.Duration(total * float64(time.Hour)))
	return stats, nil
}
