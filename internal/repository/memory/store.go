// Package memory provides mutex-guarded implementations of the repository interfaces. The
// service falls back to them when POSTGRES_DSN is empty, and tests use them as fakes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/repository"
)

// Store holds every collection behind one lock so cross-collection reads stay consistent.
type Store struct {
	mu            sync.RWMutex
	now           func() time.Time
	users         map[string]domain.User
	entries       map[string]domain.TimeEntry
	openByUser    map[string]string
	shifts        map[string]domain.Shift
	notifications map[string]domain.Notification
	branches      map[string]domain.Branch
	departments   map[string]domain.Department
	resetCodes    map[string]domain.PasswordResetCode
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		now:           func() time.Time { return time.Now().UTC() },
		users:         make(map[string]domain.User),
		entries:       make(map[string]domain.TimeEntry),
		openByUser:    make(map[string]string),
		shifts:        make(map[string]domain.Shift),
		notifications: make(map[string]domain.Notification),
		branches:      make(map[string]domain.Branch),
		departments:   make(map[string]domain.Department),
		resetCodes:    make(map[string]domain.PasswordResetCode),
	}
}

func (s *Store) Users() repository.UserRepository { return userStore{s} }
func (s *Store) TimeEntries() repository.TimeEntryRepository { return timeEntryStore{s} }
func (s *Store) Shifts() repository.ShiftRepository { return shiftStore{s} }
func (s *Store) Notifications() repository.NotificationRepository { return notificationStore{s} }
func (s *Store) Branches() repository.BranchRepository { return branchStore{s} }
func (s *Store) Departments() repository.DepartmentRepository { return departmentStore{s} }
func (s *Store) PasswordResets() repository.PasswordResetRepository { return passwordResetStore{s} }

// Users

type userStore struct{ s *Store }

func (u userStore) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	now := u.s.now()
	user.ID = uuid.NewString()
	user.CreatedAt, user.UpdatedAt = now, now
	u.s.users[user.ID] = *user
	return nil
}

func (u userStore) Update(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	current, ok := u.s.users[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	user.Email = current.Email
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = u.s.now()
	u.s.users[user.ID] = *user
	return nil
}

func (u userStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (u userStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range u.s.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (u userStore) List(ctx context.Context, filter repository.UserFilter) ([]repository.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	var result []repository.UserProfile
	for _, user := range u.s.users {
		if filter.IsActive != nil && user.IsActive != *filter.IsActive {
			continue
		}
		if filter.BranchID != nil && (user.BranchID == nil || *user.BranchID != *filter.BranchID) {
			continue
		}
		profile := repository.UserProfile{User: user}
		if user.DepartmentID != nil {
			profile.DepartmentName = u.s.departments[*user.DepartmentID].Name
		}
		if term != "" {
			name := strings.ToLower(user.FirstName + " " + user.LastName)
			if !strings.Contains(name, term) &&
				!strings.Contains(strings.ToLower(user.Email), term) &&
				!strings.Contains(strings.ToLower(profile.DepartmentName), term) {
				continue
			}
		}
		result = append(result, profile)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.ID < b.ID
	})
	return truncate(result, repository.ListLimit(filter.Limit, 100, 1000)), nil
}

// Time entries

type timeEntryStore struct{ s *Store }

func (t timeEntryStore) Create(ctx context.Context, entry *domain.TimeEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, open := t.s.openByUser[entry.UserID]; open && entry.IsOpen() {
		return domain.ErrAlreadyClockedIn
	}
	if entry.ShiftID != nil {
		if _, ok := t.s.shifts[*entry.ShiftID]; !ok {
			return domain.ErrInvalidReference
		}
	}
	now := t.s.now()
	entry.ID = uuid.NewString()
	entry.CreatedAt, entry.UpdatedAt = now, now
	t.s.entries[entry.ID] = cloneEntry(*entry)
	if entry.IsOpen() {
		t.s.openByUser[entry.UserID] = entry.ID
	}
	return nil
}

func (t timeEntryStore) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	entry, ok := t.s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneEntry(entry)
	return &out, nil
}

func (t timeEntryStore) FindOpenByUser(ctx context.Context, userID string) (*domain.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	id, ok := t.s.openByUser[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneEntry(t.s.entries[id])
	return &out, nil
}

func (t timeEntryStore) Transition(ctx context.Context, entry *domain.TimeEntry, from domain.TimeEntryStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	current, ok := t.s.entries[entry.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Status != from {
		return domain.ErrInvalidTransition
	}

	// Identity and check-in fields are immutable once created.
	next := cloneEntry(*entry)
	next.UserID = current.UserID
	next.ShiftID = current.ShiftID
	next.CheckInTime = current.CheckInTime
	next.CheckInLocation = current.CheckInLocation
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = t.s.now()
	t.s.entries[entry.ID] = next
	entry.UpdatedAt = next.UpdatedAt

	if next.IsOpen() {
		t.s.openByUser[next.UserID] = next.ID
	} else if t.s.openByUser[next.UserID] == next.ID {
		delete(t.s.openByUser, next.UserID)
	}
	return nil
}

func (t timeEntryStore) List(ctx context.Context, filter repository.TimeEntryFilter) ([]domain.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	var result []domain.TimeEntry
	for _, entry := range t.s.entries {
		if filter.UserID != nil && entry.UserID != *filter.UserID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, entry.Status) {
			continue
		}
		if filter.CheckInFrom != nil && entry.CheckInTime.Before(*filter.CheckInFrom) {
			continue
		}
		if filter.CheckInTo != nil && !entry.CheckInTime.Before(*filter.CheckInTo) {
			continue
		}
		result = append(result, cloneEntry(entry))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CheckInTime.After(result[j].CheckInTime)
	})
	return truncate(result, repository.ListLimit(filter.Limit, 50, 500)), nil
}

// Shifts

type shiftStore struct{ s *Store }

func (st shiftStore) Create(ctx context.Context, shift *domain.Shift) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	now := st.s.now()
	shift.ID = uuid.NewString()
	shift.CreatedAt, shift.UpdatedAt = now, now
	st.s.shifts[shift.ID] = *shift
	return nil
}

func (st shiftStore) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	shift, ok := st.s.shifts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &shift, nil
}

func (st shiftStore) UpdateStatus(ctx context.Context, id string, from, next domain.ShiftStatus) (*domain.Shift, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	shift, ok := st.s.shifts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if shift.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	shift.Status = next
	shift.UpdatedAt = st.s.now()
	st.s.shifts[id] = shift
	return &shift, nil
}

func (st shiftStore) List(ctx context.Context, filter repository.ShiftFilter) ([]domain.Shift, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	var result []domain.Shift
	for _, shift := range st.s.shifts {
		if filter.EmployeeID != nil && shift.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.BranchID != nil && shift.BranchID != *filter.BranchID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsShiftStatus(filter.Statuses, shift.Status) {
			continue
		}
		if filter.StartFrom != nil && shift.StartTime.Before(*filter.StartFrom) {
			continue
		}
		if filter.StartTo != nil && !shift.StartTime.Before(*filter.StartTo) {
			continue
		}
		result = append(result, shift)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return truncate(result, repository.ListLimit(filter.Limit, 200, 1000)), nil
}

// Notifications

type notificationStore struct{ s *Store }

func (n notificationStore) Create(ctx context.Context, note *domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	note.ID = uuid.NewString()
	note.CreatedAt = n.s.now()
	n.s.notifications[note.ID] = *note
	return nil
}

func (n notificationStore) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()
	var result []domain.Notification
	for _, note := range n.s.notifications {
		if note.UserID == userID {
			result = append(result, note)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return truncate(result, repository.ListLimit(limit, 50, 200)), nil
}

func (n notificationStore) MarkRead(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	note, ok := n.s.notifications[id]
	if !ok || note.UserID != userID {
		return domain.ErrNotFound
	}
	note.IsRead = true
	n.s.notifications[id] = note
	return nil
}

func (n notificationStore) CountUnread(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()
	count := 0
	for _, note := range n.s.notifications {
		if note.UserID == userID && !note.IsRead {
			count++
		}
	}
	return count, nil
}

// Branches and departments

type branchStore struct{ s *Store }

func (b branchStore) Create(ctx context.Context, branch *domain.Branch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	now := b.s.now()
	branch.ID = uuid.NewString()
	branch.CreatedAt, branch.UpdatedAt = now, now
	b.s.branches[branch.ID] = *branch
	return nil
}

func (b branchStore) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	branch, ok := b.s.branches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &branch, nil
}

func (b branchStore) List(ctx context.Context) ([]domain.Branch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	result := make([]domain.Branch, 0, len(b.s.branches))
	for _, branch := range b.s.branches {
		result = append(result, branch)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type departmentStore struct{ s *Store }

func (d departmentStore) Create(ctx context.Context, dept *domain.Department) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	dept.ID = uuid.NewString()
	dept.CreatedAt = d.s.now()
	d.s.departments[dept.ID] = *dept
	return nil
}

func (d departmentStore) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	dept, ok := d.s.departments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &dept, nil
}

func (d departmentStore) List(ctx context.Context, branchID *string) ([]domain.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	var result []domain.Department
	for _, dept := range d.s.departments {
		if branchID != nil && dept.BranchID != *branchID {
			continue
		}
		result = append(result, dept)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Password resets

type passwordResetStore struct{ s *Store }

func (p passwordResetStore) Create(ctx context.Context, code *domain.PasswordResetCode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	code.ID = uuid.NewString()
	code.CreatedAt = p.s.now()
	p.s.resetCodes[code.ID] = *code
	return nil
}

func (p passwordResetStore) LatestForEmail(ctx context.Context, email string) (*domain.PasswordResetCode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	var latest *domain.PasswordResetCode
	for _, code := range p.s.resetCodes {
		if code.Email != email {
			continue
		}
		if latest == nil || code.CreatedAt.After(latest.CreatedAt) {
			c := code
			latest = &c
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (p passwordResetStore) MarkUsed(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	code, ok := p.s.resetCodes[id]
	if !ok || code.UsedAt != nil {
		return domain.ErrInvalidResetCode
	}
	now := p.s.now()
	code.UsedAt = &now
	p.s.resetCodes[id] = code
	return nil
}

func cloneEntry(e domain.TimeEntry) domain.TimeEntry {
	e.ShiftID = clonePtr(e.ShiftID)
	e.CheckOutTime = clonePtr(e.CheckOutTime)
	e.BreakStartTime = clonePtr(e.BreakStartTime)
	e.BreakEndTime = clonePtr(e.BreakEndTime)
	e.TotalHours = clonePtr(e.TotalHours)
	return e
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func containsStatus(list []domain.TimeEntryStatus, s domain.TimeEntryStatus) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}

func containsShiftStatus(list []domain.ShiftStatus, s domain.ShiftStatus) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
