package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/repository"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type staticRoles map[string]domain.Role

func (r staticRoles) ResolveRole(email string) domain.Role {
	if role, ok := r[email]; ok {
		return role
	}
	return domain.RoleEmployee
}

var errStoreDown = errors.New("store down")

type failingNotifications struct {
	repository.NotificationRepository
}

func (failingNotifications) Create(context.Context, *domain.Notification) error {
	return errStoreDown
}

// unreachableEntries simulates the record store dropping every call.
type unreachableEntries struct {
	repository.TimeEntryRepository
	err error
}

func (u unreachableEntries) FindOpenByUser(context.Context, string) (*domain.TimeEntry, error) {
	return nil, u.err
}

func (u unreachableEntries) GetByID(context.Context, string) (*domain.TimeEntry, error) {
	return nil, u.err
}

type capturePublisher struct {
	mu       sync.Mutex
	channels []string
	err      error
}

func (p *capturePublisher) PublishJSON(_ context.Context, channel string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels = append(p.channels, channel)
	return p.err
}
