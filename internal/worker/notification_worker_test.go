package worker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shift-tracker/internal/config"
	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/repository/memory"
	"github.com/spec-kit/shift-tracker/internal/service"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func TestShiftReminderTickSendsOncePerShift(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	soon := &domain.Shift{Title: "Opening", EmployeeID: "u1", BranchID: "b1", StartTime: now.Add(30 * time.Minute), EndTime: now.Add(8 * time.Hour), Status: domain.ShiftStatusScheduled}
	later := &domain.Shift{EmployeeID: "u1", BranchID: "b1", StartTime: now.Add(3 * time.Hour), EndTime: now.Add(9 * time.Hour), Status: domain.ShiftStatusScheduled}
	cancelled := &domain.Shift{EmployeeID: "u2", BranchID: "b1", StartTime: now.Add(10 * time.Minute), EndTime: now.Add(time.Hour), Status: domain.ShiftStatusCancelled}
	for _, s := range []*domain.Shift{soon, later, cancelled} {
		require.NoError(t, store.Shifts().Create(ctx, s))
	}

	notes := service.NewNotificationService(config.NotificationConfig{}, time.UTC, service.NotificationDependencies{Repo: store.Notifications()})
	w := NewShiftReminderWorker(store.Shifts(), notes, NewRedisReminderLedger(client), fixedClock(now), time.Hour, time.Minute, nil)

	sent, err := w.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	sent, err = w.Tick(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)

	list, err := notes.List(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotificationShiftReminder, list[0].Type)
	assert.Equal(t, "Your shift Opening starts at 08:30", list[0].Message)
	assert.True(t, srv.Exists(reminderKeyPrefix+soon.ID))
}

func TestMemoryReminderLedgerExpires(t *testing.T) {
	ledger := NewMemoryReminderLedger()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	ledger.now = func() time.Time { return now }

	first, err := ledger.MarkSent(context.Background(), "s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)
	again, err := ledger.MarkSent(context.Background(), "s1", time.Minute)
	require.NoError(t, err)
	assert.False(t, again)

	now = now.Add(2 * time.Minute)
	afterExpiry, err := ledger.MarkSent(context.Background(), "s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, afterExpiry)
}

func TestRunDisabledReturnsImmediately(t *testing.T) {
	w := NewShiftReminderWorker(nil, nil, nil, nil, time.Hour, 0, nil)
	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled worker kept running")
	}
}
