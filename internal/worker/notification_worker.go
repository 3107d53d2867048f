package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/repository"
	"github.com/spec-kit/shift-tracker/internal/service"
)

const reminderKeyPrefix = "reminders:shift:"

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// ReminderLedger records which shifts were already reminded so replicas do not repeat.
type ReminderLedger interface {
	// MarkSent returns true the first time it is called for shiftID.
	MarkSent(ctx context.Context, shiftID string, ttl time.Duration) (bool, error)
}

// RedisReminderLedger claims reminders with SETNX.
type RedisReminderLedger struct {
	client *redis.Client
}

func NewRedisReminderLedger(client *redis.Client) *RedisReminderLedger {
	return &RedisReminderLedger{client: client}
}

func (l *RedisReminderLedger) MarkSent(ctx context.Context, shiftID string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, reminderKeyPrefix+shiftID, "1", ttl).Result()
}

// MemoryReminderLedger is the single-process ledger used without Redis.
type MemoryReminderLedger struct {
	mu   sync.Mutex
	sent map[string]time.Time
	now  func() time.Time
}

func NewMemoryReminderLedger() *MemoryReminderLedger {
	return &MemoryReminderLedger{sent: make(map[string]time.Time), now: time.Now}
}

func (l *MemoryReminderLedger) MarkSent(_ context.Context, shiftID string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for id, exp := range l.sent {
		if !exp.After(now) {
			delete(l.sent, id)
		}
	}
	if _, ok := l.sent[shiftID]; ok {
		return false, nil
	}
	l.sent[shiftID] = now.Add(ttl)
	return true, nil
}

// ShiftReminderWorker periodically notifies employees whose scheduled shift starts within
// the lead window.
type ShiftReminderWorker struct {
	shifts        repository.ShiftRepository
	notifications *service.NotificationService
	ledger        ReminderLedger
	clock         service.Clock
	logger        *zap.Logger
	lead          time.Duration
	interval      time.Duration
}

// NewShiftReminderWorker constructs the worker.
func NewShiftReminderWorker(shifts repository.ShiftRepository, notifications *service.NotificationService, ledger ReminderLedger, clock service.Clock, lead, interval time.Duration, logger *zap.Logger) *ShiftReminderWorker {
	if clock == nil {
		clock = service.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftReminderWorker{
		shifts:        shifts,
		notifications: notifications,
		ledger:        ledger,
		clock:         clock,
		logger:        logger,
		lead:          lead,
		interval:      interval,
	}
}

// Run scans on every tick until ctx is cancelled. A zero interval disables the worker.
func (w *ShiftReminderWorker) Run(ctx context.Context) {
	if w.interval <= 0 || w.lead <= 0 {
		w.logger.Info("shift reminder worker disabled")
		return
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("shift reminder worker started", zap.Duration("lead", w.lead), zap.Duration("interval", w.interval))
	for {
		if _, err := w.Tick(ctx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Warn("shift reminder scan failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			w.logger.Info("shift reminder worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// Tick sends reminders for shifts starting in (now, now+lead] and reports how many went out.
func (w *ShiftReminderWorker) Tick(ctx context.Context) (int, error) {
	now := w.clock.Now()
	from := now.Add(time.Nanosecond)
	to := now.Add(w.lead + time.Nanosecond)
	shifts, err := w.shifts.List(ctx, repository.ShiftFilter{
		Statuses:  []domain.ShiftStatus{domain.ShiftStatusScheduled},
		StartFrom: &from,
		StartTo:   &to,
		Limit:     1000,
	})
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, shift := range shifts {
		first, err := w.ledger.MarkSent(ctx, shift.ID, shift.StartTime.Sub(now)+w.lead)
		if err != nil {
			w.logger.Warn("reminder ledger unavailable", zap.String("shift_id", shift.ID), zap.Error(err))
			continue
		}
		if !first {
			continue
		}
		w.notifications.Notify(ctx, w.notifications.ShiftReminder(shift))
		sent++
	}
	return sent, nil
}
