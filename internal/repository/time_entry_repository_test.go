package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/persistence"
)

// testPool connects to TEST_POSTGRES_DSN and applies the migrations. Tests are skipped when
// the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pool, "../../migrations", zap.NewNop()))
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	user := &domain.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		IsActive:     true,
	}
	require.NoError(t, NewUserRepository(pool).Create(context.Background(), user))
	return user.ID
}

func TestPostgresOneOpenEntryPerUser(t *testing.T) {
	pool := testPool(t)
	entries := NewTimeEntryRepository(pool)
	userID := createTestUser(t, pool)
	checkIn := time.Now().UTC().Truncate(time.Second)

	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := entries.Create(context.Background(), domain.NewTimeEntry(userID, checkIn))
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, domain.ErrAlreadyClockedIn):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, created.Load())
	assert.EqualValues(t, 7, conflicts.Load())

	open, err := entries.FindOpenByUser(context.Background(), userID)
	require.NoError(t, err)
	require.NoError(t, open.ClockOut(checkIn.Add(time.Hour), domain.HoursPolicy{}))
	require.NoError(t, entries.Transition(context.Background(), open, domain.TimeEntryCheckedIn))

	// Closing the entry frees the user for a new one.
	require.NoError(t, entries.Create(context.Background(), domain.NewTimeEntry(userID, checkIn.Add(2*time.Hour))))
}

func TestPostgresTransitionIsConditional(t *testing.T) {
	pool := testPool(t)
	entries := NewTimeEntryRepository(pool)
	ctx := context.Background()
	checkIn := time.Now().UTC().Truncate(time.Second)

	entry := domain.NewTimeEntry(createTestUser(t, pool), checkIn)
	require.NoError(t, entries.Create(ctx, entry))

	stale := *entry
	require.NoError(t, entry.StartBreak(checkIn.Add(time.Hour)))
	require.NoError(t, entries.Transition(ctx, entry, domain.TimeEntryCheckedIn))

	require.NoError(t, stale.ClockOut(checkIn.Add(2*time.Hour), domain.HoursPolicy{}))
	assert.ErrorIs(t, entries.Transition(ctx, &stale, domain.TimeEntryCheckedIn), domain.ErrInvalidTransition)

	stored, err := entries.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TimeEntryOnBreak, stored.Status)
	assert.Nil(t, stored.CheckOutTime)

	missing := *entry
	missing.ID = uuid.NewString()
	assert.ErrorIs(t, entries.Transition(ctx, &missing, domain.TimeEntryOnBreak), domain.ErrNotFound)

	missing.ID = "not-a-uuid"
	assert.ErrorIs(t, entries.Transition(ctx, &missing, domain.TimeEntryOnBreak), domain.ErrNotFound)
	_, err = entries.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresClockInWithUnknownShift(t *testing.T) {
	pool := testPool(t)
	entries := NewTimeEntryRepository(pool)

	shiftID := uuid.NewString()
	entry := domain.NewTimeEntry(createTestUser(t, pool), time.Now().UTC())
	entry.ShiftID = &shiftID

	assert.ErrorIs(t, entries.Create(context.Background(), entry), domain.ErrInvalidReference)
}
