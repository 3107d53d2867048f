package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/shift-tracker/internal/auth"
	"github.com/spec-kit/shift-tracker/internal/config"
	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/repository/memory"
)

func newAuthFixture(t *testing.T) (*AuthService, *memory.Store, *fakeClock, *auth.MemoryRevocationList) {
	t.Helper()
	store := memory.NewStore()
	clock := newFakeClock(time.Now().UTC())
	revoked := auth.NewMemoryRevocationList()
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 30,
		ResetCodeTTLMinutes:   10,
		BcryptCost:            bcrypt.MinCost,
	}, AuthDependencies{
		UserRepo:          store.Users(),
		PasswordResetRepo: store.PasswordResets(),
		Revocations:       revoked,
		Clock:             clock,
	})
	return svc, store, clock, revoked
}

func TestSignUpThenSignIn(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	session, err := svc.SignUp(ctx, SignUpInput{Email: "amy@example.com", Password: "s3cret-pass", FirstName: "Amy"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.User.IsActive)

	claims, err := svc.TokenManager().ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.Subject)
	assert.Equal(t, "amy@example.com", claims.Email)

	_, err = svc.SignUp(ctx, SignUpInput{Email: "amy@example.com", Password: "another-pass"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = svc.SignIn(ctx, "amy@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.SignIn(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	again, err := svc.SignIn(ctx, "amy@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, again.User.ID)
}

func TestSignInRejectsInactiveAccount(t *testing.T) {
	svc, store, _, _ := newAuthFixture(t)
	ctx := context.Background()

	session, err := svc.SignUp(ctx, SignUpInput{Email: "amy@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	user := session.User
	user.IsActive = false
	require.NoError(t, store.Users().Update(ctx, user))

	_, err = svc.SignIn(ctx, "amy@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestSignOutRevokesToken(t *testing.T) {
	svc, _, _, revoked := newAuthFixture(t)
	ctx := context.Background()

	session, err := svc.SignUp(ctx, SignUpInput{Email: "amy@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	claims, err := svc.TokenManager().ParseToken(session.Token)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, claims))
	isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, isRevoked)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, clock, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpInput{Email: "amy@example.com", Password: "old-password"})
	require.NoError(t, err)

	code, err := svc.RequestPasswordReset(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, code)

	code, err = svc.RequestPasswordReset(ctx, "amy@example.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	assert.ErrorIs(t, svc.ConfirmPasswordReset(ctx, "amy@example.com", "not-it", "new-password"), domain.ErrInvalidResetCode)
	require.NoError(t, svc.ConfirmPasswordReset(ctx, "amy@example.com", code, "new-password"))
	assert.ErrorIs(t, svc.ConfirmPasswordReset(ctx, "amy@example.com", code, "newer-password"), domain.ErrInvalidResetCode)

	_, err = svc.SignIn(ctx, "amy@example.com", "new-password")
	require.NoError(t, err)

	code, err = svc.RequestPasswordReset(ctx, "amy@example.com")
	require.NoError(t, err)
	clock.Advance(11 * time.Minute)
	assert.ErrorIs(t, svc.ConfirmPasswordReset(ctx, "amy@example.com", code, "late-password"), domain.ErrInvalidResetCode)
}

func TestChangePassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	session, err := svc.SignUp(ctx, SignUpInput{Email: "amy@example.com", Password: "old-password"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, session.User.ID, "bad", "new-password"), domain.ErrInvalidCredentials)
	require.NoError(t, svc.ChangePassword(ctx, session.User.ID, "old-password", "new-password"))
	_, err = svc.SignIn(ctx, "amy@example.com", "new-password")
	assert.NoError(t, err)
}
