package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-tracker/internal/auth"
	"github.com/spec-kit/shift-tracker/internal/config"
	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/repository"
)

// SignUpInput is the profile captured on first sign-up.
type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Session is an issued access token.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	revoked    auth.RevocationList
	clock      Clock
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Revocations       auth.RevocationList
	Clock             Clock
	Logger            *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.ResetCodeTTLMinutes
	if ttl <= 0 {
		ttl = 15
	}
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		revoked:    deps.Revocations,
		clock:      clock,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
		resetTTL:   time.Duration(ttl) * time.Minute,
	}
}

// SignUp creates the user's profile and signs them in.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*Session, error) {
	email := strings.TrimSpace(in.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &domain.User{
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
		HireDate:     &now,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return s.issue(user)
}

// SignIn authenticates a user by email and password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	return s.issue(user)
}

// SignOut revokes the presented token until it expires.
func (s *AuthService) SignOut(ctx context.Context, claims *auth.Claims) error {
	if s.revoked == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// RequestPasswordReset issues a verification code for email. The plain code is returned so
// the caller can hand it to a mail sender; unknown emails yield an empty code and no error.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if _, err := s.users.GetByEmail(ctx, email); errors.Is(err, domain.ErrNotFound) {
		s.logger.Info("password reset requested for unknown email")
		return "", nil
	} else if err != nil {
		return "", err
	}

	code, err := auth.GenerateVerificationCode()
	if err != nil {
		return "", err
	}
	hash, err := auth.HashPassword(code, s.bcryptCost)
	if err != nil {
		return "", err
	}

	record := &domain.PasswordResetCode{
		Email:     email,
		CodeHash:  hash,
		ExpiresAt: s.clock.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, record); err != nil {
		return "", err
	}
	return code, nil
}

// ConfirmPasswordReset checks the latest code issued for email and sets the new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	email = strings.TrimSpace(email)
	record, err := s.resets.LatestForEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrInvalidResetCode
	}
	if err != nil {
		return err
	}
	if !record.Usable(s.clock.Now()) {
		return domain.ErrInvalidResetCode
	}
	if err := auth.ComparePassword(record.CodeHash, code); err != nil {
		return domain.ErrInvalidResetCode
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	if err := s.resets.MarkUsed(ctx, record.ID); err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// ChangePassword verifies current password before updating to new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issue(user *domain.User) (*Session, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}
