package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-tracker/internal/api/dto"
	"github.com/spec-kit/shift-tracker/internal/auth"
	"github.com/spec-kit/shift-tracker/internal/service"
	apperrors "github.com/spec-kit/shift-tracker/pkg/util"
)

// AuthHandler exposes sign-up, sign-in and password flows.
type AuthHandler struct {
	auth        *service.AuthService
	policy      *auth.Policy
	exposeCodes bool
}

// NewAuthHandler constructs handler. exposeCodes returns reset codes in responses, for
// local development without a mail sender.
func NewAuthHandler(authService *service.AuthService, policy *auth.Policy, exposeCodes bool) *AuthHandler {
	return &AuthHandler{auth: authService, policy: policy, exposeCodes: exposeCodes}
}

// SignUp handles POST /auth/sign-up.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.auth.SignUp(c.UserContext(), service.SignUpInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, h.sessionResponse(session))
}

// SignIn handles POST /auth/sign-in.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, h.sessionResponse(session))
}

// SignOut handles POST /auth/sign-out.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.SignOut(c.UserContext(), claims); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// RequestPasswordReset handles POST /auth/password/reset/request. The response does not
// reveal whether the email is registered.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	code, err := h.auth.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	payload := fiber.Map{"status": "verification code sent"}
	if h.exposeCodes && code != "" {
		payload["code"] = code
	}
	return data(c, http.StatusAccepted, payload)
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.ConfirmPasswordReset(c.UserContext(), req.Email, req.Code, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.UserContext(), v.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return data(c, http.StatusOK, dto.MeResponse{
		User:     dto.NewUserResponse(principal.User),
		Role:     principal.Role,
		RoleName: principal.Role.DisplayName(),
		Routes:   h.policy.VisibleRoutes(principal.Role),
	})
}

func (h *AuthHandler) sessionResponse(s *service.Session) fiber.Map {
	role := h.policy.ResolveRole(s.User.Email)
	return fiber.Map{
		"user": dto.NewUserResponse(s.User),
		"role": role,
		"auth": dto.AuthResponse{Token: s.Token, ExpiresAt: s.ExpiresAt},
	}
}
