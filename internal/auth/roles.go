package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-tracker/internal/domain"
	apperrors "github.com/spec-kit/shift-tracker/pkg/util"
)

// RequireRole runs the guard against the request principal. A nil role only demands
// authentication. On the server the auth state is always loaded once the middleware ran.
func RequireRole(required *domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		in := GuardInput{Authenticated: ok, Loaded: true, Required: required}
		if ok {
			in.Role = principal.Role
		}

		decision := Guard(in)
		switch decision.Outcome {
		case GuardGranted:
			return c.Next()
		case GuardDenied:
			return apperrors.NewForbidden("insufficient role", map[string]any{
				"required_role": string(*decision.Required),
				"actual_role":   string(decision.Actual),
			})
		default:
			return apperrors.NewUnauthorized("authentication required")
		}
	}
}

// RequireManager admits managers and admins.
func RequireManager() fiber.Handler {
	role := domain.RoleManager
	return RequireRole(&role)
}

// RequireAdmin admits admins only.
func RequireAdmin() fiber.Handler {
	role := domain.RoleAdmin
	return RequireRole(&role)
}

// RequireAnyRole ensures the caller is authenticated.
func RequireAnyRole() fiber.Handler {
	return RequireRole(nil)
}
