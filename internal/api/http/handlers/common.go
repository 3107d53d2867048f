package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-tracker/internal/api/dto"
	"github.com/spec-kit/shift-tracker/internal/auth"
	"github.com/spec-kit/shift-tracker/internal/service"
	apperrors "github.com/spec-kit/shift-tracker/pkg/util"
)

// bind parses the JSON body into req and runs its validation tags.
func bind(c *fiber.Ctx, req any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	return dto.Validate(req)
}

// viewer returns the request principal as a service viewer.
func viewer(c *fiber.Ctx) (service.Viewer, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Viewer{}, apperrors.NewUnauthorized("authentication required")
	}
	return service.Viewer{UserID: principal.ID, Role: principal.Role}, nil
}

func queryLimit(c *fiber.Ctx, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid boolean", map[string]any{key: raw})
	}
	return &val, nil
}

func queryString(c *fiber.Ctx, key string) *string {
	if raw := c.Query(key); raw != "" {
		return &raw
	}
	return nil
}

func data(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}
