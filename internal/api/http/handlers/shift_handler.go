package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-tracker/internal/api/dto"
	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/service"
	apperrors "github.com/spec-kit/shift-tracker/pkg/util"
)

// ShiftHandler exposes the schedule.
type ShiftHandler struct {
	shifts *service.ShiftService
}

// NewShiftHandler constructs handler.
func NewShiftHandler(shifts *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shifts: shifts}
}

// Create handles POST /shifts.
func (h *ShiftHandler) Create(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	var req dto.CreateShiftRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	shift, err := h.shifts.Create(c.UserContext(), v, req.ToInput())
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewShiftResponse(*shift))
}

// List handles GET /shifts. With ?date=YYYY-MM-DD only that day is returned.
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}

	if day := c.Query("date"); day != "" {
		shifts, err := h.shifts.ForDay(c.UserContext(), v, day)
		if err != nil {
			return err
		}
		return data(c, http.StatusOK, dto.NewShiftResponses(shifts))
	}

	q := service.ShiftQuery{
		EmployeeID: queryString(c, "employee_id"),
		BranchID:   queryString(c, "branch_id"),
		Limit:      queryLimit(c, 200),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.ShiftStatus(raw)
		if !domain.ValidShiftStatus(status) {
			return apperrors.NewValidationError("unknown shift status", map[string]any{"status": raw})
		}
		q.Status = &status
	}
	if q.From, err = queryTime(c, "from"); err != nil {
		return err
	}
	if q.To, err = queryTime(c, "to"); err != nil {
		return err
	}

	shifts, err := h.shifts.List(c.UserContext(), v, q)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewShiftResponses(shifts))
}

// Week handles GET /shifts/week?date=YYYY-MM-DD.
func (h *ShiftHandler) Week(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	week, err := h.shifts.Week(c.UserContext(), v, c.Query("date"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewWeekResponse(week))
}

// UpdateStatus handles PATCH /shifts/:id/status.
func (h *ShiftHandler) UpdateStatus(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	var req dto.UpdateShiftStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	shift, err := h.shifts.UpdateStatus(c.UserContext(), v, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewShiftResponse(*shift))
}

func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperrors.NewValidationError("timestamps must be RFC3339", map[string]any{key: raw})
	}
	return &t, nil
}
