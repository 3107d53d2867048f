package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-tracker/internal/api/dto"
	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/service"
)

// TimeHandler exposes the clock-in, break and clock-out actions of the caller.
type TimeHandler struct {
	sessions *service.TimeSessionService
}

// NewTimeHandler constructs handler.
func NewTimeHandler(sessions *service.TimeSessionService) *TimeHandler {
	return &TimeHandler{sessions: sessions}
}

// ClockIn handles POST /time/clock-in.
func (h *TimeHandler) ClockIn(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	var req dto.ClockInRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	entry, err := h.sessions.ClockIn(c.UserContext(), v.UserID, service.ClockInInput{
		Location: req.Location,
		ShiftID:  req.ShiftID,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}
	return h.respond(c, http.StatusCreated, entry)
}

// StartBreak handles POST /time/entries/:id/break/start.
func (h *TimeHandler) StartBreak(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	entry, err := h.sessions.StartBreak(c.UserContext(), v.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return h.respond(c, http.StatusOK, entry)
}

// EndBreak handles POST /time/entries/:id/break/end.
func (h *TimeHandler) EndBreak(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	entry, err := h.sessions.EndBreak(c.UserContext(), v.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return h.respond(c, http.StatusOK, entry)
}

// ClockOut handles POST /time/entries/:id/clock-out.
func (h *TimeHandler) ClockOut(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	var req dto.ClockOutRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	entry, err := h.sessions.ClockOut(c.UserContext(), v.UserID, c.Params("id"), req.Location)
	if err != nil {
		return err
	}
	return h.respond(c, http.StatusOK, entry)
}

// Active handles GET /time/active. Data is null when the caller is not clocked in.
func (h *TimeHandler) Active(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	entry, err := h.sessions.Active(c.UserContext(), v.UserID)
	if err != nil {
		return err
	}
	if entry == nil {
		return data(c, http.StatusOK, nil)
	}
	return h.respond(c, http.StatusOK, entry)
}

// Get handles GET /time/entries/:id.
func (h *TimeHandler) Get(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	entry, err := h.sessions.Get(c.UserContext(), v.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return h.respond(c, http.StatusOK, entry)
}

// List handles GET /time/entries. scope=today limits to the current local day.
func (h *TimeHandler) List(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}

	var entries []domain.TimeEntry
	if c.Query("scope") == "today" {
		entries, err = h.sessions.ListToday(c.UserContext(), v.UserID)
	} else {
		entries, err = h.sessions.History(c.UserContext(), v.UserID, queryLimit(c, 50))
	}
	if err != nil {
		return err
	}

	out := make([]dto.TimeEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, dto.NewTimeEntryResponse(&entries[i], h.sessions.Elapsed(&entries[i])))
	}
	return data(c, http.StatusOK, out)
}

func (h *TimeHandler) respond(c *fiber.Ctx, status int, entry *domain.TimeEntry) error {
	return data(c, status, dto.NewTimeEntryResponse(entry, h.sessions.Elapsed(entry)))
}
