package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-tracker/internal/api/dto"
	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/service"
)

// DashboardHandler serves the landing view.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get handles GET /dashboard.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	d, err := h.dashboard.Build(c.UserContext(), v)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewDashboardResponse(d))
}

// NotificationHandler lists and acknowledges the caller's notifications.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler constructs handler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /notifications.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	notes, err := h.notifications.List(c.UserContext(), v.UserID, queryLimit(c, 50))
	if err != nil {
		return err
	}
	unread, err := h.notifications.UnreadCount(c.UserContext(), v.UserID)
	if err != nil {
		return err
	}
	if notes == nil {
		notes = []domain.Notification{}
	}
	return c.JSON(fiber.Map{"data": notes, "meta": fiber.Map{"unread": unread}})
}

// MarkRead handles POST /notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.UserContext(), v.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
