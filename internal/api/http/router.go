package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/shift-tracker/internal/api/http/handlers"
	"github.com/spec-kit/shift-tracker/internal/auth"
	"github.com/spec-kit/shift-tracker/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Time           *handlers.TimeHandler
	Shifts         *handlers.ShiftHandler
	Employees      *handlers.EmployeeHandler
	Org            *handlers.OrgHandler
	Dashboard      *handlers.DashboardHandler
	Notifications  *handlers.NotificationHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/sign-up", cfg.Auth.SignUp)
	authGroup.Post("/sign-in", cfg.Auth.SignIn)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Post("/auth/sign-out", cfg.Auth.SignOut)
	protected.Post("/auth/password/change", cfg.Auth.ChangePassword)

	protected.Get("/dashboard", cfg.Dashboard.Get)

	timeGroup := protected.Group("/time")
	timeGroup.Post("/clock-in", cfg.Time.ClockIn)
	timeGroup.Get("/active", cfg.Time.Active)
	timeGroup.Get("/entries", cfg.Time.List)
	timeGroup.Get("/entries/:id", cfg.Time.Get)
	timeGroup.Post("/entries/:id/break/start", cfg.Time.StartBreak)
	timeGroup.Post("/entries/:id/break/end", cfg.Time.EndBreak)
	timeGroup.Post("/entries/:id/clock-out", cfg.Time.ClockOut)

	shifts := protected.Group("/shifts")
	shifts.Get("/", cfg.Shifts.List)
	shifts.Get("/week", cfg.Shifts.Week)
	shifts.Post("/", auth.RequireManager(), cfg.Shifts.Create)
	shifts.Patch("/:id/status", cfg.Shifts.UpdateStatus)

	notifications := protected.Group("/notifications")
	notifications.Get("/", cfg.Notifications.List)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)

	employees := protected.Group("/employees", auth.RequireManager())
	employees.Get("/", cfg.Employees.List)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Patch("/:id", auth.RequireAdmin(), cfg.Employees.Update)

	branches := protected.Group("/branches", auth.RequireManager())
	branches.Get("/", cfg.Org.ListBranches)
	branches.Post("/", auth.RequireAdmin(), cfg.Org.CreateBranch)

	departments := protected.Group("/departments", auth.RequireManager())
	departments.Get("/", cfg.Org.ListDepartments)
	departments.Post("/", auth.RequireAdmin(), cfg.Org.CreateDepartment)
}
