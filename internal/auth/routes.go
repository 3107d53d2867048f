package auth

import "github.com/spec-kit/shift-tracker/internal/domain"

// Route names a dashboard area and the minimum role that may open it.
type Route struct {
	Key     string       `json:"key"`
	Path    string       `json:"path"`
	Label   string       `json:"label"`
	MinRole *domain.Role `json:"min_role,omitempty"`
}

func minRole(r domain.Role) *domain.Role {
	return &r
}

var routeTable = []Route{
	{Key: "dashboard", Path: "/dashboard", Label: "Dashboard"},
	{Key: "schedule", Path: "/schedule", Label: "Schedule"},
	{Key: "time-tracking", Path: "/time-tracking", Label: "Time Tracking"},
	{Key: "employees", Path: "/employees", Label: "Employees", MinRole: minRole(domain.RoleManager)},
	{Key: "branches", Path: "/branches", Label: "Branches", MinRole: minRole(domain.RoleManager)},
	{Key: "reports", Path: "/reports", Label: "Reports", MinRole: minRole(domain.RoleManager)},
	{Key: "settings", Path: "/settings", Label: "Settings", MinRole: minRole(domain.RoleAdmin)},
}

// LookupRoute returns the route registered under key.
func LookupRoute(key string) (Route, bool) {
	for _, r := range routeTable {
		if r.Key == key {
			return r, true
		}
	}
	return Route{}, false
}
