package auth

import (
	"github.com/spec-kit/shift-tracker/internal/config"
	"github.com/spec-kit/shift-tracker/internal/domain"
)

// Policy derives roles from emails and compares them against resource requirements.
// It holds no mutable state after construction and is safe for concurrent use.
type Policy struct {
	admins   map[string]struct{}
	managers map[string]struct{}
}

// NewPolicy builds a policy from the deploy-time allow-lists.
func NewPolicy(cfg config.AccessConfig) *Policy {
	p := &Policy{
		admins:   make(map[string]struct{}, len(cfg.AdminEmails)),
		managers: make(map[string]struct{}, len(cfg.ManagerEmails)),
	}
	for _, email := range cfg.AdminEmails {
		p.admins[email] = struct{}{}
	}
	for _, email := range cfg.ManagerEmails {
		p.managers[email] = struct{}{}
	}
	return p
}

// ResolveRole maps an email to a role. Matching is exact and case-sensitive; the admin
// list wins over the manager list and anything else is an employee.
func (p *Policy) ResolveRole(email string) domain.Role {
	if _, ok := p.admins[email]; ok {
		return domain.RoleAdmin
	}
	if _, ok := p.managers[email]; ok {
		return domain.RoleManager
	}
	return domain.RoleEmployee
}

// IsAuthorized reports whether actual meets the minimum rank of required.
// A nil requirement means any authenticated principal may proceed.
func (p *Policy) IsAuthorized(actual domain.Role, required *domain.Role) bool {
	return IsAuthorized(actual, required)
}

// IsAuthorized is the allow-list independent rank comparison.
func IsAuthorized(actual domain.Role, required *domain.Role) bool {
	if required == nil {
		return true
	}
	return actual.Rank() >= required.Rank()
}

// VisibleRoutes lists the dashboard areas the role may open, in navigation order.
func (p *Policy) VisibleRoutes(role domain.Role) []Route {
	out := make([]Route, 0, len(routeTable))
	for _, r := range routeTable {
		if IsAuthorized(role, r.MinRole) {
			out = append(out, r)
		}
	}
	return out
}
