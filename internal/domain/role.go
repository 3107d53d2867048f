package domain

// Role is a permission level derived from a principal's email. It is never persisted.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

var roleRanks = map[Role]int{
	RoleEmployee: 1,
	RoleManager:  2,
	RoleAdmin:    3,
}

// Rank returns the position of the role in the admin > manager > employee order.
// Unknown roles rank below employee.
func (r Role) Rank() int {
	return roleRanks[r]
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// DisplayName is the human readable label shown next to a principal.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "System Administrator"
	case RoleManager:
		return "Department Manager"
	default:
		return "Employee"
	}
}

// ParseRole converts external input into a Role.
func ParseRole(value string) (Role, bool) {
	role := Role(value)
	if !role.Valid() {
		return "", false
	}
	return role, true
}
