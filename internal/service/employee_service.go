package service

import (
	"context"
	"strings"

	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/repository"
	apperrors "github.com/spec-kit/shift-tracker/pkg/util"
)

// RoleResolver derives a role from an email.
type RoleResolver interface {
	ResolveRole(email string) domain.Role
}

// EmployeeQuery filters the employee directory.
type EmployeeQuery struct {
	Search   string
	Role     *domain.Role
	Active   *bool
	BranchID *string
	Limit    int
}

// Employee is a directory row with its derived role.
type Employee struct {
	repository.UserProfile
	Role domain.Role
}

// UpdateEmployeeInput carries the manager-editable profile fields. Nil fields are left
// unchanged.
type UpdateEmployeeInput struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	BranchID     *string
	DepartmentID *string
	HourlyRate   *float64
	IsActive     *bool
}

// EmployeeService backs the employee directory.
type EmployeeService struct {
	users       repository.UserRepository
	departments repository.DepartmentRepository
	roles       RoleResolver
}

// NewEmployeeService constructs the service.
func NewEmployeeService(users repository.UserRepository, departments repository.DepartmentRepository, roles RoleResolver) *EmployeeService {
	return &EmployeeService{users: users, departments: departments, roles: roles}
}

// Search lists employees matching q. Roles are never stored, so the role filter runs after
// the store query.
func (s *EmployeeService) Search(ctx context.Context, q EmployeeQuery) ([]Employee, error) {
	profiles, err := s.users.List(ctx, repository.UserFilter{
		Search:   strings.TrimSpace(q.Search),
		IsActive: q.Active,
		BranchID: q.BranchID,
		Limit:    q.Limit,
	})
	if err != nil {
		return nil, err
	}

	result := make([]Employee, 0, len(profiles))
	for _, p := range profiles {
		role := s.roles.ResolveRole(p.Email)
		if q.Role != nil && role != *q.Role {
			continue
		}
		result = append(result, Employee{UserProfile: p, Role: role})
	}
	return result, nil
}

// Get returns one employee with the derived role.
func (s *EmployeeService) Get(ctx context.Context, id string) (*Employee, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e := &Employee{UserProfile: repository.UserProfile{User: *user}, Role: s.roles.ResolveRole(user.Email)}
	if user.DepartmentID != nil {
		if dept, err := s.departments.GetByID(ctx, *user.DepartmentID); err == nil {
			e.DepartmentName = dept.Name
		}
	}
	return e, nil
}

// Update applies a manager's edits to an employee profile.
func (s *EmployeeService) Update(ctx context.Context, id string, in UpdateEmployeeInput) (*Employee, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.DepartmentID != nil {
		dept, err := s.departments.GetByID(ctx, *in.DepartmentID)
		if err != nil {
			return nil, err
		}
		if in.BranchID != nil && *in.BranchID != dept.BranchID {
			return nil, apperrors.NewValidationError("department does not belong to branch", map[string]any{
				"branch_id":     *in.BranchID,
				"department_id": *in.DepartmentID,
			})
		}
		user.DepartmentID = in.DepartmentID
		user.BranchID = &dept.BranchID
	} else if in.BranchID != nil {
		user.BranchID = in.BranchID
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.HourlyRate != nil {
		user.HourlyRate = in.HourlyRate
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
