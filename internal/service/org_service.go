package service

import (
	"context"
	"strings"

	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/repository"
	apperrors "github.com/spec-kit/shift-tracker/pkg/util"
)

// OrgDependencies encapsulates repositories required for org management.
type OrgDependencies struct {
	BranchRepo     repository.BranchRepository
	DepartmentRepo repository.DepartmentRepository
}

// OrgService manages branches and departments.
type OrgService struct {
	branches    repository.BranchRepository
	departments repository.DepartmentRepository
}

// NewOrgService constructs the service.
func NewOrgService(deps OrgDependencies) *OrgService {
	return &OrgService{branches: deps.BranchRepo, departments: deps.DepartmentRepo}
}

// CreateBranchInput describes a new branch.
type CreateBranchInput struct {
	Name      string
	Address   string
	Phone     string
	ManagerID *string
}

// CreateBranch creates a new branch.
func (s *OrgService) CreateBranch(ctx context.Context, in CreateBranchInput) (*domain.Branch, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	branch := &domain.Branch{
		Name:      name,
		Address:   strings.TrimSpace(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
		ManagerID: in.ManagerID,
	}
	if err := s.branches.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// ListBranches returns every branch ordered by name.
func (s *OrgService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.branches.List(ctx)
}

// CreateDepartment creates a department inside an existing branch.
func (s *OrgService) CreateDepartment(ctx context.Context, name, branchID string) (*domain.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	if _, err := s.branches.GetByID(ctx, branchID); err != nil {
		return nil, err
	}
	dept := &domain.Department{Name: name, BranchID: branchID}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

// ListDepartments returns departments, optionally for one branch.
func (s *OrgService) ListDepartments(ctx context.Context, branchID *string) ([]domain.Department, error) {
	return s.departments.List(ctx, branchID)
}
