package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-tracker/internal/api/dto"
	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/service"
	apperrors "github.com/spec-kit/shift-tracker/pkg/util"
)

// EmployeeHandler exposes the employee directory to managers.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler constructs handler.
func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// List handles GET /employees?search=&role=&active=.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	q := service.EmployeeQuery{
		Search:   c.Query("search"),
		BranchID: queryString(c, "branch_id"),
		Limit:    queryLimit(c, 100),
	}
	if raw := c.Query("role"); raw != "" {
		role, ok := domain.ParseRole(raw)
		if !ok {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": raw})
		}
		q.Role = &role
	}
	active, err := queryBool(c, "active")
	if err != nil {
		return err
	}
	q.Active = active

	employees, err := h.employees.Search(c.UserContext(), q)
	if err != nil {
		return err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, dto.NewEmployeeResponse(e))
	}
	return data(c, http.StatusOK, out)
}

// Get handles GET /employees/:id.
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	e, err := h.employees.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewEmployeeResponse(*e))
}

// Update handles PATCH /employees/:id.
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateEmployeeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	e, err := h.employees.Update(c.UserContext(), c.Params("id"), req.ToInput())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewEmployeeResponse(*e))
}

// OrgHandler exposes branches and departments.
type OrgHandler struct {
	org *service.OrgService
}

// NewOrgHandler constructs handler.
func NewOrgHandler(org *service.OrgService) *OrgHandler {
	return &OrgHandler{org: org}
}

// ListBranches handles GET /branches.
func (h *OrgHandler) ListBranches(c *fiber.Ctx) error {
	branches, err := h.org.ListBranches(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, dto.NewBranchResponse(b))
	}
	return data(c, http.StatusOK, out)
}

// CreateBranch handles POST /branches.
func (h *OrgHandler) CreateBranch(c *fiber.Ctx) error {
	var req dto.CreateBranchRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	branch, err := h.org.CreateBranch(c.UserContext(), service.CreateBranchInput{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewBranchResponse(*branch))
}

// ListDepartments handles GET /departments?branch_id=.
func (h *OrgHandler) ListDepartments(c *fiber.Ctx) error {
	depts, err := h.org.ListDepartments(c.UserContext(), queryString(c, "branch_id"))
	if err != nil {
		return err
	}
	out := make([]dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		out = append(out, dto.NewDepartmentResponse(d))
	}
	return data(c, http.StatusOK, out)
}

// CreateDepartment handles POST /departments.
func (h *OrgHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	dept, err := h.org.CreateDepartment(c.UserContext(), req.Name, req.BranchID)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewDepartmentResponse(*dept))
}
