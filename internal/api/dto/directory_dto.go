package dto

import (
	"time"

	"github.com/spec-kit/shift-tracker/internal/domain"
	"github.com/spec-kit/shift-tracker/internal/service"
)

// EmployeeResponse is a directory row.
type EmployeeResponse struct {
	UserResponse
	DepartmentName string      `json:"department_name,omitempty"`
	Role           domain.Role `json:"role"`
	RoleName       string      `json:"role_name"`
}

// NewEmployeeResponse maps a directory row.
func NewEmployeeResponse(e service.Employee) EmployeeResponse {
	return EmployeeResponse{
		UserResponse:   NewUserResponse(&e.User),
		DepartmentName: e.DepartmentName,
		Role:           e.Role,
		RoleName:       e.Role.DisplayName(),
	}
}

// UpdateEmployeeRequest carries manager edits; omitted fields stay unchanged.
type UpdateEmployeeRequest struct {
	FirstName    *string  `json:"first_name" validate:"omitempty,max=100"`
	LastName     *string  `json:"last_name" validate:"omitempty,max=100"`
	Phone        *string  `json:"phone" validate:"omitempty,max=40"`
	BranchID     *string  `json:"branch_id"`
	DepartmentID *string  `json:"department_id"`
	HourlyRate   *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	IsActive     *bool    `json:"is_active"`
}

// ToInput converts the payload to a service input.
func (r UpdateEmployeeRequest) ToInput() service.UpdateEmployeeInput {
	return service.UpdateEmployeeInput{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		BranchID:     r.BranchID,
		DepartmentID: r.DepartmentID,
		HourlyRate:   r.HourlyRate,
		IsActive:     r.IsActive,
	}
}

// CreateBranchRequest payload for a new branch.
type CreateBranchRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Address   string  `json:"address" validate:"max=500"`
	Phone     string  `json:"phone" validate:"max=40"`
	ManagerID *string `json:"manager_id"`
}

// CreateDepartmentRequest payload for a new department.
type CreateDepartmentRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	BranchID string `json:"branch_id" validate:"required"`
}

// BranchResponse is the public view of a branch.
type BranchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	ManagerID *string   `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBranchResponse maps a branch.
func NewBranchResponse(b domain.Branch) BranchResponse {
	return BranchResponse{ID: b.ID, Name: b.Name, Address: b.Address, Phone: b.Phone, ManagerID: b.ManagerID, CreatedAt: b.CreatedAt}
}

// DepartmentResponse is the public view of a department.
type DepartmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BranchID  string    `json:"branch_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDepartmentResponse maps a department.
func NewDepartmentResponse(d domain.Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name, BranchID: d.BranchID, CreatedAt: d.CreatedAt}
}

// DashboardStatsResponse carries the manager counters.
type DashboardStatsResponse struct {
	TotalEmployees int     `json:"total_employees"`
	ActiveShifts   int     `json:"active_shifts"`
	TodayHours     float64 `json:"today_hours"`
}

// DashboardResponse is the landing view.
type DashboardResponse struct {
	Role        domain.Role             `json:"role"`
	RoleName    string                  `json:"role_name"`
	TodayShifts []ShiftResponse         `json:"today_shifts"`
	ActiveEntry *TimeEntryResponse      `json:"active_entry"`
	UnreadCount int                     `json:"unread_notifications"`
	Stats       *DashboardStatsResponse `json:"stats,omitempty"`
}

// NewDashboardResponse maps a dashboard.
func NewDashboardResponse(d *service.Dashboard) DashboardResponse {
	out := DashboardResponse{
		Role:        d.Role,
		RoleName:    d.Role.DisplayName(),
		TodayShifts: NewShiftResponses(d.TodayShifts),
		UnreadCount: d.UnreadCount,
	}
	if d.ActiveEntry != nil {
		entry := NewTimeEntryResponse(d.ActiveEntry, d.Elapsed)
		out.ActiveEntry = &entry
	}
	if d.Stats != nil {
		out.Stats = &DashboardStatsResponse{
			TotalEmployees: d.Stats.TotalEmployees,
			ActiveShifts:   d.Stats.ActiveShifts,
			TodayHours:     d.Stats.TodayHours,
		}
	}
	return out
}
