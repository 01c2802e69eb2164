package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/employee"
)

type Employee struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (e *Employee) IsActiveEmployee() bool {
	return e.IsActive
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Department: e.Department,
		Position:   e.Position,
		Email:      e.Email,
		Phone:      e.Phone,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Department: e.Department,
		Position:   e.Position,
		Email:      e.Email,
		Phone:      e.Phone,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
