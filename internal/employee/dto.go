package employee

import (
	"strings"

	errors "github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/core/common/validation"
)

type CreateEmployeeDTO struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

func (d *CreateEmployeeDTO) Normalize() {
	d.EmployeeID = strings.TrimSpace(d.EmployeeID)
	d.Name = strings.TrimSpace(d.Name)
	d.Department = strings.TrimSpace(d.Department)
	d.Position = strings.TrimSpace(d.Position)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
}

func (d CreateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("employee_id", d.EmployeeID).Required().MaxLength(32, errors.ErrCodeInvalidEmployee)
	v.Field("name", d.Name).Required().MaxLength(100, errors.ErrCodeInvalidEmployee)
	v.Field("email", d.Email).Email()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateEmployeeDTO is a partial update; nil fields are left unchanged.
type UpdateEmployeeDTO struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func (d *UpdateEmployeeDTO) Normalize() {
	trimPtr(d.EmployeeID)
	trimPtr(d.Name)
	trimPtr(d.Department)
	trimPtr(d.Position)
	trimPtr(d.Email)
	trimPtr(d.Phone)
}

func (d UpdateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	if d.EmployeeID != nil {
		v.Field("employee_id", d.EmployeeID).Required().MaxLength(32, errors.ErrCodeInvalidEmployee)
	}
	if d.Name != nil {
		v.Field("name", d.Name).Required().MaxLength(100, errors.ErrCodeInvalidEmployee)
	}
	v.Field("email", d.Email).Email()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type EmployeesResponse struct {
	Employees []*Employee `json:"employees"`
}
