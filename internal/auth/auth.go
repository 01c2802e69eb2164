package auth

import (
	employeeDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-board/internal/core/user"
)

// Authorship is the author identity stored on a post or comment.
// AuthorID holds the acting employee_id, also for anonymous rows.
type Authorship struct {
	AuthorID         string
	AuthorName       string
	AuthorEmployeeID *string
}

// NewUser projects an employee row into the session user.
func NewUser(e *employeeDatamodel.Employee, isAdmin bool) *user.User {
	return &user.User{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Department: e.Department,
		Position:   e.Position,
		Email:      e.Email,
		Phone:      e.Phone,
		IsAdmin:    isAdmin,
	}
}
