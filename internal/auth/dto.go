package auth

import (
	"strings"

	"github.com/frahmantamala/employee-board/internal/core/common/validation"
	"github.com/frahmantamala/employee-board/internal/core/user"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
}

// Normalize trims surrounding whitespace; matching stays exact.
func (d *LoginDTO) Normalize() {
	d.EmployeeID = strings.TrimSpace(d.EmployeeID)
	d.Name = strings.TrimSpace(d.Name)
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("employee_id", d.EmployeeID).Required()
	v.Field("name", d.Name).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type LoginResponse struct {
	User     *user.User `json:"user"`
	Redirect string     `json:"redirect"`
}

type MeResponse struct {
	User *user.User `json:"user"`
}
