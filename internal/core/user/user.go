package user

// User is the signed-in employee as carried by the session.
type User struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	IsAdmin    bool   `json:"is_admin"`
}

// Valid reports whether u carries the identity fields a session needs.
func (u *User) Valid() bool {
	return u != nil && u.ID != "" && u.EmployeeID != "" && u.Name != ""
}

// AnonymousName is shown, and stored, as the author of anonymous rows.
const AnonymousName = "익명"
