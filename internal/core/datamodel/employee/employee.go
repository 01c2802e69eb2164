package employee

import "time"

type Employee struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)"`
	EmployeeID string    `gorm:"column:employee_id;uniqueIndex;not null"`
	Name       string    `gorm:"column:name;not null"`
	Department string    `gorm:"column:department"`
	Position   string    `gorm:"column:position"`
	Email      string    `gorm:"column:email"`
	Phone      string    `gorm:"column:phone"`
	IsActive   bool      `gorm:"column:is_active;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string { return "employees" }

func (e *Employee) PrimaryKey() string { return e.ID }

func (e *Employee) Column(name string) (any, bool) {
	switch name {
	case "id":
		return e.ID, true
	case "employee_id":
		return e.EmployeeID, true
	case "name":
		return e.Name, true
	case "department":
		return e.Department, true
	case "position":
		return e.Position, true
	case "email":
		return e.Email, true
	case "phone":
		return e.Phone, true
	case "is_active":
		return e.IsActive, true
	case "created_at":
		return e.CreatedAt, true
	case "updated_at":
		return e.UpdatedAt, true
	}
	return nil, false
}

func (e *Employee) Stamp(id string, now time.Time) {
	if e.ID == "" {
		e.ID = id
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}
}

func (e *Employee) Touch(now time.Time) { e.UpdatedAt = now }

func (e *Employee) Clone() *Employee {
	c := *e
	return &c
}
