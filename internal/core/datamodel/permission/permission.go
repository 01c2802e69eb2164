package permission

import "time"

const Admin = "admin"

// EmployeePermission grants a named permission to an employee_id.
type EmployeePermission struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)"`
	EmployeeID string    `gorm:"column:employee_id;uniqueIndex:idx_employee_permission;not null"`
	Permission string    `gorm:"column:permission;uniqueIndex:idx_employee_permission;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (EmployeePermission) TableName() string { return "employee_permissions" }

func (p *EmployeePermission) PrimaryKey() string { return p.ID }

func (p *EmployeePermission) Column(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "employee_id":
		return p.EmployeeID, true
	case "permission":
		return p.Permission, true
	case "created_at":
		return p.CreatedAt, true
	}
	return nil, false
}

func (p *EmployeePermission) Stamp(id string, now time.Time) {
	if p.ID == "" {
		p.ID = id
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
}

func (p *EmployeePermission) Touch(time.Time) {}

func (p *EmployeePermission) Clone() *EmployeePermission {
	c := *p
	return &c
}
