package category

import "time"

// Category is a board. Rows are created by seeding only.
type Category struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)"`
	Name        string    `gorm:"column:name;not null"`
	Slug        string    `gorm:"column:slug;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	IsAnonymous bool      `gorm:"column:is_anonymous;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) PrimaryKey() string { return c.ID }

func (c *Category) Column(name string) (any, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "name":
		return c.Name, true
	case "slug":
		return c.Slug, true
	case "description":
		return c.Description, true
	case "is_anonymous":
		return c.IsAnonymous, true
	case "created_at":
		return c.CreatedAt, true
	}
	return nil, false
}

func (c *Category) Stamp(id string, now time.Time) {
	if c.ID == "" {
		c.ID = id
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
}

// Touch is a no-op: categories carry no updated_at column.
func (c *Category) Touch(time.Time) {}

func (c *Category) Clone() *Category {
	cp := *c
	return &cp
}
