package comment

import "time"

type Comment struct {
	ID               string    `gorm:"primaryKey;type:varchar(64)"`
	Content          string    `gorm:"column:content;type:text;not null"`
	PostID           string    `gorm:"column:post_id;index;not null"`
	AuthorID         string    `gorm:"column:author_id"`
	AuthorName       string    `gorm:"column:author_name"`
	AuthorEmployeeID *string   `gorm:"column:author_employee_id"`
	IsAnonymous      bool      `gorm:"column:is_anonymous;default:false"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) PrimaryKey() string { return c.ID }

func (c *Comment) Column(name string) (any, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "content":
		return c.Content, true
	case "post_id":
		return c.PostID, true
	case "author_id":
		return c.AuthorID, true
	case "author_name":
		return c.AuthorName, true
	case "author_employee_id":
		return c.AuthorEmployeeID, true
	case "is_anonymous":
		return c.IsAnonymous, true
	case "created_at":
		return c.CreatedAt, true
	case "updated_at":
		return c.UpdatedAt, true
	}
	return nil, false
}

func (c *Comment) Stamp(id string, now time.Time) {
	if c.ID == "" {
		c.ID = id
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
}

func (c *Comment) Touch(now time.Time) { c.UpdatedAt = now }

func (c *Comment) Clone() *Comment {
	cp := *c
	if c.AuthorEmployeeID != nil {
		id := *c.AuthorEmployeeID
		cp.AuthorEmployeeID = &id
	}
	return &cp
}
