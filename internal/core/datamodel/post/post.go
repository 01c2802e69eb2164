package post

import "time"

type Post struct {
	ID               string    `gorm:"primaryKey;type:varchar(64)"`
	Title            string    `gorm:"column:title;not null"`
	Content          string    `gorm:"column:content;type:text;not null"`
	CategoryID       string    `gorm:"column:category_id;index;not null"`
	AuthorID         string    `gorm:"column:author_id"`
	AuthorName       string    `gorm:"column:author_name"`
	AuthorEmployeeID *string   `gorm:"column:author_employee_id"`
	IsAnonymous      bool      `gorm:"column:is_anonymous;default:false"`
	ViewCount        int64     `gorm:"column:view_count;default:0"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) PrimaryKey() string { return p.ID }

func (p *Post) Column(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "title":
		return p.Title, true
	case "content":
		return p.Content, true
	case "category_id":
		return p.CategoryID, true
	case "author_id":
		return p.AuthorID, true
	case "author_name":
		return p.AuthorName, true
	case "author_employee_id":
		return p.AuthorEmployeeID, true
	case "is_anonymous":
		return p.IsAnonymous, true
	case "view_count":
		return p.ViewCount, true
	case "created_at":
		return p.CreatedAt, true
	case "updated_at":
		return p.UpdatedAt, true
	}
	return nil, false
}

func (p *Post) Stamp(id string, now time.Time) {
	if p.ID == "" {
		p.ID = id
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
}

func (p *Post) Touch(now time.Time) { p.UpdatedAt = now }

func (p *Post) Clone() *Post {
	c := *p
	if p.AuthorEmployeeID != nil {
		id := *p.AuthorEmployeeID
		c.AuthorEmployeeID = &id
	}
	return &c
}
