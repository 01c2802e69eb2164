package category

import (
	"time"

	categoryDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/category"
)

// Category is a board, addressed by its slug.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}

// AllowsAnonymous reports whether posts and comments on the board may hide
// their author.
func (c *Category) AllowsAnonymous() bool {
	return c.IsAnonymous
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		IsAnonymous: c.IsAnonymous,
		CreatedAt:   c.CreatedAt,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		IsAnonymous: c.IsAnonymous,
		CreatedAt:   c.CreatedAt,
	}
}
