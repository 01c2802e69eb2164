package comment

import (
	"time"

	"github.com/frahmantamala/employee-board/internal/auth"
	commentDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/comment"
	"github.com/frahmantamala/employee-board/internal/core/user"
)

// FallbackAuthorName is shown for non-anonymous comments stored without a name.
const FallbackAuthorName = "댓글 작성자"

// View is a comment as returned to a reader. Anonymous comments never carry
// the author's name or employee id.
type View struct {
	ID               string    `json:"id"`
	PostID           string    `json:"post_id"`
	Content          string    `json:"content"`
	AuthorName       string    `json:"author_name"`
	AuthorEmployeeID *string   `json:"author_employee_id,omitempty"`
	IsAnonymous      bool      `json:"is_anonymous"`
	CanEdit          bool      `json:"can_edit"`
	Edited           bool      `json:"edited"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AuthorshipOf is the stored author identity, unmasked, for permission checks.
func AuthorshipOf(c *commentDatamodel.Comment) auth.Authorship {
	return auth.Authorship{
		AuthorID:         c.AuthorID,
		AuthorName:       c.AuthorName,
		AuthorEmployeeID: c.AuthorEmployeeID,
	}
}

// NewView masks c for viewer. can_edit is advisory; mutations re-check.
func NewView(c *commentDatamodel.Comment, viewer *user.User) *View {
	v := &View{
		ID:          c.ID,
		PostID:      c.PostID,
		Content:     c.Content,
		IsAnonymous: c.IsAnonymous,
		CanEdit:     auth.CanModify(viewer, AuthorshipOf(c)),
		Edited:      c.UpdatedAt.After(c.CreatedAt),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	switch {
	case c.IsAnonymous:
		v.AuthorName = user.AnonymousName
	case c.AuthorName == "":
		v.AuthorName = FallbackAuthorName
		v.AuthorEmployeeID = c.AuthorEmployeeID
	default:
		v.AuthorName = c.AuthorName
		v.AuthorEmployeeID = c.AuthorEmployeeID
	}
	return v
}

func NewViews(rows []*commentDatamodel.Comment, viewer *user.User) []*View {
	views := make([]*View, 0, len(rows))
	for _, row := range rows {
		views = append(views, NewView(row, viewer))
	}
	return views
}
