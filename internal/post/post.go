package post

import (
	"time"

	"github.com/frahmantamala/employee-board/internal/auth"
	postDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/post"
	"github.com/frahmantamala/employee-board/internal/core/user"
)

// FallbackAuthorName is shown for non-anonymous posts stored without a name.
const FallbackAuthorName = "작성자"

// View is a post as returned to a reader. Anonymous posts never carry the
// author's name or employee id; author_id is never exposed.
type View struct {
	ID               string    `json:"id"`
	CategoryID       string    `json:"category_id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	AuthorName       string    `json:"author_name"`
	AuthorEmployeeID *string   `json:"author_employee_id,omitempty"`
	IsAnonymous      bool      `json:"is_anonymous"`
	ViewCount        int64     `json:"view_count"`
	CommentCount     int       `json:"comment_count"`
	CanEdit          bool      `json:"can_edit"`
	Edited           bool      `json:"edited"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func AuthorshipOf(p *postDatamodel.Post) auth.Authorship {
	return auth.Authorship{
		AuthorID:         p.AuthorID,
		AuthorName:       p.AuthorName,
		AuthorEmployeeID: p.AuthorEmployeeID,
	}
}

// NewView masks p for viewer. can_edit only drives the client; the service
// re-checks before every mutation.
func NewView(p *postDatamodel.Post, viewer *user.User) *View {
	v := &View{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Title:       p.Title,
		Content:     p.Content,
		IsAnonymous: p.IsAnonymous,
		ViewCount:   p.ViewCount,
		CanEdit:     auth.CanModify(viewer, AuthorshipOf(p)),
		Edited:      p.UpdatedAt.After(p.CreatedAt),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	switch {
	case p.IsAnonymous:
		v.AuthorName = user.AnonymousName
	case p.AuthorName == "":
		v.AuthorName = FallbackAuthorName
		v.AuthorEmployeeID = p.AuthorEmployeeID
	default:
		v.AuthorName = p.AuthorName
		v.AuthorEmployeeID = p.AuthorEmployeeID
	}
	return v
}
