package comment

import (
	"strings"

	"github.com/frahmantamala/employee-board/internal/core/common/validation"
)

type CreateCommentDTO struct {
	Content     string `json:"content"`
	IsAnonymous *bool  `json:"is_anonymous,omitempty"`
}

func (d *CreateCommentDTO) Normalize() {
	d.Content = strings.TrimSpace(d.Content)
}

func (d CreateCommentDTO) Validate() error {
	if err := validation.NewValidator().CommentContent(d.Content).Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateCommentDTO struct {
	Content string `json:"content"`
}

func (d *UpdateCommentDTO) Normalize() {
	d.Content = strings.TrimSpace(d.Content)
}

func (d UpdateCommentDTO) Validate() error {
	if err := validation.NewValidator().CommentContent(d.Content).Validate(); err != nil {
		return err
	}
	return nil
}

type CommentsResponse struct {
	Comments []*View `json:"comments"`
}
