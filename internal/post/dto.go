package post

import (
	"strings"

	"github.com/frahmantamala/employee-board/internal/category"
	"github.com/frahmantamala/employee-board/internal/comment"
	"github.com/frahmantamala/employee-board/internal/core/common/validation"
)

type CreatePostDTO struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsAnonymous *bool  `json:"is_anonymous,omitempty"`
}

func (d *CreatePostDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
}

func (d CreatePostDTO) Validate() error {
	if err := validation.NewValidator().PostTitle(d.Title).PostContent(d.Content).Validate(); err != nil {
		return err
	}
	return nil
}

type UpdatePostDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (d *UpdatePostDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
}

func (d UpdatePostDTO) Validate() error {
	if err := validation.NewValidator().PostTitle(d.Title).PostContent(d.Content).Validate(); err != nil {
		return err
	}
	return nil
}

type BoardResponse struct {
	Category *category.Category `json:"category"`
	Posts    []*View            `json:"posts"`
}

type PostDetailResponse struct {
	Category *category.Category `json:"category"`
	Post     *View              `json:"post"`
	Comments []*comment.View    `json:"comments"`
}
