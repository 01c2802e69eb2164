package memory

import (
	"context"

	"github.com/frahmantamala/employee-board/internal/comment"
	commentDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/comment"
	"github.com/frahmantamala/employee-board/internal/simulator"
)

type CommentRepository struct {
	table *simulator.Table[*commentDatamodel.Comment]
}

func NewCommentRepository(store *simulator.Store) comment.RepositoryAPI {
	return &CommentRepository{table: store.Comments}
}

// ListByPost relies on append placement plus a stable sort: comments with
// equal timestamps keep insertion order.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*commentDatamodel.Comment, error) {
	return r.table.Select(ctx, simulator.Query{
		Filters: []simulator.Eq{simulator.Where("post_id", postID)},
		Order:   &simulator.Order{Column: "created_at"},
	})
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*commentDatamodel.Comment, error) {
	row, _, err := r.table.First(ctx, simulator.Where("id", id))
	return row, err
}

func (r *CommentRepository) Create(ctx context.Context, c *commentDatamodel.Comment) error {
	stored, err := r.table.Insert(ctx, c)
	if err != nil {
		return err
	}
	*c = *stored
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, id string, apply func(*commentDatamodel.Comment)) (*commentDatamodel.Comment, error) {
	rows, err := r.table.Update(ctx, simulator.Where("id", id), apply)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) (*commentDatamodel.Comment, error) {
	rows, err := r.table.Delete(ctx, simulator.Where("id", id))
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) (int, error) {
	rows, err := r.table.Delete(ctx, simulator.Where("post_id", postID))
	return len(rows), err
}

// CountByPosts answers from the post_id counting index.
func (r *CommentRepository) CountByPosts(ctx context.Context, postIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(postIDs))
	for _, id := range postIDs {
		n, err := r.table.CountBy(ctx, "post_id", id)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}
