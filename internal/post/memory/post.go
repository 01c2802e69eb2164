package memory

import (
	"context"

	postDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/post"
	"github.com/frahmantamala/employee-board/internal/post"
	"github.com/frahmantamala/employee-board/internal/simulator"
)

type PostRepository struct {
	table *simulator.Table[*postDatamodel.Post]
}

func NewPostRepository(store *simulator.Store) post.RepositoryAPI {
	return &PostRepository{table: store.Posts}
}

// ListByCategory sorts by created_at descending. Posts are prepended, so
// the stable sort keeps the newest of equal timestamps first.
func (r *PostRepository) ListByCategory(ctx context.Context, categoryID string) ([]*postDatamodel.Post, error) {
	return r.table.Select(ctx, simulator.Query{
		Filters: []simulator.Eq{simulator.Where("category_id", categoryID)},
		Order:   &simulator.Order{Column: "created_at", Descending: true},
	})
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*postDatamodel.Post, error) {
	row, _, err := r.table.First(ctx, simulator.Where("id", id))
	return row, err
}

func (r *PostRepository) Create(ctx context.Context, p *postDatamodel.Post) error {
	stored, err := r.table.Insert(ctx, p)
	if err != nil {
		return err
	}
	*p = *stored
	return nil
}

func (r *PostRepository) Update(ctx context.Context, id string, apply func(*postDatamodel.Post)) (*postDatamodel.Post, error) {
	rows, err := r.table.Update(ctx, simulator.Where("id", id), apply)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *PostRepository) IncrementViewCount(ctx context.Context, id string) (*postDatamodel.Post, error) {
	rows, err := r.table.UpdateCounters(ctx, simulator.Where("id", id), func(p *postDatamodel.Post) {
		p.ViewCount++
	})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) (*postDatamodel.Post, error) {
	rows, err := r.table.Delete(ctx, simulator.Where("id", id))
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}
