package memory

import (
	"context"

	"github.com/frahmantamala/employee-board/internal/category"
	categoryDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/category"
	"github.com/frahmantamala/employee-board/internal/simulator"
)

type CategoryRepository struct {
	table *simulator.Table[*categoryDatamodel.Category]
}

func NewCategoryRepository(store *simulator.Store) category.RepositoryAPI {
	return &CategoryRepository{table: store.Categories}
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]*categoryDatamodel.Category, error) {
	// Fixtures share one created_at; the stable sort keeps their seed
	// order, which is also id order.
	return r.table.Select(ctx, simulator.Query{Order: &simulator.Order{Column: "created_at"}})
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*categoryDatamodel.Category, error) {
	row, _, err := r.table.First(ctx, simulator.Where("slug", slug))
	return row, err
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*categoryDatamodel.Category, error) {
	row, _, err := r.table.First(ctx, simulator.Where("id", id))
	return row, err
}

func (r *CategoryRepository) Create(ctx context.Context, cat *categoryDatamodel.Category) error {
	stored, err := r.table.Insert(ctx, cat)
	if err != nil {
		return err
	}
	*cat = *stored
	return nil
}
