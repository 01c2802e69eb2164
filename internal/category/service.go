package category

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/employee-board/internal"
	categoryDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	// GetAll orders by created_at, then id.
	GetAll(ctx context.Context) ([]*categoryDatamodel.Category, error)
	GetByID(ctx context.Context, id string) (*categoryDatamodel.Category, error)
	GetBySlug(ctx context.Context, slug string) (*categoryDatamodel.Category, error)
	// Create is only used when seeding.
	Create(ctx context.Context, c *categoryDatamodel.Category) error
}

type Service struct {
	repo    RepositoryAPI
	logger  *slog.Logger
	timeout time.Duration
}

func NewService(repo RepositoryAPI, logger *slog.Logger, timeout time.Duration) *Service {
	return &Service{
		repo:    repo,
		logger:  logger,
		timeout: timeout,
	}
}

func (s *Service) List(ctx context.Context) ([]*Category, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, internal.StorageError("list categories", err)
	}

	categories := make([]*Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, FromDataModel(row))
	}

	s.logger.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	row, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error("failed to get category", "slug", slug, "error", err)
		return nil, internal.StorageError("load category", err)
	}
	if row == nil {
		return nil, internal.ErrCategoryNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Category, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get category", "category_id", id, "error", err)
		return nil, internal.StorageError("load category", err)
	}
	if row == nil {
		return nil, internal.ErrCategoryNotFound
	}
	return FromDataModel(row), nil
}
