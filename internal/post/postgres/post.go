package postgres

import (
	"context"
	"errors"

	postDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/post"
	"github.com/frahmantamala/employee-board/internal/post"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) post.RepositoryAPI {
	return &PostRepository{db: db}
}

func (r *PostRepository) ListByCategory(ctx context.Context, categoryID string) ([]*postDatamodel.Post, error) {
	var posts []*postDatamodel.Post
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*postDatamodel.Post, error) {
	var p postDatamodel.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *postDatamodel.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostRepository) Update(ctx context.Context, id string, apply func(*postDatamodel.Post)) (*postDatamodel.Post, error) {
	var p postDatamodel.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		apply(&p)
		return tx.Save(&p).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IncrementViewCount runs view_count = view_count + 1 in the database, so
// concurrent reads never lose an increment. UpdateColumn skips updated_at.
func (r *PostRepository) IncrementViewCount(ctx context.Context, id string) (*postDatamodel.Post, error) {
	var p postDatamodel.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&postDatamodel.Post{}).
			Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).First(&p).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) (*postDatamodel.Post, error) {
	var p postDatamodel.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		return tx.Delete(&postDatamodel.Post{}, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
