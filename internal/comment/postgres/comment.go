package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/employee-board/internal/comment"
	commentDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/comment"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
	// sqlx shares gorm's connection pool for the grouped count query.
	sqlx *sqlx.DB
}

func NewCommentRepository(db *gorm.DB, sqlxDB *sqlx.DB) comment.RepositoryAPI {
	return &CommentRepository{db: db, sqlx: sqlxDB}
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*commentDatamodel.Comment, error) {
	var comments []*commentDatamodel.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*commentDatamodel.Comment, error) {
	var c commentDatamodel.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *commentDatamodel.Comment) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepository) Update(ctx context.Context, id string, apply func(*commentDatamodel.Comment)) (*commentDatamodel.Comment, error) {
	var c commentDatamodel.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
			return err
		}
		apply(&c)
		return tx.Save(&c).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) (*commentDatamodel.Comment, error) {
	var c commentDatamodel.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
			return err
		}
		return tx.Delete(&commentDatamodel.Comment{}, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) (int, error) {
	result := r.db.WithContext(ctx).Delete(&commentDatamodel.Comment{}, "post_id = ?", postID)
	return int(result.RowsAffected), result.Error
}

type postCount struct {
	PostID string `db:"post_id"`
	Count  int    `db:"comment_count"`
}

// CountByPosts counts comments of every listed post in one grouped query.
func (r *CommentRepository) CountByPosts(ctx context.Context, postIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	query, args, err := sqlx.In(
		`SELECT post_id, COUNT(*) AS comment_count FROM comments WHERE post_id IN (?) GROUP BY post_id`,
		postIDs,
	)
	if err != nil {
		return nil, err
	}

	var rows []postCount
	if err := r.sqlx.SelectContext(ctx, &rows, r.sqlx.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}
