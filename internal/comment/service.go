package comment

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/auth"
	categoryDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/category"
	commentDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/comment"
	postDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/post"
	"github.com/frahmantamala/employee-board/internal/core/events"
	"github.com/frahmantamala/employee-board/internal/core/user"
)

type RepositoryAPI interface {
	// ListByPost orders by created_at ascending.
	ListByPost(ctx context.Context, postID string) ([]*commentDatamodel.Comment, error)
	GetByID(ctx context.Context, id string) (*commentDatamodel.Comment, error)
	Create(ctx context.Context, c *commentDatamodel.Comment) error
	Update(ctx context.Context, id string, apply func(*commentDatamodel.Comment)) (*commentDatamodel.Comment, error)
	Delete(ctx context.Context, id string) (*commentDatamodel.Comment, error)
	DeleteByPost(ctx context.Context, postID string) (int, error)
	// CountByPosts returns a count for every post id that has comments.
	CountByPosts(ctx context.Context, postIDs []string) (map[string]int, error)
}

// PostLookup resolves the post a comment is attached to.
type PostLookup interface {
	GetByID(ctx context.Context, id string) (*postDatamodel.Post, error)
}

// CategoryLookup resolves the board of that post, which decides anonymity.
type CategoryLookup interface {
	GetByID(ctx context.Context, id string) (*categoryDatamodel.Category, error)
}

type Service struct {
	repo       RepositoryAPI
	posts      PostLookup
	categories CategoryLookup
	events     events.Publisher
	logger     *slog.Logger
	timeout    time.Duration
}

func NewService(repo RepositoryAPI, posts PostLookup, categories CategoryLookup, publisher events.Publisher, logger *slog.Logger, timeout time.Duration) *Service {
	return &Service{
		repo:       repo,
		posts:      posts,
		categories: categories,
		events:     publisher,
		logger:     logger,
		timeout:    timeout,
	}
}

func (s *Service) ListForPost(ctx context.Context, viewer *user.User, postID string) ([]*View, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		s.logger.Error("failed to list comments", "post_id", postID, "error", err)
		return nil, internal.StorageError("list comments", err)
	}
	return NewViews(rows, viewer), nil
}

func (s *Service) CountByPosts(ctx context.Context, postIDs []string) (map[string]int, error) {
	if len(postIDs) == 0 {
		return map[string]int{}, nil
	}

	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	counts, err := s.repo.CountByPosts(ctx, postIDs)
	if err != nil {
		return nil, internal.StorageError("count comments", err)
	}
	return counts, nil
}

// DeleteByPost removes every comment of postID. It does not check
// authorship; the post owner's delete is the only caller.
func (s *Service) DeleteByPost(ctx context.Context, postID string) (int, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.repo.DeleteByPost(ctx, postID)
	if err != nil {
		s.logger.Error("failed to delete comments of post", "post_id", postID, "error", err)
		return 0, internal.StorageError("delete comments", err)
	}
	return n, nil
}

func (s *Service) Create(ctx context.Context, actor *user.User, postID string, dto CreateCommentDTO) (*View, error) {
	if actor == nil {
		return nil, internal.ErrUnauthenticated
	}
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, internal.StorageError("load post", err)
	}
	if post == nil {
		return nil, internal.ErrPostNotFound
	}
	board, err := s.categories.GetByID(ctx, post.CategoryID)
	if err != nil {
		return nil, internal.StorageError("load category", err)
	}
	if board == nil {
		s.logger.Error("post references a missing category", "post_id", postID, "category_id", post.CategoryID)
		return nil, internal.ErrCategoryNotFound
	}

	anonymous := auth.ResolveAnonymity(board.IsAnonymous, dto.IsAnonymous, false)
	author := auth.AuthorshipFor(actor, anonymous)
	row := &commentDatamodel.Comment{
		Content:          dto.Content,
		PostID:           postID,
		AuthorID:         author.AuthorID,
		AuthorName:       author.AuthorName,
		AuthorEmployeeID: author.AuthorEmployeeID,
		IsAnonymous:      anonymous,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create comment", "post_id", postID, "error", err)
		return nil, internal.StorageError("create comment", err)
	}

	s.logger.Info("comment created", "comment_id", row.ID, "post_id", postID, "is_anonymous", anonymous)
	events.Emit(ctx, s.events, events.NewBoardEvent(events.EventTypeCommentCreated, row.ID, eventActor(actor, anonymous), map[string]interface{}{
		"post_id": postID,
	}))
	return NewView(row, actor), nil
}

// loadOwned returns the comment when actor may modify it.
func (s *Service) loadOwned(ctx context.Context, actor *user.User, id string) (*commentDatamodel.Comment, error) {
	if actor == nil {
		return nil, internal.ErrUnauthenticated
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.StorageError("load comment", err)
	}
	if current == nil {
		return nil, internal.ErrCommentNotFound
	}
	if !auth.CanModify(actor, AuthorshipOf(current)) {
		s.logger.Warn("comment modification denied", "comment_id", id, "employee_id", actor.EmployeeID)
		return nil, internal.ErrNotAuthor
	}
	return current, nil
}

func (s *Service) Update(ctx context.Context, actor *user.User, id string, dto UpdateCommentDTO) (*View, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	current, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, func(c *commentDatamodel.Comment) {
		c.Content = dto.Content
	})
	if err != nil {
		s.logger.Error("failed to update comment", "comment_id", id, "error", err)
		return nil, internal.StorageError("update comment", err)
	}
	if updated == nil {
		return nil, internal.ErrCommentNotFound
	}

	s.logger.Info("comment updated", "comment_id", id)
	events.Emit(ctx, s.events, events.NewBoardEvent(events.EventTypeCommentUpdated, id, eventActor(actor, current.IsAnonymous), map[string]interface{}{
		"post_id": current.PostID,
	}))
	return NewView(updated, actor), nil
}

func (s *Service) Delete(ctx context.Context, actor *user.User, id string) error {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	current, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete comment", "comment_id", id, "error", err)
		return internal.StorageError("delete comment", err)
	}
	if deleted == nil {
		return internal.ErrCommentNotFound
	}

	s.logger.Info("comment deleted", "comment_id", id, "post_id", current.PostID)
	events.Emit(ctx, s.events, events.NewBoardEvent(events.EventTypeCommentDeleted, id, eventActor(actor, current.IsAnonymous), map[string]interface{}{
		"post_id": current.PostID,
	}))
	return nil
}

func eventActor(actor *user.User, anonymous bool) string {
	if anonymous || actor == nil {
		return ""
	}
	return actor.EmployeeID
}
