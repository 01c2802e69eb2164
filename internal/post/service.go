package post

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/auth"
	"github.com/frahmantamala/employee-board/internal/category"
	"github.com/frahmantamala/employee-board/internal/comment"
	postDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/post"
	"github.com/frahmantamala/employee-board/internal/core/events"
	"github.com/frahmantamala/employee-board/internal/core/user"
)

type RepositoryAPI interface {
	// ListByCategory orders most recent first.
	ListByCategory(ctx context.Context, categoryID string) ([]*postDatamodel.Post, error)
	GetByID(ctx context.Context, id string) (*postDatamodel.Post, error)
	Create(ctx context.Context, p *postDatamodel.Post) error
	Update(ctx context.Context, id string, apply func(*postDatamodel.Post)) (*postDatamodel.Post, error)
	// IncrementViewCount adds one view atomically without touching
	// updated_at, returning the stored row or nil when id is unknown.
	IncrementViewCount(ctx context.Context, id string) (*postDatamodel.Post, error)
	Delete(ctx context.Context, id string) (*postDatamodel.Post, error)
}

// BoardFinder resolves a board slug.
type BoardFinder interface {
	GetBySlug(ctx context.Context, slug string) (*category.Category, error)
}

// CommentStore is the part of the comment service posts depend on.
type CommentStore interface {
	ListForPost(ctx context.Context, viewer *user.User, postID string) ([]*comment.View, error)
	CountByPosts(ctx context.Context, postIDs []string) (map[string]int, error)
	DeleteByPost(ctx context.Context, postID string) (int, error)
}

type Service struct {
	repo     RepositoryAPI
	boards   BoardFinder
	comments CommentStore
	events   events.Publisher
	logger   *slog.Logger
	timeout  time.Duration
}

func NewService(repo RepositoryAPI, boards BoardFinder, comments CommentStore, publisher events.Publisher, logger *slog.Logger, timeout time.Duration) *Service {
	return &Service{
		repo:     repo,
		boards:   boards,
		comments: comments,
		events:   publisher,
		logger:   logger,
		timeout:  timeout,
	}
}

// ListBoard returns the board and its posts. When comment counts cannot be
// loaded the listing is still returned with every count at zero.
func (s *Service) ListBoard(ctx context.Context, viewer *user.User, slug string) (*BoardResponse, error) {
	board, err := s.boards.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.repo.ListByCategory(ctx, board.ID)
	if err != nil {
		s.logger.Error("failed to list posts", "category_id", board.ID, "error", err)
		return nil, internal.StorageError("list posts", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	counts, err := s.comments.CountByPosts(ctx, ids)
	if err != nil {
		s.logger.Warn("comment counts unavailable, showing zero", "category_id", board.ID, "error", err)
		counts = map[string]int{}
	}

	posts := make([]*View, 0, len(rows))
	for _, row := range rows {
		v := NewView(row, viewer)
		v.CommentCount = counts[row.ID]
		posts = append(posts, v)
	}
	return &BoardResponse{Category: board, Posts: posts}, nil
}

func (s *Service) Create(ctx context.Context, actor *user.User, slug string, dto CreatePostDTO) (*View, error) {
	if actor == nil {
		return nil, internal.ErrUnauthenticated
	}
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	board, err := s.boards.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	anonymous := auth.ResolveAnonymity(board.AllowsAnonymous(), dto.IsAnonymous, true)
	author := auth.AuthorshipFor(actor, anonymous)
	row := &postDatamodel.Post{
		Title:            dto.Title,
		Content:          dto.Content,
		CategoryID:       board.ID,
		AuthorID:         author.AuthorID,
		AuthorName:       author.AuthorName,
		AuthorEmployeeID: author.AuthorEmployeeID,
		IsAnonymous:      anonymous,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create post", "category_id", board.ID, "error", err)
		return nil, internal.StorageError("create post", err)
	}

	s.logger.Info("post created", "post_id", row.ID, "category_id", board.ID, "is_anonymous", anonymous)
	events.Emit(ctx, s.events, events.NewBoardEvent(events.EventTypePostCreated, row.ID, eventActor(actor, anonymous), map[string]interface{}{
		"category_id": board.ID,
	}))
	return NewView(row, actor), nil
}

// load returns the board and the post, which must belong to it.
func (s *Service) load(ctx context.Context, slug, id string) (*category.Category, *postDatamodel.Post, error) {
	board, err := s.boards.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, internal.StorageError("load post", err)
	}
	if row == nil || row.CategoryID != board.ID {
		return nil, nil, internal.ErrPostNotFound
	}
	return board, row, nil
}

// Read returns a post with its comments and counts the read as one view.
func (s *Service) Read(ctx context.Context, viewer *user.User, slug, id string) (*PostDetailResponse, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	board, _, err := s.load(ctx, slug, id)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.IncrementViewCount(ctx, id)
	if err != nil {
		s.logger.Error("failed to count view", "post_id", id, "error", err)
		return nil, internal.StorageError("count view", err)
	}
	if row == nil {
		// Deleted between the lookup and the increment.
		return nil, internal.ErrPostNotFound
	}

	comments, err := s.comments.ListForPost(ctx, viewer, id)
	if err != nil {
		s.logger.Warn("comments unavailable, showing none", "post_id", id, "error", err)
		comments = []*comment.View{}
	}

	v := NewView(row, viewer)
	v.CommentCount = len(comments)
	return &PostDetailResponse{Category: board, Post: v, Comments: comments}, nil
}

func (s *Service) loadOwned(ctx context.Context, actor *user.User, slug, id string) (*postDatamodel.Post, error) {
	if actor == nil {
		return nil, internal.ErrUnauthenticated
	}
	_, row, err := s.load(ctx, slug, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(actor, AuthorshipOf(row)) {
		s.logger.Warn("post modification denied", "post_id", id, "employee_id", actor.EmployeeID)
		return nil, internal.ErrNotAuthor
	}
	return row, nil
}

func (s *Service) Update(ctx context.Context, actor *user.User, slug, id string, dto UpdatePostDTO) (*View, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	current, err := s.loadOwned(ctx, actor, slug, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, func(p *postDatamodel.Post) {
		p.Title = dto.Title
		p.Content = dto.Content
	})
	if err != nil {
		s.logger.Error("failed to update post", "post_id", id, "error", err)
		return nil, internal.StorageError("update post", err)
	}
	if updated == nil {
		return nil, internal.ErrPostNotFound
	}

	s.logger.Info("post updated", "post_id", id)
	events.Emit(ctx, s.events, events.NewBoardEvent(events.EventTypePostUpdated, id, eventActor(actor, current.IsAnonymous), map[string]interface{}{
		"category_id": current.CategoryID,
	}))
	return NewView(updated, actor), nil
}

// Delete removes the post after its comments. The two steps are not one
// transaction: a failure between them leaves the post without comments.
func (s *Service) Delete(ctx context.Context, actor *user.User, slug, id string) error {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	current, err := s.loadOwned(ctx, actor, slug, id)
	if err != nil {
		return err
	}

	removed, err := s.comments.DeleteByPost(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete post", "post_id", id, "error", err)
		return internal.StorageError("delete post", err)
	}
	if deleted == nil {
		return internal.ErrPostNotFound
	}

	s.logger.Info("post deleted", "post_id", id, "comments_removed", removed)
	events.Emit(ctx, s.events, events.NewBoardEvent(events.EventTypePostDeleted, id, eventActor(actor, current.IsAnonymous), map[string]interface{}{
		"category_id":      current.CategoryID,
		"comments_removed": removed,
	}))
	return nil
}

func eventActor(actor *user.User, anonymous bool) string {
	if anonymous || actor == nil {
		return ""
	}
	return actor.EmployeeID
}
