package comment

import (
	"context"
	"net/http"

	"github.com/frahmantamala/employee-board/internal/core/user"
	"github.com/frahmantamala/employee-board/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListForPost(ctx context.Context, viewer *user.User, postID string) ([]*View, error)
	Create(ctx context.Context, actor *user.User, postID string, dto CreateCommentDTO) (*View, error)
	Update(ctx context.Context, actor *user.User, id string, dto UpdateCommentDTO) (*View, error)
	Delete(ctx context.Context, actor *user.User, id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.Service.ListForPost(r.Context(), h.CurrentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, CommentsResponse{Comments: comments})
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var dto CreateCommentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	created, err := h.Service.Create(r.Context(), h.CurrentUser(r), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var dto UpdateCommentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	updated, err := h.Service.Update(r.Context(), h.CurrentUser(r), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), h.CurrentUser(r), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
