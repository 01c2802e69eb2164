package post

import (
	"context"
	"net/http"

	"github.com/frahmantamala/employee-board/internal/core/user"
	"github.com/frahmantamala/employee-board/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListBoard(ctx context.Context, viewer *user.User, slug string) (*BoardResponse, error)
	Create(ctx context.Context, actor *user.User, slug string, dto CreatePostDTO) (*View, error)
	Read(ctx context.Context, viewer *user.User, slug, id string) (*PostDetailResponse, error)
	Update(ctx context.Context, actor *user.User, slug, id string, dto UpdatePostDTO) (*View, error)
	Delete(ctx context.Context, actor *user.User, slug, id string) error
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

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.Service.ListBoard(r.Context(), h.CurrentUser(r), chi.URLParam(r, "slug"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, board)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var dto CreatePostDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	created, err := h.Service.Create(r.Context(), h.CurrentUser(r), chi.URLParam(r, "slug"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Service.Read(r.Context(), h.CurrentUser(r), chi.URLParam(r, "slug"), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var dto UpdatePostDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	updated, err := h.Service.Update(r.Context(), h.CurrentUser(r), chi.URLParam(r, "slug"), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), h.CurrentUser(r), chi.URLParam(r, "slug"), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
