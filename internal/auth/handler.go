package auth

import (
	"context"
	"net/http"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/core/user"
	"github.com/frahmantamala/employee-board/internal/transport"
	"github.com/frahmantamala/employee-board/pkg/logger"
)

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*user.User, error)
	IsAdmin(ctx context.Context, employeeID string) (bool, error)
}

// SessionStore persists the signed-in user across requests.
type SessionStore interface {
	Save(w http.ResponseWriter, r *http.Request, u *user.User)
	Get(w http.ResponseWriter, r *http.Request) *user.User
	Remove(w http.ResponseWriter, r *http.Request)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Sessions SessionStore
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, sessions SessionStore) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Sessions:    sessions,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	u, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.Sessions.Save(w, r, u)
	h.WriteJSON(w, http.StatusOK, LoginResponse{User: u, Redirect: "/"})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Remove(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u := h.CurrentUser(r)
	if u == nil {
		h.WriteAppError(w, r, internal.ErrUnauthenticated)
		return
	}
	h.WriteJSON(w, http.StatusOK, MeResponse{User: u})
}

// SessionMiddleware loads the session user into the request context and
// rejects requests without one.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := h.Sessions.Get(w, r)
		if u == nil {
			h.WriteAppError(w, r, internal.ErrUnauthenticated)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), u)
		ctx = logger.With(ctx, "employee_id", u.EmployeeID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
