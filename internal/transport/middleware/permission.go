package middleware

import (
	"context"
	"net/http"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/transport"
)

// AdminChecker re-reads admin status from storage.
type AdminChecker interface {
	IsAdmin(ctx context.Context, employeeID string) (bool, error)
}

// RequireAdmin lets only current administrators through. The is_admin copy
// in the session is not trusted; the grant is looked up on every request.
func RequireAdmin(checker AdminChecker, base *transport.BaseHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := base.CurrentUser(r)
			if u == nil {
				base.WriteAppError(w, r, internal.ErrUnauthenticated)
				return
			}

			ok, err := checker.IsAdmin(r.Context(), u.EmployeeID)
			if err != nil {
				base.HandleServiceError(w, r, err)
				return
			}
			if !ok {
				base.Logger.Warn("access denied: admin permission required", "employee_id", u.EmployeeID, "path", r.URL.Path)
				base.WriteAppError(w, r, internal.ErrAdminRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
