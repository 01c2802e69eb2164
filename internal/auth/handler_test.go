package auth_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/auth"
	authMemory "github.com/frahmantamala/employee-board/internal/auth/memory"
	"github.com/frahmantamala/employee-board/internal/core/user"
	employeeMemory "github.com/frahmantamala/employee-board/internal/employee/memory"
	"github.com/frahmantamala/employee-board/internal/simulator"
	"github.com/frahmantamala/employee-board/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeSessions keeps one user regardless of the request.
type fakeSessions struct {
	current *user.User
	removed int
}

func (f *fakeSessions) Save(w http.ResponseWriter, r *http.Request, u *user.User) { f.current = u }
func (f *fakeSessions) Get(w http.ResponseWriter, r *http.Request) *user.User { return f.current }
func (f *fakeSessions) Remove(w http.ResponseWriter, r *http.Request) {
	f.current = nil
	f.removed++
}

var _ = Describe("Auth Handler", func() {
	var (
		sessions *fakeSessions
		handler  *auth.Handler
	)

	BeforeEach(func() {
		store := simulator.NewSeeded()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := auth.NewService(employeeMemory.NewEmployeeRepository(store), authMemory.NewPermissionRepository(store), logger, 0)
		sessions = &fakeSessions{}
		handler = auth.NewHandler(transport.NewBaseHandler(logger), service, sessions)
	})

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)
		return rec
	}

	Describe("Login", func() {
		It("should save the session and redirect home", func() {
			rec := login(`{"employee_id":"2","name":"김상균"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp auth.LoginResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Redirect).To(Equal("/"))
			Expect(resp.User.IsAdmin).To(BeTrue())
			Expect(sessions.current.EmployeeID).To(Equal("2"))
		})

		It("should answer 401 with the invalid credentials code", func() {
			rec := login(`{"employee_id":"2","name":"서정에"}`)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring(string(internal.ErrCodeInvalidCredentials)))
			Expect(sessions.current).To(BeNil())
		})

		It("should ignore a client supplied admin flag", func() {
			rec := login(`{"employee_id":"163","name":"서정에","is_admin":true}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(sessions.current.IsAdmin).To(BeFalse())
		})
	})

	Describe("SessionMiddleware", func() {
		var protected http.Handler

		BeforeEach(func() {
			protected = handler.SessionMiddleware(http.HandlerFunc(handler.Me))
		})

		It("should reject requests without a session", func() {
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring(string(internal.ErrCodeUnauthenticated)))
		})

		It("should expose the session user to the handler", func() {
			sessions.current = &user.User{ID: "2", EmployeeID: "163", Name: "서정에"}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp auth.MeResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.User.Name).To(Equal("서정에"))
		})
	})

	It("should log out with 204 as often as asked", func() {
		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			handler.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
			Expect(rec.Code).To(Equal(http.StatusNoContent))
		}
		Expect(sessions.removed).To(Equal(2))
	})
})
