package rest

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/employee-board/internal/auth"
	"github.com/frahmantamala/employee-board/internal/category"
	"github.com/frahmantamala/employee-board/internal/comment"
	"github.com/frahmantamala/employee-board/internal/core/events"
	"github.com/frahmantamala/employee-board/internal/datastore"
	"github.com/frahmantamala/employee-board/internal/employee"
	"github.com/frahmantamala/employee-board/internal/post"
	"github.com/frahmantamala/employee-board/internal/transport"
	"github.com/go-chi/chi"
)

type Dependencies struct {
	Repositories   *datastore.Repositories
	Sessions       auth.SessionStore
	Publisher      events.Publisher
	Timeout        time.Duration
	OpenAPI        []byte
	AllowedOrigins string
	Logger         *slog.Logger
}

// NewRouter builds the services over the repositories and mounts every
// board route on a fresh router.
func NewRouter(d Dependencies) *chi.Mux {
	repos := d.Repositories
	base := transport.NewBaseHandler(d.Logger)

	authService := auth.NewService(repos.Employees, repos.Permissions, d.Logger, d.Timeout)
	categoryService := category.NewService(repos.Categories, d.Logger, d.Timeout)
	commentService := comment.NewService(repos.Comments, repos.Posts, repos.Categories, d.Publisher, d.Logger, d.Timeout)
	postService := post.NewService(repos.Posts, categoryService, commentService, d.Publisher, d.Logger, d.Timeout)
	employeeService := employee.NewService(repos.Employees, repos.Permissions, d.Publisher, d.Logger, d.Timeout)

	router := chi.NewRouter()
	RegisterAllRoutes(router, Routes{
		Health:         NewHealthHandler(repos, repos.Mode),
		Auth:           auth.NewHandler(base, authService, d.Sessions),
		Admin:          authService,
		Employee:       employee.NewHandler(base, employeeService),
		Category:       category.NewHandler(base, categoryService),
		Post:           post.NewHandler(base, postService),
		Comment:        comment.NewHandler(base, commentService),
		OpenAPI:        d.OpenAPI,
		AllowedOrigins: d.AllowedOrigins,
		Logger:         base.Logger,
	})
	return router
}
