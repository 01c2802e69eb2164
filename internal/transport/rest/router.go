package rest

import (
	"log/slog"

	"github.com/frahmantamala/employee-board/internal/auth"
	"github.com/frahmantamala/employee-board/internal/category"
	"github.com/frahmantamala/employee-board/internal/comment"
	"github.com/frahmantamala/employee-board/internal/employee"
	"github.com/frahmantamala/employee-board/internal/post"
	"github.com/frahmantamala/employee-board/internal/transport"
	"github.com/frahmantamala/employee-board/internal/transport/middleware"
	"github.com/frahmantamala/employee-board/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Routes carries everything RegisterAllRoutes mounts. Nil handlers leave
// their routes out.
type Routes struct {
	Health   *HealthHandler
	Auth     *auth.Handler
	Admin    middleware.AdminChecker
	Employee *employee.Handler
	Category *category.Handler
	Post     *post.Handler
	Comment  *comment.Handler

	OpenAPI        []byte
	AllowedOrigins string
	Logger         *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, rt Routes) {
	base := transport.NewBaseHandler(rt.Logger)

	// Apply global middleware
	router.Use(middleware.CORS(rt.AllowedOrigins))
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID(rt.Logger))
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware(base.Logger))

	if rt.OpenAPI != nil {
		router.Get(swagger.SpecPath, swagger.SpecHandler(rt.OpenAPI))
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		if rt.Health != nil {
			r.Get("/health", rt.Health.healthCheckHandler)
			r.Get("/ping", rt.Health.pingHandler)
		}

		if rt.Auth == nil {
			return
		}
		r.Post("/auth/login", rt.Auth.Login)

		// Everything below needs a session user
		r.Group(func(pr chi.Router) {
			pr.Use(rt.Auth.SessionMiddleware)

			pr.Post("/auth/logout", rt.Auth.Logout)
			pr.Get("/auth/me", rt.Auth.Me)

			if rt.Category != nil {
				pr.Get("/categories", rt.Category.GetCategories)
			}

			if rt.Post != nil {
				pr.Route("/boards/{slug}", func(br chi.Router) {
					br.Get("/", rt.Post.GetBoard)
					br.Post("/posts", rt.Post.CreatePost)
					br.Get("/posts/{id}", rt.Post.GetPost)
					br.Patch("/posts/{id}", rt.Post.UpdatePost)
					br.Delete("/posts/{id}", rt.Post.DeletePost)
				})
			}

			if rt.Comment != nil {
				pr.Get("/posts/{id}/comments", rt.Comment.ListComments)
				pr.Post("/posts/{id}/comments", rt.Comment.CreateComment)
				pr.Patch("/comments/{id}", rt.Comment.UpdateComment)
				pr.Delete("/comments/{id}", rt.Comment.DeleteComment)
			}

			if rt.Employee != nil && rt.Admin != nil {
				pr.Route("/admin/employees", func(ar chi.Router) {
					ar.Use(middleware.RequireAdmin(rt.Admin, base))
					ar.Get("/", rt.Employee.ListEmployees)
					ar.Post("/", rt.Employee.CreateEmployee)
					ar.Patch("/{id}", rt.Employee.UpdateEmployee)
					ar.Delete("/{id}", rt.Employee.DeleteEmployee)
				})
			}
		})
	})
}
