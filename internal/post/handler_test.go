package post_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/core/user"
	"github.com/frahmantamala/employee-board/internal/post"
	"github.com/frahmantamala/employee-board/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// stubService answers every call with err, or with a fixed post.
type stubService struct {
	err   error
	actor *user.User
	slug  string
	id    string
	dto   post.UpdatePostDTO
}

func (s *stubService) ListBoard(ctx context.Context, viewer *user.User, slug string) (*post.BoardResponse, error) {
	s.actor, s.slug = viewer, slug
	if s.err != nil {
		return nil, s.err
	}
	return &post.BoardResponse{Posts: []*post.View{{ID: "1"}}}, nil
}

func (s *stubService) Create(ctx context.Context, actor *user.User, slug string, dto post.CreatePostDTO) (*post.View, error) {
	s.actor, s.slug = actor, slug
	if s.err != nil {
		return nil, s.err
	}
	return &post.View{ID: "new", Title: dto.Title, CanEdit: true}, nil
}

func (s *stubService) Read(ctx context.Context, viewer *user.User, slug, id string) (*post.PostDetailResponse, error) {
	s.actor, s.slug, s.id = viewer, slug, id
	if s.err != nil {
		return nil, s.err
	}
	return &post.PostDetailResponse{Post: &post.View{ID: id}}, nil
}

func (s *stubService) Update(ctx context.Context, actor *user.User, slug, id string, dto post.UpdatePostDTO) (*post.View, error) {
	s.actor, s.slug, s.id, s.dto = actor, slug, id, dto
	if s.err != nil {
		return nil, s.err
	}
	return &post.View{ID: id, Title: dto.Title, Edited: true}, nil
}

func (s *stubService) Delete(ctx context.Context, actor *user.User, slug, id string) error {
	s.actor, s.slug, s.id = actor, slug, id
	return s.err
}

var _ = Describe("Post Handler", func() {
	var (
		service *stubService
		router  chi.Router
		writer  *user.User
	)

	BeforeEach(func() {
		service = &stubService{}
		writer = &user.User{ID: "2", EmployeeID: "163", Name: "서정에"}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		handler := post.NewHandler(transport.NewBaseHandler(logger), service)

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithUser(r.Context(), writer)))
			})
		})
		router.Get("/boards/{slug}", handler.GetBoard)
		router.Post("/boards/{slug}/posts", handler.CreatePost)
		router.Get("/boards/{slug}/posts/{id}", handler.GetPost)
		router.Patch("/boards/{slug}/posts/{id}", handler.UpdatePost)
		router.Delete("/boards/{slug}/posts/{id}", handler.DeletePost)
	})

	serve := func(method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		out := map[string]interface{}{}
		if rec.Body.Len() > 0 {
			Expect(json.Unmarshal(rec.Body.Bytes(), &out)).To(Succeed())
		}
		return rec, out
	}

	errorCode := func(body map[string]interface{}) string {
		e, _ := body["error"].(map[string]interface{})
		code, _ := e["code"].(string)
		return code
	}

	It("should pass the session user and slug to the board listing", func() {
		rec, body := serve(http.MethodGet, "/boards/free-board", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(body["posts"]).To(HaveLen(1))
		Expect(service.actor).To(Equal(writer))
		Expect(service.slug).To(Equal("free-board"))
	})

	It("should answer 201 on create", func() {
		rec, body := serve(http.MethodPost, "/boards/free-board/posts", `{"title":"점심","content":"국수"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		Expect(body["title"]).To(Equal("점심"))
	})

	It("should reject a malformed body before calling the service", func() {
		rec, body := serve(http.MethodPatch, "/boards/free-board/posts/7", `{"title":`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(errorCode(body)).To(Equal("VALIDATION_FAILED"))
		Expect(service.id).To(BeEmpty())
	})

	It("should route the URL params into an update", func() {
		rec, body := serve(http.MethodPatch, "/boards/notice/posts/7", `{"title":"새 제목","content":"본문"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(body["edited"]).To(BeTrue())
		Expect(service.slug).To(Equal("notice"))
		Expect(service.id).To(Equal("7"))
		Expect(service.dto.Content).To(Equal("본문"))
	})

	It("should answer 204 with no body on delete", func() {
		rec, _ := serve(http.MethodDelete, "/boards/notice/posts/7", "")
		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Body.Len()).To(BeZero())
	})

	DescribeTable("service errors on a single post",
		func(method, body string, err error, status int, code string) {
			service.err = err
			rec, out := serve(method, "/boards/notice/posts/7", body)
			Expect(rec.Code).To(Equal(status))
			Expect(errorCode(out)).To(Equal(code))
		},
		Entry("edit by someone else", http.MethodPatch, `{"title":"t","content":"c"}`, internal.ErrNotAuthor, http.StatusForbidden, "NOT_AUTHOR"),
		Entry("delete by someone else", http.MethodDelete, "", internal.ErrNotAuthor, http.StatusForbidden, "NOT_AUTHOR"),
		Entry("edit of a missing post", http.MethodPatch, `{"title":"t","content":"c"}`, internal.ErrPostNotFound, http.StatusNotFound, "POST_NOT_FOUND"),
		Entry("delete of a missing post", http.MethodDelete, "", internal.ErrPostNotFound, http.StatusNotFound, "POST_NOT_FOUND"),
		Entry("read on an unknown board", http.MethodGet, "", internal.ErrCategoryNotFound, http.StatusNotFound, "CATEGORY_NOT_FOUND"),
		Entry("slow backend", http.MethodGet, "", internal.ErrTimeout, http.StatusGatewayTimeout, "TIMEOUT"),
	)

	It("should hide unexpected errors behind a 500", func() {
		service.err = context.Canceled
		rec, body := serve(http.MethodDelete, "/boards/notice/posts/7", "")
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).NotTo(ContainSubstring("canceled"))
		Expect(errorCode(body)).To(Equal("INTERNAL_ERROR"))
	})
})
