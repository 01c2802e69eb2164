package comment_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/comment"
	"github.com/frahmantamala/employee-board/internal/core/user"
	"github.com/frahmantamala/employee-board/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubService struct {
	err    error
	actor  *user.User
	postID string
	id     string
	dto    comment.CreateCommentDTO
}

func (s *stubService) ListForPost(ctx context.Context, viewer *user.User, postID string) ([]*comment.View, error) {
	s.actor, s.postID = viewer, postID
	if s.err != nil {
		return nil, s.err
	}
	return []*comment.View{{ID: "1", PostID: postID}, {ID: "2", PostID: postID}}, nil
}

func (s *stubService) Create(ctx context.Context, actor *user.User, postID string, dto comment.CreateCommentDTO) (*comment.View, error) {
	s.actor, s.postID, s.dto = actor, postID, dto
	if s.err != nil {
		return nil, s.err
	}
	return &comment.View{ID: "new", PostID: postID, Content: dto.Content, CanEdit: true}, nil
}

func (s *stubService) Update(ctx context.Context, actor *user.User, id string, dto comment.UpdateCommentDTO) (*comment.View, error) {
	s.actor, s.id = actor, id
	if s.err != nil {
		return nil, s.err
	}
	return &comment.View{ID: id, Content: dto.Content, Edited: true}, nil
}

func (s *stubService) Delete(ctx context.Context, actor *user.User, id string) error {
	s.actor, s.id = actor, id
	return s.err
}

var _ = Describe("Comment Handler", func() {
	var (
		service *stubService
		router  chi.Router
		reader  *user.User
	)

	BeforeEach(func() {
		service = &stubService{}
		reader = &user.User{ID: "3", EmployeeID: "267", Name: "백두심"}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		handler := comment.NewHandler(transport.NewBaseHandler(logger), service)

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithUser(r.Context(), reader)))
			})
		})
		router.Get("/posts/{id}/comments", handler.ListComments)
		router.Post("/posts/{id}/comments", handler.CreateComment)
		router.Patch("/comments/{id}", handler.UpdateComment)
		router.Delete("/comments/{id}", handler.DeleteComment)
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

	It("should wrap the list in a comments field", func() {
		rec, body := serve(http.MethodGet, "/posts/4/comments", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(body["comments"]).To(HaveLen(2))
		Expect(service.postID).To(Equal("4"))
		Expect(service.actor).To(Equal(reader))
	})

	It("should answer 201 on create and pass the anonymity flag", func() {
		rec, body := serve(http.MethodPost, "/posts/4/comments", `{"content":"좋아요","is_anonymous":true}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		Expect(body["content"]).To(Equal("좋아요"))
		Expect(service.dto.IsAnonymous).NotTo(BeNil())
		Expect(*service.dto.IsAnonymous).To(BeTrue())
	})

	It("should require a body on create", func() {
		rec, body := serve(http.MethodPost, "/posts/4/comments", "")
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(errorCode(body)).To(Equal("VALIDATION_FAILED"))
		Expect(service.postID).To(BeEmpty())
	})

	It("should answer 200 on edit and 204 on delete", func() {
		rec, body := serve(http.MethodPatch, "/comments/9", `{"content":"고침"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(body["edited"]).To(BeTrue())
		Expect(service.id).To(Equal("9"))

		rec, _ = serve(http.MethodDelete, "/comments/9", "")
		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Body.Len()).To(BeZero())
	})

	DescribeTable("service errors",
		func(method, path, body string, err error, status int, code string) {
			service.err = err
			rec, out := serve(method, path, body)
			Expect(rec.Code).To(Equal(status))
			Expect(errorCode(out)).To(Equal(code))
		},
		Entry("edit by someone else", http.MethodPatch, "/comments/9", `{"content":"c"}`, internal.ErrNotAuthor, http.StatusForbidden, "NOT_AUTHOR"),
		Entry("delete by someone else", http.MethodDelete, "/comments/9", "", internal.ErrNotAuthor, http.StatusForbidden, "NOT_AUTHOR"),
		Entry("edit of a missing comment", http.MethodPatch, "/comments/9", `{"content":"c"}`, internal.ErrCommentNotFound, http.StatusNotFound, "COMMENT_NOT_FOUND"),
		Entry("delete of a missing comment", http.MethodDelete, "/comments/9", "", internal.ErrCommentNotFound, http.StatusNotFound, "COMMENT_NOT_FOUND"),
		Entry("comment on a missing post", http.MethodPost, "/posts/4/comments", `{"content":"c"}`, internal.ErrPostNotFound, http.StatusNotFound, "POST_NOT_FOUND"),
		Entry("backend down", http.MethodGet, "/posts/4/comments", "", internal.ErrBackendUnavailable, http.StatusServiceUnavailable, "BACKEND_UNAVAILABLE"),
	)
})
