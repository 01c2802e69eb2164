package category_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/frahmantamala/employee-board/internal/category"
	categoryPostgres "github.com/frahmantamala/employee-board/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/category"
	"github.com/frahmantamala/employee-board/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Category Handler Integration", func() {
	var handler *category.Handler

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&categoryDatamodel.Category{})).To(Succeed())

		repo := categoryPostgres.NewCategoryRepository(db)
		opened := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for _, c := range []*categoryDatamodel.Category{
			{ID: "2", Name: "업무공유", Slug: "work-share", CreatedAt: opened},
			{ID: "1", Name: "공지사항", Slug: "notice", CreatedAt: opened},
			{ID: "9", Name: "나중게시판", Slug: "later", CreatedAt: opened.Add(time.Hour)},
		} {
			Expect(repo.Create(context.Background(), c)).To(Succeed())
		}

		service := category.NewService(repo, slogger, 0)
		handler = category.NewHandler(transport.NewBaseHandler(slogger), service)
	})

	It("should list categories by created_at then id", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
		rec := httptest.NewRecorder()
		handler.GetCategories(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

		var resp category.CategoriesResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		slugs := make([]string, 0, len(resp.Categories))
		for _, c := range resp.Categories {
			slugs = append(slugs, c.Slug)
		}
		Expect(slugs).To(Equal([]string{"notice", "work-share", "later"}))
	})
})
