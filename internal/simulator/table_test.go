package simulator_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	commentDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/comment"
	employeeDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/employee"
	postDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/post"
	"github.com/frahmantamala/employee-board/internal/simulator"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// tickingClock advances one second per call so every stamp is distinct.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

var _ = Describe("Table", func() {
	var (
		ctx   context.Context
		store *simulator.Store
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = simulator.New(
			simulator.WithClock(tickingClock(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))),
			simulator.WithIDGenerator(sequentialIDs()),
		)
	})

	Describe("Insert", func() {
		It("assigns an id and timestamps when they are missing", func() {
			row, err := store.Posts.Insert(ctx, &postDatamodel.Post{Title: "hello", CategoryID: "1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(row.ID).To(Equal("gen-1"))
			Expect(row.CreatedAt.IsZero()).To(BeFalse())
			Expect(row.UpdatedAt).To(Equal(row.CreatedAt))
		})

		It("keeps a caller supplied id", func() {
			row, err := store.Employees.Insert(ctx, &employeeDatamodel.Employee{ID: "e-1", EmployeeID: "77", Name: "테스트"})
			Expect(err).NotTo(HaveOccurred())
			Expect(row.ID).To(Equal("e-1"))
		})

		It("prepends posts and appends comments", func() {
			_, _ = store.Posts.Insert(ctx, &postDatamodel.Post{Title: "first"})
			_, _ = store.Posts.Insert(ctx, &postDatamodel.Post{Title: "second"})
			posts, err := store.Posts.Select(ctx, simulator.Query{})
			Expect(err).NotTo(HaveOccurred())
			Expect(posts[0].Title).To(Equal("second"))
			Expect(posts[1].Title).To(Equal("first"))

			_, _ = store.Comments.Insert(ctx, &commentDatamodel.Comment{Content: "a", PostID: "p"})
			_, _ = store.Comments.Insert(ctx, &commentDatamodel.Comment{Content: "b", PostID: "p"})
			comments, err := store.Comments.Select(ctx, simulator.Query{})
			Expect(err).NotTo(HaveOccurred())
			Expect(comments[0].Content).To(Equal("a"))
			Expect(comments[1].Content).To(Equal("b"))
		})

		It("does not share memory with the caller", func() {
			input := &postDatamodel.Post{Title: "original"}
			stored, _ := store.Posts.Insert(ctx, input)
			input.Title = "changed"
			stored.Title = "changed too"

			row, found, err := store.Posts.First(ctx, simulator.Where("id", stored.ID))
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(row.Title).To(Equal("original"))
		})
	})

	Describe("Select", func() {
		BeforeEach(func() {
			store.Seed(simulator.DefaultFixtures())
		})

		It("returns every row without filters", func() {
			rows, err := store.Employees.Select(ctx, simulator.Query{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(13))
		})

		It("ANDs equality filters", func() {
			rows, err := store.Employees.Select(ctx, simulator.Query{Filters: []simulator.Eq{
				simulator.Where("employee_id", "163"),
				simulator.Where("name", "서정에"),
			}})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Department).To(Equal("약지과"))

			rows, err = store.Employees.Select(ctx, simulator.Query{Filters: []simulator.Eq{
				simulator.Where("employee_id", "163"),
				simulator.Where("name", "김상균"),
			}})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})

		It("orders strings lexically", func() {
			rows, err := store.Employees.Select(ctx, simulator.Query{Order: &simulator.Order{Column: "employee_id"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].EmployeeID).To(Equal("1237"))
			Expect(rows[len(rows)-1].EmployeeID).To(Equal("9580"))
		})

		It("orders times descending when asked", func() {
			rows, err := store.Posts.Select(ctx, simulator.Query{Order: &simulator.Order{Column: "created_at", Descending: true}})
			Expect(err).NotTo(HaveOccurred())
			ids := make([]string, len(rows))
			for i, r := range rows {
				ids[i] = r.ID
			}
			Expect(ids).To(Equal([]string{"4", "3", "2", "1"}))
		})

		It("orders numbers numerically", func() {
			rows, err := store.Posts.Select(ctx, simulator.Query{Order: &simulator.Order{Column: "view_count"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].ViewCount).To(Equal(int64(45)))
			Expect(rows[3].ViewCount).To(Equal(int64(234)))
		})

		It("applies the limit after ordering", func() {
			rows, err := store.Posts.Select(ctx, simulator.Query{
				Order: &simulator.Order{Column: "view_count", Descending: true},
				Limit: 1,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].ID).To(Equal("4"))
		})

		It("matches nullable columns against nil", func() {
			rows, err := store.Posts.Select(ctx, simulator.Query{Filters: []simulator.Eq{simulator.Where("author_employee_id", nil)}})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(4))
		})

		It("rejects unknown columns", func() {
			_, err := store.Posts.Select(ctx, simulator.Query{Filters: []simulator.Eq{simulator.Where("nope", "x")}})
			Expect(err).To(MatchError(simulator.ErrUnknownColumn))
		})

		It("honours a cancelled context", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := store.Posts.Select(cancelled, simulator.Query{})
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			store.Seed(simulator.DefaultFixtures())
		})

		It("merges the patch and refreshes updated_at", func() {
			before, _, _ := store.Posts.First(ctx, simulator.Where("id", "2"))
			rows, err := store.Posts.Update(ctx, simulator.Where("id", "2"), func(p *postDatamodel.Post) {
				p.Title = "수정된 제목"
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Title).To(Equal("수정된 제목"))
			Expect(rows[0].Content).To(Equal(before.Content))
			Expect(rows[0].UpdatedAt.After(before.UpdatedAt)).To(BeTrue())
		})

		It("returns an empty slice when nothing matches", func() {
			rows, err := store.Posts.Update(ctx, simulator.Where("id", "missing"), func(p *postDatamodel.Post) {
				p.Title = "x"
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
			Expect(rows).NotTo(BeNil())
		})

		It("leaves updated_at alone for counters", func() {
			before, _, _ := store.Posts.First(ctx, simulator.Where("id", "1"))
			rows, err := store.Posts.UpdateCounters(ctx, simulator.Where("id", "1"), func(p *postDatamodel.Post) {
				p.ViewCount++
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].ViewCount).To(Equal(before.ViewCount + 1))
			Expect(rows[0].UpdatedAt).To(Equal(before.UpdatedAt))
		})

		It("does not lose concurrent increments", func() {
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer GinkgoRecover()
					_, err := store.Posts.UpdateCounters(ctx, simulator.Where("id", "3"), func(p *postDatamodel.Post) {
						p.ViewCount++
					})
					Expect(err).NotTo(HaveOccurred())
				}()
			}
			wg.Wait()

			row, _, _ := store.Posts.First(ctx, simulator.Where("id", "3"))
			Expect(row.ViewCount).To(Equal(int64(95)))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			store.Seed(simulator.DefaultFixtures())
		})

		It("removes and returns the matched rows", func() {
			rows, err := store.Posts.Delete(ctx, simulator.Where("id", "1"))
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].ID).To(Equal("1"))
			Expect(store.Posts.Len()).To(Equal(3))
		})

		It("returns an empty slice when nothing matches", func() {
			rows, err := store.Posts.Delete(ctx, simulator.Where("id", "missing"))
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
			Expect(store.Posts.Len()).To(Equal(4))
		})
	})

	Describe("CountBy", func() {
		BeforeEach(func() {
			store.Seed(simulator.DefaultFixtures())
		})

		It("keeps per post counts isolated", func() {
			_, _ = store.Comments.Insert(ctx, &commentDatamodel.Comment{Content: "x", PostID: "1"})
			_, _ = store.Comments.Insert(ctx, &commentDatamodel.Comment{Content: "y", PostID: "1"})

			n, err := store.Comments.CountBy(ctx, "post_id", "1")
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))

			n, err = store.Comments.CountBy(ctx, "post_id", "2")
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(1))
		})

		It("follows deletes", func() {
			_, err := store.Comments.Delete(ctx, simulator.Where("post_id", "4"))
			Expect(err).NotTo(HaveOccurred())

			n, err := store.Comments.CountBy(ctx, "post_id", "4")
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})

		It("falls back to a scan for columns without an index", func() {
			n, err := store.Posts.CountBy(ctx, "category_id", "4")
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(1))
		})
	})
})
