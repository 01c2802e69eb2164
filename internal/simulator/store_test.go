package simulator_test

import (
	"context"

	permissionDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/permission"
	"github.com/frahmantamala/employee-board/internal/simulator"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	It("loads the default fixtures", func() {
		store := simulator.NewSeeded()

		Expect(store.Categories.Len()).To(Equal(4))
		Expect(store.Posts.Len()).To(Equal(4))
		Expect(store.Comments.Len()).To(Equal(4))
		Expect(store.Employees.Len()).To(Equal(13))

		grant, found, err := store.Permissions.First(context.Background(),
			simulator.Where("employee_id", "2"),
			simulator.Where("permission", permissionDatamodel.Admin),
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(grant.ID).To(Equal("1"))
	})

	It("seeds only once", func() {
		store := simulator.New()
		store.Seed(simulator.DefaultFixtures())
		store.Seed(simulator.DefaultFixtures())
		Expect(store.Employees.Len()).To(Equal(13))
	})

	It("keeps separate stores independent", func() {
		a := simulator.NewSeeded()
		b := simulator.NewSeeded()

		_, err := a.Posts.Delete(context.Background(), simulator.Where("id", "1"))
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Posts.Len()).To(Equal(3))
		Expect(b.Posts.Len()).To(Equal(4))
	})

	It("marks the anonymous board", func() {
		store := simulator.NewSeeded()
		cat, found, err := store.Categories.First(context.Background(), simulator.Where("slug", "anonymous"))
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(cat.IsAnonymous).To(BeTrue())
	})
})
