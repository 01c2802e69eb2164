package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/auth"
	authMemory "github.com/frahmantamala/employee-board/internal/auth/memory"
	employeeDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/employee"
	employeeMemory "github.com/frahmantamala/employee-board/internal/employee/memory"
	"github.com/frahmantamala/employee-board/internal/simulator"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// duplicateDirectory returns the same employee twice.
type duplicateDirectory struct{}

func (duplicateDirectory) FindByCredentials(ctx context.Context, employeeID, name string) ([]*employeeDatamodel.Employee, error) {
	e := &employeeDatamodel.Employee{ID: "x", EmployeeID: employeeID, Name: name, IsActive: true}
	return []*employeeDatamodel.Employee{e, e.Clone()}, nil
}

func (duplicateDirectory) GetByEmployeeID(ctx context.Context, employeeID string) (*employeeDatamodel.Employee, error) {
	return &employeeDatamodel.Employee{ID: "x", EmployeeID: employeeID, IsActive: true}, nil
}

type failingDirectory struct{ err error }

func (d failingDirectory) GetByEmployeeID(context.Context, string) (*employeeDatamodel.Employee, error) {
	return nil, d.err
}

func (d failingDirectory) FindByCredentials(context.Context, string, string) ([]*employeeDatamodel.Employee, error) {
	return nil, d.err
}

var _ = Describe("Auth Service", func() {
	var (
		store   *simulator.Store
		service *auth.Service
		logger  *slog.Logger
		ctx     context.Context
	)

	BeforeEach(func() {
		store = simulator.NewSeeded()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(
			employeeMemory.NewEmployeeRepository(store),
			authMemory.NewPermissionRepository(store),
			logger, 0,
		)
		ctx = context.Background()
	})

	Describe("Login", func() {
		It("should succeed for every directory pair", func() {
			fixtures := simulator.DefaultFixtures()
			for _, e := range fixtures.Employees {
				u, err := service.Login(ctx, auth.LoginDTO{EmployeeID: e.EmployeeID, Name: e.Name})
				Expect(err).NotTo(HaveOccurred(), e.EmployeeID)
				Expect(u.EmployeeID).To(Equal(e.EmployeeID))
				Expect(u.Name).To(Equal(e.Name))
				Expect(u.Department).To(Equal(e.Department))
			}
		})

		It("should fail for pairs that are not jointly present", func() {
			fixtures := simulator.DefaultFixtures()
			for i, e := range fixtures.Employees {
				other := fixtures.Employees[(i+1)%len(fixtures.Employees)]
				_, err := service.Login(ctx, auth.LoginDTO{EmployeeID: e.EmployeeID, Name: other.Name})
				Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue(), e.EmployeeID)
			}
		})

		It("should carry the invalid credentials message", func() {
			_, err := service.Login(ctx, auth.LoginDTO{EmployeeID: "0000", Name: "없는사람"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("사번 또는 이름이 올바르지 않습니다."))
			Expect(appErr.StatusCode).To(Equal(401))
		})

		It("should trim input but match case and spelling exactly", func() {
			u, err := service.Login(ctx, auth.LoginDTO{EmployeeID: "  163 ", Name: " 서정에\t"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.EmployeeID).To(Equal("163"))

			_, err = service.Login(ctx, auth.LoginDTO{EmployeeID: "1750", Name: "박용주 "})
			Expect(err).NotTo(HaveOccurred())

			_, err = store.Employees.Update(ctx, simulator.Where("employee_id", "1750"), func(e *employeeDatamodel.Employee) {
				e.Name = "Park"
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Login(ctx, auth.LoginDTO{EmployeeID: "1750", Name: "park"})
			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
		})

		It("should require both fields", func() {
			_, err := service.Login(ctx, auth.LoginDTO{EmployeeID: " ", Name: ""})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should take admin status from the permission grant", func() {
			admin, err := service.Login(ctx, auth.LoginDTO{EmployeeID: "2", Name: "김상균"})
			Expect(err).NotTo(HaveOccurred())
			Expect(admin.IsAdmin).To(BeTrue())

			plain, err := service.Login(ctx, auth.LoginDTO{EmployeeID: "163", Name: "서정에"})
			Expect(err).NotTo(HaveOccurred())
			Expect(plain.IsAdmin).To(BeFalse())
		})

		It("should reject inactive employees", func() {
			_, err := store.Employees.Update(ctx, simulator.Where("employee_id", "163"), func(e *employeeDatamodel.Employee) {
				e.IsActive = false
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Login(ctx, auth.LoginDTO{EmployeeID: "163", Name: "서정에"})
			Expect(errors.Is(err, internal.ErrEmployeeInactive)).To(BeTrue())
		})

		It("should never pick one of several matches", func() {
			ambiguous := auth.NewService(duplicateDirectory{}, authMemory.NewPermissionRepository(store), logger, 0)
			_, err := ambiguous.Login(ctx, auth.LoginDTO{EmployeeID: "2", Name: "김상균"})
			Expect(errors.Is(err, internal.ErrAmbiguousEmployee)).To(BeTrue())
		})

		It("should map a timeout from the directory", func() {
			slow := auth.NewService(failingDirectory{err: context.DeadlineExceeded}, authMemory.NewPermissionRepository(store), logger, 0)
			_, err := slow.Login(ctx, auth.LoginDTO{EmployeeID: "2", Name: "김상균"})
			Expect(errors.Is(err, internal.ErrTimeout)).To(BeTrue())
		})
	})

	Describe("IsAdmin", func() {
		It("should follow grants made after login", func() {
			ok, err := service.IsAdmin(ctx, "163")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())

			perms := authMemory.NewPermissionRepository(store)
			Expect(perms.Grant(ctx, "163", "admin")).To(Succeed())
			Expect(perms.Grant(ctx, "163", "admin")).To(Succeed())
			Expect(store.Permissions.Len()).To(Equal(2))

			ok, err = service.IsAdmin(ctx, "163")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("should ignore a grant whose employee is gone", func() {
			_, err := store.Employees.Delete(ctx, simulator.Where("employee_id", "2"))
			Expect(err).NotTo(HaveOccurred())

			ok, err := service.IsAdmin(ctx, "2")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("should ignore a grant held by an inactive employee", func() {
			_, err := store.Employees.Update(ctx, simulator.Where("employee_id", "2"), func(e *employeeDatamodel.Employee) {
				e.IsActive = false
			})
			Expect(err).NotTo(HaveOccurred())

			ok, err := service.IsAdmin(ctx, "2")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("should map a directory failure", func() {
			broken := auth.NewService(failingDirectory{err: context.DeadlineExceeded}, authMemory.NewPermissionRepository(store), logger, 0)
			_, err := broken.IsAdmin(ctx, "2")
			Expect(errors.Is(err, internal.ErrTimeout)).To(BeTrue())
		})
	})

	Describe("PermissionRepository", func() {
		var perms auth.PermissionRepository

		BeforeEach(func() {
			perms = authMemory.NewPermissionRepository(store)
		})

		It("should revoke every grant of one employee", func() {
			Expect(perms.Grant(ctx, "163", "moderator")).To(Succeed())
			Expect(perms.RevokeAll(ctx, "2")).To(Succeed())

			ok, err := perms.HasPermission(ctx, "2", "admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			ok, err = perms.HasPermission(ctx, "163", "moderator")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("should move grants to a new employee_id", func() {
			Expect(perms.Grant(ctx, "3000", "stale")).To(Succeed())
			Expect(perms.Reassign(ctx, "2", "3000")).To(Succeed())

			ok, err := perms.HasPermission(ctx, "2", "admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			ok, err = perms.HasPermission(ctx, "3000", "admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			ok, err = perms.HasPermission(ctx, "3000", "stale")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})
})
