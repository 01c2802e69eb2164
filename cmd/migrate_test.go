package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/datastore"
	"github.com/frahmantamala/employee-board/internal/simulator"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pressly/goose/v3"
)

var _ = Describe("migrations", func() {
	It("should pick the driver subdirectory", func() {
		Expect(migrationDir("db/migrations", internal.DriverPostgres)).To(Equal(filepath.Join("db", "migrations", "postgres")))
		Expect(migrationDir("db/migrations", internal.DriverSQLite)).To(Equal(filepath.Join("db", "migrations", "sqlite")))
	})

	It("should keep the time zone of every postgres timestamp", func() {
		raw, err := os.ReadFile(filepath.Join("..", "db", "migrations", "postgres", "00001_init.sql"))
		Expect(err).NotTo(HaveOccurred())

		columns := 0
		for _, line := range strings.Split(string(raw), "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "created_at ") || strings.HasPrefix(line, "updated_at ") {
				columns++
				Expect(line).To(ContainSubstring("TIMESTAMPTZ"), line)
			}
		}
		Expect(columns).To(Equal(8))
	})

	It("should migrate sqlite into a schema the repositories can read", func() {
		ctx := context.Background()
		cfg := &internal.Config{Database: internal.DatabaseConfig{
			Driver: internal.DriverSQLite,
			Source: filepath.Join(GinkgoT().TempDir(), "board.db"),
		}}

		db, err := openMigrationDB(ctx, cfg)
		Expect(err).NotTo(HaveOccurred())
		goose.SetTableName("schema_migrations")
		Expect(goose.UpContext(ctx, db, migrationDir(filepath.Join("..", "db", "migrations"), cfg.Database.Driver))).To(Succeed())
		Expect(db.Close()).To(Succeed())

		gormDB, err := datastore.OpenDB(ctx, cfg.Database, slog.New(slog.NewTextHandler(io.Discard, nil)))
		Expect(err).NotTo(HaveOccurred())
		repos, err := datastore.NewLive(gormDB, internal.DriverSQLite)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(repos.Close)

		Expect(repos.Seed(ctx, simulator.DefaultFixtures())).To(Succeed())
		employees, err := repos.Employees.GetAll(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(employees).To(HaveLen(13))

		p, err := repos.Posts.GetByID(ctx, "3")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).NotTo(BeNil())
		Expect(p.CreatedAt.IsZero()).To(BeFalse())
		Expect(p.UpdatedAt.Equal(p.CreatedAt)).To(BeTrue())
	})
})
