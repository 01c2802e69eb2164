package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/datastore"
	"github.com/frahmantamala/employee-board/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files under db/migrations/<driver> directory",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "db/migrations", "sql migrations root, one subdirectory per driver")
}

// migrationDir picks the driver's subdirectory; column types differ between
// postgres (TIMESTAMPTZ) and sqlite, whose driver only parses TIMESTAMP.
func migrationDir(root, driver string) string {
	return filepath.Join(root, driver)
}

// openMigrationDB opens the database goose runs against. Postgres goes
// through the pgx stdlib driver; sqlite reuses the GORM connection.
func openMigrationDB(ctx context.Context, cfg *internal.Config) (*sql.DB, error) {
	switch cfg.Database.Driver {
	case internal.DriverPostgres:
		return goose.OpenDBWithDriver("pgx", cfg.Database.Source)
	case internal.DriverSQLite:
		dbCfg := cfg.Database
		dbCfg.AutoMigrate = false
		gormDB, err := datastore.OpenDB(ctx, dbCfg, logger.LoggerWrapper())
		if err != nil {
			return nil, err
		}
		if err := goose.SetDialect("sqlite3"); err != nil {
			return nil, err
		}
		return gormDB.DB()
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Backend.Mode != internal.BackendModeLive {
		return fmt.Errorf("migrate needs backend.mode %q, got %q", internal.BackendModeLive, cfg.Backend.Mode)
	}
	setupLogger(cfg)

	db, err := openMigrationDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("goose: failed to open DB: %w", err)
	}
	defer db.Close()
	goose.SetTableName("schema_migrations")

	command := "up"
	if migrateRollback {
		command = "down"
	}
	dir := migrationDir(migrateDir, cfg.Database.Driver)
	if err := goose.RunContext(ctx, command, db, dir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	logger.LoggerWrapper().Info("migration finished", "command", command, "dir", dir)
	return nil
}
