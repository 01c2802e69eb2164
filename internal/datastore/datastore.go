// Package datastore selects and assembles the repositories the board runs on:
// GORM over a real database in live mode, or the in-memory simulator.
package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/auth"
	authMemory "github.com/frahmantamala/employee-board/internal/auth/memory"
	authPostgres "github.com/frahmantamala/employee-board/internal/auth/postgres"
	"github.com/frahmantamala/employee-board/internal/category"
	categoryMemory "github.com/frahmantamala/employee-board/internal/category/memory"
	categoryPostgres "github.com/frahmantamala/employee-board/internal/category/postgres"
	"github.com/frahmantamala/employee-board/internal/comment"
	commentMemory "github.com/frahmantamala/employee-board/internal/comment/memory"
	commentPostgres "github.com/frahmantamala/employee-board/internal/comment/postgres"
	categoryDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/category"
	commentDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/comment"
	employeeDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/employee"
	permissionDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/permission"
	postDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/post"
	"github.com/frahmantamala/employee-board/internal/employee"
	employeeMemory "github.com/frahmantamala/employee-board/internal/employee/memory"
	employeePostgres "github.com/frahmantamala/employee-board/internal/employee/postgres"
	"github.com/frahmantamala/employee-board/internal/post"
	postMemory "github.com/frahmantamala/employee-board/internal/post/memory"
	postPostgres "github.com/frahmantamala/employee-board/internal/post/postgres"
	"github.com/frahmantamala/employee-board/internal/simulator"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Repositories is the data-access facade handed to the services.
type Repositories struct {
	Mode        string
	Employees   employee.RepositoryAPI
	Permissions auth.PermissionRepository
	Categories  category.RepositoryAPI
	Posts       post.RepositoryAPI
	Comments    comment.RepositoryAPI

	// Simulator is set in simulated mode only.
	Simulator *simulator.Store

	db        *gorm.DB
	sqlDB     *sql.DB
	component string
}

// Models lists every table the board owns, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&employeeDatamodel.Employee{},
		&permissionDatamodel.EmployeePermission{},
		&categoryDatamodel.Category{},
		&postDatamodel.Post{},
		&commentDatamodel.Comment{},
	}
}

// Open builds the repositories cfg asks for. A live backend that cannot be
// reached yields ErrBackendUnavailable.
func Open(ctx context.Context, cfg *internal.Config, logger *slog.Logger) (*Repositories, error) {
	switch cfg.Backend.Mode {
	case internal.BackendModeSimulated:
		logger.Info("using in-memory simulator backend; data is lost on restart")
		return NewSimulated(simulator.NewSeeded()), nil
	case internal.BackendModeLive:
		db, err := OpenDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		return NewLive(db, cfg.Database.Driver)
	default:
		return nil, fmt.Errorf("unknown backend mode %q", cfg.Backend.Mode)
	}
}

// NewSimulated serves every repository from store.
func NewSimulated(store *simulator.Store) *Repositories {
	return &Repositories{
		Mode:        internal.BackendModeSimulated,
		Employees:   employeeMemory.NewEmployeeRepository(store),
		Permissions: authMemory.NewPermissionRepository(store),
		Categories:  categoryMemory.NewCategoryRepository(store),
		Posts:       postMemory.NewPostRepository(store),
		Comments:    commentMemory.NewCommentRepository(store),
		Simulator:   store,
		component:   "simulator",
	}
}

// NewLive serves every repository from db. driver picks the sqlx bind style
// for the raw count query.
func NewLive(db *gorm.DB, driver string) (*Repositories, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlxDB := sqlx.NewDb(sqlDB, sqlxDriverName(driver))

	return &Repositories{
		Mode:        internal.BackendModeLive,
		Employees:   employeePostgres.NewEmployeeRepository(db),
		Permissions: authPostgres.NewPermissionRepository(db),
		Categories:  categoryPostgres.NewCategoryRepository(db),
		Posts:       postPostgres.NewPostRepository(db),
		Comments:    commentPostgres.NewCommentRepository(db, sqlxDB),
		db:          db,
		sqlDB:       sqlDB,
		component:   driver,
	}, nil
}

func sqlxDriverName(driver string) string {
	if driver == internal.DriverSQLite {
		return "sqlite3"
	}
	return "pgx"
}

// OpenDB opens GORM for the configured driver, applies the pool settings and
// checks the connection.
func OpenDB(ctx context.Context, cfg internal.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.DriverPostgres:
		dialector = postgres.Open(cfg.Source)
	case internal.DriverSQLite:
		dialector = sqlite.Open(cfg.Source)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormLogger.New(
			slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			gormLogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, internal.ErrBackendUnavailable.WithCause(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, internal.ErrBackendUnavailable.WithCause(err)
	}

	if cfg.AutoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info("database schema migrated", "driver", cfg.Driver)
	}

	logger.Info("database connected", "driver", cfg.Driver)
	return db, nil
}

// DB is the live connection, nil in simulated mode.
func (r *Repositories) DB() *gorm.DB { return r.db }

// Component names the backend for health reports.
func (r *Repositories) Component() string { return r.component }

// Ping reports whether the backend answers.
func (r *Repositories) Ping(ctx context.Context) error {
	if r.sqlDB == nil {
		return ctx.Err()
	}
	return r.sqlDB.PingContext(ctx)
}

func (r *Repositories) Close() error {
	if r.sqlDB == nil {
		return nil
	}
	return r.sqlDB.Close()
}
