package datastore

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/employee-board/internal/simulator"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotLive = errors.New("datastore: operation needs the live backend")

// Seed writes f into the live database in one transaction. Rows whose id
// already exists are left alone, so seeding twice is harmless.
func (r *Repositories) Seed(ctx context.Context, f simulator.Fixtures) error {
	if r.db == nil {
		return ErrNotLive
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skip := tx.Clauses(clause.OnConflict{DoNothing: true})
		batches := []struct {
			table string
			rows  interface{}
			n     int
		}{
			{"employees", f.Employees, len(f.Employees)},
			{"employee_permissions", f.Permissions, len(f.Permissions)},
			{"categories", f.Categories, len(f.Categories)},
			{"posts", f.Posts, len(f.Posts)},
			{"comments", f.Comments, len(f.Comments)},
		}
		for _, b := range batches {
			if b.n == 0 {
				continue
			}
			if err := skip.Create(b.rows).Error; err != nil {
				return fmt.Errorf("seed %s: %w", b.table, err)
			}
		}
		return nil
	})
}

// Clear deletes every board row, children first.
func (r *Repositories) Clear(ctx context.Context) error {
	if r.db == nil {
		return ErrNotLive
	}

	models := Models()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := len(models) - 1; i >= 0; i-- {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(models[i]).Error; err != nil {
				return fmt.Errorf("clear %T: %w", models[i], err)
			}
		}
		return nil
	})
}
