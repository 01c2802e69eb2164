package postgres

import (
	"context"

	"github.com/frahmantamala/employee-board/internal/auth"
	permissionDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/permission"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) auth.PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) HasPermission(ctx context.Context, employeeID, permission string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&permissionDatamodel.EmployeePermission{}).
		Where("employee_id = ? AND permission = ?", employeeID, permission).
		Count(&count).Error
	return count > 0, err
}

// Grant is idempotent.
func (r *PermissionRepository) Grant(ctx context.Context, employeeID, permission string) error {
	row := &permissionDatamodel.EmployeePermission{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Permission: permission,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
}

func (r *PermissionRepository) RevokeAll(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&permissionDatamodel.EmployeePermission{}).Error
}

func (r *PermissionRepository) Reassign(ctx context.Context, from, to string) error {
	if from == to {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", to).Delete(&permissionDatamodel.EmployeePermission{}).Error; err != nil {
			return err
		}
		return tx.Model(&permissionDatamodel.EmployeePermission{}).
			Where("employee_id = ?", from).
			Update("employee_id", to).Error
	})
}
