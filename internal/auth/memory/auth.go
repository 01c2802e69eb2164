package memory

import (
	"context"

	"github.com/frahmantamala/employee-board/internal/auth"
	permissionDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/permission"
	"github.com/frahmantamala/employee-board/internal/simulator"
)

type PermissionRepository struct {
	table *simulator.Table[*permissionDatamodel.EmployeePermission]
}

func NewPermissionRepository(store *simulator.Store) auth.PermissionRepository {
	return &PermissionRepository{table: store.Permissions}
}

func (r *PermissionRepository) HasPermission(ctx context.Context, employeeID, permission string) (bool, error) {
	_, found, err := r.table.First(ctx,
		simulator.Where("employee_id", employeeID),
		simulator.Where("permission", permission),
	)
	return found, err
}

func (r *PermissionRepository) Grant(ctx context.Context, employeeID, permission string) error {
	_, _, err := r.table.InsertIfAbsent(ctx,
		&permissionDatamodel.EmployeePermission{EmployeeID: employeeID, Permission: permission},
		simulator.Where("employee_id", employeeID),
		simulator.Where("permission", permission),
	)
	return err
}

func (r *PermissionRepository) RevokeAll(ctx context.Context, employeeID string) error {
	_, err := r.table.Delete(ctx, simulator.Where("employee_id", employeeID))
	return err
}

// Reassign is not atomic across the two steps; the simulator has no
// transactions.
func (r *PermissionRepository) Reassign(ctx context.Context, from, to string) error {
	if from == to {
		return nil
	}
	if _, err := r.table.Delete(ctx, simulator.Where("employee_id", to)); err != nil {
		return err
	}
	_, err := r.table.Update(ctx, simulator.Where("employee_id", from), func(p *permissionDatamodel.EmployeePermission) {
		p.EmployeeID = to
	})
	return err
}
