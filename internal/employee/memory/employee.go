package memory

import (
	"context"

	"github.com/frahmantamala/employee-board/internal"
	employeeDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-board/internal/employee"
	"github.com/frahmantamala/employee-board/internal/simulator"
)

type EmployeeRepository struct {
	table *simulator.Table[*employeeDatamodel.Employee]
}

func NewEmployeeRepository(store *simulator.Store) employee.RepositoryAPI {
	return &EmployeeRepository{table: store.Employees}
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error) {
	return r.table.Select(ctx, simulator.Query{Order: &simulator.Order{Column: "employee_id"}})
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error) {
	row, _, err := r.table.First(ctx, simulator.Where("id", id))
	return row, err
}

func (r *EmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*employeeDatamodel.Employee, error) {
	row, _, err := r.table.First(ctx, simulator.Where("employee_id", employeeID))
	return row, err
}

func (r *EmployeeRepository) FindByCredentials(ctx context.Context, employeeID, name string) ([]*employeeDatamodel.Employee, error) {
	return r.table.Select(ctx, simulator.Query{
		Filters: []simulator.Eq{
			simulator.Where("employee_id", employeeID),
			simulator.Where("name", name),
		},
		Limit: 2,
	})
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	stored, inserted, err := r.table.InsertIfAbsent(ctx, e, simulator.Where("employee_id", e.EmployeeID))
	if err != nil {
		return err
	}
	if !inserted {
		return internal.ErrDuplicateEmployee
	}
	*e = *stored
	return nil
}

func (r *EmployeeRepository) Update(ctx context.Context, id string, apply func(*employeeDatamodel.Employee)) (*employeeDatamodel.Employee, error) {
	rows, err := r.table.Update(ctx, simulator.Where("id", id), apply)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) (*employeeDatamodel.Employee, error) {
	rows, err := r.table.Delete(ctx, simulator.Where("id", id))
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}
