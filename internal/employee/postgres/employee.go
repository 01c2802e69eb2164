package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/employee-board/internal"
	employeeDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-board/internal/employee"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Order("employee_id ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *EmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*employeeDatamodel.Employee, error) {
	return r.first(ctx, "employee_id = ?", employeeID)
}

func (r *EmployeeRepository) first(ctx context.Context, query string, args ...interface{}) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where(query, args...).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// FindByCredentials returns every row matching both values exactly; the
// caller decides what several matches mean.
func (r *EmployeeRepository) FindByCredentials(ctx context.Context, employeeID, name string) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND name = ?", employeeID, name).
		Limit(2).
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Create(e).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrDuplicateEmployee
	}
	return err
}

func (r *EmployeeRepository) Update(ctx context.Context, id string, apply func(*employeeDatamodel.Employee)) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&e).Error; err != nil {
			return err
		}
		apply(&e)
		return tx.Save(&e).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, internal.ErrDuplicateEmployee
	case err != nil:
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&e).Error; err != nil {
			return err
		}
		return tx.Delete(&employeeDatamodel.Employee{}, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
