package employee

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/employee-board/internal"
	employeeDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-board/internal/core/events"
)

type RepositoryAPI interface {
	// GetAll orders by employee_id ascending.
	GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error)
	GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*employeeDatamodel.Employee, error)
	FindByCredentials(ctx context.Context, employeeID, name string) ([]*employeeDatamodel.Employee, error)
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	Update(ctx context.Context, id string, apply func(*employeeDatamodel.Employee)) (*employeeDatamodel.Employee, error)
	Delete(ctx context.Context, id string) (*employeeDatamodel.Employee, error)
}

// GrantRepository holds the permission grants keyed by employee_id. Grants
// follow the employee row: they move with a new employee_id and are dropped
// when the employee is deactivated or deleted.
type GrantRepository interface {
	RevokeAll(ctx context.Context, employeeID string) error
	Reassign(ctx context.Context, from, to string) error
}

type Service struct {
	repo    RepositoryAPI
	grants  GrantRepository
	events  events.Publisher
	logger  *slog.Logger
	timeout time.Duration
}

func NewService(repo RepositoryAPI, grants GrantRepository, publisher events.Publisher, logger *slog.Logger, timeout time.Duration) *Service {
	return &Service{
		repo:    repo,
		grants:  grants,
		events:  publisher,
		logger:  logger,
		timeout: timeout,
	}
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, internal.StorageError("list employees", err)
	}

	employees := make([]*Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, FromDataModel(row))
	}
	return employees, nil
}

func (s *Service) Create(ctx context.Context, actor string, dto CreateEmployeeDTO) (*Employee, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	existing, err := s.repo.GetByEmployeeID(ctx, dto.EmployeeID)
	if err != nil {
		return nil, internal.StorageError("check employee_id", err)
	}
	if existing != nil {
		return nil, internal.ErrDuplicateEmployee
	}

	active := true
	if dto.IsActive != nil {
		active = *dto.IsActive
	}
	row := &employeeDatamodel.Employee{
		EmployeeID: dto.EmployeeID,
		Name:       dto.Name,
		Department: dto.Department,
		Position:   dto.Position,
		Email:      dto.Email,
		Phone:      dto.Phone,
		IsActive:   active,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create employee", "employee_id", dto.EmployeeID, "error", err)
		return nil, internal.StorageError("create employee", err)
	}

	s.logger.Info("employee created", "id", row.ID, "employee_id", row.EmployeeID)
	events.Emit(ctx, s.events, events.NewBoardEvent(events.EventTypeEmployeeCreated, row.ID, actor, nil))
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, actor, id string, dto UpdateEmployeeDTO) (*Employee, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.StorageError("load employee", err)
	}
	if current == nil {
		return nil, internal.ErrEmployeeNotFound
	}

	previousID := current.EmployeeID
	rekeyed := dto.EmployeeID != nil && *dto.EmployeeID != previousID
	if rekeyed {
		clash, err := s.repo.GetByEmployeeID(ctx, *dto.EmployeeID)
		if err != nil {
			return nil, internal.StorageError("check employee_id", err)
		}
		if clash != nil {
			return nil, internal.ErrDuplicateEmployee
		}
	}

	// Revoke before the row changes so a failure leaves fewer rights.
	deactivated := dto.IsActive != nil && !*dto.IsActive && current.IsActive
	if deactivated {
		if err := s.grants.RevokeAll(ctx, previousID); err != nil {
			s.logger.Error("failed to revoke grants", "employee_id", previousID, "error", err)
			return nil, internal.StorageError("revoke grants", err)
		}
	}

	updated, err := s.repo.Update(ctx, id, func(e *employeeDatamodel.Employee) {
		applyPatch(e, dto)
	})
	if err != nil {
		s.logger.Error("failed to update employee", "id", id, "error", err)
		return nil, internal.StorageError("update employee", err)
	}
	if updated == nil {
		return nil, internal.ErrEmployeeNotFound
	}

	if rekeyed && !deactivated {
		if err := s.grants.Reassign(ctx, previousID, updated.EmployeeID); err != nil {
			s.logger.Error("failed to move grants", "from", previousID, "to", updated.EmployeeID, "error", err)
			return nil, internal.StorageError("move grants", err)
		}
	}

	s.logger.Info("employee updated", "id", id)
	events.Emit(ctx, s.events, events.NewBoardEvent(events.EventTypeEmployeeUpdated, id, actor, nil))
	return FromDataModel(updated), nil
}

func applyPatch(e *employeeDatamodel.Employee, dto UpdateEmployeeDTO) {
	if dto.EmployeeID != nil {
		e.EmployeeID = *dto.EmployeeID
	}
	if dto.Name != nil {
		e.Name = *dto.Name
	}
	if dto.Department != nil {
		e.Department = *dto.Department
	}
	if dto.Position != nil {
		e.Position = *dto.Position
	}
	if dto.Email != nil {
		e.Email = *dto.Email
	}
	if dto.Phone != nil {
		e.Phone = *dto.Phone
	}
	if dto.IsActive != nil {
		e.IsActive = *dto.IsActive
	}
}

func (s *Service) Delete(ctx context.Context, actor, id string) error {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.StorageError("load employee", err)
	}
	if current == nil {
		return internal.ErrEmployeeNotFound
	}

	// Grants go first; an employee_id reused later must not inherit them.
	if err := s.grants.RevokeAll(ctx, current.EmployeeID); err != nil {
		s.logger.Error("failed to revoke grants", "employee_id", current.EmployeeID, "error", err)
		return internal.StorageError("revoke grants", err)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete employee", "id", id, "error", err)
		return internal.StorageError("delete employee", err)
	}
	if deleted == nil {
		return internal.ErrEmployeeNotFound
	}

	s.logger.Info("employee deleted", "id", id, "employee_id", deleted.EmployeeID)
	events.Emit(ctx, s.events, events.NewBoardEvent(events.EventTypeEmployeeDeleted, id, actor, nil))
	return nil
}
