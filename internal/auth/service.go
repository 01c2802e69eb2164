package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/employee-board/internal"
	employeeDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/employee"
	permissionDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/permission"
	"github.com/frahmantamala/employee-board/internal/core/user"
)

// EmployeeDirectory finds employees by the login pair or by employee_id.
type EmployeeDirectory interface {
	FindByCredentials(ctx context.Context, employeeID, name string) ([]*employeeDatamodel.Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*employeeDatamodel.Employee, error)
}

type PermissionRepository interface {
	HasPermission(ctx context.Context, employeeID, permission string) (bool, error)
	Grant(ctx context.Context, employeeID, permission string) error
	// RevokeAll drops every grant held by employeeID.
	RevokeAll(ctx context.Context, employeeID string) error
	// Reassign moves the grants of from onto to, replacing any grants to
	// already held.
	Reassign(ctx context.Context, from, to string) error
}

type Service struct {
	directory   EmployeeDirectory
	permissions PermissionRepository
	logger      *slog.Logger
	timeout     time.Duration
}

func NewService(directory EmployeeDirectory, permissions PermissionRepository, logger *slog.Logger, timeout time.Duration) *Service {
	return &Service{
		directory:   directory,
		permissions: permissions,
		logger:      logger,
		timeout:     timeout,
	}
}

// Login resolves an (employee_id, name) pair to a session user. This is
// identity assertion: anyone who knows a pair can sign in as that employee.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*user.User, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	matches, err := s.directory.FindByCredentials(ctx, dto.EmployeeID, dto.Name)
	if err != nil {
		s.logger.Error("failed to look up employee", "error", err)
		return nil, internal.StorageError("look up employee", err)
	}

	switch len(matches) {
	case 0:
		s.logger.Info("login rejected", "reason", "no match")
		return nil, internal.ErrInvalidCredentials
	case 1:
	default:
		s.logger.Error("login rejected: employee_id and name match several rows",
			"employee_id", dto.EmployeeID, "matches", len(matches))
		return nil, internal.ErrAmbiguousEmployee
	}

	employee := matches[0]
	if !employee.IsActive {
		s.logger.Info("login rejected", "reason", "inactive", "employee_id", employee.EmployeeID)
		return nil, internal.ErrEmployeeInactive
	}

	isAdmin, err := s.permissions.HasPermission(ctx, employee.EmployeeID, permissionDatamodel.Admin)
	if err != nil {
		s.logger.Error("failed to load admin grant", "employee_id", employee.EmployeeID, "error", err)
		return nil, internal.StorageError("load permissions", err)
	}

	s.logger.Info("employee logged in", "employee_id", employee.EmployeeID, "is_admin", isAdmin)
	return NewUser(employee, isAdmin), nil
}

// IsAdmin re-reads the admin grant instead of trusting the session copy.
// The grant only counts while an active employee holds the employee_id.
func (s *Service) IsAdmin(ctx context.Context, employeeID string) (bool, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	employee, err := s.directory.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return false, internal.StorageError("load employee", err)
	}
	if employee == nil || !employee.IsActive {
		s.logger.Warn("admin check for missing or inactive employee", "employee_id", employeeID)
		return false, nil
	}

	ok, err := s.permissions.HasPermission(ctx, employeeID, permissionDatamodel.Admin)
	if err != nil {
		return false, internal.StorageError("load permissions", err)
	}
	return ok, nil
}
