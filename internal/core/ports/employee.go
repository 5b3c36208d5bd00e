package ports

import (
	"context"
	"time"

	"github.com/gestioplus/gestio-api/internal/core/domain"
)

// CreateEmployeeInput carries the fields accepted when creating an employee.
type CreateEmployeeInput struct {
	Name           string
	Position       string
	StartDate      time.Time
	Status         domain.EmployeeStatus // defaults to "active"
	Email          string
	PhoneNumber    string
	EducationLevel string
	Description    string
}

// UpdateEmployeeInput is the allow-list of mutable employee fields.
type UpdateEmployeeInput struct {
	Name           *string
	Position       *string
	StartDate      *time.Time
	Status         *domain.EmployeeStatus
	Email          *string
	PhoneNumber    *string
	EducationLevel *string
	Description    *string
}

type EmployeeService interface {
	List(ctx context.Context, tenant string) ([]domain.Employee, error)
	Create(ctx context.Context, tenant string, in CreateEmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, id, tenant string, in UpdateEmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id, tenant string) error
}

type EmployeeRepository interface {
	ListByTenant(ctx context.Context, tenant string) ([]domain.Employee, error)
	Insert(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, id, tenant string, in UpdateEmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id, tenant string) error
	// ExistsInTenant reports whether an employee with the given id belongs to
	// the tenant. Used to validate absence references.
	ExistsInTenant(ctx context.Context, id, tenant string) (bool, error)
	CountByTenant(ctx context.Context, tenant string) (int64, error)
}
