package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// EmployeeService implements tenant-scoped CRUD over staff records.
type EmployeeService struct {
	repo   ports.EmployeeRepository
	logger zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, logger: logger}
}

func (s *EmployeeService) List(ctx context.Context, tenant string) ([]domain.Employee, error) {
	return s.repo.ListByTenant(ctx, tenant)
}

func (s *EmployeeService) Create(ctx context.Context, tenant string, in ports.CreateEmployeeInput) (*domain.Employee, error) {
	status := in.Status
	if status == "" {
		status = domain.EmployeeActive
	}
	if !domain.ValidEmployeeStatus(status) {
		return nil, fmt.Errorf("%w: unknown employee status %q", domain.ErrValidation, status)
	}

	now := time.Now().UTC()
	employee := &domain.Employee{
		Name:           in.Name,
		Position:       in.Position,
		StartDate:      in.StartDate,
		Status:         status,
		Email:          in.Email,
		PhoneNumber:    in.PhoneNumber,
		EducationLevel: in.EducationLevel,
		Description:    in.Description,
		TenantSession:  tenant,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Insert(ctx, employee)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("employee_id", created.ID).Str("tenant", tenant).Msg("employee created")
	return created, nil
}

func (s *EmployeeService) Update(ctx context.Context, id, tenant string, in ports.UpdateEmployeeInput) (*domain.Employee, error) {
	if in.Status != nil && !domain.ValidEmployeeStatus(*in.Status) {
		return nil, fmt.Errorf("%w: unknown employee status %q", domain.ErrValidation, *in.Status)
	}
	return s.repo.Update(ctx, id, tenant, in)
}

func (s *EmployeeService) Delete(ctx context.Context, id, tenant string) error {
	if err := s.repo.Delete(ctx, id, tenant); err != nil {
		return err
	}
	s.logger.Info().Str("employee_id", id).Str("tenant", tenant).Msg("employee deleted")
	return nil
}
