package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// AbsenceService implements tenant-scoped CRUD over leave requests. An
// absence must reference an employee inside the caller's tenant.
type AbsenceService struct {
	repo      ports.AbsenceRepository
	employees ports.EmployeeRepository
	logger    zerolog.Logger
}

func NewAbsenceService(repo ports.AbsenceRepository, employees ports.EmployeeRepository, logger zerolog.Logger) *AbsenceService {
	return &AbsenceService{repo: repo, employees: employees, logger: logger}
}

func (s *AbsenceService) List(ctx context.Context, tenant string) ([]domain.Absence, error) {
	return s.repo.ListByTenant(ctx, tenant)
}

func (s *AbsenceService) Create(ctx context.Context, tenant string, in ports.CreateAbsenceInput) (*domain.Absence, error) {
	status := in.Status
	if status == "" {
		status = domain.AbsencePending
	}
	if !domain.ValidAbsenceStatus(status) {
		return nil, fmt.Errorf("%w: unknown absence status %q", domain.ErrValidation, status)
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("%w: end_date must not precede start_date", domain.ErrValidation)
	}

	ok, err := s.employees.ExistsInTenant(ctx, in.EmployeeID, tenant)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: employee %s not found in workspace", domain.ErrValidation, in.EmployeeID)
	}

	now := time.Now().UTC()
	absence := &domain.Absence{
		EmployeeID:    in.EmployeeID,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Reason:        in.Reason,
		Status:        status,
		TenantSession: tenant,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Insert(ctx, absence)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("absence_id", created.ID).Str("employee_id", in.EmployeeID).Str("tenant", tenant).Msg("absence filed")
	return created, nil
}

func (s *AbsenceService) Update(ctx context.Context, id, tenant string, in ports.UpdateAbsenceInput) (*domain.Absence, error) {
	if in.Status != nil && !domain.ValidAbsenceStatus(*in.Status) {
		return nil, fmt.Errorf("%w: unknown absence status %q", domain.ErrValidation, *in.Status)
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, fmt.Errorf("%w: end_date must not precede start_date", domain.ErrValidation)
	}
	return s.repo.Update(ctx, id, tenant, in)
}

func (s *AbsenceService) Delete(ctx context.Context, id, tenant string) error {
	if err := s.repo.Delete(ctx, id, tenant); err != nil {
		return err
	}
	s.logger.Info().Str("absence_id", id).Str("tenant", tenant).Msg("absence deleted")
	return nil
}
