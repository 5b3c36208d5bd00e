package ports

import (
	"context"
	"time"

	"github.com/gestioplus/gestio-api/internal/core/domain"
)

// CreateAbsenceInput carries the fields accepted when filing an absence.
type CreateAbsenceInput struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     domain.AbsenceStatus // defaults to "pending"
}

// UpdateAbsenceInput is the allow-list of mutable absence fields.
type UpdateAbsenceInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Reason    *string
	Status    *domain.AbsenceStatus
}

type AbsenceService interface {
	List(ctx context.Context, tenant string) ([]domain.Absence, error)
	Create(ctx context.Context, tenant string, in CreateAbsenceInput) (*domain.Absence, error)
	Update(ctx context.Context, id, tenant string, in UpdateAbsenceInput) (*domain.Absence, error)
	Delete(ctx context.Context, id, tenant string) error
}

type AbsenceRepository interface {
	ListByTenant(ctx context.Context, tenant string) ([]domain.Absence, error)
	Insert(ctx context.Context, absence *domain.Absence) (*domain.Absence, error)
	Update(ctx context.Context, id, tenant string, in UpdateAbsenceInput) (*domain.Absence, error)
	Delete(ctx context.Context, id, tenant string) error
	CountPending(ctx context.Context, tenant string) (int64, error)
}
