package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

type stubEmployeeRepo struct {
	employees map[string]*domain.Employee
	nextID    int
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) ListByTenant(_ context.Context, tenant string) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, e := range r.employees {
		if e.TenantSession == tenant {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) Insert(_ context.Context, employee *domain.Employee) (*domain.Employee, error) {
	copy := *employee
	r.nextID++
	copy.ID = fmt.Sprintf("emp-%d", r.nextID)
	r.employees[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, id, tenant string, in ports.UpdateEmployeeInput) (*domain.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.TenantSession != tenant {
		return nil, domain.ErrEmployeeNotFound
	}
	if in.Name != nil {
		e.Name = *in.Name
	}
	if in.Position != nil {
		e.Position = *in.Position
	}
	if in.StartDate != nil {
		e.StartDate = *in.StartDate
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if in.Email != nil {
		e.Email = *in.Email
	}
	if in.PhoneNumber != nil {
		e.PhoneNumber = *in.PhoneNumber
	}
	if in.EducationLevel != nil {
		e.EducationLevel = *in.EducationLevel
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	out := *e
	return &out, nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id, tenant string) error {
	e, ok := r.employees[id]
	if !ok || e.TenantSession != tenant {
		return domain.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

func (r *stubEmployeeRepo) ExistsInTenant(_ context.Context, id, tenant string) (bool, error) {
	e, ok := r.employees[id]
	return ok && e.TenantSession == tenant, nil
}

func (r *stubEmployeeRepo) CountByTenant(_ context.Context, tenant string) (int64, error) {
	var n int64
	for _, e := range r.employees {
		if e.TenantSession == tenant {
			n++
		}
	}
	return n, nil
}

func TestEmployeeService_Create_DefaultsStatus(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), "tenant-1", ports.CreateEmployeeInput{
		Name:     "Marie Dupont",
		Position: "Comptable",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != domain.EmployeeActive {
		t.Fatalf("expected default status active, got %q", created.Status)
	}
	if created.TenantSession != "tenant-1" {
		t.Fatalf("tenant not stamped: %q", created.TenantSession)
	}
}

func TestEmployeeService_Create_StatusValues(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, zerolog.Nop())

	for _, status := range []domain.EmployeeStatus{
		domain.EmployeeActive,
		domain.EmployeeInactive,
		domain.EmployeeOnLeave,
		domain.EmployeeOnTrial,
	} {
		if _, err := svc.Create(context.Background(), "tenant-1", ports.CreateEmployeeInput{
			Name:   "Test",
			Status: status,
		}); err != nil {
			t.Fatalf("status %q rejected: %v", status, err)
		}
	}

	if _, err := svc.Create(context.Background(), "tenant-1", ports.CreateEmployeeInput{
		Name:   "Test",
		Status: "fired",
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
}

func TestEmployeeService_TenantIsolation(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, zerolog.Nop())

	mine, err := svc.Create(context.Background(), "tenant-1", ports.CreateEmployeeInput{Name: "Mine"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	listed, err := svc.List(context.Background(), "tenant-2")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("tenant-2 sees %d foreign employees", len(listed))
	}

	name := "Hijacked"
	if _, err := svc.Update(context.Background(), mine.ID, "tenant-2", ports.UpdateEmployeeInput{Name: &name}); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected not-found for cross-tenant update, got %v", err)
	}
	if err := svc.Delete(context.Background(), mine.ID, "tenant-2"); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected not-found for cross-tenant delete, got %v", err)
	}

	// The owner still sees and controls the record.
	if err := svc.Delete(context.Background(), mine.ID, "tenant-1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestEmployeeService_Update_InvalidStatus(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo(), zerolog.Nop())

	bad := domain.EmployeeStatus("gone")
	if _, err := svc.Update(context.Background(), "emp-1", "tenant-1", ports.UpdateEmployeeInput{Status: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
