package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// DashboardService aggregates tenant-wide figures for the landing page.
type DashboardService struct {
	transactions ports.TransactionRepository
	employees    ports.EmployeeRepository
	absences     ports.AbsenceRepository
	products     ports.ProductRepository
	logger       zerolog.Logger
}

func NewDashboardService(
	transactions ports.TransactionRepository,
	employees ports.EmployeeRepository,
	absences ports.AbsenceRepository,
	products ports.ProductRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		transactions: transactions,
		employees:    employees,
		absences:     absences,
		products:     products,
		logger:       logger,
	}
}

func (s *DashboardService) Stats(ctx context.Context, tenant string) (*ports.DashboardStats, error) {
	totals, err := s.transactions.TotalsByType(ctx, tenant)
	if err != nil {
		return nil, err
	}

	employees, err := s.employees.CountByTenant(ctx, tenant)
	if err != nil {
		return nil, err
	}

	pending, err := s.absences.CountPending(ctx, tenant)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.products.CountLowStock(ctx, tenant)
	if err != nil {
		return nil, err
	}

	return &ports.DashboardStats{
		TotalIncome:     totals.Income,
		TotalExpense:    totals.Expense,
		Balance:         totals.Income - totals.Expense,
		EmployeeCount:   employees,
		PendingAbsences: pending,
		LowStockCount:   lowStock,
	}, nil
}
