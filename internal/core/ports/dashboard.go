package ports

import "context"

// DashboardStats is the tenant-wide summary shown on the landing page.
type DashboardStats struct {
	TotalIncome     float64 `json:"total_income"`
	TotalExpense    float64 `json:"total_expense"`
	Balance         float64 `json:"balance"`
	EmployeeCount   int64   `json:"employee_count"`
	PendingAbsences int64   `json:"pending_absences"`
	LowStockCount   int64   `json:"low_stock_count"`
}

type DashboardService interface {
	Stats(ctx context.Context, tenant string) (*DashboardStats, error)
}
