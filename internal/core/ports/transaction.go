package ports

import (
	"context"
	"time"

	"github.com/gestioplus/gestio-api/internal/core/domain"
)

// RecentTransactionsLimit caps the dashboard "recent" listing.
const RecentTransactionsLimit = 6

// CreateTransactionInput carries the fields accepted when recording a
// transaction. A zero Date means "now".
type CreateTransactionInput struct {
	Amount      float64
	Type        domain.TransactionType
	Category    string
	Date        time.Time
	Description string
}

// UpdateTransactionInput is the allow-list of mutable transaction fields.
type UpdateTransactionInput struct {
	Amount      *float64
	Type        *domain.TransactionType
	Category    *string
	Date        *time.Time
	Description *string
}

// TransactionTotals aggregates amounts per type for one tenant.
type TransactionTotals struct {
	Income  float64
	Expense float64
}

type TransactionService interface {
	// List returns all tenant transactions, newest first.
	List(ctx context.Context, tenant string) ([]domain.Transaction, error)
	// Recent returns at most RecentTransactionsLimit transactions, newest first.
	Recent(ctx context.Context, tenant string) ([]domain.Transaction, error)
	Create(ctx context.Context, tenant, accountID string, in CreateTransactionInput) (*domain.Transaction, error)
	Update(ctx context.Context, id, tenant string, in UpdateTransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, id, tenant string) error
}

type TransactionRepository interface {
	// ListByTenant returns tenant transactions sorted by creation time
	// descending; limit <= 0 means no limit.
	ListByTenant(ctx context.Context, tenant string, limit int64) ([]domain.Transaction, error)
	Insert(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	Update(ctx context.Context, id, tenant string, in UpdateTransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, id, tenant string) error
	TotalsByType(ctx context.Context, tenant string) (TransactionTotals, error)
}
