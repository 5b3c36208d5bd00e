package domain

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single financial movement owned by one tenant.
// AccountID records who entered it.
type Transaction struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"account_id"`
	Amount        float64         `json:"amount"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description,omitempty"`
	TenantSession string          `json:"tenant_session"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
