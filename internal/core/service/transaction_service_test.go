package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

type stubTransactionRepo struct {
	transactions map[string]*domain.Transaction
	nextID       int
	lastLimit    int64
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{transactions: make(map[string]*domain.Transaction)}
}

func (r *stubTransactionRepo) ListByTenant(_ context.Context, tenant string, limit int64) ([]domain.Transaction, error) {
	r.lastLimit = limit
	var out []domain.Transaction
	for _, tx := range r.transactions {
		if tx.TenantSession == tenant {
			out = append(out, *tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubTransactionRepo) Insert(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	copy := *tx
	r.nextID++
	copy.ID = fmt.Sprintf("tx-%d", r.nextID)
	r.transactions[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubTransactionRepo) Update(_ context.Context, id, tenant string, in ports.UpdateTransactionInput) (*domain.Transaction, error) {
	tx, ok := r.transactions[id]
	if !ok || tx.TenantSession != tenant {
		return nil, domain.ErrTransactionNotFound
	}
	if in.Amount != nil {
		tx.Amount = *in.Amount
	}
	if in.Type != nil {
		tx.Type = *in.Type
	}
	if in.Category != nil {
		tx.Category = *in.Category
	}
	if in.Date != nil {
		tx.Date = *in.Date
	}
	if in.Description != nil {
		tx.Description = *in.Description
	}
	out := *tx
	return &out, nil
}

func (r *stubTransactionRepo) Delete(_ context.Context, id, tenant string) error {
	tx, ok := r.transactions[id]
	if !ok || tx.TenantSession != tenant {
		return domain.ErrTransactionNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *stubTransactionRepo) TotalsByType(_ context.Context, tenant string) (ports.TransactionTotals, error) {
	var totals ports.TransactionTotals
	for _, tx := range r.transactions {
		if tx.TenantSession != tenant {
			continue
		}
		switch tx.Type {
		case domain.TransactionIncome:
			totals.Income += tx.Amount
		case domain.TransactionExpense:
			totals.Expense += tx.Amount
		}
	}
	return totals, nil
}

func TestTransactionService_Create(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := NewTransactionService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), "tenant-1", "acc-1", ports.CreateTransactionInput{
		Amount:   120.50,
		Type:     domain.TransactionIncome,
		Category: "sales",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected an id")
	}
	if created.TenantSession != "tenant-1" {
		t.Fatalf("tenant not stamped: %q", created.TenantSession)
	}
	if created.AccountID != "acc-1" {
		t.Fatalf("account not stamped: %q", created.AccountID)
	}
	if created.Date.IsZero() {
		t.Fatalf("expected zero date to default to now")
	}
}

func TestTransactionService_Create_InvalidType(t *testing.T) {
	svc := NewTransactionService(newStubTransactionRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), "tenant-1", "acc-1", ports.CreateTransactionInput{
		Amount: 10,
		Type:   "transfer",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTransactionService_Recent(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := NewTransactionService(repo, zerolog.Nop())

	base := time.Now().UTC()
	for i := 0; i < 10; i++ {
		repo.transactions[fmt.Sprintf("seed-%d", i)] = &domain.Transaction{
			ID:            fmt.Sprintf("seed-%d", i),
			Amount:        float64(i),
			Type:          domain.TransactionIncome,
			TenantSession: "tenant-1",
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
	}

	recent, err := svc.Recent(context.Background(), "tenant-1")
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != ports.RecentTransactionsLimit {
		t.Fatalf("expected %d transactions, got %d", ports.RecentTransactionsLimit, len(recent))
	}
	if repo.lastLimit != ports.RecentTransactionsLimit {
		t.Fatalf("expected repo limit %d, got %d", ports.RecentTransactionsLimit, repo.lastLimit)
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.After(recent[i-1].CreatedAt) {
			t.Fatalf("transactions not sorted newest first")
		}
	}
	if recent[0].ID != "seed-9" {
		t.Fatalf("expected the newest transaction first, got %s", recent[0].ID)
	}
}

func TestTransactionService_TenantIsolation(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := NewTransactionService(repo, zerolog.Nop())

	mine, err := svc.Create(context.Background(), "tenant-1", "acc-1", ports.CreateTransactionInput{
		Amount: 50,
		Type:   domain.TransactionExpense,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Another tenant must neither see nor touch it, even with the right id.
	other, err := svc.List(context.Background(), "tenant-2")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("tenant-2 sees %d foreign transactions", len(other))
	}

	amount := 999.0
	if _, err := svc.Update(context.Background(), mine.ID, "tenant-2", ports.UpdateTransactionInput{Amount: &amount}); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected not-found for cross-tenant update, got %v", err)
	}
	if err := svc.Delete(context.Background(), mine.ID, "tenant-2"); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected not-found for cross-tenant delete, got %v", err)
	}
}

func TestTransactionService_Update_InvalidType(t *testing.T) {
	svc := NewTransactionService(newStubTransactionRepo(), zerolog.Nop())

	bad := domain.TransactionType("transfer")
	if _, err := svc.Update(context.Background(), "tx-1", "tenant-1", ports.UpdateTransactionInput{Type: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
