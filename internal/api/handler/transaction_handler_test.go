package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

type stubTransactionService struct {
	listFn   func(ctx context.Context, tenant string) ([]domain.Transaction, error)
	recentFn func(ctx context.Context, tenant string) ([]domain.Transaction, error)
	createFn func(ctx context.Context, tenant, accountID string, in ports.CreateTransactionInput) (*domain.Transaction, error)
	updateFn func(ctx context.Context, id, tenant string, in ports.UpdateTransactionInput) (*domain.Transaction, error)
	deleteFn func(ctx context.Context, id, tenant string) error
}

func (s *stubTransactionService) List(ctx context.Context, tenant string) ([]domain.Transaction, error) {
	return s.listFn(ctx, tenant)
}

func (s *stubTransactionService) Recent(ctx context.Context, tenant string) ([]domain.Transaction, error) {
	return s.recentFn(ctx, tenant)
}

func (s *stubTransactionService) Create(ctx context.Context, tenant, accountID string, in ports.CreateTransactionInput) (*domain.Transaction, error) {
	return s.createFn(ctx, tenant, accountID, in)
}

func (s *stubTransactionService) Update(ctx context.Context, id, tenant string, in ports.UpdateTransactionInput) (*domain.Transaction, error) {
	return s.updateFn(ctx, id, tenant, in)
}

func (s *stubTransactionService) Delete(ctx context.Context, id, tenant string) error {
	return s.deleteFn(ctx, id, tenant)
}

func TestTransactionHandler_Create(t *testing.T) {
	stub := &stubTransactionService{
		createFn: func(_ context.Context, tenant, accountID string, in ports.CreateTransactionInput) (*domain.Transaction, error) {
			if tenant != "tenant-1" || accountID != "acc-1" {
				t.Fatalf("claims not forwarded: %s %s", tenant, accountID)
			}
			if in.Type != domain.TransactionIncome || in.Amount != 120.5 {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Date.IsZero() {
				t.Fatalf("date not parsed")
			}
			return &domain.Transaction{ID: "tx-1", Amount: in.Amount, Type: in.Type, TenantSession: tenant}, nil
		},
	}
	handler := NewTransactionHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/transactions",
		`{"amount":120.5,"type":"income","category":"sales","date":"2026-02-14"}`)
	withClaims(c, "acc-1", "tenant-1", domain.RoleUser)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "tx-1" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestTransactionHandler_Create_Validation(t *testing.T) {
	handler := NewTransactionHandler(&stubTransactionService{
		createFn: func(context.Context, string, string, ports.CreateTransactionInput) (*domain.Transaction, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	for _, body := range []string{
		`{"amount":10,"category":"sales"}`,                      // missing type
		`{"amount":10,"type":"transfer","category":"sales"}`,    // unknown type
		`{"type":"income","category":"sales"}`,                  // missing amount
		`{"amount":10,"type":"income"}`,                         // missing category
		`{"amount":10,"type":"income","category":"sales","date":"14/02/2026"}`, // bad date
	} {
		c, _ := newTestContext(t, http.MethodPost, "/api/transactions", body)
		withClaims(c, "acc-1", "tenant-1", domain.RoleUser)

		err := handler.Create(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("body %s: expected an HTTP error, got %v", body, err)
		}
		if httpErr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, httpErr.Code)
		}
	}
}

func TestTransactionHandler_Recent(t *testing.T) {
	stub := &stubTransactionService{
		recentFn: func(_ context.Context, tenant string) ([]domain.Transaction, error) {
			if tenant != "tenant-1" {
				t.Fatalf("unexpected tenant: %s", tenant)
			}
			return []domain.Transaction{{ID: "tx-2"}, {ID: "tx-1"}}, nil
		},
	}
	handler := NewTransactionHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/transactions/recent", "")
	withClaims(c, "acc-1", "tenant-1", domain.RoleUser)

	if err := handler.Recent(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["id"] != "tx-2" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestTransactionHandler_Update_NotFound(t *testing.T) {
	handler := NewTransactionHandler(&stubTransactionService{
		updateFn: func(context.Context, string, string, ports.UpdateTransactionInput) (*domain.Transaction, error) {
			return nil, domain.ErrTransactionNotFound
		},
	})

	c, _ := newTestContext(t, http.MethodPut, "/api/transactions/tx-404", `{"amount":1}`)
	c.SetParamNames("id")
	c.SetParamValues("tx-404")
	withClaims(c, "acc-1", "tenant-1", domain.RoleUser)

	if err := handler.Update(c); err != domain.ErrTransactionNotFound {
		t.Fatalf("expected the sentinel to propagate, got %v", err)
	}
}
