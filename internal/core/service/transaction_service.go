package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// TransactionService implements tenant-scoped CRUD over financial movements.
type TransactionService struct {
	repo   ports.TransactionRepository
	logger zerolog.Logger
}

func NewTransactionService(repo ports.TransactionRepository, logger zerolog.Logger) *TransactionService {
	return &TransactionService{repo: repo, logger: logger}
}

func (s *TransactionService) List(ctx context.Context, tenant string) ([]domain.Transaction, error) {
	return s.repo.ListByTenant(ctx, tenant, 0)
}

func (s *TransactionService) Recent(ctx context.Context, tenant string) ([]domain.Transaction, error) {
	return s.repo.ListByTenant(ctx, tenant, ports.RecentTransactionsLimit)
}

func (s *TransactionService) Create(ctx context.Context, tenant, accountID string, in ports.CreateTransactionInput) (*domain.Transaction, error) {
	if !domain.ValidTransactionType(in.Type) {
		return nil, fmt.Errorf("%w: type must be income or expense", domain.ErrValidation)
	}

	now := time.Now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	tx := &domain.Transaction{
		AccountID:     accountID,
		Amount:        in.Amount,
		Type:          in.Type,
		Category:      in.Category,
		Date:          date,
		Description:   in.Description,
		TenantSession: tenant,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Insert(ctx, tx)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("transaction_id", created.ID).
		Str("type", string(created.Type)).
		Str("tenant", tenant).
		Msg("transaction recorded")
	return created, nil
}

func (s *TransactionService) Update(ctx context.Context, id, tenant string, in ports.UpdateTransactionInput) (*domain.Transaction, error) {
	if in.Type != nil && !domain.ValidTransactionType(*in.Type) {
		return nil, fmt.Errorf("%w: type must be income or expense", domain.ErrValidation)
	}
	return s.repo.Update(ctx, id, tenant, in)
}

func (s *TransactionService) Delete(ctx context.Context, id, tenant string) error {
	if err := s.repo.Delete(ctx, id, tenant); err != nil {
		return err
	}
	s.logger.Info().Str("transaction_id", id).Str("tenant", tenant).Msg("transaction deleted")
	return nil
}
