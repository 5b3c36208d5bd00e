package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// AccountService implements workspace member management and self-service
// profile updates. Every scoped operation matches on (id, tenant) so that a
// guessed id from another workspace resolves to not-found.
type AccountService struct {
	repo   ports.AccountRepository
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

func (s *AccountService) List(ctx context.Context, tenant string) ([]domain.Account, error) {
	return s.repo.ListByTenant(ctx, tenant)
}

func (s *AccountService) Get(ctx context.Context, id, tenant string) (*domain.Account, error) {
	return s.repo.FindByIDInTenant(ctx, id, tenant)
}

func (s *AccountService) Create(ctx context.Context, tenant string, in ports.CreateAccountInput) (*domain.Account, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidAccountRole(role) {
		return nil, fmt.Errorf("%w: role must be admin or user", domain.ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = domain.AccountActive
	}
	if !domain.ValidAccountStatus(status) {
		return nil, fmt.Errorf("%w: unknown account status %q", domain.ErrValidation, status)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  string(hash),
		Role:          role,
		Status:        status,
		TenantSession: tenant,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Insert(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", created.ID).Str("tenant", tenant).Msg("account created")
	return created, nil
}

func (s *AccountService) Update(ctx context.Context, id, tenant string, in ports.UpdateAccountInput) (*domain.Account, error) {
	if in.Role != nil && !domain.ValidAccountRole(*in.Role) {
		return nil, fmt.Errorf("%w: role must be admin or user", domain.ErrValidation)
	}
	if in.Status != nil && !domain.ValidAccountStatus(*in.Status) {
		return nil, fmt.Errorf("%w: unknown account status %q", domain.ErrValidation, *in.Status)
	}
	return s.repo.Update(ctx, id, tenant, in)
}

func (s *AccountService) Delete(ctx context.Context, id, tenant string) error {
	if err := s.repo.Delete(ctx, id, tenant); err != nil {
		return err
	}
	s.logger.Info().Str("account_id", id).Str("tenant", tenant).Msg("account deleted")
	return nil
}

func (s *AccountService) Profile(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, accountID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, in ports.UpdateProfileInput) (*domain.Account, error) {
	return s.repo.UpdateSelf(ctx, accountID, in)
}
