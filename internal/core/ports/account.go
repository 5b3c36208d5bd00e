package ports

import (
	"context"

	"github.com/gestioplus/gestio-api/internal/core/domain"
)

// CreateAccountInput carries the fields accepted when an admin creates a
// workspace member. TenantSession is never part of the input; it is stamped
// from the caller's credential.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
	Role     string // defaults to "user"
	Status   string // defaults to "active"
}

// UpdateAccountInput is the allow-list of mutable account fields. Password
// and tenant session are deliberately absent: passwords rotate only through
// the change-password flow.
type UpdateAccountInput struct {
	Name   *string
	Email  *string
	Role   *string
	Status *string
}

// UpdateProfileInput is the self-service subset: a member may rename
// themselves or change their email but not escalate their own role.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// AccountService manages workspace members (admin) and the caller's own
// profile (self-service).
type AccountService interface {
	List(ctx context.Context, tenant string) ([]domain.Account, error)
	Get(ctx context.Context, id, tenant string) (*domain.Account, error)
	Create(ctx context.Context, tenant string, in CreateAccountInput) (*domain.Account, error)
	Update(ctx context.Context, id, tenant string, in UpdateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, id, tenant string) error

	Profile(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, accountID string, in UpdateProfileInput) (*domain.Account, error)
}

// AccountRepository persists accounts. Scoped lookups match on both id and
// tenant so a guessed id from another workspace resolves to not-found.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByIDInTenant(ctx context.Context, id, tenant string) (*domain.Account, error)
	ListByTenant(ctx context.Context, tenant string) ([]domain.Account, error)
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, id, tenant string, in UpdateAccountInput) (*domain.Account, error)
	UpdateSelf(ctx context.Context, id string, in UpdateProfileInput) (*domain.Account, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id, tenant string) error
}
