package ports

import (
	"context"
	"time"

	"github.com/gestioplus/gestio-api/internal/core/domain"
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string
	Account   *domain.Account
	ExpiresIn time.Duration
}

// AuthService covers the token lifecycle: issuing on login, password
// rotation, and bootstrap of the first admin account.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error
	// EnsureBootstrapAccount creates an admin account with a fresh tenant
	// session when no account with the given email exists yet.
	EnsureBootstrapAccount(ctx context.Context, email, password string) error
}
