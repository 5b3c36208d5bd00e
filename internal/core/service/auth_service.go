package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// TokenTTL is the fixed credential lifetime. There is no refresh mechanism:
// expiry forces a new login.
const TokenTTL = 8 * time.Hour

// LoginLimiter throttles login attempts per email (Redis-backed).
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// AuthService implements login, password rotation, and bootstrap.
type AuthService struct {
	repo      ports.AccountRepository
	limiter   LoginLimiter
	jwtSecret string
	logger    zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, limiter LoginLimiter, jwtSecret string, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, limiter: limiter, jwtSecret: jwtSecret, logger: logger}
}

// Login verifies the credentials and issues a signed token. Unknown email and
// wrong password both return ErrInvalidCredentials so the response does not
// reveal whether the account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			// A broken limiter must not lock out the whole tenant.
			s.logger.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", account.ID).Str("tenant", account.TenantSession).Msg("login succeeded")

	return &ports.LoginResult{Token: token, Account: account, ExpiresIn: TokenTTL}, nil
}

// ChangePassword re-verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePasswordHash(ctx, accountID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("account_id", accountID).Msg("password changed")
	return nil
}

// EnsureBootstrapAccount creates the first admin of a fresh deployment. The
// new account gets its own tenant session, opening a new workspace.
func (s *AuthService) EnsureBootstrapAccount(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Name:          "Administrator",
		Email:         email,
		PasswordHash:  string(hash),
		Role:          domain.RoleAdmin,
		Status:        domain.AccountActive,
		TenantSession: uuid.NewString(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Insert(ctx, account)
	if err != nil {
		return err
	}

	s.logger.Info().Str("account_id", created.ID).Str("tenant", created.TenantSession).Msg("bootstrap admin created")
	return nil
}

func (s *AuthService) issueToken(account *domain.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"account_id": account.ID,
		"email":      account.Email,
		"role":       account.Role,
		"session":    account.TenantSession,
		"iat":        now.Unix(),
		"exp":        now.Add(TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
