package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account // keyed by id
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) seed(t *testing.T, email, password, tenant string) *domain.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	account := &domain.Account{
		Name:          "Seeded",
		Email:         email,
		PasswordHash:  string(hash),
		Role:          domain.RoleUser,
		Status:        domain.AccountActive,
		TenantSession: tenant,
	}
	created, err := r.Insert(context.Background(), account)
	if err != nil {
		t.Fatalf("seeding account: %v", err)
	}
	return created
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := r.accounts[id]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByIDInTenant(_ context.Context, id, tenant string) (*domain.Account, error) {
	if a, ok := r.accounts[id]; ok && a.TenantSession == tenant {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) ListByTenant(_ context.Context, tenant string) ([]domain.Account, error) {
	var out []domain.Account
	for _, a := range r.accounts {
		if a.TenantSession == tenant {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAccountRepo) Insert(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	copy := cloneAccount(account)
	r.nextID++
	copy.ID = fmt.Sprintf("acc-%d", r.nextID)
	r.accounts[copy.ID] = cloneAccount(copy)
	return copy, nil
}

func (r *stubAccountRepo) Update(_ context.Context, id, tenant string, in ports.UpdateAccountInput) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok || a.TenantSession != tenant {
		return nil, domain.ErrAccountNotFound
	}
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Email != nil {
		a.Email = *in.Email
	}
	if in.Role != nil {
		a.Role = *in.Role
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) UpdateSelf(_ context.Context, id string, in ports.UpdateProfileInput) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Email != nil {
		a.Email = *in.Email
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id, tenant string) error {
	a, ok := r.accounts[id]
	if !ok || a.TenantSession != tenant {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

type stubLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (l *stubLimiter) Allow(context.Context, string) (bool, error) {
	l.calls++
	return l.allowed, l.err
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	seeded := repo.seed(t, "owner@example.com", "s3cret", "tenant-1")
	svc := NewAuthService(repo, &stubLimiter{allowed: true}, "test-secret", zerolog.Nop())

	result, err := svc.Login(context.Background(), "owner@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a signed token")
	}
	if result.ExpiresIn != TokenTTL {
		t.Fatalf("unexpected expiry: %v", result.ExpiresIn)
	}
	if result.Account.ID != seeded.ID {
		t.Fatalf("unexpected account: %s", result.Account.ID)
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tkn.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["account_id"] != seeded.ID {
		t.Fatalf("unexpected account_id claim: %v", claims["account_id"])
	}
	if claims["session"] != "tenant-1" {
		t.Fatalf("unexpected session claim: %v", claims["session"])
	}
	if claims["role"] != domain.RoleUser {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("missing exp claim")
	}
	remaining := time.Until(time.Unix(int64(exp), 0))
	if remaining < 7*time.Hour || remaining > 8*time.Hour {
		t.Fatalf("expiry outside the 8h window: %v", remaining)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newStubAccountRepo()
	repo.seed(t, "owner@example.com", "s3cret", "tenant-1")
	svc := NewAuthService(repo, &stubLimiter{allowed: true}, "test-secret", zerolog.Nop())

	// Unknown email and wrong password must be indistinguishable.
	if _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "owner@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}

func TestAuthService_Login_RateLimited(t *testing.T) {
	repo := newStubAccountRepo()
	repo.seed(t, "owner@example.com", "s3cret", "tenant-1")
	limiter := &stubLimiter{allowed: false}
	svc := NewAuthService(repo, limiter, "test-secret", zerolog.Nop())

	if _, err := svc.Login(context.Background(), "owner@example.com", "s3cret"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if limiter.calls != 1 {
		t.Fatalf("expected one limiter call, got %d", limiter.calls)
	}
}

func TestAuthService_Login_LimiterFailureIsOpen(t *testing.T) {
	repo := newStubAccountRepo()
	repo.seed(t, "owner@example.com", "s3cret", "tenant-1")
	limiter := &stubLimiter{err: errors.New("redis down")}
	svc := NewAuthService(repo, limiter, "test-secret", zerolog.Nop())

	if _, err := svc.Login(context.Background(), "owner@example.com", "s3cret"); err != nil {
		t.Fatalf("expected login to succeed when limiter is down, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newStubAccountRepo()
	seeded := repo.seed(t, "owner@example.com", "old-pass", "tenant-1")
	svc := NewAuthService(repo, &stubLimiter{allowed: true}, "test-secret", zerolog.Nop())

	if err := svc.ChangePassword(context.Background(), seeded.ID, "wrong", "new-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), seeded.ID, "old-pass", "new-pass"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	if _, err := svc.Login(context.Background(), "owner@example.com", "old-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted after rotation")
	}
	if _, err := svc.Login(context.Background(), "owner@example.com", "new-pass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAuthService_EnsureBootstrapAccount(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, &stubLimiter{allowed: true}, "test-secret", zerolog.Nop())

	if err := svc.EnsureBootstrapAccount(context.Background(), "admin@example.com", "boot-pass"); err != nil {
		t.Fatalf("bootstrap returned error: %v", err)
	}

	admin, err := repo.FindByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("bootstrap account not created: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}
	if admin.TenantSession == "" {
		t.Fatalf("expected a fresh tenant session")
	}

	// A second run must be a no-op, not a duplicate.
	if err := svc.EnsureBootstrapAccount(context.Background(), "admin@example.com", "other-pass"); err != nil {
		t.Fatalf("second bootstrap returned error: %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin@example.com", "boot-pass"); err != nil {
		t.Fatalf("original bootstrap password no longer works: %v", err)
	}
}
