package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gestioplus/gestio-api/internal/api/middleware"
	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	changePasswordFn func(ctx context.Context, accountID, currentPassword, newPassword string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	return s.changePasswordFn(ctx, accountID, currentPassword, newPassword)
}

func (s *stubAuthService) EnsureBootstrapAccount(context.Context, string, string) error {
	return nil
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withClaims(c echo.Context, accountID, session, role string) {
	c.Set(middleware.CtxAccountID, accountID)
	c.Set(middleware.CtxSession, session)
	c.Set(middleware.CtxRole, role)
	c.Set(middleware.CtxEmail, "owner@example.com")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "owner@example.com" || password != "s3cret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				Token:     "signed-token",
				Account:   &domain.Account{ID: "acc-1", Email: email, TenantSession: "tenant-1"},
				ExpiresIn: 8 * time.Hour,
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"owner@example.com","password":"s3cret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "acc-1" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
}

func TestAuthHandler_Login_BadPayload(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	for _, body := range []string{
		`{"email":"not-an-email","password":"p"}`,
		`{"password":"p"}`,
		`{"email":"a@example.com"}`,
		`{bad json`,
	} {
		c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", body)
		err := handler.Login(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("body %s: expected an HTTP error, got %v", body, err)
		}
		if httpErr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, httpErr.Code)
		}
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"wrong"}`)
	if err := handler.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected the sentinel to propagate, got %v", err)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	var gotAccountID string
	handler := NewAuthHandler(&stubAuthService{
		changePasswordFn: func(_ context.Context, accountID, current, next string) error {
			gotAccountID = accountID
			if current != "old" || next != "longenough" {
				t.Fatalf("unexpected args: %s %s", current, next)
			}
			return nil
		},
	})

	c, rec := newTestContext(t, http.MethodPut, "/api/auth/change-password", `{"current_password":"old","new_password":"longenough"}`)
	withClaims(c, "acc-1", "tenant-1", domain.RoleUser)

	if err := handler.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotAccountID != "acc-1" {
		t.Fatalf("account id not taken from claims: %q", gotAccountID)
	}
}

func TestAuthHandler_ChangePassword_ShortPassword(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		changePasswordFn: func(context.Context, string, string, string) error {
			t.Fatalf("service must not be called on invalid payload")
			return nil
		},
	})

	c, _ := newTestContext(t, http.MethodPut, "/api/auth/change-password", `{"current_password":"old","new_password":"short"}`)
	withClaims(c, "acc-1", "tenant-1", domain.RoleUser)

	err := handler.ChangePassword(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %v", err)
	}
}

func TestAuthHandler_ChangePassword_NoClaims(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPut, "/api/auth/change-password", `{"current_password":"old","new_password":"longenough"}`)
	err := handler.ChangePassword(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/logout", "")
	withClaims(c, "acc-1", "tenant-1", domain.RoleUser)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "logged out") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
