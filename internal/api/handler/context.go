package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gestioplus/gestio-api/internal/api/middleware"
	"github.com/gestioplus/gestio-api/internal/core/domain"
)

// dateLayout is the wire format for plain dates in request bodies.
const dateLayout = "2006-01-02"

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a token without an
// account id or tenant session is structurally valid but operationally
// unusable, so it is rejected with 401 here.
func ctxClaims(c echo.Context) (domain.AccessClaims, error) {
	accountID, _ := c.Get(middleware.CtxAccountID).(string)
	session, _ := c.Get(middleware.CtxSession).(string)
	if accountID == "" || session == "" {
		return domain.AccessClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get(middleware.CtxEmail).(string)
	role, _ := c.Get(middleware.CtxRole).(string)

	return domain.AccessClaims{
		AccountID:     accountID,
		Email:         email,
		Role:          role,
		TenantSession: session,
	}, nil
}

// parseDate parses a request date already validated with datetime=2006-01-02.
func parseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

// parseDatePtr converts an optional request date to an optional time.
func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t := parseDate(*s)
	return &t
}
