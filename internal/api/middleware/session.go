package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestioplus/gestio-api/internal/api/metrics"
)

// Headers the client must echo back on every tenant-scoped request.
const (
	HeaderUserID  = "X-User-Id"
	HeaderSession = "X-Session"
)

// SessionGuard cross-checks the identity the client claims to be using
// against the verified token claims. A stolen token replayed with another
// client's session bookkeeping fails here even though the token verifies;
// it is a second layer of tenant scoping on top of per-query filtering.
// Fails closed: absent or mismatched headers are both rejected.
func SessionGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accountID, _ := c.Get(CtxAccountID).(string)
			session, _ := c.Get(CtxSession).(string)

			declaredID := c.Request().Header.Get(HeaderUserID)
			declaredSession := c.Request().Header.Get(HeaderSession)

			if accountID == "" || session == "" ||
				declaredID != accountID || declaredSession != session {
				metrics.SessionRejectionsTotal.Inc()
				return echo.NewHTTPError(http.StatusForbidden, "session or user not authorized")
			}

			return next(c)
		}
	}
}
