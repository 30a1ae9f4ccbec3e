package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/middleclass/localstore/internal/session"
)

const adminCookie = "adminToken"

type GateMiddleware struct {
	Gate *session.Gate
}

// RequireAdmin guards the catalog-editing routes. The cookie names a
// session; authorization comes from re-reading the stored record on
// every request, so a stale cookie over a logged-out session fails.
func (m *GateMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(adminCookie)
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
		}

		email, err := m.Gate.VerifyToken(cookie.Value)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if email != m.Gate.AuthorizedEmail {
			return echo.NewHTTPError(http.StatusForbidden, "email not authorized")
		}
		if !m.Gate.Check(c.Request().Context()) {
			return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
		}

		return next(c)
	}
}
