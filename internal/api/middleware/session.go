package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beerlist/beerlist/internal/api/metrics"
	"github.com/beerlist/beerlist/internal/api/session"
)

// RequireSession rejects requests that IsAuthenticated turns away with a
// bare 401. It runs before the handler, so nothing is looked up for a
// rejected request. Session store failures are returned as errors.
func RequireSession(m *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.IsAuthenticated(c) {
				if _, err := m.Principal(c); err != nil {
					return err
				}
				metrics.AuthorizationDeniedTotal.WithLabelValues(c.Request().Method).Inc()
				return c.NoContent(http.StatusUnauthorized)
			}

			// The session is cached per request, so this does not reload it.
			p, _ := m.Principal(c)
			c.Set("principal", p)
			return next(c)
		}
	}
}
