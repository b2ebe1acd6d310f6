package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/beerlist/beerlist/internal/core/domain"
)

// ctxPrincipal returns the principal injected by middleware.RequireSession,
// or nil on routes the middleware does not guard.
func ctxPrincipal(c echo.Context) *domain.Principal {
	p, _ := c.Get("principal").(*domain.Principal)
	return p
}

// actor names the requester in log lines.
func actor(c echo.Context) string {
	if p := ctxPrincipal(c); p != nil {
		return p.Username
	}
	return "anonymous"
}
