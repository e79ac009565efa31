package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cadmin/cadmin-api/internal/api/middleware"
	"github.com/cadmin/cadmin-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fails fast when it is missing, before any service call.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return p, nil
}
