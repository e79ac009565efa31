package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/cadmin/cadmin-api/internal/core/domain"
)

// RequireRole rejects principals below min in the role hierarchy before the
// handler runs. Services still consult the guard for target-specific rules.
func RequireRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := Principal(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if !p.Role.AtLeast(min) {
				return domain.Denied(fmt.Sprintf("requires role %s", min))
			}
			return next(c)
		}
	}
}
