package http

import (
	"strings"

	"orders/internal/core/application/auth"

	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

// requireRoles guards a route with the authorization matrix. The matched
// principal is stored on the echo context for handlers that need the
// caller's identity.
func requireRoles(matrix *auth.Matrix, roles ...auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := bearerToken(ctx)

			principal, err := matrix.Authorize(ctx.Request().Context(), token, roles)
			if err != nil {
				return writeError(ctx, err)
			}

			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

func bearerToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// principalFrom retrieves the authenticated caller set by requireRoles.
func principalFrom(ctx echo.Context) (auth.Principal, bool) {
	principal, ok := ctx.Get(principalContextKey).(auth.Principal)
	return principal, ok
}
