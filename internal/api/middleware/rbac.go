package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/banco-obrero/comuna-api/internal/api/metrics"
	"github.com/banco-obrero/comuna-api/internal/core/domain"
)

// RequireRole denies with 403 unless the caller's role is in allowedRoles.
// Runs after Auth, which guarantees a role claim is present.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				metrics.AuthDeniedTotal.WithLabelValues("role").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
			}
			return next(c)
		}
	}
}

// RequirePermission denies with 403 unless the caller's role holds one of
// the accepted values for module/key in the matrix. The two denial causes
// (no permissions in the module at all vs. wrong value) are logged and
// counted separately but look identical to the client.
func RequirePermission(matrix *domain.PermissionMatrix, log zerolog.Logger, module, key string, accepted ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if matrix.Has(role, module, key, accepted...) {
				return next(c)
			}

			reason := "permission"
			if !matrix.HasModule(role, module) {
				reason = "module"
			}
			metrics.AuthDeniedTotal.WithLabelValues(reason).Inc()
			log.Debug().
				Str("role", role).
				Str("module", module).
				Str("key", key).
				Str("reason", reason).
				Str("path", c.Path()).
				Msg("permission denied")

			return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
		}
	}
}
