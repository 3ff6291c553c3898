package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/banco-obrero/comuna-api/internal/core/domain"
)

func contextWithRole(e *echo.Echo, role string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", role)
	return c, rec
}

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	c, rec := contextWithRole(e, domain.RoleAdmin)

	called := false
	mw := RequireRole(domain.RoleAdmin, domain.RoleGobierno)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	e := echo.New()
	c, rec := contextWithRole(e, domain.RoleNatural)

	mw := RequireRole(domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequirePermission_Allows(t *testing.T) {
	e := echo.New()
	c, rec := contextWithRole(e, domain.RoleAdmin)

	matrix := domain.NewPermissionMatrix()
	called := false
	mw := RequirePermission(matrix, zerolog.Nop(), "user", "management", "global")
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequirePermission_DeniesWrongValue(t *testing.T) {
	e := echo.New()
	// mantenimiento has user/management=technical, not global
	c, rec := contextWithRole(e, domain.RoleMantenimiento)

	matrix := domain.NewPermissionMatrix()
	mw := RequirePermission(matrix, zerolog.Nop(), "user", "management", "global")
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequirePermission_DeniesAbsentModule(t *testing.T) {
	e := echo.New()
	c, rec := contextWithRole(e, domain.RoleNatural)

	matrix := domain.NewPermissionMatrix()
	mw := RequirePermission(matrix, zerolog.Nop(), "user", "management", "global")
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequirePermission_DeniesUnknownRole(t *testing.T) {
	e := echo.New()
	c, rec := contextWithRole(e, "ghost")

	matrix := domain.NewPermissionMatrix()
	mw := RequirePermission(matrix, zerolog.Nop(), "ia", "analysis", "result_only", "full_analysis")
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
