package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/banco-obrero/comuna-api/internal/core/domain"
)

type stubUserRepo struct {
	users []domain.User
}

func (r *stubUserRepo) FindByCedula(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	return r.users, nil
}

func TestAdminListUsers(t *testing.T) {
	repo := &stubUserRepo{users: []domain.User{
		{ID: "1", Cedula: "V1", Name: "Ana", Surname: "Gomez", Role: domain.RoleNatural, PasswordHash: "hash1"},
		{ID: "2", Cedula: "V2", Name: "Luis", Surname: "Perez", Role: domain.RoleAdmin, PasswordHash: "hash2"},
	}}
	h := NewAdminHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, hash := range []string{"hash1", "hash2"} {
		if strings.Contains(body, hash) {
			t.Fatalf("password hash leaked: %s", body)
		}
	}
	resp := decodeBody(t, rec)
	users, ok := resp["users"].([]any)
	if !ok || len(users) != 2 {
		t.Fatalf("expected 2 users, got %v", resp)
	}
}
