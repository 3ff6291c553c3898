package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/banco-obrero/comuna-api/internal/core/ports"
)

// AdminHandler serves the operator-only account surface. Routes using it
// are guarded by RequireRole and RequirePermission in the router.
type AdminHandler struct {
	repo ports.UserRepository
}

func NewAdminHandler(repo ports.UserRepository) *AdminHandler {
	return &AdminHandler{repo: repo}
}

type adminUserItem struct {
	ID      string `json:"id"`
	Cedula  string `json:"cedula"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Role    string `json:"role"`
}

type listUsersResponse struct {
	Users []adminUserItem `json:"users"`
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List registered accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]adminUserItem, 0, len(users))
	for _, u := range users {
		items = append(items, adminUserItem{
			ID:      u.ID,
			Cedula:  u.Cedula,
			Name:    u.Name,
			Surname: u.Surname,
			Role:    u.Role,
		})
	}

	return c.JSON(http.StatusOK, listUsersResponse{Users: items})
}
