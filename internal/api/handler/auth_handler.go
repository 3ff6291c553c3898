package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/banco-obrero/comuna-api/internal/api/metrics"
	"github.com/banco-obrero/comuna-api/internal/core/domain"
	"github.com/banco-obrero/comuna-api/internal/core/ports"
)

type AuthHandler struct {
	identity ports.IdentityService
}

func NewAuthHandler(identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// CheckCedula resolves a cedula before registration: local account first,
// then the national registry for prefill data.
//
// This endpoint discloses whether an account exists for a cedula without
// authentication. That is the product contract (the client routes to login
// vs registration on it), kept on purpose even though login itself never
// reveals existence.
//
// @Summary      Check a cedula against accounts and the national registry
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      checkCedulaRequest  true  "Cedula to check"
// @Success      200   {object}  checkCedulaResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/check-cedula [post]
func (h *AuthHandler) CheckCedula(c echo.Context) error {
	var req checkCedulaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.identity.CheckCedula(c.Request().Context(), req.Cedula)
	if err != nil {
		return err
	}

	switch {
	case result.Exists:
		metrics.CedulaLookupsTotal.WithLabelValues("local").Inc()
		return c.JSON(http.StatusOK, checkCedulaResponse{
			Exists:  true,
			Message: "user already registered",
			User:    &personData{Name: result.User.Name, Surname: result.User.Surname},
		})
	case result.Person != nil:
		metrics.CedulaLookupsTotal.WithLabelValues("registry").Inc()
		return c.JSON(http.StatusOK, checkCedulaResponse{
			Exists:  false,
			Message: "cedula verified",
			Data:    &personData{Name: result.Person.Name, Surname: result.Person.Surname},
		})
	default:
		metrics.CedulaLookupsTotal.WithLabelValues("none").Inc()
		return c.JSON(http.StatusOK, checkCedulaResponse{
			Exists:  false,
			Message: "no data found",
		})
	}
}

// Register creates an account and returns a session.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.identity.Register(c.Request().Context(), ports.RegisterInput{
		Cedula:   req.Cedula,
		Name:     req.Name,
		Surname:  req.Surname,
		Password: req.Password,
	})
	if err != nil {
		switch err {
		case domain.ErrUserExists:
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		case domain.ErrMissingFields, domain.ErrMissingCedula, domain.ErrInvalidCedula:
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Token: result.Token,
		User:  toUserResponse(result.User, result.Permissions),
	})
}

// Login authenticates a cedula/password pair and returns a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.identity.Login(c.Request().Context(), req.Cedula, req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Token: result.Token,
		User:  toUserResponse(result.User, result.Permissions),
	})
}

// Me returns the authenticated account with its permission snapshot.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	user, perms, err := h.identity.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, meResponse{User: toUserResponse(user, perms)})
}
