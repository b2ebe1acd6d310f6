package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beerlist/beerlist/internal/api/metrics"
	"github.com/beerlist/beerlist/internal/api/session"
	"github.com/beerlist/beerlist/internal/core/domain"
	"github.com/beerlist/beerlist/internal/core/ports"
)

const checkIfAuthenticatedBody = "aa"

type AuthHandler struct {
	authService ports.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(authService ports.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

type strategyFunc func(c echo.Context, username, password string) (*domain.Principal, error)

// Login verifies the credentials and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  principalResponse
// @Failure      400   "missing credentials"
// @Failure      401   "rejected"
// @Failure      500   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	return h.authenticate(c, "login", func(c echo.Context, username, password string) (*domain.Principal, error) {
		return h.authService.Login(c.Request().Context(), username, password)
	})
}

// Register creates a user account and starts a session for it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      credentialsRequest  true  "New account credentials"
// @Success      200   {object}  principalResponse
// @Failure      400   "missing credentials"
// @Failure      401   "rejected"
// @Failure      500   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	return h.authenticate(c, "register", func(c echo.Context, username, password string) (*domain.Principal, error) {
		return h.authService.Register(c.Request().Context(), username, password)
	})
}

// authenticate runs a strategy. Bad credentials and duplicate usernames get
// the same bare rejection.
func (h *AuthHandler) authenticate(c echo.Context, strategy string, run strategyFunc) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
	}
	if err := c.Validate(&req); err != nil {
		return c.String(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
	}

	principal, err := run(c, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUserExists) {
			metrics.AuthAttemptsTotal.WithLabelValues(strategy, "rejected").Inc()
			return c.String(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		metrics.AuthAttemptsTotal.WithLabelValues(strategy, "error").Inc()
		return err
	}

	if err := h.sessions.Establish(c, principal); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(strategy, "error").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues(strategy, "success").Inc()
	return c.JSON(http.StatusOK, toPrincipalResponse(principal))
}

// CheckIfAuthenticated always answers 200 with a constant body.
//
// @Summary      Constant probe
// @Tags         auth
// @Produce      plain
// @Success      200  {string}  string  "aa"
// @Router       /checkIfAuthenticated [get]
func (h *AuthHandler) CheckIfAuthenticated(c echo.Context) error {
	return c.String(http.StatusOK, checkIfAuthenticatedBody)
}
