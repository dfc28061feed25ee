package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/igilife/insurance-portal/internal/api/metrics"
	"github.com/igilife/insurance-portal/internal/core/domain"
	"github.com/igilife/insurance-portal/internal/core/ports"
)

const tokenTTL = 24 * time.Hour

// AuthHandler exposes the credential and session manager over HTTP.
type AuthHandler struct {
	manager   ports.SessionManager
	engine    ports.AccessEngine
	switcher  ports.RoleSwitcher
	jwtSecret string
}

func NewAuthHandler(manager ports.SessionManager, engine ports.AccessEngine, switcher ports.RoleSwitcher, jwtSecret string) *AuthHandler {
	return &AuthHandler{manager: manager, engine: engine, switcher: switcher, jwtSecret: jwtSecret}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user"`
}

type profileRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"      validate:"omitempty,email"`
	Department *string `json:"department,omitempty"`
	AgentID    *string `json:"agentId,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
}

type roleSwitchRequest struct {
	Role string `json:"role" validate:"required,oneof=admin agent user"`
}

type roleSwitchResponse struct {
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

// Login authenticates a principal and issues an attribution token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !h.manager.Login(c.Request().Context(), req.Email, req.Password) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return domain.ErrInvalidCredentials
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	user := h.manager.CurrentUser()
	token, err := h.issueToken(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Token: token, User: user})
}

// Logout clears the session. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Success      204  "no content"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.manager.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Session returns the authenticated principal and its derived role config.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	user := h.manager.CurrentUser()
	if user == nil {
		return domain.ErrNotAuthenticated
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// UpdateProfile merges the supplied fields into the session owner's record.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Fields to update"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if h.manager.CurrentUser() == nil {
		return domain.ErrNotAuthenticated
	}

	ok := h.manager.UpdateUserProfile(c.Request().Context(), ports.ProfileUpdate{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		AgentID:    req.AgentID,
		Avatar:     req.Avatar,
	})
	if !ok {
		// Duplicate email and storage failure alike collapse to false at the
		// manager boundary; the most common cause is the email conflict.
		return domain.ErrEmailTaken
	}
	return c.JSON(http.StatusOK, sessionResponse{User: h.manager.CurrentUser()})
}

// SwitchRole performs the user-initiated role change and reports the default
// landing view the client should navigate to.
//
// @Summary      Switch role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roleSwitchRequest  true  "Target role"
// @Success      200   {object}  roleSwitchResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/role [put]
func (h *AuthHandler) SwitchRole(c echo.Context) error {
	var req roleSwitchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	from := h.engine.CurrentRole()
	if !h.switcher.SwitchRole(c.Request().Context(), domain.Role(req.Role)) {
		return domain.ErrNotAuthenticated
	}
	metrics.RoleSwitchesTotal.WithLabelValues(string(from), req.Role).Inc()

	return c.JSON(http.StatusOK, roleSwitchResponse{
		Role:     req.Role,
		Redirect: domain.ServiceDashboard,
	})
}

func (h *AuthHandler) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(h.jwtSecret))
}
