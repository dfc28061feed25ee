package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/igilife/insurance-portal/internal/api/metrics"
	"github.com/igilife/insurance-portal/internal/core/domain"
	"github.com/igilife/insurance-portal/internal/core/ports"
)

// UserHandler exposes user administration. All routes are gated on the
// canManageUsers permission.
type UserHandler struct {
	manager ports.SessionManager
}

func NewUserHandler(manager ports.SessionManager) *UserHandler {
	return &UserHandler{manager: manager}
}

type createUserRequest struct {
	Name       string `json:"name"       validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=8"`
	Role       string `json:"role"       validate:"required,oneof=admin agent user"`
	Department string `json:"department,omitempty"`
	AgentID    string `json:"agentId,omitempty"`
}

type usersResponse struct {
	Users []domain.User `json:"users"`
	Total int           `json:"total"`
}

// Create registers a new credential record.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  createUserRequest  true  "New user details"
// @Success      201   "created"
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok := h.manager.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Secret:     req.Password,
		Role:       domain.Role(req.Role),
		Department: req.Department,
		AgentID:    req.AgentID,
	})
	if !ok {
		return domain.ErrEmailTaken
	}
	metrics.UsersCreatedTotal.WithLabelValues(req.Role).Inc()
	return c.NoContent(http.StatusCreated)
}

// List returns every user in storage order, secrets stripped.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users := h.manager.Users(c.Request().Context())
	return c.JSON(http.StatusOK, usersResponse{Users: users, Total: len(users)})
}

// Delete removes a user. Deleting the session owner also ends the session.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204  "no content"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if !h.manager.DeleteUser(c.Request().Context(), c.Param("id")) {
		return domain.ErrUserNotFound
	}
	return c.NoContent(http.StatusNoContent)
}
