package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/igilife/insurance-portal/internal/core/domain"
	"github.com/igilife/insurance-portal/internal/core/ports"
)

// RoleHandler exposes the static role table and the engine's access queries.
type RoleHandler struct {
	engine ports.AccessEngine
}

func NewRoleHandler(engine ports.AccessEngine) *RoleHandler {
	return &RoleHandler{engine: engine}
}

type rolesResponse struct {
	Current domain.Role         `json:"current"`
	Roles   []domain.RoleConfig `json:"roles"`
}

type serviceAccessResponse struct {
	Service string `json:"service"`
	Allowed bool   `json:"allowed"`
}

type permissionResponse struct {
	Permission string `json:"permission"`
	Granted    bool   `json:"granted"`
}

// List returns the full static role table in declaration order, plus the
// engine's active role, for role-switch UIs.
//
// @Summary      List role configs
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  rolesResponse
// @Router       /v1/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, rolesResponse{
		Current: h.engine.CurrentRole(),
		Roles:   h.engine.AvailableRoles(),
	})
}

// CheckService answers whether the active role may access a service area.
// Unknown identifiers are a normal negative decision, not an error.
//
// @Summary      Check service access
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Service identifier"
// @Success      200  {object}  serviceAccessResponse
// @Router       /v1/access/services/{id} [get]
func (h *RoleHandler) CheckService(c echo.Context) error {
	id := c.Param("id")
	return c.JSON(http.StatusOK, serviceAccessResponse{
		Service: id,
		Allowed: h.engine.CanAccessService(id),
	})
}

// CheckPermission answers whether the active role holds a permission.
// Unknown permission names are rejected with 400 rather than a silent false.
//
// @Summary      Check permission
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        name  path  string  true  "Permission name"
// @Success      200   {object}  permissionResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/access/permissions/{name} [get]
func (h *RoleHandler) CheckPermission(c echo.Context) error {
	p, err := domain.ParsePermission(c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, permissionResponse{
		Permission: string(p),
		Granted:    h.engine.HasPermission(p),
	})
}
