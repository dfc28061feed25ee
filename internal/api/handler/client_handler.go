package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/igilife/insurance-portal/internal/core/domain"
	"github.com/igilife/insurance-portal/internal/core/ports"
)

// ClientHandler exposes client-record CRUD. All routes are gated on the
// clients service allow-list.
type ClientHandler struct {
	clients ports.ClientService
}

func NewClientHandler(clients ports.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type createClientRequest struct {
	Name       string `json:"name"       validate:"required"`
	NationalID string `json:"nationalId" validate:"required"`
	Contact    string `json:"contact"    validate:"required"`
	Email      string `json:"email"      validate:"omitempty,email"`
	Address    string `json:"address"`
	AgentID    string `json:"agentId"    validate:"required"`
}

type updateClientRequest struct {
	Name       *string `json:"name,omitempty"`
	NationalID *string `json:"nationalId,omitempty"`
	Contact    *string `json:"contact,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Address    *string `json:"address,omitempty"`
	AgentID    *string `json:"agentId,omitempty"`
}

type clientsResponse struct {
	Clients []domain.Client `json:"clients"`
	Total   int             `json:"total"`
}

// Create registers a new client record.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "New client details"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, ok := h.clients.Add(c.Request().Context(), ports.CreateClientInput{
		Name:       req.Name,
		NationalID: req.NationalID,
		Contact:    req.Contact,
		Email:      req.Email,
		Address:    req.Address,
		AgentID:    req.AgentID,
	})
	if !ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "client not saved")
	}
	return c.JSON(http.StatusCreated, client)
}

// List returns clients, optionally filtered by the q query parameter
// (case-insensitive substring over name, email, national id, and contact).
//
// @Summary      List or search clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  false  "Search query"
// @Success      200  {object}  clientsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	var clients []domain.Client
	if q := c.QueryParam("q"); q != "" {
		clients = h.clients.Search(c.Request().Context(), q)
	} else {
		clients = h.clients.List(c.Request().Context())
	}
	return c.JSON(http.StatusOK, clientsResponse{Clients: clients, Total: len(clients)})
}

// Update merges the supplied fields into the matching client record.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string               true  "Client id"
// @Param        body  body  updateClientRequest  true  "Fields to update"
// @Success      204   "no content"
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok := h.clients.Update(c.Request().Context(), c.Param("id"), ports.ClientUpdate{
		Name:       req.Name,
		NationalID: req.NationalID,
		Contact:    req.Contact,
		Email:      req.Email,
		Address:    req.Address,
		AgentID:    req.AgentID,
	})
	if !ok {
		return domain.ErrClientNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a client record.
//
// @Summary      Delete a client
// @Tags         clients
// @Security     BearerAuth
// @Param        id  path  string  true  "Client id"
// @Success      204  "no content"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if !h.clients.Delete(c.Request().Context(), c.Param("id")) {
		return domain.ErrClientNotFound
	}
	return c.NoContent(http.StatusNoContent)
}
