package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nolivos/client-registry/internal/api/metrics"
	"github.com/nolivos/client-registry/internal/core/ports"
)

// ClientHandler handles HTTP requests for the client registry.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create handles POST /v1/clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  createClientResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), toCreateInput(req, session.Identity.Username))
	if err != nil {
		return err
	}

	metrics.ClientsCreatedTotal.WithLabelValues(string(result.Client.Status)).Inc()
	return c.JSON(http.StatusCreated, toCreateResponse(result))
}

// List handles GET /v1/clients: every record in creation order.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listClientsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listClientsResponse{
		Data:  toClientList(clients),
		Total: len(clients),
	})
}

// Draft handles GET /v1/clients/draft: the empty form with the next identifier.
//
// @Summary      New client form
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clientResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/clients/draft [get]
func (h *ClientHandler) Draft(c echo.Context) error {
	draft, err := h.service.Draft(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDraftResponse(draft))
}

// Get handles GET /v1/clients/:id.
//
// @Summary      Get a client by id
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  clientResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Search handles GET /v1/clients/search?q=: case-insensitive match on name or email.
//
// @Summary      Search clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Name or email fragment"
// @Success      200  {object}  searchClientsResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/clients/search [get]
func (h *ClientHandler) Search(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Search(c.Request().Context(), session.Identity.Username, req.Query)
	if err != nil {
		return err
	}

	metrics.SearchResultsCount.Observe(float64(len(result.Clients)))
	return c.JSON(http.StatusOK, toSearchResponse(req.Query, result))
}

// Stats handles GET /v1/stats.
//
// @Summary      Dashboard counters
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/stats [get]
func (h *ClientHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatsResponse(stats))
}
