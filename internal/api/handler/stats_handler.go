package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cadmin/cadmin-api/internal/core/ports"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get returns the dashboard aggregates.
//
// @Summary      Dashboard stats
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Get(c.Request().Context(), p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toStatsResponse(stats))
}
