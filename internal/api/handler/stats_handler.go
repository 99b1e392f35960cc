package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shoplist/shopping-api/internal/core/ports"
)

type StatsHandler struct {
	data ports.DataService
}

func NewStatsHandler(data ports.DataService) *StatsHandler {
	return &StatsHandler{data: data}
}

// Get handles GET /stats.
//
// @Summary      Collection sizes
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Stats
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	stats, err := h.data.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
