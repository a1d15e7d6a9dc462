package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/driveway/rental-system/internal/core/ports"
)

type AdminHandler struct {
	dashboard ports.DashboardService
}

func NewAdminHandler(dashboard ports.DashboardService) *AdminHandler {
	return &AdminHandler{dashboard: dashboard}
}

// Stats handles GET /v1/admin/stats.
//
// @Summary      Dashboard figures
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
