package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// DashboardHandler serves tenant-wide aggregates.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats returns the workspace summary: income/expense totals, employee
// count, pending absences, and low-stock count.
//
// @Summary      Workspace dashboard figures
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), claims.TenantSession)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
