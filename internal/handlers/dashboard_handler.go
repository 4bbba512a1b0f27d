package handlers

import (
	"net/http"
	"time"

	apierrors "smartbudget/internal/errors"
	"smartbudget/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler handles the dashboard composition endpoint
type DashboardHandler struct {
	dashboardService services.DashboardServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the current-month overview: summary totals, active
// budgets with spend figures, recent expenses, per-category totals, and
// weekly spending buckets.
//
// Method: GET /api/v1/dashboard
// Authentication: Required (JWT)
//
// Error Responses:
//   - 401: Missing or invalid token
//   - 500: Dashboard data could not be assembled - DASHBOARD_001
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	dashboard, err := h.dashboardService.GetDashboard(userID, time.Now().UTC())
	if err != nil {
		return SendError(c, apierrors.DashboardUnavailable)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dashboard,
	})
}
