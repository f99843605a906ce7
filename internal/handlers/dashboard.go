package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kayotsaha/authweb/internal/flow"
	"github.com/kayotsaha/authweb/web/src/templates/pages"
)

// DashboardHandler handles requests for the authenticated area.
type DashboardHandler struct{}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// DashboardGet shows the landing page behind the login. RequireToken has
// already checked that a session token exists.
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	return renderPage(c, http.StatusOK, "Dashboard", flow.Outcome{}, pages.Dashboard())
}
