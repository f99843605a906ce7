package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/kayotsaha/authweb/internal/flow"
)

// HomeHandler handles requests for the site root.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet sends visitors to the login page, which forwards signed-in users
// on to the dashboard.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	return redirect(c, flow.PathLogin)
}
