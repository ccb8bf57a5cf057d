package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeHandler serves the routes that sit outside any game module.
type HomeHandler struct {
	landing string
}

// NewHomeHandler creates a HomeHandler that sends visitors to landing.
func NewHomeHandler(landing string) *HomeHandler {
	return &HomeHandler{landing: landing}
}

// HomeGet redirects to the landing page.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.landing)
}

// HealthGet reports that the process is serving.
func (h *HomeHandler) HealthGet(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
