package server

import (
	"github.com/nfrund/hallrush/internal/handlers"
)

// RegisterRoutes sets up the routes that belong to no module.
func (s *Server) RegisterRoutes() {
	homeHandler := handlers.NewHomeHandler("/setup")

	s.E.GET("/", homeHandler.HomeGet)
	s.E.GET("/health", homeHandler.HealthGet)
}
