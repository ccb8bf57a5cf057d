package module

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/hallrush/internal/registry"
)

// Module is a self-contained application feature.
type Module interface {
	// Name returns a unique identifier for the module.
	Name() string

	// Register publishes the module's services in the registry.
	Register(reg *registry.Registry) error

	// Boot runs after every module has registered. Routes and background
	// subscribers are set up here.
	Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error

	// Shutdown releases the module's resources.
	Shutdown(ctx context.Context) error
}

// BaseModule provides no-op implementations for modules to embed.
type BaseModule struct{}

func (m *BaseModule) Register(reg *registry.Registry) error { return nil }
func (m *BaseModule) Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error {
	return nil
}
func (m *BaseModule) Shutdown(ctx context.Context) error {
	return nil
}
