package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/hallrush/internal/module"
	"github.com/nfrund/hallrush/internal/registry"
)

// InitModules registers every module, then boots them in the same order on
// the root route group. Registration finishes before any module boots, so a
// module may use services another one registered.
func (s *Server) InitModules(ctx context.Context, modules []module.Module, reg *registry.Registry) error {
	for _, m := range modules {
		slog.Debug("Registering module", "module", m.Name())
		if err := m.Register(reg); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}

	for _, m := range modules {
		slog.Debug("Booting module", "module", m.Name())
		if err := m.Boot(ctx, s.E.Group(""), reg); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		s.modules = append(s.modules, m)
	}
	return nil
}

// shutdownModules stops the booted modules in reverse order.
func (s *Server) shutdownModules(ctx context.Context) {
	for i := len(s.modules) - 1; i >= 0; i-- {
		m := s.modules[i]
		if err := m.Shutdown(ctx); err != nil {
			slog.Error("Module shutdown failed", "module", m.Name(), "error", err)
		}
	}
	s.modules = nil
}
