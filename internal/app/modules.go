package app

import (
	"github.com/nfrund/hallrush/internal/module"
	"github.com/nfrund/hallrush/internal/modules/hallrush"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(opts hallrush.Options) []module.Module {
	return []module.Module{
		// Add new application modules here.
		hallrush.New(opts),
	}
}
