// Package module wires the status and meta endpoints into the API
package module

import (
	"time"

	modkit "github.com/habibaehabb05/Factify/internal/modkit"
	"github.com/habibaehabb05/Factify/internal/modkit/httpkit"
	str "github.com/habibaehabb05/Factify/internal/platform/strings"

	statushttp "github.com/habibaehabb05/Factify/internal/services/status/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	deps      modkit.Deps
	startedAt time.Time
}

// New constructs the status module; it mounts at the root by default
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("status"),
	}, opts...)...)

	return &Module{b: b, deps: deps, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sub httpkit.Router) {
		statushttp.Register(sub, statushttp.Deps{
			App:       m.deps.App,
			StartedAt: m.startedAt,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
