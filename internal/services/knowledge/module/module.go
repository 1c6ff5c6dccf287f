// Package module wires the knowledge store into the API using modkit
package module

import (
	"context"

	modkit "github.com/habibaehabb05/Factify/internal/modkit"
	"github.com/habibaehabb05/Factify/internal/modkit/httpkit"
	str "github.com/habibaehabb05/Factify/internal/platform/strings"
	"github.com/habibaehabb05/Factify/internal/services/knowledge/domain"
	knowledgehttp "github.com/habibaehabb05/Factify/internal/services/knowledge/http"
	knowledgesvc "github.com/habibaehabb05/Factify/internal/services/knowledge/service"
)

// Warmer seeds the store ahead of the first query
type Warmer interface {
	Warm(ctx context.Context) error
}

// Ports is what the knowledge module exposes to other modules
type Ports struct {
	Knowledge domain.ServicePort
	Warmer    Warmer
}

// Module implements the knowledge module
type Module struct {
	b   modkit.Built
	svc *knowledgesvc.Svc
}

// DefaultMaxBodyBytes bounds a question body
const DefaultMaxBodyBytes = 64 << 10

// New constructs the knowledge module over deps.App's embedder
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("knowledge"),
		modkit.WithPrefix("/query"),
	}, opts...)...)

	return &Module{b: b, svc: knowledgesvc.New(deps.Backends().Embedder)}
}

// MountRoutes mounts POST <prefix> on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sub httpkit.Router) {
		knowledgehttp.Register(sub, m.svc, m.b.BodyLimit(DefaultMaxBodyBytes))
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Knowledge: m.svc, Warmer: m.svc} }
