// Package module wires the analysis pipeline into the API using modkit
package module

import (
	modkit "github.com/habibaehabb05/Factify/internal/modkit"
	"github.com/habibaehabb05/Factify/internal/modkit/httpkit"
	str "github.com/habibaehabb05/Factify/internal/platform/strings"
	"github.com/habibaehabb05/Factify/internal/services/analysis/domain"
	analysishttp "github.com/habibaehabb05/Factify/internal/services/analysis/http"
	analysissvc "github.com/habibaehabb05/Factify/internal/services/analysis/service"
)

// DefaultMaxBodyBytes fits a base64 encoded photo
const DefaultMaxBodyBytes = 20 << 20

// Ports is what the analysis module exposes to other modules
type Ports struct {
	Analyzer domain.ServicePort
}

// Module implements the analysis module
type Module struct {
	b    modkit.Built
	svc  *analysissvc.Svc
	body httpkit.BodyOptions
}

// New constructs the analysis module; backends come from deps.App
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analysis"),
		modkit.WithPrefix("/analyze"),
	}, opts...)...)

	be := deps.Backends()
	svc := analysissvc.New(analysissvc.Deps{
		LLM:     be.LLM,
		Search:  be.Search,
		Scraper: be.Scraper,
		OCR:     be.OCR,
		Metrics: analysissvc.NewMetrics(deps.Metrics),
	})

	return &Module{
		b:   b,
		svc: svc,
		body: httpkit.BodyOptions{
			MaxBytes: b.BodyLimit(deps.Cfg.Prefix("CORE_API_").MayInt64("MAX_BODY_BYTES", DefaultMaxBodyBytes)),
			// clients send extra fields; they are ignored
			DisallowUnknown: false,
		},
	}
}

// MountRoutes mounts POST <prefix> on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sub httpkit.Router) {
		analysishttp.Register(sub, m.svc, m.body)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Analyzer: m.svc} }
