package modkit

import (
	"github.com/habibaehabb05/Factify/internal/app"
	"github.com/habibaehabb05/Factify/internal/platform/config"
	"github.com/habibaehabb05/Factify/internal/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
	// App carries the backend clients; nil handles inside mean unconfigured
	App *app.Context
	// Metrics is where module collectors register, nil means the process registry
	Metrics prometheus.Registerer
}

// Backends returns the app context, never nil, so modules can probe handles freely
func (d Deps) Backends() *app.Context {
	if d.App == nil {
		return &app.Context{}
	}
	return d.App
}

// Logger returns Log or a component logger named after the module
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Named(component)
}
