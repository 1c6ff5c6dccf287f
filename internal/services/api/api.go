// Package api composes the HTTP API from its modules
package api

import (
	"context"
	"time"

	"github.com/habibaehabb05/Factify/internal/app"
	"github.com/habibaehabb05/Factify/internal/platform/config"
	"github.com/habibaehabb05/Factify/internal/platform/logger"
	"github.com/habibaehabb05/Factify/internal/platform/metrics"
	phttp "github.com/habibaehabb05/Factify/internal/platform/net/http"
	"github.com/habibaehabb05/Factify/internal/platform/net/middleware"

	"github.com/habibaehabb05/Factify/internal/modkit"
	"github.com/habibaehabb05/Factify/internal/modkit/httpkit"
	"github.com/habibaehabb05/Factify/internal/modkit/module"
	"github.com/habibaehabb05/Factify/internal/modkit/swaggerkit"

	analysismod "github.com/habibaehabb05/Factify/internal/services/analysis/module"
	knowledgemod "github.com/habibaehabb05/Factify/internal/services/knowledge/module"
	statusmod "github.com/habibaehabb05/Factify/internal/services/status/module"

	"github.com/prometheus/client_golang/prometheus"
)

// Options are the API options
type Options struct {
	// Config is the CORE_API_ scoped view
	Config config.Conf
	// App holds the backend clients; nil runs every module unconfigured
	App    *app.Context
	Logger *logger.Logger
	// Metrics is where collectors register, nil means the process registry
	Metrics prometheus.Registerer

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount installs the common middleware stack and every module onto r
// it returns the mounted modules so callers can reach their ports
func Mount(r phttp.Router, opt Options) []module.Module {
	deps := modkit.Deps{
		Log:     opt.Logger,
		Cfg:     config.New(),
		App:     opt.App,
		Metrics: opt.Metrics,
	}

	stack := httpkit.StackFromConfig(opt.Config)
	if opt.EnableMetrics {
		stack.Metrics = middleware.NewHTTPMetrics(opt.Metrics)
	}
	// chi wants middlewares before any route
	r.Use(httpkit.CommonStack(stack)...)

	mods := []module.Module{
		statusmod.New(deps),
		analysismod.New(deps),
		knowledgemod.New(deps),
	}
	for _, m := range mods {
		// register each module's ports under its own name (for cross-module lookups)
		module.Register(m.Name(), m.Ports())
		m.MountRoutes(r)
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	metrics.Mount(r, opt.EnableMetrics)

	return mods
}

// DefaultWarmTimeout bounds the startup warm-up when no timeout is given
const DefaultWarmTimeout = 30 * time.Second

// Warm runs every module's warm-up hook under timeout; failures are logged, never fatal
func Warm(ctx context.Context, mods []module.Module, timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultWarmTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	module.Each(mods, func(m module.Module, w knowledgemod.Warmer) {
		if err := w.Warm(ctx); err != nil {
			logger.C(ctx).Warn().Err(err).Str("module", m.Name()).Msg("warm-up skipped")
		}
	})
}
