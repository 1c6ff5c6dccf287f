// Package metrics owns the process prometheus registry and its /metrics endpoint
package metrics

import (
	"errors"
	"net/http"

	phttp "github.com/habibaehabb05/Factify/internal/platform/net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric the service exports
const Namespace = "factify"

var reg = newRegistry()

func newRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the process registry
func Registry() *prometheus.Registry { return reg }

// Register adds c to r and returns it; if an equal collector is already
// registered the existing one is returned so constructors can run twice
func Register[T prometheus.Collector](r prometheus.Registerer, c T) T {
	if r == nil {
		r = reg
	}
	if err := r.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// Handler serves the registry in the prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = reg
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Mount exposes GET /metrics when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Handle("/metrics", Handler(nil))
}
