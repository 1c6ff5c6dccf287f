package http

import (
	stdhttp "net/http"
	"strings"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves pprof below prefix, e.g. "/debug" gives /debug/pprof/
// all methods are routed since the symbol endpoint takes POST
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	h := stdhttp.StripPrefix(prefix, mw.Profiler())
	r.Handle(prefix, h)
	r.Handle(prefix+"/*", h)
}
