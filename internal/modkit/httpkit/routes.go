package httpkit

import (
	"net/http"

	str "github.com/habibaehabb05/Factify/internal/platform/strings"
)

// MountUnder mounts a subrouter at prefix and applies per-module middlewares
// the root prefix uses an inline group since chi cannot mount twice on "/"
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	with := func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	}
	if p := str.NormPrefix(prefix); p != "/" {
		r.Route(p, with)
		return
	}
	r.Group(with)
}
