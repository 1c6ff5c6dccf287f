package modkit

import (
	"net/http"

	"github.com/habibaehabb05/Factify/internal/modkit/httpkit"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler

	// MaxBody is 0 unless WithMaxBody was given
	MaxBody int64

	// router hooks set via options and exposed to modules
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
// later options win, so callers can override a module's defaults
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.subrouter == nil {
		c.subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		MaxBody:   c.maxBody,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}

// Mount registers own plus the external Register hook under b.Prefix
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	httpkit.MountUnder(r, b.Prefix, b.Mw, func(sub httpkit.Router) {
		sub = b.Subrouter(sub)
		own(sub)
		b.Register(sub)
	})
}

// BodyLimit returns MaxBody when set, else def
func (b Built) BodyLimit(def int64) int64 {
	if b.MaxBody > 0 {
		return b.MaxBody
	}
	return def
}
