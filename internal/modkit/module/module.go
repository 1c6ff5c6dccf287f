// Package module defines the contract every API module satisfies and the
// helpers modules use to find each other's ports
package module

import (
	phttp "github.com/habibaehabb05/Factify/internal/platform/net/http"
)

// Module mounts its routes and exposes a port bundle under a stable name
// it lives apart from modkit so modules exporting ports avoid import knots
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
