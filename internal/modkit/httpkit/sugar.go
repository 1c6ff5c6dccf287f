package httpkit

import (
	"net/http"

	phttp "github.com/habibaehabb05/Factify/internal/platform/net/http"
)

// Get mounts a body-less JSON handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// PostJSON mounts a pure JSON handler under POST
// opts override the default body limits (1MB, unknown fields rejected)
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...BodyOptions) {
	phttp.PostJSON(r, path, h, opts...)
}
