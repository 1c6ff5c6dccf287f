// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	phttp "github.com/habibaehabb05/Factify/internal/platform/net/http"
	"github.com/habibaehabb05/Factify/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router

	// BodyOptions tunes request body parsing per route
	BodyOptions = bind.JSONOptions
)

// OK returns an enveloped 200 response
func OK(data any) Response { return phttp.OK(data) }

// Plain returns a 200 response whose body is data itself, for wire contracts without an envelope
func Plain(data any) Response { return phttp.Plain(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }
