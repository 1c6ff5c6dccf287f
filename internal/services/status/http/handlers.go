// Package http provides the liveness and meta endpoints
package http

import (
	"net/http"
	"time"

	"github.com/habibaehabb05/Factify/internal/app"
	"github.com/habibaehabb05/Factify/internal/core/version"
	"github.com/habibaehabb05/Factify/internal/modkit/httpkit"
)

// ServiceName is reported by GET /
const ServiceName = "Factify Advanced RAG Service"

// Deps are the handler dependencies
type Deps struct {
	App       *app.Context
	StartedAt time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts GET / and the /meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/", h.status)
	r.Route("/meta", func(m httpkit.Router) {
		httpkit.Get(m, "/health", h.health)
		httpkit.Get(m, "/ready", h.ready)
		httpkit.Get(m, "/version", h.version)
		httpkit.Get(m, "/service", h.service)
	})
}

//
// Swagger DTOs and route docs
//

// StatusResponse is the liveness payload served at the root
// swagger:model
type StatusResponse struct {
	Status    string `json:"status"     example:"active"`
	Service   string `json:"service"    example:"Factify Advanced RAG Service"`
	LLMStatus string `json:"llm_status" example:"ready"` // ready missing_key
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"factify-api"`
	Started string `json:"started"  example:"2026-10-18T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-18T13:05:00Z"`
}

// ReadyResponse summarizes which backends are configured
type ReadyResponse struct {
	Status   string        `json:"status" example:"ok"` // ok degraded
	Backends []app.Backend `json:"backends"`
	Now      string        `json:"now"    example:"2026-10-18T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"factify-api"`
	Started string `json:"started" example:"2026-10-18T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET / Status status
// @Summary Liveness and model availability
// @Tags Status
// @Produce json
// @Success 200 {object} StatusResponse "active"
// @Router / [get]
func (h *handlers) status(_ *http.Request) (any, error) {
	llm := "missing_key"
	if h.deps.App.LLMReady() {
		llm = "ready"
	}
	return httpkit.Plain(StatusResponse{
		Status:    "active",
		Service:   ServiceName,
		LLMStatus: llm,
	}), nil
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=HealthResponse} ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: version.Service,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Which backends are configured
// @Description degraded means at least one backend is missing; the service still answers
// @Tags Meta
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=ReadyResponse} ok
// @Router /meta/ready [get]
func (h *handlers) ready(_ *http.Request) (any, error) {
	report := h.deps.App.Report()
	overall := "ok"
	for _, b := range report {
		if !b.Ready {
			overall = "degraded"
			break
		}
	}
	return ReadyResponse{
		Status:   overall,
		Backends: report,
		Now:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=version.BuildInfo} ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=ServiceResponse} ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    version.Service,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}
