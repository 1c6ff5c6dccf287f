// Package http exposes the knowledge store over http
package http

import (
	stdhttp "net/http"

	"github.com/habibaehabb05/Factify/internal/modkit/httpkit"
	"github.com/habibaehabb05/Factify/internal/services/knowledge/domain"
)

// Register mounts the query endpoint on the given router
func Register(r httpkit.Router, s domain.ServicePort, maxBytes int64) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.QueryInput](r, "/", h.query, httpkit.BodyOptions{MaxBytes: maxBytes, DisallowUnknown: true})
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /query Knowledge query
// @Summary Look up the passages closest to a question
// @Tags Knowledge
// @Accept json
// @Produce json
// @Param payload body domain.QueryInput true "Question"
// @Success 200 {object} httpkit.Envelope{data=domain.QueryResult} "matches"
// @Failure 400 {object} httpkit.Envelope "bad question"
// @Failure 503 {object} httpkit.Envelope "embeddings not configured"
// @Router /query [post]
func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	return h.svc.Query(r.Context(), in)
}
