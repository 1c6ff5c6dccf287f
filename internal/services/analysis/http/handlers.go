// Package http provides http transport for the analysis pipeline
package http

import (
	stdhttp "net/http"

	"github.com/habibaehabb05/Factify/internal/modkit/httpkit"
	"github.com/habibaehabb05/Factify/internal/services/analysis/domain"
)

// Register mounts the analysis endpoint on the given router
func Register(r httpkit.Router, s domain.ServicePort, body httpkit.BodyOptions) {
	h := &handlers{svc: s}

	// the response is the bare result object, no envelope
	httpkit.PostJSON[domain.Request](r, "/", h.analyze, body)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /analyze Analysis analyze
// @Summary Fact-check a claim given as text, an article URL, or a base64 image
// @Tags Analysis
// @Accept json
// @Produce json
// @Param payload body domain.Request true "Claim"
// @Success 200 {object} domain.Response "verdict"
// @Failure 400 {object} httpkit.Envelope "input could not be used"
// @Failure 500 {object} httpkit.Envelope "model missing or failed"
// @Router /analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.Request) (any, error) {
	out, err := h.svc.Analyze(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Plain(out), nil
}
