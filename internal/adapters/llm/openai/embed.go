package openai

import (
	"context"
	"net/http"
	"strings"
	"time"

	perr "github.com/habibaehabb05/Factify/internal/platform/errors"
	str "github.com/habibaehabb05/Factify/internal/platform/strings"

	goopenai "github.com/sashabaranov/go-openai"
)

const (
	DefaultEmbedBaseURL = "https://router.huggingface.co/v1"
	DefaultEmbedModel   = "sentence-transformers/all-MiniLM-L6-v2"
)

// EmbedOptions configures the Embedder
type EmbedOptions struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Embedder turns texts into vectors through an OpenAI-compatible /embeddings endpoint
type Embedder struct {
	api   *goopenai.Client
	model goopenai.EmbeddingModel
}

// NewEmbedder builds an Embedder; the API key is required
func NewEmbedder(o EmbedOptions) (*Embedder, error) {
	if strings.TrimSpace(o.APIKey) == "" {
		return nil, perr.InvalidArgf("embedding api key is empty")
	}
	o.BaseURL = str.Or(o.BaseURL, DefaultEmbedBaseURL)
	o.Model = str.Or(o.Model, DefaultEmbedModel)
	cfg := goopenai.DefaultConfig(o.APIKey)
	cfg.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: o.Timeout}
	}
	return &Embedder{api: goopenai.NewClientWithConfig(cfg), model: goopenai.EmbeddingModel(o.Model)}, nil
}

// EmbedDocuments returns one vector per text, in input order
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := e.api.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{Input: texts, Model: e.model})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "embeddings request failed")
	}
	if len(resp.Data) != len(texts) {
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "embeddings: got %d vectors for %d texts", len(resp.Data), len(texts))
	}
	out := make([][]float32, len(texts))
	for i, d := range resp.Data {
		idx := d.Index
		if idx < 0 || idx >= len(out) {
			idx = i
		}
		out[idx] = d.Embedding
	}
	return out, nil
}

// EmbedQuery embeds a single text
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vs, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vs[0], nil
}
