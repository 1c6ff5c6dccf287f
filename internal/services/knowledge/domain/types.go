// Package domain holds the knowledge lookup types and ports
package domain

import "context"

// Embedder turns texts into vectors
// the method set matches langchaingo's embeddings.Embedder
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// QueryInput is the body of POST /query
type QueryInput struct {
	Question string `json:"question" validate:"required" example:"What is Factify?"`
	K        int    `json:"k,omitempty" validate:"omitempty,min=1,max=20" example:"2"`
}

// Match is one passage and its cosine similarity to the question
type Match struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// QueryResult is the response of POST /query
type QueryResult struct {
	Question string  `json:"question"`
	Matches  []Match `json:"matches"`
}

// ServicePort is consumed by handlers and the CLI
type ServicePort interface {
	Query(ctx context.Context, in QueryInput) (QueryResult, error)
	Ready() bool
}
