package domain

import "context"

// Completer is a single turn language model call
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Searcher queries a web search backend
type Searcher interface {
	Search(ctx context.Context, query string, limit int) (SearchResult, error)
}

// Scraper extracts article body text from a URL, "" on any failure
type Scraper interface {
	Scrape(ctx context.Context, url string) string
}

// OCR recognizes text in images, "" when nothing was recognized
type OCR interface {
	Text(ctx context.Context, image []byte) string
	FromURL(ctx context.Context, url string) string
}

// ServicePort is consumed by handlers and the CLI
type ServicePort interface {
	Analyze(ctx context.Context, in Request) (Response, error)
}
