// Package domain holds the analysis pipeline types and ports
package domain

import (
	"github.com/habibaehabb05/Factify/internal/core/verdict"
)

// Kind is the form the claim arrives in
type Kind string

const (
	KindText  Kind = "text"
	KindURL   Kind = "url"
	KindImage Kind = "image"
)

// Preprocessing selects optional claim cleanup
type Preprocessing string

const (
	PreprocessNone  Preprocessing = "none"
	PreprocessClean Preprocessing = "clean"
)

// Request is the body of POST /analyze
// type and preprocessing are validated by the service so the error text stays stable
type Request struct {
	Type          Kind          `json:"type" example:"text"`
	Content       string        `json:"content" validate:"required" example:"The earth is flat."`
	Preprocessing Preprocessing `json:"preprocessing,omitempty" example:"none"`
}

// WithDefaults fills the optional fields
func (r Request) WithDefaults() Request {
	if r.Type == "" {
		r.Type = KindText
	}
	if r.Preprocessing == "" {
		r.Preprocessing = PreprocessNone
	}
	return r
}

// EvidenceItem is one ranked search hit
type EvidenceItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Placeholders for fields a backend left empty
const (
	UnknownSource = "Unknown Source"
	NoLink        = "#"
)

// WithDefaults fills a missing title and link
func (e EvidenceItem) WithDefaults() EvidenceItem {
	if e.Title == "" {
		e.Title = UnknownSource
	}
	if e.Link == "" {
		e.Link = NoLink
	}
	return e
}

// SearchResult is what a search backend hands back
// when WellFormed is false the backend's payload is carried verbatim in Raw
type SearchResult struct {
	Items      []EvidenceItem
	Raw        string
	WellFormed bool
}

// Links returns the item links in rank order, placeholders included
func (s SearchResult) Links() []string {
	out := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		out = append(out, it.WithDefaults().Link)
	}
	return out
}

// Response is the analysis result
type Response = verdict.Response
