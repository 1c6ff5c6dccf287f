package service

import (
	"context"
	"errors"
	"sync"

	"github.com/habibaehabb05/Factify/internal/services/analysis/domain"
)

// scriptedLLM answers prompts in order; a nil entry in errs means success
type scriptedLLM struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	prompts []string
}

func (f *scriptedLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", nil
}

type failingLLM struct{ calls int }

func (f *failingLLM) Complete(context.Context, string) (string, error) {
	f.calls++
	return "", errors.New("model down")
}

type fakeSearch struct {
	res     domain.SearchResult
	err     error
	queries []string
	limits  []int
}

func (f *fakeSearch) Search(_ context.Context, q string, limit int) (domain.SearchResult, error) {
	f.queries = append(f.queries, q)
	f.limits = append(f.limits, limit)
	return f.res, f.err
}

type fakeScraper struct {
	text  string
	calls int
}

func (f *fakeScraper) Scrape(context.Context, string) string {
	f.calls++
	return f.text
}

type fakeOCR struct {
	text     string
	urlText  string
	gotBytes []byte
	urls     []string
}

func (f *fakeOCR) Text(_ context.Context, b []byte) string {
	f.gotBytes = b
	return f.text
}

func (f *fakeOCR) FromURL(_ context.Context, url string) string {
	f.urls = append(f.urls, url)
	return f.urlText
}

func items(n int) []domain.EvidenceItem {
	out := make([]domain.EvidenceItem, n)
	for i := range out {
		c := string(rune('a' + i))
		out[i] = domain.EvidenceItem{Title: "T" + c, Link: "http://" + c, Snippet: "S" + c}
	}
	return out
}
