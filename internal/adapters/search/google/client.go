// Package google searches through the Custom Search JSON API
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	perr "github.com/habibaehabb05/Factify/internal/platform/errors"
	"github.com/habibaehabb05/Factify/internal/platform/logger"
	str "github.com/habibaehabb05/Factify/internal/platform/strings"
	"github.com/habibaehabb05/Factify/internal/services/analysis/domain"

	"golang.org/x/time/rate"
)

const (
	baseURLDefault = "https://www.googleapis.com/customsearch/v1"
	defaultTimeout = 10 * time.Second
	maxNum         = 10 // API cap per request
	maxBodyBytes   = 1 << 20
)

// Options configures the Client
type Options struct {
	APIKey  string
	CX      string // programmable search engine id
	BaseURL string
	Timeout time.Duration
	RPS     float64
}

// Client queries the Custom Search API
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
}

// New builds a Client; key and cx are required
func New(o Options) (*Client, error) {
	if strings.TrimSpace(o.APIKey) == "" || strings.TrimSpace(o.CX) == "" {
		return nil, perr.InvalidArgf("google search needs both key and cx")
	}
	o.BaseURL = str.Or(o.BaseURL, baseURLDefault)
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	lim := rate.NewLimiter(rate.Inf, 0)
	if o.RPS > 0 {
		lim = rate.NewLimiter(rate.Limit(o.RPS), 1)
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: lim,
		log:     *logger.Named("google"),
	}, nil
}

type apiResponse struct {
	Items json.RawMessage `json:"items"`
}

type apiItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Search returns up to limit results in rank order
// an items field that is not an array is handed back verbatim as Raw
func (c *Client) Search(ctx context.Context, query string, limit int) (domain.SearchResult, error) {
	if limit <= 0 {
		return domain.SearchResult{WellFormed: true}, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.SearchResult{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "google rate wait")
	}

	q := url.Values{
		"key": {c.opts.APIKey},
		"cx":  {c.opts.CX},
		"q":   {query},
		"num": {strconv.Itoa(min(limit, maxNum))},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return domain.SearchResult{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "google new request failed")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.SearchResult{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "google do failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.SearchResult{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "google read failed")
	}
	if resp.StatusCode != http.StatusOK {
		return domain.SearchResult{}, perr.Newf(perr.ErrorCodeUnavailable, "google unexpected status %d", resp.StatusCode)
	}

	res, err := decode(body, limit)
	if err != nil {
		return domain.SearchResult{}, err
	}
	c.log.Debug().Str("query", query).Int("results", len(res.Items)).Bool("well_formed", res.WellFormed).Msg("search")
	return res, nil
}

func decode(body []byte, limit int) (domain.SearchResult, error) {
	var ar apiResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return domain.SearchResult{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "google decode failed")
	}
	raw := bytes.TrimSpace(ar.Items)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.SearchResult{WellFormed: true}, nil
	}
	if raw[0] != '[' {
		return domain.SearchResult{Raw: string(raw)}, nil
	}
	var items []apiItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return domain.SearchResult{Raw: string(raw)}, nil
	}
	out := make([]domain.EvidenceItem, 0, min(len(items), limit))
	for _, it := range items {
		if len(out) == limit {
			break
		}
		out = append(out, domain.EvidenceItem{Title: it.Title, Link: it.Link, Snippet: it.Snippet})
	}
	return domain.SearchResult{Items: out, WellFormed: true}, nil
}
