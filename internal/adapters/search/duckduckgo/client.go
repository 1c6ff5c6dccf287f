// Package duckduckgo searches the DuckDuckGo HTML endpoint
package duckduckgo

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/habibaehabb05/Factify/internal/adapters/htmlx"
	perr "github.com/habibaehabb05/Factify/internal/platform/errors"
	"github.com/habibaehabb05/Factify/internal/platform/logger"
	str "github.com/habibaehabb05/Factify/internal/platform/strings"
	"github.com/habibaehabb05/Factify/internal/services/analysis/domain"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/time/rate"
)

const (
	baseURLDefault = "https://html.duckduckgo.com/html/"
	defaultTimeout = 10 * time.Second
	defaultUA      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxPageBytes   = 2 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// RPS caps outgoing queries; <= 0 disables the limiter
	RPS   float64
	Burst int
}

// Client queries DuckDuckGo and parses the organic results
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
}

// New creates a Client with sane defaults
func New(o Options) *Client {
	o.BaseURL = str.Or(o.BaseURL, baseURLDefault)
	o.UserAgent = str.Or(o.UserAgent, defaultUA)
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Burst <= 0 {
		o.Burst = 1
	}
	lim := rate.NewLimiter(rate.Inf, 0)
	if o.RPS > 0 {
		lim = rate.NewLimiter(rate.Limit(o.RPS), o.Burst)
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: lim,
		log:     *logger.Named("duckduckgo"),
	}
}

// Search returns up to limit organic results in rank order
func (c *Client) Search(ctx context.Context, query string, limit int) (domain.SearchResult, error) {
	if limit <= 0 {
		return domain.SearchResult{WellFormed: true}, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.SearchResult{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "duckduckgo rate wait")
	}

	form := url.Values{"q": {query}, "kl": {"wt-wt"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.SearchResult{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "duckduckgo new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.SearchResult{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "duckduckgo do failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return domain.SearchResult{}, perr.Newf(perr.ErrorCodeUnavailable, "duckduckgo unexpected status %d", resp.StatusCode)
	}
	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return domain.SearchResult{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "duckduckgo parse failed")
	}

	items := Parse(doc, limit)
	c.log.Debug().
		Str("query", query).
		Int("results", len(items)).
		Dur("took", time.Since(start)).
		Msg("search")
	return domain.SearchResult{Items: items, WellFormed: true}, nil
}

// Parse extracts up to limit organic results from a results page, skipping ads
func Parse(doc *html.Node, limit int) []domain.EvidenceItem {
	var out []domain.EvidenceItem
	htmlx.Find(doc, func(n *html.Node) bool {
		if len(out) >= limit {
			return false
		}
		if n.Type != html.ElementNode || !htmlx.HasClass(n, "result") {
			return true
		}
		if htmlx.HasClass(n, "result--ad") {
			return false
		}
		a := htmlx.First(n, func(x *html.Node) bool { return x.DataAtom == atom.A && htmlx.HasClass(x, "result__a") })
		if a == nil {
			return true
		}
		link, ok := resolveLink(htmlx.Attr(a, "href"))
		if !ok {
			return false
		}
		item := domain.EvidenceItem{Title: htmlx.Text(a), Link: link}
		if s := htmlx.First(n, func(x *html.Node) bool { return htmlx.HasClass(x, "result__snippet") }); s != nil {
			item.Snippet = htmlx.Text(s)
		}
		out = append(out, item)
		return false
	})
	return out
}

// resolveLink unwraps the /l/?uddg= redirect; ad clicks (/y.js) report false
func resolveLink(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if strings.HasSuffix(u.Host, "duckduckgo.com") || u.Host == "" {
		switch {
		case u.Path == "/y.js":
			return "", false
		case strings.HasPrefix(u.Path, "/l/"):
			if target := u.Query().Get("uddg"); target != "" {
				return target, true
			}
			return "", false
		}
	}
	return href, true
}
