// Package scrape pulls article body text out of web pages
package scrape

import (
	"bytes"
	"context"
	"html"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/habibaehabb05/Factify/internal/adapters/htmlx"
	"github.com/habibaehabb05/Factify/internal/core/normalize"
	"github.com/habibaehabb05/Factify/internal/platform/logger"
	str "github.com/habibaehabb05/Factify/internal/platform/strings"

	"github.com/microcosm-cc/bluemonday"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultTimeout   = 10 * time.Second
	DefaultMaxChars  = 10000
	maxPageBytes     = 5 << 20
)

// Options configures the Scraper
type Options struct {
	UserAgent string
	Timeout   time.Duration
	MaxChars  int
}

// Scraper fetches a page and returns its paragraph text
type Scraper struct {
	http   *http.Client
	opts   Options
	policy *bluemonday.Policy
	log    logger.Logger
}

// New creates a Scraper with sane defaults
func New(o Options) *Scraper {
	o.UserAgent = str.Or(o.UserAgent, DefaultUserAgent)
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxChars <= 0 {
		o.MaxChars = DefaultMaxChars
	}
	policy := bluemonday.StrictPolicy()
	policy.AddSpaceWhenStrippingTag(true)
	return &Scraper{
		http:   &http.Client{Timeout: o.Timeout},
		opts:   o,
		policy: policy,
		log:    *logger.Named("scrape"),
	}
}

// Scrape returns the page's <p> text joined by single spaces, capped at MaxChars runes.
// pages without paragraphs fall back to the sanitized body text.
// any failure (transport, timeout, status, non-HTML) yields ""
func (s *Scraper) Scrape(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.log.Debug().Err(err).Str("url", url).Msg("scrape bad url")
		return ""
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.http.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("scrape fetch failed")
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("scrape unexpected status")
		return ""
	}
	ct := resp.Header.Get("Content-Type")
	if !isHTML(ct) {
		s.log.Debug().Str("content_type", ct).Str("url", url).Msg("scrape skipped non-html")
		return ""
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxPageBytes), ct)
	if err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("scrape charset failed")
		return ""
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("scrape read failed")
		return ""
	}

	text := s.Extract(raw)
	s.log.Debug().Str("url", url).Int("chars", normalize.RuneLen(text)).Msg("scraped")
	return text
}

// Extract returns the capped article text of an HTML document
func (s *Scraper) Extract(page []byte) string {
	doc, err := nethtml.Parse(bytes.NewReader(page))
	if err != nil {
		return ""
	}

	var paras []string
	htmlx.Find(doc, func(n *nethtml.Node) bool {
		if n.Type == nethtml.ElementNode && n.DataAtom == atom.P {
			if t := htmlx.Text(n); t != "" {
				paras = append(paras, t)
			}
			return false
		}
		return true
	})

	text := strings.TrimSpace(strings.Join(paras, " "))
	if text == "" {
		text = s.bodyText(doc)
	}
	return normalize.Head(text, s.opts.MaxChars)
}

// bodyText strips every tag from <body> with the strict policy
func (s *Scraper) bodyText(doc *nethtml.Node) string {
	b := htmlx.First(doc, func(n *nethtml.Node) bool { return n.DataAtom == atom.Body })
	if b == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := nethtml.Render(&buf, b); err != nil {
		return ""
	}
	clean := s.policy.SanitizeReader(&buf).String()
	return strings.Join(strings.Fields(html.UnescapeString(clean)), " ")
}

func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}
