package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/habibaehabb05/Factify/internal/core/normalize"
)

const article = `<html><head><title>ignored</title><script>var p = "<p>no</p>";</script></head>
<body><nav>Menu</nav>
<p>The Earth is an   oblate
spheroid.</p>
<p>It is <a href="/x">not</a> flat.</p>
<p>   </p>
</body></html>`

func serve(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestScrape_JoinsParagraphs(t *testing.T) {
	url := serve(t, func(w http.ResponseWriter, r *http.Request) {
		if r.UserAgent() != DefaultUserAgent {
			t.Errorf("ua = %q", r.UserAgent())
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(article))
	})
	got := New(Options{}).Scrape(context.Background(), url)
	if got != "The Earth is an oblate spheroid. It is not flat." {
		t.Fatalf("Scrape = %q", got)
	}
}

func TestScrape_CapsRunes(t *testing.T) {
	long := "<p>" + strings.Repeat("\u00e9", 50) + "</p>"
	url := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(long))
	})
	got := New(Options{MaxChars: 10}).Scrape(context.Background(), url)
	if normalize.RuneLen(got) != 10 {
		t.Fatalf("len = %d (%q)", normalize.RuneLen(got), got)
	}
}

func TestScrape_Latin1Charset(t *testing.T) {
	url := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<p>caf\xe9</p>"))
	})
	if got := New(Options{}).Scrape(context.Background(), url); got != "caf\u00e9" {
		t.Fatalf("Scrape = %q", got)
	}
}

func TestScrape_BodyFallbackWithoutParagraphs(t *testing.T) {
	url := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><div>Breaking:</div><div>Tom &amp; Jerry</div><script>x()</script></body></html>`))
	})
	if got := New(Options{}).Scrape(context.Background(), url); got != "Breaking: Tom & Jerry" {
		t.Fatalf("Scrape = %q", got)
	}
}

func TestScrape_EmptyOnFailure(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"not found": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("<p>missing</p>"))
		},
		"image": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("\x89PNG\r\n\x1a\n"))
		},
		"slow": func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			url := serve(t, h)
			if got := New(Options{Timeout: 50 * time.Millisecond}).Scrape(context.Background(), url); got != "" {
				t.Fatalf("Scrape = %q", got)
			}
		})
	}
	if got := New(Options{}).Scrape(context.Background(), "::not a url"); got != "" {
		t.Fatalf("bad url = %q", got)
	}
}
