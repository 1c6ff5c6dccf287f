package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/habibaehabb05/Factify/internal/app"
	"github.com/habibaehabb05/Factify/internal/modkit"
	modmodule "github.com/habibaehabb05/Factify/internal/modkit/module"
	"github.com/habibaehabb05/Factify/internal/platform/config"
	phttp "github.com/habibaehabb05/Factify/internal/platform/net/http"
	kit "github.com/habibaehabb05/Factify/internal/platform/testkit"
	"github.com/habibaehabb05/Factify/internal/services/analysis/domain"

	"github.com/prometheus/client_golang/prometheus"
)

type replyLLM struct{ replies []string }

func (l *replyLLM) Complete(context.Context, string) (string, error) {
	r := l.replies[0]
	if len(l.replies) > 1 {
		l.replies = l.replies[1:]
	}
	return r, nil
}

type oneResult struct{}

func (oneResult) Search(context.Context, string, int) (domain.SearchResult, error) {
	return domain.SearchResult{WellFormed: true, Items: []domain.EvidenceItem{{Title: "t", Link: "http://a", Snippet: "s"}}}, nil
}

func newServer(t *testing.T, be *app.Context) http.Handler {
	t.Helper()
	srv := phttp.NewServer(config.New().Prefix("ANALYSIS_TEST_"))
	m := New(modkit.Deps{Cfg: config.New(), App: be, Metrics: prometheus.NewRegistry()})
	m.MountRoutes(srv.Router())
	return srv.Handler()
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	return kit.Do(h, http.MethodPost, "/analyze", body)
}

func TestAnalyze_BareResponse(t *testing.T) {
	be := &app.Context{
		LLM:    &replyLLM{replies: []string{"q", `{"verdict":"Real","confidence_score":85,"explanation":"ok"}`}},
		Search: oneResult{},
	}
	rec := post(newServer(t, be), `{"content":"Messi won the 2023 Ballon d'Or","client":"web"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["verdict"] != "Real" || got["confidence_score"] != 85.0 || got["explanation"] != "ok" {
		t.Fatalf("body = %v", got)
	}
	if src, _ := got["sources"].([]any); len(src) != 1 || src[0] != "http://a" {
		t.Fatalf("sources = %v", got["sources"])
	}
	if _, enveloped := got["data"]; enveloped {
		t.Fatal("analysis result must not be enveloped")
	}
	if len(got) != 4 {
		t.Fatalf("unexpected keys: %v", got)
	}
}

func TestAnalyze_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		be     *app.Context
		body   string
		status int
		msg    string
	}{
		{"no llm", nil, `{"content":"x"}`, 500, "LLM not configured. Check keys."},
		{"invalid type", &app.Context{LLM: &replyLLM{replies: []string{"x"}}}, `{"type":"video","content":"x"}`, 400, "Invalid type: video"},
		{"missing content", &app.Context{LLM: &replyLLM{replies: []string{"x"}}}, `{"type":"text"}`, 400, "content is required"},
		{"bad json", &app.Context{LLM: &replyLLM{replies: []string{"x"}}}, `{"content":`, 400, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(newServer(t, tc.be), tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
			}
			var env phttp.Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatal(err)
			}
			if tc.msg != "" && env.Error != tc.msg {
				t.Fatalf("error = %q, want %q", env.Error, tc.msg)
			}
		})
	}
}

func TestAnalyze_BodyLimitFromConfig(t *testing.T) {
	t.Setenv("CORE_API_MAX_BODY_BYTES", "64")
	be := &app.Context{LLM: &replyLLM{replies: []string{"x"}}}
	rec := post(newServer(t, be), `{"type":"image","content":"`+strings.Repeat("A", 128)+`"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "exceeds") {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestModule_NameAndPorts(t *testing.T) {
	m := New(modkit.Deps{Metrics: prometheus.NewRegistry()})
	if m.Name() != "analysis" {
		t.Fatalf("name = %q", m.Name())
	}
	if _, ok := modmodule.PortsOf[domain.ServicePort](m); !ok {
		t.Fatal("analyzer port not exposed")
	}
}
