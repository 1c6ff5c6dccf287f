package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/habibaehabb05/Factify/internal/app"
	"github.com/habibaehabb05/Factify/internal/modkit"
	modmodule "github.com/habibaehabb05/Factify/internal/modkit/module"
	"github.com/habibaehabb05/Factify/internal/platform/config"
	phttp "github.com/habibaehabb05/Factify/internal/platform/net/http"
	kit "github.com/habibaehabb05/Factify/internal/platform/testkit"
	"github.com/habibaehabb05/Factify/internal/services/knowledge/domain"
)

type flatEmbedder struct{}

func (flatEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, float32(i)}
	}
	return out, nil
}

func (flatEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func serve(be *app.Context, body string) *httptest.ResponseRecorder {
	srv := phttp.NewServer(config.New().Prefix("KNOWLEDGE_TEST_"))
	New(modkit.Deps{App: be}).MountRoutes(srv.Router())
	return kit.Do(srv.Handler(), http.MethodPost, "/query", body)
}

func TestQuery_Envelope(t *testing.T) {
	rec := serve(&app.Context{Embedder: flatEmbedder{}}, `{"question":"What is Factify?","k":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data domain.QueryResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.Question != "What is Factify?" || len(env.Data.Matches) != 1 {
		t.Fatalf("data = %+v", env.Data)
	}
	if env.Data.Matches[0].Text != "Factify is a fake news detection app." {
		t.Fatalf("top match = %q", env.Data.Matches[0].Text)
	}
}

func TestQuery_Statuses(t *testing.T) {
	cases := []struct {
		name   string
		be     *app.Context
		body   string
		status int
	}{
		{"no embeddings", nil, `{"question":"x"}`, http.StatusServiceUnavailable},
		{"missing question", &app.Context{Embedder: flatEmbedder{}}, `{}`, http.StatusBadRequest},
		{"k out of range", &app.Context{Embedder: flatEmbedder{}}, `{"question":"x","k":99}`, http.StatusBadRequest},
		{"unknown field", &app.Context{Embedder: flatEmbedder{}}, `{"question":"x","extra":1}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := serve(tc.be, tc.body); rec.Code != tc.status {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestModule_Ports(t *testing.T) {
	m := New(modkit.Deps{})
	if m.Name() != "knowledge" {
		t.Fatalf("name = %q", m.Name())
	}
	k := modmodule.MustPortsOf[domain.ServicePort](m)
	if k.Ready() {
		t.Fatal("ready without embedder")
	}
	w := modmodule.MustPortsOf[Warmer](m)
	if err := w.Warm(context.Background()); err == nil {
		t.Fatal("warm without embedder should fail")
	}
}
