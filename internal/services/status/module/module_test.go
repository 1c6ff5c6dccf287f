package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/habibaehabb05/Factify/internal/app"
	"github.com/habibaehabb05/Factify/internal/modkit"
	"github.com/habibaehabb05/Factify/internal/platform/config"
	phttp "github.com/habibaehabb05/Factify/internal/platform/net/http"
	kit "github.com/habibaehabb05/Factify/internal/platform/testkit"
)

type stubLLM struct{}

func (stubLLM) Complete(context.Context, string) (string, error) { return "", nil }

func get(t *testing.T, be *app.Context, path string) *httptest.ResponseRecorder {
	t.Helper()
	srv := phttp.NewServer(config.New().Prefix("STATUS_TEST_"))
	New(modkit.Deps{App: be}).MountRoutes(srv.Router())
	rec := kit.Do(srv.Handler(), http.MethodGet, path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s = %d body=%s", path, rec.Code, rec.Body.String())
	}
	return rec
}

func TestRoot_LLMStatus(t *testing.T) {
	cases := []struct {
		name string
		be   *app.Context
		want string
	}{
		{"missing", nil, "missing_key"},
		{"empty context", &app.Context{}, "missing_key"},
		{"ready", &app.Context{LLM: stubLLM{}}, "ready"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got map[string]string
			if err := json.Unmarshal(get(t, tc.be, "/").Body.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			want := map[string]string{
				"status":     "active",
				"service":    "Factify Advanced RAG Service",
				"llm_status": tc.want,
			}
			if len(got) != len(want) {
				t.Fatalf("body = %v", got)
			}
			for k, v := range want {
				if got[k] != v {
					t.Fatalf("%s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestMeta_Routes(t *testing.T) {
	be := &app.Context{LLM: stubLLM{}}
	kit.MustContain(t, get(t, be, "/meta/health").Body.String(), `"ok":true`)
	kit.MustContain(t, get(t, be, "/meta/version").Body.String(), `"service":"factify-api"`)
	kit.MustContain(t, get(t, be, "/meta/service").Body.String(), `"uptime":`)

	ready := get(t, be, "/meta/ready").Body.String()
	kit.MustContain(t, ready, `"status":"degraded"`)
	kit.MustContain(t, ready, `{"name":"llm","ready":true}`)
	kit.MustContain(t, ready, `{"name":"ocr","ready":false}`)
}
