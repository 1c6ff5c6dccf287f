package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "github.com/habibaehabb05/Factify/internal/platform/errors"
)

func fakeAPI(t *testing.T, seen *map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer gsk_test" {
			t.Errorf("auth header = %q", got)
		}
		body := map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if seen != nil {
			*seen = body
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"  \"Ballon d'Or 2023 winner\" "}}],"usage":{"prompt_tokens":3,"completion_tokens":4}}`))
	})
	mux.HandleFunc("/embeddings", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != DefaultEmbedModel {
			t.Errorf("model = %q", req.Model)
		}
		type item struct {
			Object    string    `json:"object"`
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		}
		out := struct {
			Object string `json:"object"`
			Data   []item `json:"data"`
		}{Object: "list"}
		// reversed on purpose so Index decides placement
		for i := len(req.Input) - 1; i >= 0; i-- {
			out.Data = append(out.Data, item{Object: "embedding", Index: i, Embedding: []float32{float32(i), 1}})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := New(Options{}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("New without key err = %v", err)
	}
	if _, err := NewEmbedder(EmbedOptions{APIKey: "  "}); err == nil {
		t.Fatal("NewEmbedder without key should fail")
	}
}

func TestComplete_ReturnsReplyVerbatim(t *testing.T) {
	var seen map[string]any
	srv := fakeAPI(t, &seen)
	c, err := New(Options{APIKey: "gsk_test", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Model() != DefaultModel {
		t.Fatalf("model = %q", c.Model())
	}

	got, err := c.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if got != `  "Ballon d'Or 2023 winner" ` {
		t.Fatalf("Complete = %q", got)
	}
	if seen["model"] != DefaultModel {
		t.Fatalf("request model = %v", seen["model"])
	}
	temp, ok := seen["temperature"].(float64)
	if !ok || temp <= 0 || temp > 1e-6 {
		t.Fatalf("temperature should be sent as a tiny positive value, got %v", seen["temperature"])
	}
	msgs, _ := seen["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("messages = %v", seen["messages"])
	}
}

func TestComplete_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	c, _ := New(Options{APIKey: "gsk_test", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "x")
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestEmbedder_OrdersByIndex(t *testing.T) {
	srv := fakeAPI(t, nil)
	e, err := NewEmbedder(EmbedOptions{APIKey: "hf_test", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	vs, err := e.EmbedDocuments(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range vs {
		if len(v) != 2 || v[0] != float32(i) {
			t.Fatalf("vector %d = %v", i, v)
		}
	}

	q, err := e.EmbedQuery(context.Background(), "a")
	if err != nil || len(q) != 2 {
		t.Fatalf("EmbedQuery = %v, %v", q, err)
	}

	if vs, err := e.EmbedDocuments(context.Background(), nil); err != nil || vs != nil {
		t.Fatalf("empty input = %v, %v", vs, err)
	}
}
