package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/habibaehabb05/Factify/internal/app"
	kit "github.com/habibaehabb05/Factify/internal/platform/testkit"
	"github.com/habibaehabb05/Factify/internal/services/analysis/domain"
)

type cannedLLM struct{ replies []string }

func (l *cannedLLM) Complete(context.Context, string) (string, error) {
	r := l.replies[0]
	if len(l.replies) > 1 {
		l.replies = l.replies[1:]
	}
	return r, nil
}

type noResults struct{}

func (noResults) Search(context.Context, string, int) (domain.SearchResult, error) {
	return domain.SearchResult{WellFormed: true}, nil
}

type oneAxis struct{}

func (oneAxis) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, float32(i)}
	}
	return out, nil
}

func (oneAxis) EmbedQuery(context.Context, string) ([]float32, error) { return []float32{1, 0}, nil }

func run(t *testing.T, env cliEnv, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(env)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func envWith(be *app.Context) cliEnv {
	return cliEnv{
		backends: func() *app.Context { return be },
		readFile: func(string) ([]byte, error) { return nil, errors.New("no files in tests") },
	}
}

const flatVerdict = `{"verdict":"Fake","confidence_score":95,"explanation":"The earth is an oblate spheroid."}`

func TestAnalyze_Text(t *testing.T) {
	be := &app.Context{LLM: &cannedLLM{replies: []string{"earth shape", flatVerdict}}, Search: noResults{}}
	out, _, err := run(t, envWith(be), "analyze", "--content", "The earth is flat and NASA hides it from everyone")
	if err != nil {
		t.Fatal(err)
	}
	kit.MustContain(t, out, "Verdict:     Fake")
	kit.MustContain(t, out, "Confidence:  95")
	kit.MustContain(t, out, "Script:      Latin")
}

func TestAnalyze_JSON(t *testing.T) {
	be := &app.Context{LLM: &cannedLLM{replies: []string{"q", flatVerdict}}, Search: noResults{}}
	out, _, err := run(t, envWith(be), "analyze", "-c", "The earth is flat", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("not json: %v\n%s", err, out)
	}
	if got["verdict"] != "Fake" || got["confidence_score"] != 95.0 {
		t.Fatalf("got %v", got)
	}
}

func TestAnalyze_Errors(t *testing.T) {
	cases := []struct {
		name string
		be   *app.Context
		args []string
		msg  string
	}{
		{"no llm", &app.Context{}, []string{"analyze", "-c", "x"}, "LLM not configured. Check keys."},
		{"no content", &app.Context{}, []string{"analyze"}, "one of --content or --file is required"},
		{"unreadable file", &app.Context{}, []string{"analyze", "-f", "missing.txt"}, "read missing.txt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, stderr, err := run(t, envWith(tc.be), tc.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			kit.MustContain(t, stderr, tc.msg)
		})
	}
}

func TestStatus(t *testing.T) {
	out, _, err := run(t, envWith(&app.Context{}), "status")
	if err != nil {
		t.Fatal(err)
	}
	kit.MustContain(t, out, "llm_status: missing_key")
	for _, name := range []string{"llm", "embeddings", "search", "scraper", "ocr"} {
		if !strings.Contains(out, name) {
			t.Fatalf("backend %s missing from:\n%s", name, out)
		}
	}
}

func TestQuery(t *testing.T) {
	out, _, err := run(t, envWith(&app.Context{Embedder: oneAxis{}}), "query", "-q", "What is Factify?", "--k", "1")
	if err != nil {
		t.Fatal(err)
	}
	kit.MustContain(t, out, "1. 1.000  Factify is a fake news detection app.")
	if strings.Contains(out, "2.") {
		t.Fatalf("k not honoured:\n%s", out)
	}

	_, stderr, err := run(t, envWith(&app.Context{}), "query", "-q", "x")
	if err == nil {
		t.Fatal("expected error without embeddings")
	}
	kit.MustContain(t, stderr, "Embeddings not configured")
}
