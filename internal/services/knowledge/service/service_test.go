package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	perr "github.com/habibaehabb05/Factify/internal/platform/errors"
	"github.com/habibaehabb05/Factify/internal/services/knowledge/domain"
)

// keywordEmbedder maps text onto three axes: app, ai, weather
type keywordEmbedder struct {
	calls int
	err   error
}

func vec(text string) []float32 {
	t := strings.ToLower(text)
	v := []float32{0, 0, 0}
	if strings.Contains(t, "factify") || strings.Contains(t, "app") {
		v[0] = 1
	}
	if strings.Contains(t, "ai") || strings.Contains(t, "verify") {
		v[1] = 1
	}
	if strings.Contains(t, "weather") {
		v[2] = 1
	}
	return v
}

func (e *keywordEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = vec(t)
	}
	return out, nil
}

func (e *keywordEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return vec(text), nil
}

func TestQuery_RanksBySimilarity(t *testing.T) {
	emb := &keywordEmbedder{}
	s := New(emb)

	got, err := s.Query(context.Background(), domain.QueryInput{Question: "  What is Factify? ", K: 1})
	if err != nil {
		t.Fatal(err)
	}
	if got.Question != "What is Factify?" {
		t.Fatalf("question = %q", got.Question)
	}
	if len(got.Matches) != 1 || got.Matches[0].Text != Seed[0] {
		t.Fatalf("matches = %+v", got.Matches)
	}
	if math.Abs(got.Matches[0].Score-1) > 1e-9 {
		t.Fatalf("score = %v", got.Matches[0].Score)
	}

	got, err = s.Query(context.Background(), domain.QueryInput{Question: "does it verify with AI"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Matches) != DefaultK || got.Matches[0].Text != Seed[1] {
		t.Fatalf("matches = %+v", got.Matches)
	}
	if emb.calls != 1 {
		t.Fatalf("corpus embedded %d times, want 1", emb.calls)
	}
	if s.Size() != 2 {
		t.Fatalf("size = %d", s.Size())
	}
}

func TestQuery_KLargerThanStore(t *testing.T) {
	s := New(&keywordEmbedder{})
	got, err := s.Query(context.Background(), domain.QueryInput{Question: "factify", K: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Matches) != len(Seed) {
		t.Fatalf("matches = %d", len(got.Matches))
	}
}

func TestQuery_Errors(t *testing.T) {
	cases := []struct {
		name string
		svc  *Svc
		q    string
		code perr.ErrorCode
	}{
		{"no embedder", New(nil), "what", perr.ErrorCodeUnavailable},
		{"blank question", New(&keywordEmbedder{}), "   ", perr.ErrorCodeInput},
		{"backend down", New(&keywordEmbedder{err: errors.New("502")}), "what", perr.ErrorCodeUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.svc.Query(context.Background(), domain.QueryInput{Question: tc.q})
			if !perr.IsCode(err, tc.code) {
				t.Fatalf("err = %v, want code %v", err, tc.code)
			}
		})
	}
}

func TestWarm_RetriesAfterFailure(t *testing.T) {
	emb := &keywordEmbedder{err: errors.New("down")}
	s := New(emb, "Factify app")
	if err := s.Warm(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	emb.err = nil
	if err := s.Warm(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Size() != 1 || !s.Ready() {
		t.Fatalf("size = %d ready = %v", s.Size(), s.Ready())
	}
	if New(nil).Ready() {
		t.Fatal("nil embedder reported ready")
	}
}

// gatedEmbedder holds EmbedDocuments until release is closed
type gatedEmbedder struct {
	keywordEmbedder
	entered chan struct{}
	release chan struct{}
}

func (e *gatedEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	close(e.entered)
	<-e.release
	return e.keywordEmbedder.EmbedDocuments(ctx, texts)
}

func TestWarm_ReadersNotBlockedByEmbedding(t *testing.T) {
	emb := &gatedEmbedder{entered: make(chan struct{}), release: make(chan struct{})}
	s := New(emb)

	errc := make(chan error, 1)
	go func() { errc <- s.Warm(context.Background()) }()
	<-emb.entered

	sized := make(chan int, 1)
	go func() { sized <- s.Size() }()
	select {
	case n := <-sized:
		if n != 0 {
			t.Fatalf("Size mid warm-up = %d, want 0", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Size blocked behind the embedding call")
	}

	close(emb.release)
	if err := <-errc; err != nil {
		t.Fatal(err)
	}
	if s.Size() != len(Seed) {
		t.Fatalf("Size = %d, want %d", s.Size(), len(Seed))
	}
}

func TestCosine(t *testing.T) {
	cases := []struct {
		a, b []float32
		want float64
	}{
		{[]float32{1, 0}, []float32{1, 0}, 1},
		{[]float32{1, 0}, []float32{0, 1}, 0},
		{[]float32{1, 0}, []float32{-1, 0}, -1},
		{[]float32{1, 1}, []float32{1, 0}, 1 / math.Sqrt2},
		{[]float32{0, 0}, []float32{1, 0}, 0},
		{[]float32{1}, []float32{1, 0}, 0},
		{nil, nil, 0},
	}
	for _, tc := range cases {
		if got := Cosine(tc.a, tc.b); math.Abs(got-tc.want) > 1e-6 {
			t.Errorf("Cosine(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
