// Package service keeps a small in-memory passage store and answers
// similarity lookups against it
package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	perr "github.com/habibaehabb05/Factify/internal/platform/errors"
	"github.com/habibaehabb05/Factify/internal/platform/logger"
	"github.com/habibaehabb05/Factify/internal/services/knowledge/domain"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultK is how many matches a query returns when k is omitted
	DefaultK = 2

	chunkSize    = 500
	chunkOverlap = 50
)

// Seed is the store's built-in corpus
var Seed = []string{
	"Factify is a fake news detection app.",
	"It uses AI to verify news.",
}

// MsgNoEmbeddings is returned while no embedding backend is configured
const MsgNoEmbeddings = "Embeddings not configured. Check keys."

type passage struct {
	text string
	vec  []float32
}

// Svc implements domain.ServicePort
type Svc struct {
	emb      domain.Embedder
	splitter textsplitter.TextSplitter
	corpus   []string

	mu       sync.RWMutex
	passages []passage
}

// New builds a store over emb; corpus defaults to Seed
func New(emb domain.Embedder, corpus ...string) *Svc {
	if len(corpus) == 0 {
		corpus = Seed
	}
	return &Svc{
		emb: emb,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
		corpus: corpus,
	}
}

// Ready reports whether an embedding backend is wired
func (s *Svc) Ready() bool { return s.emb != nil }

// Size returns the number of stored passages
func (s *Svc) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.passages)
}

// Warm embeds the corpus once; later calls are no-ops after a success.
// the embedding call runs unlocked so readers never wait on the backend
func (s *Svc) Warm(ctx context.Context) error {
	if s.emb == nil {
		return perr.Unavailablef(MsgNoEmbeddings)
	}
	if s.Size() > 0 {
		return nil
	}

	var chunks []string
	for _, doc := range s.corpus {
		parts, err := s.splitter.SplitText(doc)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "split corpus")
		}
		chunks = append(chunks, parts...)
	}
	if len(chunks) == 0 {
		return nil
	}

	vecs, err := s.emb.EmbedDocuments(ctx, chunks)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "embed corpus")
	}
	if len(vecs) != len(chunks) {
		return perr.Newf(perr.ErrorCodeUnavailable, "embed corpus: got %d vectors for %d chunks", len(vecs), len(chunks))
	}
	seeded := make([]passage, len(chunks))
	for i := range chunks {
		seeded[i] = passage{text: chunks[i], vec: vecs[i]}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// a concurrent warm-up may have landed first
	if len(s.passages) > 0 {
		return nil
	}
	s.passages = seeded
	logger.C(ctx).Info().Int("passages", len(seeded)).Msg("knowledge store seeded")
	return nil
}

// Query returns the k passages closest to the question
func (s *Svc) Query(ctx context.Context, in domain.QueryInput) (domain.QueryResult, error) {
	q := strings.TrimSpace(in.Question)
	if q == "" {
		return domain.QueryResult{}, perr.WithField(perr.Inputf("question is required"), "question")
	}
	if err := s.Warm(ctx); err != nil {
		return domain.QueryResult{}, err
	}
	qv, err := s.emb.EmbedQuery(ctx, q)
	if err != nil {
		return domain.QueryResult{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "embed question")
	}

	k := in.K
	if k <= 0 {
		k = DefaultK
	}

	s.mu.RLock()
	out := make([]domain.Match, 0, len(s.passages))
	for _, p := range s.passages {
		out = append(out, domain.Match{Text: p.text, Score: Cosine(qv, p.vec)})
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > k {
		out = out[:k]
	}
	return domain.QueryResult{Question: q, Matches: out}, nil
}

// Cosine is the cosine similarity of a and b; 0 for mismatched or zero vectors
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
