// Package service runs the fact-checking pipeline
//
// Stages run strictly in sequence per request:
// Normalize -> SynthesizeQuery -> CollectEvidence -> Adjudicate -> Decode.
// Only Normalize and Adjudicate can abort a request; every other stage
// degrades to a local substitute
package service

import (
	"context"
	"strings"
	"time"

	"github.com/habibaehabb05/Factify/internal/core/langhint"
	"github.com/habibaehabb05/Factify/internal/core/normalize"
	"github.com/habibaehabb05/Factify/internal/core/verdict"
	perr "github.com/habibaehabb05/Factify/internal/platform/errors"
	"github.com/habibaehabb05/Factify/internal/platform/logger"
	"github.com/habibaehabb05/Factify/internal/services/analysis/domain"

	"github.com/google/uuid"
)

const (
	// SearchLimit is how many results feed the evidence block
	SearchLimit = 5

	queryInputRunes    = 500
	fallbackQueryRunes = 200
	claimRunes         = 3000
	previewRunes       = 100
)

// User facing failure messages
const (
	MsgLLMMissing   = "LLM not configured. Check keys."
	MsgNoContent    = "Could not extract content from input."
	MsgNoImageText  = "Could not extract text from image. Please ensure Tesseract-OCR is installed, or the image contains readable text."
	MsgBadImage     = "Could not decode image content: invalid base64"
	MsgNothingToRun = "No content found to analyze."
)

// Service defines the analysis service contract
type Service interface {
	domain.ServicePort
}

// Deps are the backends the pipeline calls; nil means unconfigured
type Deps struct {
	LLM     domain.Completer
	Search  domain.Searcher
	Scraper domain.Scraper
	OCR     domain.OCR
	Metrics *Metrics
}

// Svc implements the analysis service
type Svc struct {
	llm     domain.Completer
	search  domain.Searcher
	scraper domain.Scraper
	ocr     domain.OCR
	metrics *Metrics

	newID func() string
}

// New constructs an analysis service
func New(d Deps) *Svc {
	return &Svc{
		llm:     d.LLM,
		search:  d.Search,
		scraper: d.Scraper,
		ocr:     d.OCR,
		metrics: d.Metrics,
		newID:   uuid.NewString,
	}
}

// Analyze runs the whole pipeline for one request
func (s *Svc) Analyze(ctx context.Context, in domain.Request) (domain.Response, error) {
	in = in.WithDefaults()
	ctx = logger.WithAnalysis(ctx, s.newID())
	log := logger.C(ctx)
	start := time.Now()

	log.Info().
		Str("type", string(in.Type)).
		Str("preprocessing", string(in.Preprocessing)).
		Int("content_len", len(in.Content)).
		Msg("analysis started")

	if s.llm == nil {
		s.metrics.failure("llm_missing")
		log.Error().Msg("llm not configured")
		return domain.Response{}, perr.Servicef(MsgLLMMissing)
	}

	claim, err := s.Normalize(ctx, in)
	if err != nil {
		return domain.Response{}, s.fail(ctx, "input", perr.WithOp(err, "normalize"))
	}

	query := s.SynthesizeQuery(ctx, claim)
	res := s.CollectEvidence(ctx, query)
	block := EvidenceBlock(res)

	raw, err := s.Adjudicate(ctx, claim, block)
	if err != nil {
		return domain.Response{}, s.fail(ctx, "adjudicate", perr.WithOp(err, "adjudicate"))
	}

	out := s.Decode(ctx, raw, res)
	log.Info().
		Str("verdict", string(out.Verdict)).
		Float64("confidence", out.ConfidenceScore).
		Int("sources", len(out.Sources)).
		Dur("took", time.Since(start)).
		Msg("analysis complete")
	return out, nil
}

// fail counts the failure under reason and logs the stage that produced err
func (s *Svc) fail(ctx context.Context, reason string, err error) error {
	s.metrics.failure(reason)
	evt := logger.C(ctx).Warn().Err(err).Str("reason", reason)
	if e, ok := perr.As(err); ok && e.Op() != "" {
		evt = evt.Str("op", e.Op())
	}
	evt.Msg("analysis failed")
	return err
}

// Normalize turns the request into a non-empty claim or fails with an input error
func (s *Svc) Normalize(ctx context.Context, in domain.Request) (string, error) {
	defer s.metrics.observe("normalize", time.Now())
	in = in.WithDefaults()
	log := logger.C(ctx)

	var text string
	switch in.Type {
	case domain.KindText:
		text = in.Content
	case domain.KindURL:
		url := strings.TrimSpace(in.Content)
		text = s.scrape(ctx, url)
		if text == "" {
			log.Debug().Str("url", url).Msg("scrape empty, trying ocr on url")
			text = s.ocrURL(ctx, url)
		}
	case domain.KindImage:
		img, ok := DecodeImage(in.Content)
		if !ok {
			return "", perr.WithField(perr.Inputf(MsgBadImage), "content")
		}
		text = s.ocrBytes(ctx, img)
		if text == "" {
			log.Warn().Int("bytes", len(img)).Msg("ocr returned no text")
			return "", perr.WithField(perr.Inputf(MsgNoImageText), "content")
		}
	default:
		return "", perr.WithField(perr.Inputf("Invalid type: %s", in.Type), "type")
	}

	if text == "" {
		return "", perr.WithField(perr.Inputf(MsgNoContent), "content")
	}
	if in.Preprocessing == domain.PreprocessClean {
		text = normalize.Clean(text)
	}
	if text == "" {
		return "", perr.WithField(perr.Inputf(MsgNothingToRun), "content")
	}

	hint := langhint.Detect(text)
	log.Debug().
		Str("stage", "normalize").
		Str("preview", normalize.Preview(text, previewRunes)).
		Int("runes", normalize.RuneLen(text)).
		Str("script", hint.Script).
		Str("lang", hint.Lang).
		Msg("claim extracted")
	return text, nil
}

func (s *Svc) scrape(ctx context.Context, url string) string {
	if s.scraper == nil {
		return ""
	}
	return strings.TrimSpace(normalize.Extracted(s.scraper.Scrape(ctx, url)))
}

func (s *Svc) ocrURL(ctx context.Context, url string) string {
	if s.ocr == nil {
		return ""
	}
	return strings.TrimSpace(normalize.Extracted(s.ocr.FromURL(ctx, url)))
}

func (s *Svc) ocrBytes(ctx context.Context, img []byte) string {
	if s.ocr == nil {
		return ""
	}
	return strings.TrimSpace(normalize.Extracted(s.ocr.Text(ctx, img)))
}

// SynthesizeQuery asks the model for a verification search query, falling back
// to FallbackQuery on any model failure. It never fails
func (s *Svc) SynthesizeQuery(ctx context.Context, claim string) string {
	defer s.metrics.observe("query", time.Now())
	log := logger.C(ctx)

	query, err := s.synthesize(ctx, claim)
	if err != nil {
		s.metrics.fallback()
		query = FallbackQuery(claim)
		log.Warn().Err(err).Str("stage", "query").Str("query", query).Msg("query synthesis failed, using excerpt")
		return query
	}
	log.Debug().Str("stage", "query").Str("query", query).Msg("query synthesized")
	return query
}

func (s *Svc) synthesize(ctx context.Context, claim string) (string, error) {
	if s.llm == nil {
		return "", perr.Unavailablef("llm not configured")
	}
	prompt, err := QueryPrompt(normalize.Head(claim, queryInputRunes))
	if err != nil {
		return "", err
	}
	reply, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	q := strings.Trim(strings.TrimSpace(reply), `"`)
	if q == "" {
		return "", perr.Unavailablef("llm returned an empty query")
	}
	return q, nil
}

// FallbackQuery is the deterministic query used when synthesis fails:
// the first 200 runes of claim with line breaks turned into spaces
func FallbackQuery(claim string) string {
	return strings.ReplaceAll(normalize.Head(claim, fallbackQueryRunes), "\n", " ")
}

// CollectEvidence searches for query; backend failures yield an empty result
func (s *Svc) CollectEvidence(ctx context.Context, query string) domain.SearchResult {
	defer s.metrics.observe("search", time.Now())
	log := logger.C(ctx)

	if s.search == nil {
		log.Warn().Str("stage", "search").Msg("search not configured, no evidence")
		return domain.SearchResult{WellFormed: true}
	}
	res, err := s.search.Search(ctx, query, SearchLimit)
	if err != nil {
		log.Warn().Err(err).Str("stage", "search").Str("query", query).Msg("search failed, no evidence")
		return domain.SearchResult{WellFormed: true}
	}
	if res.WellFormed && len(res.Items) > SearchLimit {
		res.Items = res.Items[:SearchLimit]
	}
	log.Debug().
		Str("stage", "search").
		Int("results", len(res.Items)).
		Bool("well_formed", res.WellFormed).
		Msg("evidence collected")
	return res
}

// EvidenceBlock serializes results in rank order for the adjudicator
func EvidenceBlock(res domain.SearchResult) string {
	var b strings.Builder
	b.WriteString("Search Results:\n")
	if !res.WellFormed {
		b.WriteString(res.Raw)
		return b.String()
	}
	for _, it := range res.Items {
		it = it.WithDefaults()
		b.WriteString("- Source: ")
		b.WriteString(it.Title)
		b.WriteString(" (")
		b.WriteString(it.Link)
		b.WriteString(")\n  Content: ")
		b.WriteString(it.Snippet)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Adjudicate asks the model to judge claim against evidence and returns its reply verbatim
// any model failure is a service error
func (s *Svc) Adjudicate(ctx context.Context, claim, evidence string) (string, error) {
	defer s.metrics.observe("adjudicate", time.Now())
	log := logger.C(ctx)

	if s.llm == nil {
		return "", perr.Servicef(MsgLLMMissing)
	}
	prompt, err := AdjudicationPrompt(normalize.Head(claim, claimRunes), evidence)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeService, err.Error())
	}
	raw, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("stage", "adjudicate").Msg("verification failed")
		return "", perr.Wrap(err, perr.ErrorCodeService, perr.Root(err).Error())
	}
	log.Debug().
		Str("stage", "adjudicate").
		Str("preview", normalize.Preview(raw, previewRunes*2)).
		Int("runes", normalize.RuneLen(raw)).
		Msg("model replied")
	return raw, nil
}

// Decode maps the model reply onto a Response; sources are the collected links
func (s *Svc) Decode(ctx context.Context, raw string, res domain.SearchResult) domain.Response {
	defer s.metrics.observe("decode", time.Now())
	log := logger.C(ctx)

	var links []string
	if res.WellFormed {
		links = res.Links()
	}
	out := verdict.Decode(raw, links)

	switch {
	case !out.Decoded:
		log.Warn().Str("stage", "decode").Msg("no JSON object in model reply, returning Unknown")
	case len(out.Violations) > 0:
		s.metrics.violation()
		log.Warn().Str("stage", "decode").Strs("violations", out.Violations).Msg("model reply broke the output contract")
	}
	s.metrics.verdict(verdictLabel(out.Verdict))
	return out
}

func verdictLabel(v verdict.Verdict) string {
	switch v {
	case verdict.Real, verdict.Fake, verdict.Unknown:
		return string(v)
	}
	return "other"
}
