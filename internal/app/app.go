// Package app holds the process wide backend clients
//
// A Context is built once at startup and passed explicitly to modules and the CLI.
// A nil handle means the backend is not configured; the service keeps running
// in that degraded state and reports it
package app

import (
	"github.com/habibaehabb05/Factify/internal/adapters/llm/openai"
	"github.com/habibaehabb05/Factify/internal/adapters/ocr/tesseract"
	"github.com/habibaehabb05/Factify/internal/adapters/scrape"
	"github.com/habibaehabb05/Factify/internal/adapters/search/duckduckgo"
	"github.com/habibaehabb05/Factify/internal/adapters/search/google"
	"github.com/habibaehabb05/Factify/internal/platform/config"
	"github.com/habibaehabb05/Factify/internal/platform/logger"
	analysis "github.com/habibaehabb05/Factify/internal/services/analysis/domain"
	knowledge "github.com/habibaehabb05/Factify/internal/services/knowledge/domain"
)

// Context carries the backend handles; safe for concurrent read-only use
type Context struct {
	LLM      analysis.Completer
	Embedder knowledge.Embedder
	Search   analysis.Searcher
	Scraper  analysis.Scraper
	OCR      analysis.OCR

	details map[string]string
}

// Backend is one line of the readiness report
type Backend struct {
	Name   string `json:"name"`
	Ready  bool   `json:"ready"`
	Detail string `json:"detail,omitempty"`
}

// LLMReady reports whether the language model is configured
func (c *Context) LLMReady() bool { return c != nil && c.LLM != nil }

// Report lists every backend and whether it is configured
func (c *Context) Report() []Backend {
	if c == nil {
		c = &Context{}
	}
	return []Backend{
		{Name: "llm", Ready: c.LLM != nil, Detail: c.details["llm"]},
		{Name: "embeddings", Ready: c.Embedder != nil, Detail: c.details["embeddings"]},
		{Name: "search", Ready: c.Search != nil, Detail: c.details["search"]},
		{Name: "scraper", Ready: c.Scraper != nil, Detail: c.details["scraper"]},
		{Name: "ocr", Ready: c.OCR != nil, Detail: c.details["ocr"]},
	}
}

func (c *Context) note(name, detail string) {
	if c.details == nil {
		c.details = map[string]string{}
	}
	c.details[name] = detail
}

// FromConfig builds every backend it has configuration for
// cfg is the root view; SERVICE_* keys are resolved beneath it
func FromConfig(cfg config.Conf) *Context {
	log := logger.Named("app")
	c := &Context{}

	llmCfg := cfg.Prefix("SERVICE_LLM_")
	key := llmCfg.MaySecret("API_KEY", cfg.MayAny("", "GROQ_API_KEY"))
	if llm, err := openai.New(openai.Options{
		APIKey:  key,
		BaseURL: llmCfg.MayString("BASE_URL", openai.DefaultBaseURL),
		Model:   llmCfg.MayString("MODEL", openai.DefaultModel),
		Timeout: llmCfg.MayDuration("TIMEOUT", 0),
	}); err == nil {
		c.LLM = llm
		c.note("llm", llm.Model())
		log.Info().Str("model", llm.Model()).Msg("llm initialized")
	} else {
		c.note("llm", "missing_key")
		log.Warn().Msg("llm not initialized; set SERVICE_LLM_API_KEY or GROQ_API_KEY")
	}

	embCfg := cfg.Prefix("SERVICE_EMBED_")
	embKey := embCfg.MaySecret("API_KEY", cfg.MayAny("", "HUGGINGFACEHUB_API_TOKEN"))
	embModel := embCfg.MayString("MODEL", openai.DefaultEmbedModel)
	if emb, err := openai.NewEmbedder(openai.EmbedOptions{
		APIKey:  embKey,
		BaseURL: embCfg.MayString("BASE_URL", openai.DefaultEmbedBaseURL),
		Model:   embModel,
		Timeout: embCfg.MayDuration("TIMEOUT", 0),
	}); err == nil {
		c.Embedder = emb
		c.note("embeddings", embModel)
		log.Info().Str("model", embModel).Msg("embeddings initialized")
	} else {
		c.note("embeddings", "missing_key")
		log.Warn().Msg("embeddings not initialized; set SERVICE_EMBED_API_KEY or HUGGINGFACEHUB_API_TOKEN")
	}

	searchCfg := cfg.Prefix("SERVICE_SEARCH_")
	provider := searchCfg.MayEnum("PROVIDER", "duckduckgo", "duckduckgo", "google", "none")
	timeout := searchCfg.MayDuration("TIMEOUT", 0)
	rps := searchCfg.MayFloat64("RPS", 1)
	switch provider {
	case "duckduckgo":
		c.Search = duckduckgo.New(duckduckgo.Options{Timeout: timeout, RPS: rps})
		c.note("search", provider)
	case "google":
		g, err := google.New(google.Options{
			APIKey:  searchCfg.MaySecret("GOOGLE_KEY", ""),
			CX:      searchCfg.MayString("GOOGLE_CX", ""),
			Timeout: timeout,
			RPS:     rps,
		})
		if err != nil {
			c.note("search", "google: "+err.Error())
			log.Warn().Err(err).Msg("google search not initialized")
			break
		}
		c.Search = g
		c.note("search", provider)
	default:
		c.note("search", "disabled")
	}

	scrCfg := cfg.Prefix("SERVICE_SCRAPER_")
	c.Scraper = scrape.New(scrape.Options{
		UserAgent: scrCfg.MayString("USER_AGENT", scrape.DefaultUserAgent),
		Timeout:   scrCfg.MayDuration("TIMEOUT", scrape.DefaultTimeout),
		MaxChars:  scrCfg.MayInt("MAX_CHARS", scrape.DefaultMaxChars),
	})

	ocrCfg := cfg.Prefix("SERVICE_OCR_")
	ocr := tesseract.New(tesseract.Options{
		Bin:     ocrCfg.MayString("BIN", tesseract.DefaultBin),
		Lang:    ocrCfg.MayString("LANG", tesseract.DefaultLang),
		Timeout: ocrCfg.MayDuration("TIMEOUT", tesseract.DefaultTimeout),
	})
	c.OCR = ocr
	if !ocr.Available() {
		c.note("ocr", "tesseract binary not found")
		log.Warn().Msg("tesseract not found on PATH; image input will fail to extract text")
	}
	return c
}
