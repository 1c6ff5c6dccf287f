// Package openai adapts OpenAI-compatible endpoints (Groq by default) to the
// completion and embedding ports
package openai

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	perr "github.com/habibaehabb05/Factify/internal/platform/errors"
	"github.com/habibaehabb05/Factify/internal/platform/logger"
	str "github.com/habibaehabb05/Factify/internal/platform/strings"

	goopenai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
)

// Options configures the chat Client
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	// Temperature 0 is sent as the smallest non-zero float since the wire
	// format drops zero values
	Temperature float32
	Timeout     time.Duration
}

// Client is a single turn chat completion client
type Client struct {
	api   *goopenai.Client
	model string
	temp  float32
	log   logger.Logger
}

// New builds a Client; the API key is required
func New(o Options) (*Client, error) {
	if strings.TrimSpace(o.APIKey) == "" {
		return nil, perr.InvalidArgf("llm api key is empty")
	}
	o.BaseURL = str.Or(o.BaseURL, DefaultBaseURL)
	o.Model = str.Or(o.Model, DefaultModel)
	cfg := goopenai.DefaultConfig(o.APIKey)
	cfg.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: o.Timeout}
	}
	temp := o.Temperature
	if temp <= 0 {
		temp = math.SmallestNonzeroFloat32
	}
	return &Client{
		api:   goopenai.NewClientWithConfig(cfg),
		model: o.Model,
		temp:  temp,
		log:   *logger.Named("llm"),
	}, nil
}

// Model returns the configured model name
func (c *Client) Model() string { return c.model }

// Complete sends prompt as a single user message and returns the first choice verbatim
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temp,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.log.Warn().Err(err).Str("model", c.model).Dur("took", time.Since(start)).Msg("chat completion failed")
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "llm completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", perr.Newf(perr.ErrorCodeUnavailable, "llm returned no choices")
	}
	c.log.Debug().
		Str("model", c.model).
		Str("finish_reason", string(resp.Choices[0].FinishReason)).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Dur("took", time.Since(start)).
		Msg("chat completion")
	return resp.Choices[0].Message.Content, nil
}
