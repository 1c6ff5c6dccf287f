// Package tesseract recognizes text in images by shelling out to the tesseract CLI
package tesseract

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"github.com/habibaehabb05/Factify/internal/platform/logger"

	"github.com/gabriel-vasile/mimetype"
)

const (
	DefaultBin     = "tesseract"
	DefaultLang    = "eng"
	DefaultTimeout = 10 * time.Second
	maxImageBytes  = 20 << 20
)

// Options configures the Engine
type Options struct {
	Bin  string
	Lang string
	// Timeout bounds both the image download and the recognition run
	Timeout time.Duration
}

// runner executes bin with args, feeding stdin, and returns stdout
type runner func(ctx context.Context, stdin []byte, bin string, args ...string) ([]byte, error)

func execRun(ctx context.Context, stdin []byte, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil && stderr.Len() > 0 {
		logger.Named("tesseract").Debug().Str("stderr", strings.TrimSpace(stderr.String())).Msg("tesseract stderr")
	}
	return out, err
}

// lookPath is a seam over exec.LookPath
var lookPath = exec.LookPath

// Engine is the OCR backend
type Engine struct {
	opts Options
	http *http.Client
	run  runner
	log  logger.Logger
}

// New creates an Engine with sane defaults
func New(o Options) *Engine {
	if o.Bin == "" {
		o.Bin = DefaultBin
	}
	if o.Lang == "" {
		o.Lang = DefaultLang
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return &Engine{
		opts: o,
		http: &http.Client{Timeout: o.Timeout},
		run:  execRun,
		log:  *logger.Named("tesseract"),
	}
}

// Available reports whether the tesseract binary can be found
func (e *Engine) Available() bool {
	_, err := lookPath(e.opts.Bin)
	return err == nil
}

// Text returns the trimmed text recognized in image, "" for non-images or on any failure
func (e *Engine) Text(ctx context.Context, image []byte) string {
	if len(image) == 0 {
		return ""
	}
	mt := mimetype.Detect(image)
	if !strings.HasPrefix(mt.String(), "image/") {
		e.log.Debug().Str("mime", mt.String()).Msg("ocr skipped non-image bytes")
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	start := time.Now()
	out, err := e.run(ctx, image, e.opts.Bin, "stdin", "stdout", "-l", e.opts.Lang)
	if err != nil {
		e.log.Warn().Err(err).Str("bin", e.opts.Bin).Str("mime", mt.String()).Msg("ocr failed")
		return ""
	}
	text := strings.TrimSpace(string(out))
	e.log.Debug().Str("mime", mt.String()).Int("chars", len(text)).Dur("took", time.Since(start)).Msg("ocr")
	return text
}

// FromURL downloads the image at url within the timeout and runs Text on it
func (e *Engine) FromURL(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		e.log.Debug().Err(err).Str("url", url).Msg("ocr bad url")
		return ""
	}
	resp, err := e.http.Do(req)
	if err != nil {
		e.log.Warn().Err(err).Str("url", url).Msg("image download failed")
		return ""
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e.log.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("image download unexpected status")
		return ""
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		e.log.Warn().Err(err).Str("url", url).Msg("image download read failed")
		return ""
	}
	return e.Text(ctx, b)
}
