// Package config handles application configuration via environment variables
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/habibaehabb05/Factify/internal/platform/logger"
)

// getenv is a seam so tests can feed values without touching the process env
var getenv = os.Getenv

// readFile backs the *_FILE secret convention
var readFile = os.ReadFile

// Conf is a namespaced view over environment variables (e.g., "CORE_API_", "SERVICE_LLM_")
// Use New() for global access, or Prefix("SERVICE_LLM_") for module scopes.
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("SERVICE_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key composes the fully-qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value and whether it is non-empty
func (c Conf) lookup(key string) (string, bool) {
	v := strings.TrimSpace(getenv(c.key(key)))
	return v, v != ""
}

func (c Conf) missing(key string) {
	logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
}

// MustString panics if the given key is missing or empty
func (c Conf) MustString(key string) string {
	v, ok := c.lookup(key)
	if !ok {
		c.missing(key)
	}
	return v
}

// MustInt panics if the given key is missing, empty, or not an int
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid int value")
	}
	return v
}

// MustBool panics if the given key is missing or not a bool
func (c Conf) MustBool(key string) bool {
	s := c.MustString(key)
	v, err := strconv.ParseBool(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid bool value")
	}
	return v
}

// MustDuration panics if the given key is missing, empty, or not a valid duration
func (c Conf) MustDuration(key string) time.Duration {
	s := c.MustString(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid duration (e.g., 250ms, 2s, 1h)")
	}
	return d
}

// MustURL panics if the given key is missing, empty, or not a valid absolute URL
func (c Conf) MustURL(key string) *url.URL {
	s := c.MustString(key)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid absolute URL")
	}
	return u
}

// MustPort returns a Go net/http addr like ":3002" after validation 1..65535
func (c Conf) MustPort(key string) string {
	s := c.MustString(key)
	if !validPort(s) {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid TCP port; expected 1..65535")
	}
	return ":" + s
}

// Require ensures that all given keys are present (non-empty). Panics otherwise.
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if _, ok := c.lookup(k); !ok {
			c.missing(k)
		}
	}
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// MayAny returns the first non-empty value among keys, or def
// keys are resolved under this Conf's prefix; use New().MayAny for bare names
func (c Conf) MayAny(def string, keys ...string) string {
	for _, k := range keys {
		if v, ok := c.lookup(k); ok {
			return v
		}
	}
	return def
}

// MaySecret reads key, falling back to the file named by key+"_FILE" (docker and podman secrets)
func (c Conf) MaySecret(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	path, ok := c.lookup(key + "_FILE")
	if !ok {
		return def
	}
	b, err := readFile(path)
	if err != nil {
		logger.Get().Warn().Err(err).Str("key", c.key(key+"_FILE")).Msg("secret file unreadable; using default")
		return def
	}
	if v := strings.TrimSpace(string(b)); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
	return def
}

// MayInt64 returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt64(key string, def int64) int64 {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int64("default", def).Msg("invalid int64; using default")
	return def
}

// MayFloat64 returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayFloat64(key string, def float64) float64 {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Float64("default", def).
		Msg("invalid float64; using default")
	return def
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayDuration returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
	return def
}

// MayCSV returns a slice of strings from a comma-separated env var; def if missing/empty
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum ensures value is one of allowed; returns def if empty; panics if invalid.
// the allowed spelling is returned so callers can switch on it
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return "" // unreachable
}

// MayAddr resolves a listen address from ADDR, then PORT, then def
// ADDR wins verbatim ("127.0.0.1:3002"), PORT becomes ":<port>"
func (c Conf) MayAddr(def string) string {
	if v, ok := c.lookup("ADDR"); ok {
		return v
	}
	if p, ok := c.lookup("PORT"); ok {
		if validPort(p) {
			return ":" + p
		}
		logger.Get().Warn().Str("key", c.key("PORT")).Str("value", p).Str("default", def).Msg("invalid port; using default")
	}
	return def
}

func validPort(s string) bool {
	p, err := strconv.Atoi(s)
	return err == nil && p >= 1 && p <= 65535
}
