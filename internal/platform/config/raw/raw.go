// Package raw provides a minimal env reader used during bootstrap.
// It has NO dependency on the logger package so the logger can read its own options
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a namespaced view over environment variables (e.g., "LOG_")
type Conf struct{ prefix string }

// New returns a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix returns a child Conf with an additional prefix (e.g. "LOG_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) val(k string) string { return strings.TrimSpace(os.Getenv(c.prefix + k)) }

// Get returns the trimmed env var or the provided default if empty
func (c Conf) Get(key, def string) string {
	if v := c.val(key); v != "" {
		return v
	}
	return def
}

// GetBool parses 1|true|yes|on and 0|false|no|off; anything else is def
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.val(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

// GetInt parses a non-negative integer with default fallback
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.val(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// GetOneOf returns the lowercased value when it is in allowed, def otherwise
func (c Conf) GetOneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(c.val(key))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}
