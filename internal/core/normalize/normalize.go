// Package normalize repairs text pulled out of web pages and OCR before it
// becomes a claim, and implements the CLEAN preprocessing step
//
// Repair order for extracted text
// 1 Sanitize drop control bytes and invalid UTF-8
// 2 Unicode NFKC normalization
// 3 Remove format chars (zero width joiners, BOM, soft hyphen)
// 4 Width fold fullwidth forms to ASCII
// 5 Collapse horizontal whitespace to single spaces, keep line breaks, trim
//
// Case and accents are kept; the model reads the claim as written
package normalize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains, a chain is not safe for concurrent use
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// Extracted repairs scraped or OCR text. Plain text claims never pass through here
func Extracted(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}
	return collapseSpaces(ns)
}

// Clean is the CLEAN preprocessing: every "\n" becomes a space, then the ends are trimmed
// inner whitespace runs are left alone
func Clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// Head returns the first n runes of s
func Head(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n { // byte length bounds rune count
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Preview is Head for log lines: newlines flattened and an ellipsis when cut
func Preview(s string, n int) string {
	h := Head(s, n)
	if len(h) < len(s) {
		h += "..."
	}
	return strings.ReplaceAll(h, "\n", " ")
}

// RuneLen is utf8.RuneCountInString, named for call sites that log sizes
func RuneLen(s string) int { return utf8.RuneCountInString(s) }

// collapseSpaces converts whitespace runs to a single ASCII space, but preserves line breaks
// runs that contain any newline collapse to a single newline; edges are trimmed
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS, sawNL := false, false
	flush := func() {
		if !inWS {
			return
		}
		if sawNL {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		inWS, sawNL = false, false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return strings.Trim(b.String(), " \n\t\r")
}
