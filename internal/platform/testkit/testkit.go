// Package testkit holds the assertions and seams shared by package tests
package testkit

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// MustPanic fails the test unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic, got none")
		}
	}()
	fn()
}

// MustNotPanic fails the test if fn panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain fails unless haystack contains needle
// long haystacks (log dumps, HTML pages) are written to a temp file instead of the test log
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	if len(haystack) <= 512 {
		t.Fatalf("expected %q in:\n%s", needle, haystack)
	}
	dump := filepath.Join(t.TempDir(), "haystack.txt")
	_ = os.WriteFile(dump, []byte(haystack), 0o600)
	t.Fatalf("expected %q; full output written to %s", needle, dump)
}

// Do sends one request through h; a non-empty body is sent as JSON
func Do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var seamMu sync.Mutex

// Swap replaces *target for the duration of the test
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial runs the rest of the test under a process-wide lock
// use it in tests that touch package-level seams or registries
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}
