// Package strings provides small string and slice helpers shared across layers
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Or returns s unless it is blank, then def
func Or(s, def string) string {
	if std.TrimSpace(s) == "" {
		return def
	}
	return s
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// NormPrefix normalizes a mount path like /analyze or meta/
// ensures a single leading slash and no trailing slash; "" and "/" both mean root
func NormPrefix(s string) string {
	return "/" + std.Trim(std.TrimSpace(s), " /")
}
