package strings

import (
	"testing"

	kit "github.com/habibaehabb05/Factify/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	if got := IfEmpty([]int{1, 2, 3}, []int{9}); len(got) != 3 || got[0] != 1 {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}
	var empty []string
	if got := IfEmpty(empty, []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("IfEmpty did not return default: %#v", got)
	}
}

func TestOr(t *testing.T) {
	t.Parallel()

	cases := []struct{ s, def, want string }{
		{"Reuters", "Unknown Source", "Reuters"},
		{"", "Unknown Source", "Unknown Source"},
		{"   ", "#", "#"},
		{" kept as is ", "x", " kept as is "},
	}
	for _, c := range cases {
		if got := Or(c.s, c.def); got != c.want {
			t.Errorf("Or(%q,%q)=%q want %q", c.s, c.def, got, c.want)
		}
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if got := MustString("analysis", "module name"); got != "analysis" {
		t.Fatalf("got %q", got)
	}
	kit.MustPanic(t, func() { MustString("  ", "module name") })
}

func TestNormPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":          "/",
		"/":         "/",
		"analyze":   "/analyze",
		" /meta/ ":  "/meta",
		"//query//": "/query",
		"/api/docs": "/api/docs",
	}
	for in, want := range cases {
		if got := NormPrefix(in); got != want {
			t.Errorf("NormPrefix(%q)=%q want %q", in, got, want)
		}
	}
}
