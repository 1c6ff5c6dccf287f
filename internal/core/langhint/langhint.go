// Package langhint gives a coarse script and language guess for a claim
// it feeds logs and the CLI only; the pipeline never branches on it
package langhint

import "unicode"

// MinLetters is the letter count below which no language is guessed
const MinLetters = 20

// Hint is the detection result
type Hint struct {
	Script  string `json:"script,omitempty"`
	Lang    string `json:"lang,omitempty"`
	Letters int    `json:"letters"`
}

// script order doubles as the tie-break: specific scripts beat Latin
var scripts = []struct {
	name  string
	table *unicode.RangeTable
	// lang is set only where the script maps to one language in practice
	lang string
}{
	{"Hiragana", unicode.Hiragana, "ja"},
	{"Katakana", unicode.Katakana, "ja"},
	{"Hangul", unicode.Hangul, "ko"},
	{"Han", unicode.Han, ""},
	{"Arabic", unicode.Arabic, "ar"},
	{"Hebrew", unicode.Hebrew, "he"},
	{"Thai", unicode.Thai, "th"},
	{"Greek", unicode.Greek, "el"},
	{"Cyrillic", unicode.Cyrillic, ""},
	{"Georgian", unicode.Georgian, "ka"},
	{"Armenian", unicode.Armenian, "hy"},
	{"Devanagari", unicode.Devanagari, ""},
	{"Latin", unicode.Latin, ""},
}

// Detect counts letters per script and picks the predominant one
// Lang is only set with at least MinLetters letters and an unambiguous script;
// any kana at all marks Japanese even when Han dominates
func Detect(s string) Hint {
	counts := make([]int, len(scripts))
	var h Hint
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		h.Letters++
		for i, sc := range scripts {
			if unicode.Is(sc.table, r) {
				counts[i]++
				break
			}
		}
	}

	best := -1
	for i, c := range counts {
		if c > 0 && (best < 0 || c > counts[best]) {
			best = i
		}
	}
	if best < 0 {
		return h
	}
	h.Script = scripts[best].name

	if h.Letters < MinLetters {
		return h
	}
	switch {
	case counts[0] > 0 || counts[1] > 0:
		h.Lang = "ja"
	default:
		h.Lang = scripts[best].lang
	}
	return h
}
