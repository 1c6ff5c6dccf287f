// Package verdict decodes the adjudicator's free-form reply into a structured result
//
// Decoding never fails: a reply without a usable JSON object degrades to an
// Unknown verdict that carries the raw reply as its explanation
package verdict

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Verdict is the model's judgement on a claim
type Verdict string

const (
	Real    Verdict = "Real"
	Fake    Verdict = "Fake"
	Unknown Verdict = "Unknown" // decode failure only
)

// NoExplanation is used when the decoded object has no explanation key
const NoExplanation = "No explanation provided."

// Response is the analysis result returned to callers
type Response struct {
	Verdict         Verdict  `json:"verdict"`
	ConfidenceScore float64  `json:"confidence_score"`
	Explanation     string   `json:"explanation"`
	Sources         []string `json:"sources"`

	// Violations lists contract breaches of the decoded object; never serialized
	Violations []string `json:"-"`
	// Decoded reports whether a JSON object was found in the reply
	Decoded bool `json:"-"`
}

// Decode extracts the first JSON object from raw and maps it onto a Response.
// sources always wins over anything the model claims to have cited
func Decode(raw string, sources []string) Response {
	obj, ok := Extract(raw)
	if !ok {
		return Response{
			Verdict:     Unknown,
			Explanation: raw,
			Sources:     []string{},
		}
	}

	out := Response{
		Verdict:         Unknown,
		ConfidenceScore: coerceScore(obj["confidence_score"]),
		Explanation:     NoExplanation,
		Sources:         append([]string{}, sources...),
		Decoded:         true,
	}
	if v, ok := obj["verdict"].(string); ok {
		out.Verdict = Verdict(v)
	}
	switch e := obj["explanation"].(type) {
	case nil:
	case string:
		out.Explanation = e
	default:
		if b, err := json.Marshal(e); err == nil {
			out.Explanation = string(b)
		}
	}
	out.Violations = Contract(obj)
	return out
}

// Extract returns the first balanced {...} span of raw that parses as a JSON object
// carrying a verdict key, else the first balanced span that parses at all.
// braces inside JSON strings do not count towards depth. When no balanced span
// parses, the span from the first '{' to the last '}' is tried as a last resort
func Extract(raw string) (map[string]any, bool) {
	var fallback map[string]any
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}
		end := balanced(raw, i)
		if end < 0 {
			continue
		}
		obj, ok := parseObject(raw[i : end+1])
		if !ok {
			continue
		}
		if _, has := obj["verdict"]; has {
			return obj, true
		}
		if fallback == nil {
			fallback = obj
		}
	}
	if fallback != nil {
		return fallback, true
	}

	first, last := strings.IndexByte(raw, '{'), strings.LastIndexByte(raw, '}')
	if first < 0 || last <= first {
		return nil, false
	}
	return parseObject(raw[first : last+1])
}

// balanced returns the index of the '}' closing the '{' at start, or -1
func balanced(s string, start int) int {
	depth := 0
	inStr, esc := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inStr {
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// coerceScore accepts a JSON number or a numeric string; anything else is 0
func coerceScore(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(x), "%")), 64)
		if err != nil {
			return 0
		}
		f = p
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
