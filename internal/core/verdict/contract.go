package verdict

import (
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Scale is the fixed set of confidence scores the adjudicator may emit
var Scale = []float64{95, 85, 75, 65, 50, 35, 20}

// InScale reports whether score is a member of Scale
func InScale(score float64) bool { return slices.Contains(Scale, score) }

const schemaJSON = `{
  "type": "object",
  "required": ["verdict", "confidence_score", "explanation"],
  "properties": {
    "verdict": {"type": "string", "enum": ["Real", "Fake"]},
    "confidence_score": {"type": "number"},
    "explanation": {"type": "string", "minLength": 1}
  }
}`

var schema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
})

// Contract checks a decoded object against the adjudication output contract.
// it reports violations and never alters the object
func Contract(obj map[string]any) []string {
	var out []string

	s, err := schema()
	if err != nil {
		return []string{"contract schema: " + err.Error()}
	}
	res, err := s.Validate(gojsonschema.NewGoLoader(obj))
	if err != nil {
		return []string{"contract validate: " + err.Error()}
	}
	for _, e := range res.Errors() {
		out = append(out, e.String())
	}

	if f, ok := obj["confidence_score"].(float64); ok && !InScale(f) {
		out = append(out, fmt.Sprintf("confidence_score: %s is not on the fixed scale", strconv.FormatFloat(f, 'f', -1, 64)))
	}
	return out
}
