// Package fusion implements the conflict-resolution engine that reconciles
// field values proposed by several independent extraction sources.
//
// Each source proposes a Candidate (value, source, confidence). Fuse applies
// the configured Strategy to a candidate set and produces a single Result
// with a resolution rationale and a trustworthy confidence. Strategies and
// the clustering utility are stateless and referentially transparent:
// identical inputs always yield identical outputs.
package fusion

import (
	"fmt"

	"github.com/extractly/fusion/pkg/sources"
)

// Candidate is one source's proposed value for a field, with a confidence
// score in [0,1]. Candidates are immutable observations: the engine never
// mutates them.
type Candidate struct {
	Value      any
	Source     sources.ID
	Confidence float64
}

// String returns a compact representation for logs and rationale strings.
func (c Candidate) String() string {
	return fmt.Sprintf("%v (%s, %.2f)", c.Value, c.Source, c.Confidence)
}

// numericValue reports a candidate value as a float64 when it carries one
// of the numeric kinds the extractors produce.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
