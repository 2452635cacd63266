package fusion

import (
	"fmt"

	"github.com/extractly/fusion/pkg/sources"
)

// Result is the outcome of fusing one candidate set.
type Result struct {
	// Value is the resolved value.
	Value any

	// Source is the source the winning value came from. For averaged
	// numeric clusters this is the cluster's highest-weight member.
	Source sources.ID

	// Confidence is the trustworthiness of the resolved value, in (0,1].
	// It stays close to the winning candidate's own confidence, damped
	// when the candidates disagreed.
	Confidence float64

	// HadConflict is true iff at least two candidates disagreed beyond
	// the configured tolerance.
	HadConflict bool

	// Resolution names the strategy and decisive factor in human-readable
	// form. Diagnostic only.
	Resolution string
}

// String returns a compact representation for logs.
func (r *Result) String() string {
	return fmt.Sprintf("%v from %s (%.2f, conflict=%t): %s",
		r.Value, r.Source, r.Confidence, r.HadConflict, r.Resolution)
}
