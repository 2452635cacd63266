package fusion

import (
	"context"

	"github.com/extractly/fusion/pkg/errors"
	"github.com/extractly/fusion/pkg/logging"
)

const (
	// conflictDamping is applied to the winning candidate's confidence when
	// the input disagreed beyond tolerance. Keeps the adjusted value within
	// 0.1 of the original.
	conflictDamping = 0.9

	// minConfidence keeps Result.Confidence inside (0,1].
	minConfidence = 0.05
)

// Fuse resolves a candidate set into a single value using the strategy
// named in opts. It returns an error for an empty candidate set or an
// unrecognized strategy; every other irregularity degrades gracefully and
// is recorded in the result's resolution rationale.
func Fuse(candidates []Candidate, opts Options) (*Result, error) {
	return FuseContext(context.Background(), candidates, opts)
}

// FuseContext is Fuse with a caller-scoped logger carried in ctx. The
// computation itself is pure: the context is consulted only for logging.
func FuseContext(ctx context.Context, candidates []Candidate, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	if len(candidates) == 0 {
		return nil, errors.NewEmptyInputError("fuse")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	// A single observation cannot conflict with anything, regardless of
	// the requested strategy.
	if len(candidates) == 1 {
		only := candidates[0]
		return &Result{
			Value:       only.Value,
			Source:      only.Source,
			Confidence:  clampConfidence(only.Confidence),
			HadConflict: false,
			Resolution:  "single candidate from " + only.Source.String() + ", no conflict",
		}, nil
	}

	strategy, ok := strategyFor(opts.Strategy)
	if !ok {
		return nil, errors.NewUnknownStrategyError(opts.Strategy.String())
	}

	clusters := Partition(candidates, opts)
	hadConflict := len(clusters) > 1

	selection := strategy.Resolve(candidates, opts)

	confidence := selection.Confidence
	if hadConflict {
		confidence *= conflictDamping
	}
	confidence = clampConfidence(confidence)

	logger.Debug().
		Str("strategy", strategy.Type().String()).
		Int("candidates", len(candidates)).
		Int("clusters", len(clusters)).
		Bool("conflict", hadConflict).
		Str("source", selection.Source.String()).
		Msg("Fused candidates")

	return &Result{
		Value:       selection.Value,
		Source:      selection.Source,
		Confidence:  confidence,
		HadConflict: hadConflict,
		Resolution:  selection.Reason,
	}, nil
}

// clampConfidence keeps a confidence inside (0,1].
func clampConfidence(c float64) float64 {
	if c < minConfidence {
		return minConfidence
	}
	if c > 1 {
		return 1
	}
	return c
}
