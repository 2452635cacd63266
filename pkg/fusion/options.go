package fusion

import (
	"github.com/extractly/fusion/pkg/errors"
	"github.com/extractly/fusion/pkg/sources"
)

// DefaultConsensusCount is the minimum number of agreeing sources the
// consensus strategy requires when Options leaves ConsensusCount unset.
const DefaultConsensusCount = 2

// Options configures a fusion run.
type Options struct {
	// Strategy selects the conflict resolver. Required for multi-candidate
	// inputs; single-candidate inputs resolve without it.
	Strategy StrategyType

	// Tolerance is the relative-distance threshold used when clustering
	// numeric values (0.01 = 1%). Zero requires exact matches. Strings
	// always compare case-insensitively regardless of tolerance.
	Tolerance float64

	// ConsensusCount is the minimum number of sources that must agree for
	// the consensus strategy to accept a value without falling back.
	// Defaults to DefaultConsensusCount.
	ConsensusCount int

	// Weights overrides the source weight table. Nil means the process-wide
	// default table.
	Weights *sources.Table
}

// withDefaults fills unset option fields.
func (o Options) withDefaults() Options {
	if o.ConsensusCount <= 0 {
		o.ConsensusCount = DefaultConsensusCount
	}
	if o.Weights == nil {
		o.Weights = sources.DefaultTable()
	}
	return o
}

// validate rejects option values outside their documented domains.
func (o Options) validate() error {
	if o.Tolerance < 0 {
		return errors.NewValidationError("tolerance", o.Tolerance, "must be >= 0")
	}
	return nil
}

// weightOf returns the source weight of a candidate under these options.
// A nil Weights table means the process-wide default, so zero-value Options
// are safe everywhere, not just behind withDefaults.
func (o Options) weightOf(c Candidate) float64 {
	table := o.Weights
	if table == nil {
		table = sources.DefaultTable()
	}
	return table.Weight(c.Source)
}
