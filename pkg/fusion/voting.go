package fusion

import (
	"fmt"
)

// VotingStrategy clusters candidates and selects the cluster with the
// greatest total weight, blending numeric member values into a weighted
// average.
type VotingStrategy struct {
	baseStrategy
}

func newVotingStrategy() Strategy {
	return &VotingStrategy{
		baseStrategy: baseStrategy{
			typ:         StrategyVoting,
			description: "Resolves conflicts by weighted cluster voting",
		},
	}
}

// Resolve picks the heaviest cluster; ties break by cluster size, then by
// the source weight of the heaviest member, then by first-seen order.
func (s *VotingStrategy) Resolve(candidates []Candidate, opts Options) Selection {
	clusters := Partition(candidates, opts)
	winner := bestCluster(clusters, opts)
	rep := winner.Representative(opts)

	// Numeric clusters blend member values into a confidence-and-weight
	// weighted average; everything else keeps the representative's value
	// in its original casing.
	if value, averaged := averageNumeric(winner, opts); averaged {
		return Selection{
			Value:      value,
			Source:     rep.Source,
			Confidence: rep.Confidence,
			Reason: fmt.Sprintf("voting: weighted average of %d agreeing values (cluster weight %.2f)",
				winner.Size(), winner.Weight),
		}
	}

	return Selection{
		Value:      rep.Value,
		Source:     rep.Source,
		Confidence: rep.Confidence,
		Reason: fmt.Sprintf("voting: %d of %d candidates agree, rendered as %s's form",
			winner.Size(), len(candidates), rep.Source),
	}
}

// bestCluster orders clusters by total weight, then size, then the source
// weight of the representative member. Earlier clusters win full ties, so
// the choice is deterministic in input order.
func bestCluster(clusters []Cluster, opts Options) Cluster {
	best := clusters[0]
	for _, c := range clusters[1:] {
		switch {
		case c.Weight > best.Weight:
			best = c
		case c.Weight == best.Weight && c.Size() > best.Size():
			best = c
		case c.Weight == best.Weight && c.Size() == best.Size() &&
			opts.weightOf(c.Representative(opts)) > opts.weightOf(best.Representative(opts)):
			best = c
		}
	}
	return best
}

// averageNumeric computes the weighted average of a cluster's values when
// every member is numeric. Per-member weight is confidence × source weight,
// normalized to sum 1.
func averageNumeric(c Cluster, opts Options) (float64, bool) {
	first, ok := numericValue(c.Members[0].Value)
	if !ok {
		return 0, false
	}

	allEqual := true
	var sum, totalWeight float64
	for _, m := range c.Members {
		v, ok := numericValue(m.Value)
		if !ok {
			return 0, false
		}
		if v != first {
			allEqual = false
		}
		w := m.Confidence * opts.weightOf(m)
		sum += v * w
		totalWeight += w
	}

	// Identical member values pass through untouched so no floating-point
	// drift leaks into the result.
	if allEqual {
		return first, true
	}
	if totalWeight == 0 {
		// All members weightless; fall back to a plain mean.
		for _, m := range c.Members {
			v, _ := numericValue(m.Value)
			sum += v
		}
		return sum / float64(c.Size()), true
	}
	return sum / totalWeight, true
}

// ConsensusStrategy accepts a clustered value only when enough independent
// sources agree on it, falling back to the priority strategy otherwise.
type ConsensusStrategy struct {
	baseStrategy
}

func newConsensusStrategy() Strategy {
	return &ConsensusStrategy{
		baseStrategy: baseStrategy{
			typ:         StrategyConsensus,
			description: "Requires a minimum number of agreeing sources",
		},
	}
}

// Resolve returns the representative of the heaviest cluster that reaches
// the consensus count. When no cluster is large enough the full candidate
// set falls back to priority resolution, and the rationale says so.
func (s *ConsensusStrategy) Resolve(candidates []Candidate, opts Options) Selection {
	clusters := Partition(candidates, opts)

	var eligible []Cluster
	for _, c := range clusters {
		if c.Size() >= opts.ConsensusCount {
			eligible = append(eligible, c)
		}
	}

	if len(eligible) == 0 {
		priority, _ := strategyFor(StrategyPriority)
		sel := priority.Resolve(candidates, opts)
		sel.Reason = fmt.Sprintf("consensus: no cluster reached %d sources, falling back to priority (%s)",
			opts.ConsensusCount, sel.Reason)
		return sel
	}

	winner := bestCluster(eligible, opts)
	rep := winner.Representative(opts)
	return Selection{
		Value:      rep.Value,
		Source:     rep.Source,
		Confidence: rep.Confidence,
		Reason:     fmt.Sprintf("consensus: %d sources agree on this value", winner.Size()),
	}
}
