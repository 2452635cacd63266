package fusion

import (
	"fmt"
	"strings"

	"github.com/extractly/fusion/pkg/sources"
)

// StrategyType names a conflict-resolution strategy.
type StrategyType string

// String returns the string representation of a strategy type.
func (s StrategyType) String() string {
	return string(s)
}

// Name returns a humanized name for the strategy type.
func (s StrategyType) Name() string {
	str := s.String()
	words := strings.Split(str, "-")
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

const (
	// StrategyPriority selects the candidate from the highest-weighted source.
	StrategyPriority StrategyType = "priority"
	// StrategyConfidence selects the candidate with the highest confidence.
	StrategyConfidence StrategyType = "confidence"
	// StrategyVoting selects the heaviest cluster and blends its values.
	StrategyVoting StrategyType = "voting"
	// StrategyConsensus requires a minimum number of agreeing sources.
	StrategyConsensus StrategyType = "consensus"
	// StrategyFirst keeps the first candidate in input order.
	StrategyFirst StrategyType = "first"
)

// Strategies returns all registered strategy types.
func Strategies() []StrategyType {
	return []StrategyType{
		StrategyPriority,
		StrategyConfidence,
		StrategyVoting,
		StrategyConsensus,
		StrategyFirst,
	}
}

// Selection is a resolver's pick: the winning value, the source it came
// from, that source's own confidence, and a human-readable rationale.
// The rationale is diagnostic only and is never machine-parsed.
type Selection struct {
	Value      any
	Source     sources.ID
	Confidence float64
	Reason     string
}

// Strategy resolves a non-empty candidate set into a single selection.
// Implementations are stateless and must be referentially transparent.
type Strategy interface {
	// Type returns the strategy type
	Type() StrategyType

	// Description returns a human-readable description
	Description() string

	// Resolve picks one value from a candidate set. Callers guarantee at
	// least one candidate.
	Resolve(candidates []Candidate, opts Options) Selection
}

// baseStrategy provides common strategy functionality.
type baseStrategy struct {
	typ         StrategyType
	description string
}

// Type returns the strategy type.
func (s *baseStrategy) Type() StrategyType {
	return s.typ
}

// Description returns a human-readable description.
func (s *baseStrategy) Description() string {
	return s.description
}

// registry maps strategy types to their resolvers. Strategies hold no
// state, so shared singletons are safe.
var registry = map[StrategyType]Strategy{
	StrategyPriority:   newPriorityStrategy(),
	StrategyConfidence: newConfidenceStrategy(),
	StrategyVoting:     newVotingStrategy(),
	StrategyConsensus:  newConsensusStrategy(),
	StrategyFirst:      newFirstStrategy(),
}

// strategyFor looks up the resolver for a strategy type.
func strategyFor(typ StrategyType) (Strategy, bool) {
	s, ok := registry[typ]
	return s, ok
}

// PriorityStrategy selects the candidate whose source carries the highest
// weight table entry; ties break by higher confidence.
type PriorityStrategy struct {
	baseStrategy
}

func newPriorityStrategy() Strategy {
	return &PriorityStrategy{
		baseStrategy: baseStrategy{
			typ:         StrategyPriority,
			description: "Resolves conflicts using source reliability weights",
		},
	}
}

// Resolve picks the candidate with the maximal source weight.
func (s *PriorityStrategy) Resolve(candidates []Candidate, opts Options) Selection {
	best := candidates[0]
	bestWeight := opts.weightOf(best)

	for _, c := range candidates[1:] {
		w := opts.weightOf(c)
		if w > bestWeight || (w == bestWeight && c.Confidence > best.Confidence) {
			best, bestWeight = c, w
		}
	}

	return Selection{
		Value:      best.Value,
		Source:     best.Source,
		Confidence: best.Confidence,
		Reason:     fmt.Sprintf("priority: source %s has highest weight (%.2f)", best.Source, bestWeight),
	}
}

// ConfidenceStrategy selects the candidate with the highest confidence;
// ties break by source weight.
type ConfidenceStrategy struct {
	baseStrategy
}

func newConfidenceStrategy() Strategy {
	return &ConfidenceStrategy{
		baseStrategy: baseStrategy{
			typ:         StrategyConfidence,
			description: "Resolves conflicts using extractor confidence scores",
		},
	}
}

// Resolve picks the candidate with the maximal confidence.
func (s *ConfidenceStrategy) Resolve(candidates []Candidate, opts Options) Selection {
	best := candidates[0]

	for _, c := range candidates[1:] {
		if c.Confidence > best.Confidence ||
			(c.Confidence == best.Confidence && opts.weightOf(c) > opts.weightOf(best)) {
			best = c
		}
	}

	return Selection{
		Value:      best.Value,
		Source:     best.Source,
		Confidence: best.Confidence,
		Reason:     fmt.Sprintf("confidence: %s scored highest (%.2f)", best.Source, best.Confidence),
	}
}

// FirstStrategy keeps the first candidate in input order, irrespective of
// weight or confidence.
type FirstStrategy struct {
	baseStrategy
}

func newFirstStrategy() Strategy {
	return &FirstStrategy{
		baseStrategy: baseStrategy{
			typ:         StrategyFirst,
			description: "Keeps the first candidate in input order",
		},
	}
}

// Resolve returns the first candidate unmodified.
func (s *FirstStrategy) Resolve(candidates []Candidate, _ Options) Selection {
	first := candidates[0]
	return Selection{
		Value:      first.Value,
		Source:     first.Source,
		Confidence: first.Confidence,
		Reason:     fmt.Sprintf("first: kept initial candidate from %s", first.Source),
	}
}
