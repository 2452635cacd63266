// Package sources defines the identifiers of the extraction sources that
// produce field candidates, together with their reliability weights.
//
// Each source maps to a fixed weight in [0,1]. Weights form a total order
// used as a tie-break signal by the fusion strategies; they never decide
// whether a candidate is eligible at all.
//
// Example usage:
//
//	w := sources.Weight(sources.JSONLD) // 1.0
//
//	if sources.ID("jsonld").IsValid() {
//	    // known source
//	}
package sources

import "slices"

// ID represents the identifier of an extraction source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Known source IDs, ordered by structured-data reliability.
const (
	// JSONLD is linked-data markup embedded in script tags.
	JSONLD ID = "jsonld"

	// Microdata is inline itemprop/itemscope markup.
	Microdata ID = "microdata"

	// OpenGraph is social preview metadata.
	OpenGraph ID = "opengraph"

	// Context is values inferred from surrounding page context.
	Context ID = "context"

	// Pattern is free-text pattern heuristics.
	Pattern ID = "pattern"
)

// IDs returns all known source IDs in reliability order.
func IDs() []ID {
	return []ID{
		JSONLD,
		Microdata,
		OpenGraph,
		Context,
		Pattern,
	}
}

// IsValid returns true if the ID is one of the defined constants.
// Uses IDs() to ensure consistency with the authoritative id list.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}
