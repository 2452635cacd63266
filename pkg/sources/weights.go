package sources

import (
	"fmt"
	"maps"
	"os"

	"github.com/goccy/go-yaml"
)

// defaultUnknownWeight is assigned to sources absent from a table.
// It sits below every known source so unrecognized extractors never
// outrank the documented ones on a tie-break.
const defaultUnknownWeight = 0.3

// Weights is the default source reliability table. Explicit machine-readable
// formats rank above social preview metadata, which ranks above free-text
// heuristics. Read-only after initialization.
var Weights = map[ID]float64{
	JSONLD:    1.0,
	Microdata: 0.8,
	OpenGraph: 0.6,
	Context:   0.5,
	Pattern:   0.4,
}

// Weight returns the default table's weight for a source.
func Weight(id ID) float64 {
	return DefaultTable().Weight(id)
}

// Table is an immutable source weight table.
type Table struct {
	weights map[ID]float64
}

// defaultTable copies Weights at init so later mutation of the exported map
// cannot reach the process-wide default.
var defaultTable = NewTable(Weights)

// DefaultTable returns the process-wide default weight table.
func DefaultTable() *Table {
	return defaultTable
}

// NewTable creates a table from a weight map. The map is copied so later
// mutation by the caller cannot affect the table.
func NewTable(weights map[ID]float64) *Table {
	copied := make(map[ID]float64, len(weights))
	maps.Copy(copied, weights)
	return &Table{weights: copied}
}

// Weight returns the weight for a source, or the unknown-source default
// when the table has no entry for it.
func (t *Table) Weight(id ID) float64 {
	if w, ok := t.weights[id]; ok {
		return w
	}
	return defaultUnknownWeight
}

// Map returns a copy of the table's weight map.
func (t *Table) Map() map[ID]float64 {
	copied := make(map[ID]float64, len(t.weights))
	maps.Copy(copied, t.weights)
	return copied
}

// Validate checks that every weight is within [0,1] and that the table
// preserves the documented reliability ordering for known sources.
func (t *Table) Validate() error {
	for id, w := range t.weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("weight for source %s out of range [0,1]: %v", id, w)
		}
	}

	ids := IDs()
	for i := 1; i < len(ids); i++ {
		higher, lower := ids[i-1], ids[i]
		if t.Weight(higher) <= t.Weight(lower) {
			return fmt.Errorf("weight ordering violated: %s (%v) must outrank %s (%v)",
				higher, t.Weight(higher), lower, t.Weight(lower))
		}
	}
	return nil
}

// tableFile is the on-disk YAML representation of a weight table.
type tableFile struct {
	Weights map[ID]float64 `yaml:"weights"`
}

// LoadTable reads weight overrides from a YAML file and layers them over
// the defaults. Returns the default table if the file does not exist.
func LoadTable(path string) (*Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultTable(), nil
	}

	// Path is operator configuration, not user input
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read weight table: %w", err)
	}

	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse weight table: %w", err)
	}

	merged := make(map[ID]float64, len(Weights)+len(tf.Weights))
	maps.Copy(merged, Weights)
	maps.Copy(merged, tf.Weights)

	table := &Table{weights: merged}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
