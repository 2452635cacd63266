package merge

import (
	"fmt"
	"strings"

	"github.com/extractly/fusion/pkg/sources"
)

// Evidence records which source and resolution produced a merged field's
// value. Entries appear in schema traversal order and are immutable once
// the merge returns.
type Evidence struct {
	Field      string     `yaml:"field" json:"field"`
	Source     sources.ID `yaml:"source" json:"source"`
	Resolution string     `yaml:"resolution" json:"resolution"`
	Confidence float64    `yaml:"confidence" json:"confidence"`
	Conflict   bool       `yaml:"conflict" json:"conflict"`
}

// String returns a single-line rendering of the entry.
func (e Evidence) String() string {
	return fmt.Sprintf("%-16s %-10s %.2f  %s", e.Field, e.Source, e.Confidence, e.Resolution)
}

// Log is the ordered evidence produced alongside a merged product.
type Log []Evidence

// String generates a human-readable evidence report.
func (l Log) String() string {
	var sb strings.Builder

	sb.WriteString("Merge Evidence\n")
	sb.WriteString("==============\n")

	for _, e := range l {
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}

	return sb.String()
}

// Conflicts returns the number of entries resolved from disagreeing
// candidates.
func (l Log) Conflicts() int {
	count := 0
	for _, e := range l {
		if e.Conflict {
			count++
		}
	}
	return count
}

// ByField returns the entry for a field path, if present.
func (l Log) ByField(field string) (Evidence, bool) {
	for _, e := range l {
		if e.Field == field {
			return e, true
		}
	}
	return Evidence{}, false
}
