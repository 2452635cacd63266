package fusion

import (
	"math"
	"testing"

	"github.com/extractly/fusion/pkg/sources"
)

// Test helper functions
func cand(value any, source sources.ID, confidence float64) Candidate {
	return Candidate{Value: value, Source: source, Confidence: confidence}
}

func TestPartitionExactNumeric(t *testing.T) {
	candidates := []Candidate{
		cand(100.0, sources.JSONLD, 0.9),
		cand(100.0, sources.Microdata, 0.8),
		cand(95.0, sources.Pattern, 0.5),
	}

	clusters := Partition(candidates, Options{})
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if clusters[0].Size() != 2 {
		t.Errorf("expected first cluster of size 2, got %d", clusters[0].Size())
	}
}

func TestPartitionNumericTolerance(t *testing.T) {
	candidates := []Candidate{
		cand(100.0, sources.JSONLD, 0.9),
		cand(101.0, sources.Microdata, 0.8),
	}

	// 1% apart, 2% tolerance
	clusters := Partition(candidates, Options{Tolerance: 0.02})
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster with tolerance, got %d", len(clusters))
	}

	clusters = Partition(candidates, Options{Tolerance: 0.001})
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters without tolerance, got %d", len(clusters))
	}
}

func TestPartitionTransitiveClosure(t *testing.T) {
	// 100~104 and 104~108 are each within 5%, 100~108 is not; transitive
	// closure still joins all three.
	candidates := []Candidate{
		cand(100.0, sources.JSONLD, 0.9),
		cand(104.0, sources.Microdata, 0.8),
		cand(108.0, sources.OpenGraph, 0.7),
	}

	clusters := Partition(candidates, Options{Tolerance: 0.05})
	if len(clusters) != 1 {
		t.Fatalf("expected transitive closure to produce 1 cluster, got %d", len(clusters))
	}
	if clusters[0].Size() != 3 {
		t.Errorf("expected 3 members, got %d", clusters[0].Size())
	}
}

func TestPartitionStringsFoldCase(t *testing.T) {
	candidates := []Candidate{
		cand("PEUGEOT", sources.JSONLD, 0.9),
		cand("Peugeot", sources.OpenGraph, 0.7),
		cand("Renault", sources.Pattern, 0.5),
	}

	// Tolerance never applies to strings.
	clusters := Partition(candidates, Options{Tolerance: 0.5})
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if clusters[0].Size() != 2 {
		t.Errorf("expected case-folded cluster of size 2, got %d", clusters[0].Size())
	}
}

func TestPartitionMixedTypesNeverCluster(t *testing.T) {
	candidates := []Candidate{
		cand(100.0, sources.JSONLD, 0.9),
		cand("100", sources.Pattern, 0.5),
	}

	clusters := Partition(candidates, Options{})
	if len(clusters) != 2 {
		t.Fatalf("numeric and string must not share a cluster, got %d clusters", len(clusters))
	}
}

func TestClusterWeight(t *testing.T) {
	candidates := []Candidate{
		cand(100.0, sources.JSONLD, 0.9),  // 0.9 * 1.0
		cand(100.0, sources.Pattern, 0.5), // 0.5 * 0.4
	}

	clusters := Partition(candidates, Options{})
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}

	want := 0.9*1.0 + 0.5*0.4
	if math.Abs(clusters[0].Weight-want) > 1e-9 {
		t.Errorf("expected cluster weight %.3f, got %.3f", want, clusters[0].Weight)
	}
}

func TestClusterRepresentative(t *testing.T) {
	candidates := []Candidate{
		cand("peugeot", sources.Pattern, 0.9),
		cand("PEUGEOT", sources.JSONLD, 0.6),
	}

	clusters := Partition(candidates, Options{})
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}

	rep := clusters[0].Representative(Options{}.withDefaults())
	if rep.Source != sources.JSONLD {
		t.Errorf("expected representative from jsonld, got %s", rep.Source)
	}
}

func TestClusterRepresentativeZeroOptions(t *testing.T) {
	// Representative must work with whatever options the caller holds,
	// including a zero value with no weight table set.
	clusters := Partition([]Candidate{
		cand("peugeot", sources.Pattern, 0.9),
		cand("PEUGEOT", sources.JSONLD, 0.6),
	}, Options{})
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}

	rep := clusters[0].Representative(Options{})
	if rep.Source != sources.JSONLD {
		t.Errorf("expected default weights to pick jsonld, got %s", rep.Source)
	}
}

func TestPartitionEmpty(t *testing.T) {
	if clusters := Partition(nil, Options{}); clusters != nil {
		t.Errorf("expected nil clusters for empty input, got %v", clusters)
	}
}

func TestRelativeDistanceSmallValues(t *testing.T) {
	// Denominator floors at 1, so sub-unit values compare absolutely.
	if d := relativeDistance(0.1, 0.2); math.Abs(d-0.1) > 1e-9 {
		t.Errorf("expected distance 0.1, got %v", d)
	}
}

func TestPartitionIntAndFloatCluster(t *testing.T) {
	candidates := []Candidate{
		cand(100, sources.JSONLD, 0.9),
		cand(100.0, sources.Microdata, 0.8),
	}

	clusters := Partition(candidates, Options{})
	if len(clusters) != 1 {
		t.Fatalf("int and float of equal value should cluster, got %d clusters", len(clusters))
	}
}
