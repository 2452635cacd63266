package merge

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/extractly/fusion/pkg/errors"
	"github.com/extractly/fusion/pkg/fusion"
	"github.com/extractly/fusion/pkg/sources"
)

// Test helper functions
func strp(s string) *string   { return &s }
func numP(f float64) *float64 { return &f }

func jsonldDoc() Document {
	return Document{
		Source:     sources.JSONLD,
		Confidence: 0.9,
		Data: PartialProduct{
			Name:      strp("Cordless Drill X200"),
			Price:     &PartialPrice{Amount: numP(129.99), Currency: strp("EUR")},
			Reference: strp("X200-EU"),
			Brand:     strp("MAKITA"),
		},
	}
}

func opengraphDoc() Document {
	return Document{
		Source:     sources.OpenGraph,
		Confidence: 0.7,
		Data: PartialProduct{
			Name:  strp("Cordless Drill X200"),
			Price: &PartialPrice{Amount: numP(129.99)},
			Brand: strp("Makita"),
		},
	}
}

func TestMergeEmptyInput(t *testing.T) {
	_, err := Merge(nil, fusion.Options{Strategy: fusion.StrategyVoting})
	if !errors.IsEmptyInput(err) {
		t.Fatalf("expected empty-input error, got %v", err)
	}
}

func TestMergeSoleSourceField(t *testing.T) {
	// reference exists only in the jsonld document.
	docs := []Document{jsonldDoc(), opengraphDoc()}

	result, err := Merge(docs, fusion.Options{Strategy: fusion.StrategyVoting})
	if err != nil {
		t.Fatal(err)
	}

	if result.Product.Reference == nil || *result.Product.Reference != "X200-EU" {
		t.Fatalf("expected reference from sole defining document, got %v", result.Product.Reference)
	}

	entry, ok := result.Evidence.ByField("reference")
	if !ok {
		t.Fatal("expected evidence for reference")
	}
	if entry.Conflict {
		t.Error("sole-source field cannot conflict")
	}
	if entry.Source != sources.JSONLD {
		t.Errorf("expected jsonld as sole source, got %s", entry.Source)
	}
	if !strings.Contains(entry.Resolution, "jsonld") {
		t.Errorf("resolution should note the sole source: %s", entry.Resolution)
	}
}

func TestMergeOmitsAbsentFields(t *testing.T) {
	docs := []Document{jsonldDoc(), opengraphDoc()}

	result, err := Merge(docs, fusion.Options{Strategy: fusion.StrategyVoting})
	if err != nil {
		t.Fatal(err)
	}

	// Weight appears in no source document.
	if result.Product.Weight != nil {
		t.Errorf("expected weight omitted, got %+v", result.Product.Weight)
	}
	if _, ok := result.Evidence.ByField("weight.value"); ok {
		t.Error("absent fields must not produce evidence")
	}
}

func TestMergeEvidenceOrder(t *testing.T) {
	docs := []Document{jsonldDoc(), opengraphDoc()}

	result, err := Merge(docs, fusion.Options{Strategy: fusion.StrategyVoting})
	if err != nil {
		t.Fatal(err)
	}

	var fields []string
	for _, e := range result.Evidence {
		fields = append(fields, e.Field)
	}

	want := []string{"name", "price.amount", "price.currency", "reference", "brand"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("evidence must follow schema traversal order (-want +got):\n%s", diff)
	}
}

func TestMergeProduct(t *testing.T) {
	docs := []Document{jsonldDoc(), opengraphDoc()}

	result, err := Merge(docs, fusion.Options{Strategy: fusion.StrategyVoting})
	if err != nil {
		t.Fatal(err)
	}

	want := Product{
		Name:      strp("Cordless Drill X200"),
		Price:     &Price{Amount: numP(129.99), Currency: strp("EUR")},
		Reference: strp("X200-EU"),
		Brand:     strp("MAKITA"), // jsonld casing wins the fold-equal cluster
	}
	if diff := cmp.Diff(want, result.Product); diff != "" {
		t.Errorf("merged product mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeConflictingPrices(t *testing.T) {
	docs := []Document{jsonldDoc(), opengraphDoc()}
	docs[1].Data.Price.Amount = numP(119.99)

	result, err := Merge(docs, fusion.Options{Strategy: fusion.StrategyPriority})
	if err != nil {
		t.Fatal(err)
	}

	if result.Product.Price.Amount == nil || *result.Product.Price.Amount != 129.99 {
		t.Errorf("priority should keep the jsonld price, got %v", result.Product.Price.Amount)
	}

	entry, _ := result.Evidence.ByField("price.amount")
	if !entry.Conflict {
		t.Error("disagreeing prices must flag a conflict")
	}
	if result.Stats.Conflicts != 1 {
		t.Errorf("expected 1 conflict in stats, got %d", result.Stats.Conflicts)
	}
}

func TestMergeAttributes(t *testing.T) {
	docs := []Document{
		{
			Source:     sources.Microdata,
			Confidence: 0.8,
			Data: PartialProduct{
				Attributes: map[string]any{"color": "Anthracite", "voltage": 18.0},
			},
		},
		{
			Source:     sources.Pattern,
			Confidence: 0.5,
			Data: PartialProduct{
				Attributes: map[string]any{"color": "anthracite"},
			},
		},
	}

	result, err := Merge(docs, fusion.Options{Strategy: fusion.StrategyVoting})
	if err != nil {
		t.Fatal(err)
	}

	if got := result.Product.Attributes["color"]; got != "Anthracite" {
		t.Errorf("expected microdata casing for color, got %v", got)
	}
	if got := result.Product.Attributes["voltage"]; got != 18.0 {
		t.Errorf("expected voltage 18.0, got %v", got)
	}

	// Attribute evidence is appended after the fixed schema, keys sorted.
	var fields []string
	for _, e := range result.Evidence {
		fields = append(fields, e.Field)
	}
	want := []string{"attributes.color", "attributes.voltage"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("attribute evidence order mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeUnknownStrategySurfaces(t *testing.T) {
	docs := []Document{jsonldDoc(), opengraphDoc()}

	_, err := Merge(docs, fusion.Options{Strategy: "median"})
	if !errors.IsUnknownStrategy(err) {
		t.Fatalf("expected unknown-strategy error, got %v", err)
	}
}

func TestMergeStats(t *testing.T) {
	docs := []Document{jsonldDoc(), opengraphDoc()}

	result, err := Merge(docs, fusion.Options{Strategy: fusion.StrategyVoting})
	if err != nil {
		t.Fatal(err)
	}

	if result.Stats.Documents != 2 {
		t.Errorf("expected 2 documents, got %d", result.Stats.Documents)
	}
	if result.Stats.FieldsResolved != len(result.Evidence) {
		t.Errorf("fields resolved (%d) must match evidence entries (%d)",
			result.Stats.FieldsResolved, len(result.Evidence))
	}
	if !strings.Contains(result.Summary(), "2 documents") {
		t.Errorf("summary should mention document count: %s", result.Summary())
	}
}

func TestNumPtrAllNumericKinds(t *testing.T) {
	values := []any{
		float64(1.5), float32(1.5),
		int(2), int8(2), int16(2), int32(2), int64(2),
		uint(2), uint8(2), uint16(2), uint32(2), uint64(2),
	}
	for _, v := range values {
		if numPtr(v) == nil {
			t.Errorf("numeric value %T(%v) must not be dropped", v, v)
		}
	}
	if numPtr("not a number") != nil {
		t.Error("non-numeric value must stay nil")
	}
}

func TestEvidenceLogRendering(t *testing.T) {
	log := Log{
		{Field: "name", Source: sources.JSONLD, Resolution: "voting: agreed", Confidence: 0.9},
		{Field: "brand", Source: sources.Pattern, Resolution: "single candidate", Confidence: 0.4, Conflict: false},
	}

	out := log.String()
	if !strings.Contains(out, "name") || !strings.Contains(out, "brand") {
		t.Errorf("rendered log should list every field:\n%s", out)
	}
	if log.Conflicts() != 0 {
		t.Errorf("expected no conflicts, got %d", log.Conflicts())
	}
}
