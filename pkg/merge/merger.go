package merge

import (
	"context"
	"fmt"
	"sort"

	"github.com/extractly/fusion/pkg/errors"
	"github.com/extractly/fusion/pkg/fusion"
	"github.com/extractly/fusion/pkg/logging"
)

// Result is the outcome of merging source documents: the assembled product
// plus the ordered evidence log. Both are immutable outputs; a fresh merge
// is the only way to change them.
type Result struct {
	Product  Product
	Evidence Log
	Stats    Statistics
}

// Statistics summarizes a merge.
type Statistics struct {
	Documents      int
	FieldsResolved int
	Conflicts      int
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("Merged %d documents into %d fields (%d conflicts resolved)",
		r.Stats.Documents, r.Stats.FieldsResolved, r.Stats.Conflicts)
}

// leafField describes one scalar leaf of the product schema: how to read it
// from a source document and how to write the fused value into the merged
// record.
type leafField struct {
	path string
	get  func(*PartialProduct) (any, bool)
	set  func(*Product, any)
}

// productSchema lists the fixed schema leaves in traversal order. Evidence
// entries follow this order, with free-form attributes appended after.
var productSchema = []leafField{
	{
		path: "name",
		get:  func(p *PartialProduct) (any, bool) { return strLeaf(p.Name) },
		set:  func(p *Product, v any) { p.Name = strPtr(v) },
	},
	{
		path: "price.amount",
		get: func(p *PartialProduct) (any, bool) {
			if p.Price == nil {
				return nil, false
			}
			return numLeaf(p.Price.Amount)
		},
		set: func(p *Product, v any) {
			if p.Price == nil {
				p.Price = &Price{}
			}
			p.Price.Amount = numPtr(v)
		},
	},
	{
		path: "price.currency",
		get: func(p *PartialProduct) (any, bool) {
			if p.Price == nil {
				return nil, false
			}
			return strLeaf(p.Price.Currency)
		},
		set: func(p *Product, v any) {
			if p.Price == nil {
				p.Price = &Price{}
			}
			p.Price.Currency = strPtr(v)
		},
	},
	{
		path: "reference",
		get:  func(p *PartialProduct) (any, bool) { return strLeaf(p.Reference) },
		set:  func(p *Product, v any) { p.Reference = strPtr(v) },
	},
	{
		path: "brand",
		get:  func(p *PartialProduct) (any, bool) { return strLeaf(p.Brand) },
		set:  func(p *Product, v any) { p.Brand = strPtr(v) },
	},
	{
		path: "weight.value",
		get: func(p *PartialProduct) (any, bool) {
			if p.Weight == nil {
				return nil, false
			}
			return numLeaf(p.Weight.Value)
		},
		set: func(p *Product, v any) {
			if p.Weight == nil {
				p.Weight = &Weight{}
			}
			p.Weight.Value = numPtr(v)
		},
	},
	{
		path: "weight.unit",
		get: func(p *PartialProduct) (any, bool) {
			if p.Weight == nil {
				return nil, false
			}
			return strLeaf(p.Weight.Unit)
		},
		set: func(p *Product, v any) {
			if p.Weight == nil {
				p.Weight = &Weight{}
			}
			p.Weight.Unit = strPtr(v)
		},
	},
}

// Merge resolves every leaf field present in at least one document and
// assembles the merged product with its evidence log. Fields absent from
// all documents are omitted, not defaulted.
func Merge(documents []Document, opts fusion.Options) (*Result, error) {
	return MergeContext(context.Background(), documents, opts)
}

// MergeContext is Merge with a caller-scoped logger carried in ctx.
func MergeContext(ctx context.Context, documents []Document, opts fusion.Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	if len(documents) == 0 {
		return nil, errors.NewEmptyInputError("merge")
	}

	result := &Result{
		Stats: Statistics{Documents: len(documents)},
	}

	for _, field := range productSchema {
		candidates := collect(documents, field.get)
		if len(candidates) == 0 {
			continue
		}

		fused, err := fusion.FuseContext(ctx, candidates, opts)
		if err != nil {
			return nil, err
		}

		field.set(&result.Product, fused.Value)
		result.record(field.path, fused)
	}

	for _, key := range attributeKeys(documents) {
		candidates := collect(documents, func(p *PartialProduct) (any, bool) {
			v, ok := p.Attributes[key]
			return v, ok && v != nil
		})
		if len(candidates) == 0 {
			continue
		}

		fused, err := fusion.FuseContext(ctx, candidates, opts)
		if err != nil {
			return nil, err
		}

		if result.Product.Attributes == nil {
			result.Product.Attributes = make(map[string]any)
		}
		result.Product.Attributes[key] = fused.Value
		result.record("attributes."+key, fused)
	}

	logger.Debug().
		Int("documents", len(documents)).
		Int("fields", result.Stats.FieldsResolved).
		Int("conflicts", result.Stats.Conflicts).
		Msg("Merged product data")

	return result, nil
}

// record appends an evidence entry and updates statistics.
func (r *Result) record(path string, fused *fusion.Result) {
	r.Evidence = append(r.Evidence, Evidence{
		Field:      path,
		Source:     fused.Source,
		Resolution: fused.Resolution,
		Confidence: fused.Confidence,
		Conflict:   fused.HadConflict,
	})
	r.Stats.FieldsResolved++
	if fused.HadConflict {
		r.Stats.Conflicts++
	}
}

// collect gathers the candidates each document proposes for one leaf,
// skipping documents that did not observe it.
func collect(documents []Document, get func(*PartialProduct) (any, bool)) []fusion.Candidate {
	var candidates []fusion.Candidate
	for i := range documents {
		doc := &documents[i]
		if value, ok := get(&doc.Data); ok {
			candidates = append(candidates, fusion.Candidate{
				Value:      value,
				Source:     doc.Source,
				Confidence: doc.Confidence,
			})
		}
	}
	return candidates
}

// attributeKeys returns the union of free-form attribute keys across all
// documents, sorted for a deterministic traversal order.
func attributeKeys(documents []Document) []string {
	seen := make(map[string]struct{})
	for i := range documents {
		for key := range documents[i].Data.Attributes {
			seen[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// strLeaf reads an optional string leaf.
func strLeaf(s *string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return *s, true
}

// numLeaf reads an optional numeric leaf.
func numLeaf(f *float64) (any, bool) {
	if f == nil {
		return nil, false
	}
	return *f, true
}

// strPtr coerces a fused value back into an optional string leaf.
func strPtr(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	s := fmt.Sprint(v)
	return &s
}

// numPtr coerces a fused value back into an optional numeric leaf. Covers
// every numeric kind the fusion engine clusters, so a resolved value is
// never silently dropped.
func numPtr(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int8:
		f := float64(n)
		return &f
	case int16:
		f := float64(n)
		return &f
	case int32:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case uint:
		f := float64(n)
		return &f
	case uint8:
		f := float64(n)
		return &f
	case uint16:
		f := float64(n)
		return &f
	case uint32:
		f := float64(n)
		return &f
	case uint64:
		f := float64(n)
		return &f
	default:
		return nil
	}
}
