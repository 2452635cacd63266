// Package merge assembles a single product record from several extracted
// source documents. It walks the nested product schema leaf by leaf,
// collects the candidates each source proposes for that leaf, resolves them
// through the fusion engine, and records one evidence entry per resolved
// field.
package merge

import (
	"github.com/extractly/fusion/pkg/sources"
)

// PartialProduct is one source's view of a product. Nil leaves mean the
// source did not observe that field.
type PartialProduct struct {
	Name      *string        `yaml:"name,omitempty" json:"name,omitempty"`
	Price     *PartialPrice  `yaml:"price,omitempty" json:"price,omitempty"`
	Reference *string        `yaml:"reference,omitempty" json:"reference,omitempty"`
	Brand     *string        `yaml:"brand,omitempty" json:"brand,omitempty"`
	Weight    *PartialWeight `yaml:"weight,omitempty" json:"weight,omitempty"`

	// Attributes holds scalar leaves outside the fixed schema, keyed by
	// field name.
	Attributes map[string]any `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// PartialPrice is an optionally observed price.
type PartialPrice struct {
	Amount   *float64 `yaml:"amount,omitempty" json:"amount,omitempty"`
	Currency *string  `yaml:"currency,omitempty" json:"currency,omitempty"`
}

// PartialWeight is an optionally observed weight.
type PartialWeight struct {
	Value *float64 `yaml:"value,omitempty" json:"value,omitempty"`
	Unit  *string  `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// Product is the merged record. Leaves keep pointer types so a field absent
// from every source stays omitted rather than defaulting to a zero value.
type Product struct {
	Name       *string        `yaml:"name,omitempty" json:"name,omitempty"`
	Price      *Price         `yaml:"price,omitempty" json:"price,omitempty"`
	Reference  *string        `yaml:"reference,omitempty" json:"reference,omitempty"`
	Brand      *string        `yaml:"brand,omitempty" json:"brand,omitempty"`
	Weight     *Weight        `yaml:"weight,omitempty" json:"weight,omitempty"`
	Attributes map[string]any `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// Price is a merged price.
type Price struct {
	Amount   *float64 `yaml:"amount,omitempty" json:"amount,omitempty"`
	Currency *string  `yaml:"currency,omitempty" json:"currency,omitempty"`
}

// Weight is a merged weight.
type Weight struct {
	Value *float64 `yaml:"value,omitempty" json:"value,omitempty"`
	Unit  *string  `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// Document pairs one source's partial record with the source identity and
// the extractor's overall confidence in that document.
type Document struct {
	Data       PartialProduct `yaml:"data" json:"data"`
	Source     sources.ID     `yaml:"source" json:"source"`
	Confidence float64        `yaml:"confidence" json:"confidence"`
}
