// Package product defines the catalog item and its storage-boundary encoding.
package product

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyName is returned by Validate when a product has no name.
var ErrEmptyName = errors.New("product name is required")

// Product is a single catalog item.
// ID is assigned by the store on insert and never changes afterwards.
type Product struct {
	ID          int64    `json:"id" yaml:"-"`
	Name        string   `json:"name" yaml:"name"`
	Image       string   `json:"image" yaml:"image"`
	Colors      []string `json:"colors" yaml:"colors"`
	Sizes       []string `json:"sizes" yaml:"sizes"`
	Description string   `json:"description" yaml:"description"`
}

// Validate reports whether the product can be saved.
// Only the name is checked; every other field is free text.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// MarshalJSON encodes nil list fields as empty arrays.
// HTML characters are left unescaped; the caller's encoder decides.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	out := plain(p)
	if out.Colors == nil {
		out.Colors = []string{}
	}
	if out.Sizes == nil {
		out.Sizes = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Normalize returns a copy with every text field in Unicode NFC.
func (p Product) Normalize() Product {
	out := Product{
		ID:          p.ID,
		Name:        NormalizeText(p.Name),
		Image:       NormalizeText(p.Image),
		Description: NormalizeText(p.Description),
	}
	if p.Colors != nil {
		out.Colors = make([]string, len(p.Colors))
		for i, c := range p.Colors {
			out.Colors[i] = NormalizeText(c)
		}
	}
	if p.Sizes != nil {
		out.Sizes = make([]string, len(p.Sizes))
		for i, s := range p.Sizes {
			out.Sizes[i] = NormalizeText(s)
		}
	}
	return out
}

// NormalizeText converts s to Unicode NFC. Input controllers apply it to
// user drafts and search patterns; the store keeps text as given.
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}
