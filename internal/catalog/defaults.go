package catalog

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lojacapivara/catalog/internal/product"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultProducts returns the products seeded into an empty catalog.
func DefaultProducts() ([]product.Product, error) {
	return ParseProducts(defaultsYAML)
}

// ParseProducts decodes a YAML list of products.
// Unknown fields are rejected and every product must have a name.
func ParseProducts(data []byte) ([]product.Product, error) {
	var products []product.Product
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to parse products: %w", err)
	}

	for i, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
	}
	return products, nil
}
