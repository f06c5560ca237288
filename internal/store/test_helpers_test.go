package store

import (
	"path/filepath"
	"testing"

	"github.com/lojacapivara/catalog/internal/product"
)

// createTestStore creates a new empty store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testSeeds mirrors the shop's default products.
func testSeeds() []product.Product {
	return []product.Product{
		{
			Name:        "Estojo CaCapy",
			Image:       "https://example.com/estojo.jpg",
			Colors:      []string{"Vermelho", "preto", "roxo", "azul"},
			Sizes:       []string{"P", "M", "G"},
			Description: "Estojo de capivara",
		},
		{
			Name:   "Chaveiros Capizinha",
			Colors: []string{"Azul Claro", "Branco"},
			Sizes:  []string{"P", "M", "G", "GG"},
		},
		{
			Name:   "Canetas Capizinha",
			Colors: []string{"Op1", "Op2", "Op3"},
			Sizes:  []string{"M", "G", "GG"},
		},
		{
			Name:   "Xícara capilita.",
			Colors: []string{"Vermelha", "Azul"},
			Sizes:  []string{"P", "M", "G"},
		},
	}
}

// createSeededStore creates a store holding testSeeds.
func createSeededStore(t *testing.T) *Store {
	t.Helper()
	s := createTestStore(t)
	if _, err := s.Initialize(t.Context(), testSeeds()); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	return s
}

func names(products []product.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}
