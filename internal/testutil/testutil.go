// Package testutil builds catalogs backed by temporary databases for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/lojacapivara/catalog/internal/catalog"
	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/session"
	"github.com/lojacapivara/catalog/internal/store"
)

// WelcomeCredentials are the credentials used by test session stores.
var WelcomeCredentials = session.Credentials{Name: "Aluno", Password: "123"}

// OpenStore opens an empty record store in a temp dir.
func OpenStore(t testing.TB) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// SeededStore opens a record store holding the default products.
func SeededStore(t testing.TB) *store.Store {
	t.Helper()
	st := OpenStore(t)
	seeds, err := catalog.DefaultProducts()
	if err != nil {
		t.Fatalf("DefaultProducts() failed: %v", err)
	}
	if _, err := st.Initialize(t.Context(), seeds); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	return st
}

// NewCatalog returns a service over a seeded store.
func NewCatalog(t testing.TB) *catalog.Service {
	t.Helper()
	return catalog.New(SeededStore(t), zap.NewNop())
}

// NewEmptyCatalog returns a service over an empty store.
func NewEmptyCatalog(t testing.TB) *catalog.Service {
	t.Helper()
	return catalog.New(OpenStore(t), zap.NewNop())
}

// OpenSession opens an empty session store in a temp dir.
func OpenSession(t testing.TB) *session.Store {
	t.Helper()
	s, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("session.Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// Names returns the product names in order.
func Names(products []product.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}
