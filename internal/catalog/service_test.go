package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/queryir"
	"github.com/lojacapivara/catalog/internal/store"
)

func newSeededService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	seeds, err := DefaultProducts()
	require.NoError(t, err)
	_, err = st.Initialize(t.Context(), seeds)
	require.NoError(t, err)

	return New(st, zap.NewNop())
}

func productNames(products []product.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestService_List(t *testing.T) {
	svc := newSeededService(t)

	got, err := svc.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestService_SearchByName(t *testing.T) {
	svc := newSeededService(t)

	got, err := svc.SearchByName(t.Context(), "Estojo")
	require.NoError(t, err)
	assert.Equal(t, []string{"Estojo CaCapy"}, productNames(got))
}

func TestService_SearchByColor(t *testing.T) {
	svc := newSeededService(t)

	got, err := svc.SearchByColor(t.Context(), "Branco")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chaveiros Capizinha"}, productNames(got))
}

func TestService_CRUD(t *testing.T) {
	svc := newSeededService(t)
	ctx := t.Context()

	id, err := svc.Insert(ctx, product.Product{Name: "Mochila Capivara", Colors: []string{"Marrom"}})
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Mochila Capivara", got.Name)

	got.Sizes = []string{"U"}
	require.NoError(t, svc.Update(ctx, got))

	updated, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"U"}, updated.Sizes)

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// failingRepo fails every call with err.
type failingRepo struct {
	err error
}

func (r failingRepo) List(context.Context, queryir.Predicate) ([]product.Product, error) {
	return nil, r.err
}

func (r failingRepo) Get(context.Context, int64) (product.Product, error) {
	return product.Product{}, r.err
}

func (r failingRepo) Insert(context.Context, product.Product) (int64, error) {
	return 0, r.err
}

func (r failingRepo) Update(context.Context, product.Product) error {
	return r.err
}

func (r failingRepo) Delete(context.Context, int64) error {
	return r.err
}

func TestService_ErrorsPropagateUnchangedAndAreLogged(t *testing.T) {
	boom := errors.New("disk I/O error")
	core, logs := observer.New(zapcore.ErrorLevel)
	svc := New(failingRepo{err: boom}, zap.New(core))
	ctx := t.Context()

	calls := map[string]func() error{
		"list":   func() error { _, err := svc.List(ctx); return err },
		"name":   func() error { _, err := svc.SearchByName(ctx, "x"); return err },
		"color":  func() error { _, err := svc.SearchByColor(ctx, "x"); return err },
		"get":    func() error { _, err := svc.Get(ctx, 1); return err },
		"insert": func() error { _, err := svc.Insert(ctx, product.Product{Name: "x"}); return err },
		"update": func() error { return svc.Update(ctx, product.Product{ID: 1, Name: "x"}) },
		"delete": func() error { return svc.Delete(ctx, 1) },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			assert.Same(t, boom, call())
		})
	}
	assert.Equal(t, len(calls), logs.Len())
}

func TestService_SearchBuildsPredicates(t *testing.T) {
	rec := &recordingRepo{}
	svc := New(rec, nil)

	_, _ = svc.SearchByName(t.Context(), "Cap")
	_, _ = svc.SearchByColor(t.Context(), "Azul")
	_, _ = svc.List(t.Context())

	assert.Equal(t, []queryir.Predicate{
		queryir.NameContains("Cap"),
		queryir.ColorsContain("Azul"),
		nil,
	}, rec.filters)
}

type recordingRepo struct {
	failingRepo
	filters []queryir.Predicate
}

func (r *recordingRepo) List(_ context.Context, filter queryir.Predicate) ([]product.Product, error) {
	r.filters = append(r.filters, filter)
	return []product.Product{}, nil
}
