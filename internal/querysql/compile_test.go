package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojacapivara/catalog/internal/queryir"
)

const selectAll = "SELECT id, name, image, colors, sizes, description FROM products"

func TestCompile_NoFilter(t *testing.T) {
	sql, params, err := Compile(queryir.Select{From: "products"})
	require.NoError(t, err)
	assert.Equal(t, selectAll+" ORDER BY id ASC", sql)
	assert.Empty(t, params)
}

func TestCompile_NameContains(t *testing.T) {
	sql, params, err := Compile(queryir.Select{
		From:   "products",
		Filter: queryir.NameContains("Estojo"),
	})
	require.NoError(t, err)
	assert.Equal(t, selectAll+` WHERE name LIKE ? ESCAPE '\' ORDER BY id ASC`, sql)
	assert.Equal(t, []any{"%Estojo%"}, params)
}

func TestCompile_ColorsContain(t *testing.T) {
	sql, params, err := Compile(queryir.Select{
		From:   "products",
		Filter: queryir.ColorsContain("Azul"),
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "colors LIKE ?")
	assert.Equal(t, []any{"%Azul%"}, params)
}

func TestCompile_QuoteIsBoundNotInterpolated(t *testing.T) {
	input := "x' OR '1'='1"
	sql, params, err := Compile(queryir.Select{
		From:   "products",
		Filter: queryir.NameContains(input),
	})
	require.NoError(t, err)
	assert.NotContains(t, sql, "OR '1'")
	assert.Equal(t, []any{"%" + input + "%"}, params)
}

func TestCompile_EscapesWildcards(t *testing.T) {
	_, params, err := Compile(queryir.Select{
		From:   "products",
		Filter: queryir.NameContains(`50%_off\`),
	})
	require.NoError(t, err)
	assert.Equal(t, []any{`%50\%\_off\\%`}, params)
}

func TestCompile_NormalizesSubstring(t *testing.T) {
	_, params, err := Compile(queryir.Select{
		From:   "products",
		Filter: queryir.NameContains("Xi\u0301cara"),
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"%X\u00edcara%"}, params)
}

func TestCompile_IDEquals(t *testing.T) {
	sql, params, err := Compile(queryir.Select{
		From:   "products",
		Filter: queryir.IDEquals(4),
	})
	require.NoError(t, err)
	assert.Equal(t, selectAll+" WHERE id = ? ORDER BY id ASC", sql)
	assert.Equal(t, []any{int64(4)}, params)
}

func TestCompile_And(t *testing.T) {
	sql, params, err := Compile(queryir.Select{
		From: "products",
		Filter: queryir.And{Predicates: []queryir.Predicate{
			queryir.NameContains("Cap"),
			queryir.ColorsContain("Branco"),
		}},
	})
	require.NoError(t, err)
	assert.Contains(t, sql, `WHERE (name LIKE ? ESCAPE '\') AND (colors LIKE ? ESCAPE '\')`)
	assert.Equal(t, []any{"%Cap%", "%Branco%"}, params)
}

func TestCompile_EmptyAnd(t *testing.T) {
	sql, params, err := Compile(queryir.Select{From: "products", Filter: queryir.And{}})
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE 1 = 1")
	assert.Empty(t, params)
}

func TestCompile_Errors(t *testing.T) {
	_, _, err := Compile(queryir.Select{})
	assert.Error(t, err)

	_, _, err = Compile(queryir.Select{From: "products", Filter: queryir.Contains{Field: "price"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}
