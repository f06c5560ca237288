package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	tests := []struct {
		name string
		pred Predicate
	}{
		{"nil", nil},
		{"name contains", NameContains("Estojo")},
		{"colors contain", ColorsContain("Azul")},
		{"id equals", IDEquals(3)},
		{"pointer", &Contains{Field: FieldDescription, Substring: "café"}},
		{"string equals", Equals{Field: FieldName, Value: "Xícara"}},
		{"empty and", And{}},
		{"nested and", And{Predicates: []Predicate{NameContains("Cap"), And{Predicates: []Predicate{IDEquals(1)}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, Validate(tt.pred))
		})
	}
}

func TestValidate_UnknownField(t *testing.T) {
	err := Validate(Contains{Field: "price", Substring: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "price"`)
}

func TestValidate_InjectionAsField(t *testing.T) {
	err := Validate(Equals{Field: "name; DROP TABLE products", Value: "x"})
	require.Error(t, err)
}

func TestValidate_UnsupportedValue(t *testing.T) {
	err := Validate(Equals{Field: FieldID, Value: 1.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported value type float64")
}

func TestValidate_NestedErrorPosition(t *testing.T) {
	err := Validate(And{Predicates: []Predicate{NameContains("a"), Contains{Field: "bogus"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "and[1]")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, Contains{Field: "name", Substring: "Estojo"}, NameContains("Estojo"))
	assert.Equal(t, Contains{Field: "colors", Substring: "Azul"}, ColorsContain("Azul"))
	assert.Equal(t, Equals{Field: "id", Value: int64(9)}, IDEquals(9))
}
