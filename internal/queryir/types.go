package queryir

// Product table columns a predicate may reference.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldImage       = "image"
	FieldColors      = "colors"
	FieldSizes       = "sizes"
	FieldDescription = "description"
)

// Fields lists the product columns in storage order.
var Fields = []string{FieldID, FieldName, FieldImage, FieldColors, FieldSizes, FieldDescription}

// Predicate is a filter condition.
// Sealed: only types in this package implement it.
type Predicate interface {
	predicateNode()
}

// Select reads rows from a table, optionally filtered.
// A nil Filter selects every row.
type Select struct {
	From   string
	Filter Predicate
}

// Equals matches rows whose field equals Value.
// Value must be a string or an integer.
type Equals struct {
	Field string
	Value any
}

func (Equals) predicateNode() {}

// Contains matches rows whose field contains Substring.
// Case folding follows the backend's default text comparison.
type Contains struct {
	Field     string
	Substring string
}

func (Contains) predicateNode() {}

// And matches rows satisfying all Predicates. An empty And matches everything.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// NameContains is the predicate behind search by name.
func NameContains(s string) Contains {
	return Contains{Field: FieldName, Substring: s}
}

// ColorsContain is the predicate behind search by color.
func ColorsContain(s string) Contains {
	return Contains{Field: FieldColors, Substring: s}
}

// IDEquals selects a single product.
func IDEquals(id int64) Equals {
	return Equals{Field: FieldID, Value: id}
}
