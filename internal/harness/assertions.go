package harness

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/queryir"
	"github.com/lojacapivara/catalog/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s", event.Seq, event.Op)
			if event.ID != 0 {
				fmt.Fprintf(&buf, " id=%d", event.ID)
			}
			if event.Term != "" {
				fmt.Fprintf(&buf, " term=%q", event.Term)
			}
			if event.Error != "" {
				fmt.Fprintf(&buf, " error=%q", event.Error)
			}
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// assertFinalCount checks the number of products left in the table.
func assertFinalCount(final []product.Product, assertion Assertion) error {
	if len(final) != assertion.Count {
		return &AssertionError{
			Type:     AssertFinalCount,
			Expected: fmt.Sprintf("%d products", assertion.Count),
			Actual:   fmt.Sprintf("%d products", len(final)),
		}
	}
	return nil
}

// assertTraceOrder checks that ops were executed in the given order.
// Ops don't need to be consecutive (intervening ops are allowed).
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	next := 0
	for _, event := range trace {
		if next < len(assertion.Ops) && event.Op == assertion.Ops[next] {
			next++
		}
	}

	if next < len(assertion.Ops) {
		return &AssertionError{
			Type:     AssertTraceOrder,
			Expected: fmt.Sprintf("ops in order: %v", assertion.Ops),
			Actual:   fmt.Sprintf("no %s after %v", assertion.Ops[next], assertion.Ops[:next]),
			Trace:    trace,
		}
	}

	return nil
}

// assertTraceCount checks if the op appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Op == assertion.Op {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Op),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}

	return nil
}

// assertFinalState looks up exactly one product by the where fields and
// validates the expected fields using subset semantics.
//
// The lookup goes through the record store's own predicate compiler, so every
// value is bound as a parameter and field names are checked against the
// product columns.
func assertFinalState(ctx context.Context, st *store.Store, assertion Assertion) error {
	filter, err := buildWhere(assertion.Where)
	if err != nil {
		return err
	}

	matches, err := st.List(ctx, filter)
	if err != nil {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("query products where %s", formatWhereClause(assertion.Where)),
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}

	switch len(matches) {
	case 0:
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("product where %s", formatWhereClause(assertion.Where)),
			Actual:   "product not found",
		}
	case 1:
	default:
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("exactly one product where %s", formatWhereClause(assertion.Where)),
			Actual:   fmt.Sprintf("%d products matched (assertion is ambiguous)", len(matches)),
		}
	}

	p := matches[0]
	for _, field := range sortedKeys(assertion.Expect) {
		expected := assertion.Expect[field]
		actual := fieldValue(p, field)
		if !fieldEqual(expected, actual) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q = %v", field, expected),
				Actual:   fmt.Sprintf("field %q = %v", field, actual),
			}
		}
	}

	return nil
}

// buildWhere turns a where map into an And of Equals, keys sorted for
// determinism. List values are compared in their stored comma-joined form.
func buildWhere(where map[string]interface{}) (queryir.Predicate, error) {
	keys := sortedKeys(where)
	preds := make([]queryir.Predicate, 0, len(keys))
	for _, key := range keys {
		value, err := toQueryValue(where[key])
		if err != nil {
			return nil, fmt.Errorf("where %q: %w", key, err)
		}
		preds = append(preds, queryir.Equals{Field: key, Value: value})
	}

	filter := queryir.And{Predicates: preds}
	if err := queryir.Validate(filter); err != nil {
		return nil, fmt.Errorf("final_state where: %w", err)
	}
	return filter, nil
}

// toQueryValue converts a YAML-parsed value to an Equals value.
func toQueryValue(v interface{}) (any, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case int:
		return int64(val), nil
	case int64:
		return val, nil
	case []interface{}:
		items, err := toStrings(val)
		if err != nil {
			return nil, err
		}
		return product.JoinList(items), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// fieldValue returns the named product field.
func fieldValue(p product.Product, field string) interface{} {
	switch field {
	case queryir.FieldID:
		return p.ID
	case queryir.FieldName:
		return p.Name
	case queryir.FieldImage:
		return p.Image
	case queryir.FieldColors:
		return p.Colors
	case queryir.FieldSizes:
		return p.Sizes
	case queryir.FieldDescription:
		return p.Description
	default:
		return nil
	}
}

// fieldEqual compares a YAML-parsed expected value with a product field.
// A string expected for a list field is read as comma separated input.
func fieldEqual(expected, actual interface{}) bool {
	switch act := actual.(type) {
	case int64:
		switch exp := expected.(type) {
		case int:
			return int64(exp) == act
		case int64:
			return exp == act
		}
		return false
	case string:
		exp, ok := expected.(string)
		return ok && exp == act
	case []string:
		var exp []string
		switch e := expected.(type) {
		case string:
			exp = product.ParseInput(e)
		case []interface{}:
			items, err := toStrings(e)
			if err != nil {
				return false
			}
			exp = items
		default:
			return false
		}
		if len(exp) != len(act) {
			return false
		}
		for i := range exp {
			if exp[i] != act[i] {
				return false
			}
		}
		return true
	}
	return false
}

func toStrings(values []interface{}) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("list item %d: expected string, got %T", i, v)
		}
		out[i] = s
	}
	return out, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatWhereClause creates a human-readable description of where conditions.
func formatWhereClause(where map[string]interface{}) string {
	if len(where) == 0 {
		return "(no conditions)"
	}

	keys := sortedKeys(where)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, where[k]))
	}
	return strings.Join(parts, " AND ")
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides database access for final_state assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertFinalCount:
			err = assertFinalCount(result.Final, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertFinalState:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: final_state requires database context", i)
			} else {
				err = assertFinalState(actx.Ctx, actx.Store, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
