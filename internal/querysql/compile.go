// Package querysql compiles queryir selects to parameterized SQLite SQL.
package querysql

import (
	"fmt"
	"strings"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/queryir"
)

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Compile converts a Select to SQL and its bound parameters.
//
// Every query selects the product columns explicitly and ends with
// ORDER BY id ASC, which is insertion order for an AUTOINCREMENT key.
// Values are never interpolated into the SQL text.
func Compile(q queryir.Select) (string, []any, error) {
	if q.From == "" {
		return "", nil, fmt.Errorf("compile: missing table")
	}
	if err := queryir.Validate(q.Filter); err != nil {
		return "", nil, fmt.Errorf("compile: %w", err)
	}

	var whereClause string
	var params []any
	if q.Filter != nil {
		filterSQL, filterParams, err := compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		whereClause = " WHERE " + filterSQL
		params = filterParams
	}

	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id ASC",
		strings.Join(queryir.Fields, ", "),
		q.From,
		whereClause)

	return sql, params, nil
}

// compilePredicate compiles a predicate to a WHERE fragment.
func compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case queryir.Equals:
		return compileEquals(pred)
	case *queryir.Equals:
		return compileEquals(*pred)
	case queryir.Contains:
		return compileContains(pred)
	case *queryir.Contains:
		return compileContains(*pred)
	case queryir.And:
		return compileAnd(pred)
	case *queryir.And:
		return compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func compileEquals(eq queryir.Equals) (string, []any, error) {
	return eq.Field + " = ?", []any{eq.Value}, nil
}

// compileContains compiles to "field LIKE ? ESCAPE '\'" with the substring
// wrapped in % wildcards.
func compileContains(c queryir.Contains) (string, []any, error) {
	pattern := "%" + likeEscaper.Replace(product.NormalizeText(c.Substring)) + "%"
	return c.Field + ` LIKE ? ESCAPE '\'`, []any{pattern}, nil
}

func compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	var sqlParts []string
	var allParams []any
	for _, pred := range and.Predicates {
		sql, params, err := compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		sqlParts = append(sqlParts, "("+sql+")")
		allParams = append(allParams, params...)
	}

	return strings.Join(sqlParts, " AND "), allParams, nil
}
