package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/queryir"
	"github.com/lojacapivara/catalog/internal/querysql"
)

// List returns every product matching filter in insertion order.
// A nil filter returns all products. The result is never nil.
func (s *Store) List(ctx context.Context, filter queryir.Predicate) ([]product.Product, error) {
	query, params, err := querysql.Compile(queryir.Select{From: productsTable, Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

// Get returns the product with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (product.Product, error) {
	query, params, err := querysql.Compile(queryir.Select{From: productsTable, Filter: queryir.IDEquals(id)})
	if err != nil {
		return product.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, params...))
	if errors.Is(err, sql.ErrNoRows) {
		return product.Product{}, fmt.Errorf("get product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return product.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one row in queryir.Fields order.
// Optional columns may be NULL in databases written by other tools.
func scanProduct(sc scanner) (product.Product, error) {
	var (
		p                                 product.Product
		image, colors, sizes, description sql.NullString
	)
	if err := sc.Scan(&p.ID, &p.Name, &image, &colors, &sizes, &description); err != nil {
		return product.Product{}, err
	}
	p.Image = image.String
	p.Colors = product.ParseList(colors.String)
	p.Sizes = product.ParseList(sizes.String)
	p.Description = description.String
	return p, nil
}
