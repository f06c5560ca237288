package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lojacapivara/catalog/internal/product"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Insert appends a product and returns the id assigned by the store.
// p.ID is ignored. Names are not required to be unique.
func (s *Store) Insert(ctx context.Context, p product.Product) (int64, error) {
	id, err := insertProduct(ctx, s.db, p)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

// Update replaces every field of the product with id p.ID.
// Updating an id that does not exist is a silent no-op.
func (s *Store) Update(ctx context.Context, p product.Product) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, image = ?, colors = ?, sizes = ?, description = ?
		WHERE id = ?
	`,
		p.Name,
		p.Image,
		product.JoinList(p.Colors),
		product.JoinList(p.Sizes),
		p.Description,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	return nil
}

// Delete removes the product with the given id.
// Deleting an id that does not exist is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// Initialize seeds the table with the given products when it is empty and
// returns how many rows were inserted. Running it again on a non-empty table
// inserts nothing, so repeated startups never duplicate seed rows.
func (s *Store) Initialize(ctx context.Context, seeds []product.Product) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("initialize: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("initialize: count: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, p := range seeds {
		if _, err := insertProduct(ctx, tx, p); err != nil {
			return 0, fmt.Errorf("initialize: seed %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("initialize: commit: %w", err)
	}
	return len(seeds), nil
}

// Reset deletes every product, restarts id assignment at 1 and inserts the
// seeds again, all in one transaction.
func (s *Store) Reset(ctx context.Context, seeds []product.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reset: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("reset: clear: %w", err)
	}
	// sqlite_sequence holds the AUTOINCREMENT counter
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = ?`, productsTable); err != nil {
		return fmt.Errorf("reset: sequence: %w", err)
	}

	for _, p := range seeds {
		if _, err := insertProduct(ctx, tx, p); err != nil {
			return fmt.Errorf("reset: seed %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reset: commit: %w", err)
	}
	return nil
}

func insertProduct(ctx context.Context, ex execer, p product.Product) (int64, error) {
	result, err := ex.ExecContext(ctx, `
		INSERT INTO products
		(name, image, colors, sizes, description)
		VALUES (?, ?, ?, ?, ?)
	`,
		p.Name,
		p.Image,
		product.JoinList(p.Colors),
		product.JoinList(p.Sizes),
		p.Description,
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}
