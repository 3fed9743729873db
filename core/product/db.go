package product

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// List returns all products, newest first.
func List(ctx context.Context, db *sqlx.DB) ([]Product, error) {
	const q = `SELECT * FROM products ORDER BY created_at DESC`

	products := []Product{}
	if err := db.SelectContext(ctx, &products, q); err != nil {
		return nil, fmt.Errorf("selecting products: %w", err)
	}

	return products, nil
}

// Fetch returns the product with the given id. It returns sql.ErrNoRows
// (wrapped) when the product does not exist.
func Fetch(ctx context.Context, db *sqlx.DB, id string) (Product, error) {
	const q = `SELECT * FROM products WHERE product_id = $1`

	var p Product
	if err := db.GetContext(ctx, &p, q, id); err != nil {
		return Product{}, fmt.Errorf("selecting product[%s]: %w", id, err)
	}

	return p, nil
}

// Create inserts a new product.
func Create(ctx context.Context, db sqlx.ExtContext, p Product) error {
	const q = `
	INSERT INTO products
		(product_id, name, description, price, image_url, image_urls, categories, stock, created_at, updated_at, version)
	VALUES
		(:product_id, :name, :description, :price, :image_url, :image_urls, :categories, :stock, :created_at, :updated_at, :version)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, p); err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

// Update overwrites the product row and bumps its version.
func Update(ctx context.Context, db sqlx.ExtContext, p Product) error {
	const q = `
	UPDATE products SET
		name = :name,
		description = :description,
		price = :price,
		image_url = :image_url,
		image_urls = :image_urls,
		categories = :categories,
		stock = :stock,
		updated_at = :updated_at,
		version = version + 1
	WHERE product_id = :product_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, p); err != nil {
		return fmt.Errorf("updating product[%s]: %w", p.ID, err)
	}

	return nil
}

// Delete removes the product row. Deleting an absent product is not an
// error.
func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM products WHERE product_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting product[%s]: %w", id, err)
	}

	return nil
}
