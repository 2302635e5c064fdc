package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Schema creates the tables PostgresStore reads.
const Schema = `
CREATE TABLE IF NOT EXISTS categories (
	id    text PRIMARY KEY,
	name  text NOT NULL,
	slug  text NOT NULL UNIQUE,
	image text NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS products (
	id             text PRIMARY KEY,
	position       integer NOT NULL,
	name           text NOT NULL,
	brand          text NOT NULL,
	category       text NOT NULL,
	subcategory    text,
	price          bigint NOT NULL CHECK (price >= 0),
	original_price bigint,
	discount       integer,
	rating         double precision NOT NULL DEFAULT 0,
	review_count   integer NOT NULL DEFAULT 0,
	image          text NOT NULL DEFAULT '',
	images         jsonb,
	description    text NOT NULL DEFAULT '',
	ingredients    text,
	in_stock       boolean NOT NULL DEFAULT true,
	tags           jsonb,
	featured       boolean NOT NULL DEFAULT false,
	best_seller    boolean NOT NULL DEFAULT false
);

CREATE INDEX IF NOT EXISTS products_category_idx ON products (category);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, Schema)
		return err
	})
}

// Seed upserts products and categories. Listing order follows the order of
// products.
func (s *PostgresStore) Seed(ctx context.Context, products []Product, categories []Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range categories {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, slug, image)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, slug = EXCLUDED.slug, image = EXCLUDED.image
		`, c.ID, c.Name, c.Slug, c.Image)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.ID, err)
		}
	}

	for i, p := range products {
		images, err := encodeList(p.Images)
		if err != nil {
			return fmt.Errorf("seed product %s images: %w", p.ID, err)
		}
		tags, err := encodeList(p.Tags)
		if err != nil {
			return fmt.Errorf("seed product %s tags: %w", p.ID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (
				id, position, name, brand, category, subcategory, price, original_price,
				discount, rating, review_count, image, images, description, ingredients,
				in_stock, tags, featured, best_seller
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8,
				$9, $10, $11, $12, $13::jsonb, $14, $15,
				$16, $17::jsonb, $18, $19
			)
			ON CONFLICT (id) DO UPDATE SET
				position = EXCLUDED.position, name = EXCLUDED.name, brand = EXCLUDED.brand,
				category = EXCLUDED.category, subcategory = EXCLUDED.subcategory,
				price = EXCLUDED.price, original_price = EXCLUDED.original_price,
				discount = EXCLUDED.discount, rating = EXCLUDED.rating,
				review_count = EXCLUDED.review_count, image = EXCLUDED.image,
				images = EXCLUDED.images, description = EXCLUDED.description,
				ingredients = EXCLUDED.ingredients, in_stock = EXCLUDED.in_stock,
				tags = EXCLUDED.tags, featured = EXCLUDED.featured,
				best_seller = EXCLUDED.best_seller
		`,
			p.ID, i, p.Name, p.Brand, p.Category, nullString(p.Subcategory), p.Price,
			sql.NullInt64{Int64: p.OriginalPrice, Valid: p.OriginalPrice > 0},
			sql.NullInt32{Int32: int32(p.Discount), Valid: p.Discount > 0},
			p.Rating, p.ReviewCount, p.Image, images, p.Description, nullString(p.Ingredients),
			p.InStock, tags, p.Featured, p.BestSeller,
		)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

func encodeList(v []string) (sql.NullString, error) {
	if len(v) == 0 {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
