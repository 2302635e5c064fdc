package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresStore reads the catalog from the products and categories tables.
// images and tags are jsonb arrays; position keeps listing order.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const productColumns = `
	id, name, brand, category, subcategory, price, original_price, discount,
	rating, review_count, image, images, description, ingredients, in_stock,
	tags, featured, best_seller`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) List(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `SELECT`+productColumns+`
			FROM products
			ORDER BY position ASC, id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 32)
		for rows.Next() {
			p, err := scanProduct(rows)
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Product, bool, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		row := s.db.QueryRowContext(ctx, `SELECT`+productColumns+`
			FROM products
			WHERE id = $1
		`, id)
		var err error
		p, err = scanProduct(row)
		return err
	})

	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, true, nil
}

func (s *PostgresStore) Categories(ctx context.Context) ([]Category, error) {
	var out []Category

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT c.id, c.name, c.slug, c.image, COUNT(p.id)
			FROM categories c
			LEFT JOIN products p ON p.category = c.slug
			GROUP BY c.id, c.name, c.slug, c.image
			ORDER BY c.id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c Category
			if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Image, &c.ProductCount); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(sc scanner) (Product, error) {
	var (
		p                       Product
		subcategory, ingredient sql.NullString
		originalPrice           sql.NullInt64
		discount                sql.NullInt32
		images, tags            []byte
	)

	err := sc.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Category, &subcategory, &p.Price, &originalPrice, &discount,
		&p.Rating, &p.ReviewCount, &p.Image, &images, &p.Description, &ingredient, &p.InStock,
		&tags, &p.Featured, &p.BestSeller,
	)
	if err != nil {
		return Product{}, err
	}

	p.Subcategory = subcategory.String
	p.Ingredients = ingredient.String
	p.OriginalPrice = originalPrice.Int64
	p.Discount = int(discount.Int32)

	if err := decodeList(images, &p.Images); err != nil {
		return Product{}, fmt.Errorf("product %s images: %w", p.ID, err)
	}
	if err := decodeList(tags, &p.Tags); err != nil {
		return Product{}, fmt.Errorf("product %s tags: %w", p.ID, err)
	}
	return p, nil
}

func decodeList(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
