package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/contentdesk/internal/domain/product/entity"
)

// ProductPostgres implements the product repository for PostgreSQL
type ProductPostgres struct {
	pool *pgxpool.Pool
}

// NewProductPostgres creates a new PostgreSQL product repository
func NewProductPostgres(pool *pgxpool.Pool) *ProductPostgres {
	return &ProductPostgres{pool: pool}
}

// Create inserts a new product
func (r *ProductPostgres) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, creative_concept, landing_url, comm_kit_url,
		                      countries, hashtags, sales_objectives, briefing, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id, created_at, updated_at
	`

	now := time.Now()
	err := r.pool.QueryRow(ctx, query,
		p.Name,
		p.Description,
		p.CreativeConcept,
		p.LandingURL,
		p.CommKitURL,
		p.Countries,
		p.Hashtags,
		p.SalesObjectives,
		p.Briefing,
		now,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by ID
func (r *ProductPostgres) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, description, creative_concept, landing_url, comm_kit_url,
		       countries, hashtags, sales_objectives, briefing, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p entity.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.CreativeConcept,
		&p.LandingURL,
		&p.CommKitURL,
		&p.Countries,
		&p.Hashtags,
		&p.SalesObjectives,
		&p.Briefing,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}

	return &p, nil
}

// Update updates an existing product
func (r *ProductPostgres) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, creative_concept = $4, landing_url = $5,
		    comm_kit_url = $6, countries = $7, hashtags = $8, sales_objectives = $9,
		    briefing = $10, updated_at = $11
		WHERE id = $1
	`

	now := time.Now()
	result, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.CreativeConcept,
		p.LandingURL,
		p.CommKitURL,
		p.Countries,
		p.Hashtags,
		p.SalesObjectives,
		p.Briefing,
		now,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrProductNotFound
	}

	p.UpdatedAt = now
	return nil
}

// Delete removes a product
func (r *ProductPostgres) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrProductNotFound
	}
	return nil
}

// List retrieves products, newest first
func (r *ProductPostgres) List(ctx context.Context) ([]entity.Product, error) {
	query := `
		SELECT id, name, description, creative_concept, landing_url, comm_kit_url,
		       countries, hashtags, sales_objectives, briefing, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	products := []entity.Product{}
	for rows.Next() {
		var p entity.Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.CreativeConcept,
			&p.LandingURL,
			&p.CommKitURL,
			&p.Countries,
			&p.Hashtags,
			&p.SalesObjectives,
			&p.Briefing,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}

	return products, nil
}
