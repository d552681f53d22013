package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/database"
)

const productsQuery = `
	SELECT id, reference, COALESCE(ean, ''), COALESCE(slug, ''), name, COALESCE(name_en, ''),
	       COALESCE(description, ''), COALESCE(short_description, ''), price, is_price_ttc,
	       category_id, COALESCE(collection, ''), COALESCE(style, ''), COALESCE(materials, '{}'),
	       COALESCE(brand, ''), COALESCE(image_url, ''), is_available, featured, is_new, stock, created_at
	FROM products
	ORDER BY created_at DESC, id`

const categoriesQuery = `
	SELECT c.id, COALESCE(c.code, ''), c.name, COALESCE(c.slug, ''), COUNT(p.id)
	FROM categories c
	LEFT JOIN products p ON p.category_id = c.id
	GROUP BY c.id, c.code, c.name, c.slug
	ORDER BY c.name`

// PostgresProvider reads the catalog tables directly.
type PostgresProvider struct {
	db     database.DBTX
	tracer database.QueryTracer
}

// NewPostgresProvider creates a provider on db.
func NewPostgresProvider(db database.DBTX, tracer database.QueryTracer) *PostgresProvider {
	return &PostgresProvider{db: db, tracer: tracer}
}

// Products returns every product row.
func (p *PostgresProvider) Products(ctx context.Context) (products []domain.Product, err error) {
	ctx, end := p.tracer.Start(ctx, "select_products", productsQuery)
	defer func() { end(err) }()

	rows, err := p.db.Query(ctx, productsQuery)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pr domain.Product
		if err := rows.Scan(
			&pr.ID, &pr.Reference, &pr.EAN, &pr.Slug, &pr.Name, &pr.NameEn,
			&pr.Description, &pr.ShortDescription, &pr.Price, &pr.IsPriceTTC,
			&pr.CategoryID, &pr.Collection, &pr.Style, &pr.Materials,
			&pr.Brand, &pr.ImageURL, &pr.IsAvailable, &pr.Featured, &pr.IsNew, &pr.Stock, &pr.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	fillProductSlugs(products)
	return products, nil
}

// Categories returns every category with its product count.
func (p *PostgresProvider) Categories(ctx context.Context) (categories []domain.Category, err error) {
	ctx, end := p.tracer.Start(ctx, "select_categories", categoriesQuery)
	defer func() { end(err) }()

	rows, err := p.db.Query(ctx, categoriesQuery)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	categories, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		var c domain.Category
		err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Slug, &c.ProductCount)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}

	fillCategorySlugs(categories)
	return categories, nil
}
