package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"storebot/db"
	"storebot/models"
)

// Catalog is the read-only view of products and promotions the core works
// against. Lookup misses return (nil, nil), not an error.
type Catalog interface {
	AllProducts(ctx context.Context) ([]models.Product, error)
	ProductsByCategory(ctx context.Context, categories ...string) ([]models.Product, error)
	ProductByID(ctx context.Context, id int64) (*models.Product, error)
	ProductByCode(ctx context.Context, code string) (*models.Product, error)
	ActivePromotionByCode(ctx context.Context, code string) (*models.Promotion, error)
	FirstCateringPackage(ctx context.Context) (*models.Product, error)
}

// PGCatalog reads the catalog from Postgres.
type PGCatalog struct{}

const productColumns = `id, code, name, category, price, calories, protein, fat, carbs, COALESCE(description, ''), is_catering_option`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Category, &p.Price,
		&p.Calories, &p.Protein, &p.Fat, &p.Carbs, &p.Description, &p.IsCateringOption)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func queryProducts(ctx context.Context, sql string, args ...any) ([]models.Product, error) {
	rows, err := db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Category, &p.Price,
			&p.Calories, &p.Protein, &p.Fat, &p.Carbs, &p.Description, &p.IsCateringOption); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (PGCatalog) AllProducts(ctx context.Context) ([]models.Product, error) {
	return queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (PGCatalog) ProductsByCategory(ctx context.Context, categories ...string) ([]models.Product, error) {
	return queryProducts(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE category = ANY($1)
		ORDER BY id`,
		categories,
	)
}

func (PGCatalog) ProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return scanProduct(db.Pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

func (PGCatalog) ProductByCode(ctx context.Context, code string) (*models.Product, error) {
	return scanProduct(db.Pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code))
}

func (PGCatalog) ActivePromotionByCode(ctx context.Context, code string) (*models.Promotion, error) {
	var pr models.Promotion
	err := db.Pool.QueryRow(ctx, `
		SELECT id, code, COALESCE(description, ''), discount_percent, min_subtotal, catering_only, min_pax, active
		FROM promotions
		WHERE code = $1 AND active`,
		strings.ToUpper(strings.TrimSpace(code)),
	).Scan(&pr.ID, &pr.Code, &pr.Description, &pr.DiscountPercent, &pr.MinSubtotal, &pr.CateringOnly, &pr.MinPax, &pr.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (PGCatalog) FirstCateringPackage(ctx context.Context) (*models.Product, error) {
	return scanProduct(db.Pool.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE category = $1
		ORDER BY id
		LIMIT 1`,
		models.CategoryCatering,
	))
}
