package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"storebot/db"
	"storebot/models"
)

type seedProduct struct {
	code, name, category string
	price                int64
	calories             *int64
	protein, fat, carbs  *float64
	description          string
}

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

var seedProducts = []seedProduct{
	{"NESTLE-MILO-200", "Milo Active-Go 200g", models.CategoryBeverage, 33000, i64(400), f64(8), f64(10), f64(70), "Minuman coklat malt bergizi"},
	{"NESTLE-NESCAFE-100", "Nescafé Classic 100g", models.CategoryBeverage, 42000, i64(2), f64(0.5), f64(1), f64(5), "Kopi instan"},
	{"NESTLE-DANCOW-400", "Dancow Fortigro 3+ 400g", models.CategoryMilk, 75000, i64(200), f64(12), f64(8), f64(24), "Susu pertumbuhan"},
	{"NESTLE-CERELAC-250", "Cerelac Nutri 250g", models.CategoryBaby, 65000, i64(450), f64(10), f64(9), f64(64), "MP-ASI pendamping"},
	{"NESTLE-BEARBRAND-370", "Bear Brand 370ml", models.CategoryMilk, 12000, i64(120), f64(7), f64(3), f64(12), "Susu steril"},
	{"NESTLE-SNACK-CRISP", "Nestlé Crisps", models.CategorySnack, 15000, i64(220), f64(3), f64(12), f64(26), "Cemilan gurih"},
	{"NESTLE-CATER-HEMAT", "Paket Catering Hemat", models.CategoryCatering, 25000, nil, nil, nil, nil, "Paket catering ekonomis/per-pax"},
	{"NESTLE-CATER-PREMIUM", "Paket Catering Premium", models.CategoryCatering, 40000, nil, nil, nil, nil, "Paket catering premium/per-pax"},
}

type seedPromotion struct {
	code, description string
	discountPercent   float64
	minSubtotal       int64
	cateringOnly      bool
	minPax            int
}

var seedPromotions = []seedPromotion{
	{"WELCOME10", "Diskon 10% untuk pembelian pertama", 10, 0, false, 0},
	{"CATER5", "Diskon 5% untuk catering >= 50 pax", 5, 0, true, 50},
	{"FREESHIP50", "Gratis ongkir untuk subtotal >= 50k", 0, 50000, false, 0},
}

type seedExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SeedCatalog inserts the demo products and promotions when both tables are
// empty. The inserts run in one transaction so a failure leaves both tables
// empty and the next startup retries instead of skipping a half-seeded
// catalog. Safe to call on every startup.
func SeedCatalog(ctx context.Context, log *logrus.Logger) error {
	var products, promos int
	err := db.Pool.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM products), (SELECT COUNT(*) FROM promotions)`,
	).Scan(&products, &promos)
	if err != nil {
		return fmt.Errorf("count catalog: %w", err)
	}
	if products > 0 || promos > 0 {
		log.Debug("seed: existing data found, skipping reseed")
		return nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertSeed(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	log.Info("database seeded with products and promotions")
	return nil
}

func insertSeed(ctx context.Context, q seedExecer) error {
	for _, p := range seedProducts {
		_, err := q.Exec(ctx, `
			INSERT INTO products (code, name, category, price, calories, protein, fat, carbs, description, is_catering_option)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.code, p.name, p.category, p.price, p.calories, p.protein, p.fat, p.carbs, p.description,
			p.category == models.CategoryCatering,
		)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.code, err)
		}
	}
	for _, pr := range seedPromotions {
		_, err := q.Exec(ctx, `
			INSERT INTO promotions (code, description, discount_percent, min_subtotal, catering_only, min_pax, active)
			VALUES ($1, $2, $3, $4, $5, $6, true)`,
			pr.code, pr.description, pr.discountPercent, pr.minSubtotal, pr.cateringOnly, pr.minPax,
		)
		if err != nil {
			return fmt.Errorf("seed promotion %s: %w", pr.code, err)
		}
	}
	return nil
}
