package services

import (
	"context"

	"storebot/models"
)

const maxRecommendations = 5

// Goal values recognized by the nutrition advisor. Anything else (non-empty)
// gets a consult-a-professional reply with no recommendations.
const (
	GoalWeightLoss  = "weight_loss"
	GoalWeightGain  = "weight_gain"
	GoalMaintenance = "maintenance"
	GoalLactating   = "lactating"
)

// NutritionAdvice maps an optional age and goal to an advice line plus up to
// five recommended products. Rules are checked in order, first match wins;
// a missing age falls through to the goal branch.
func NutritionAdvice(ctx context.Context, cat Catalog, age *int, goal string) (string, []models.Product, error) {
	var advice string
	var recs []models.Product
	var err error

	switch {
	case age != nil && *age < 2:
		advice = "Untuk bayi di bawah 2 tahun, utamakan ASI dan konsultasi dokter."
		recs, err = take(cat.ProductsByCategory(ctx, models.CategoryBaby))
	case age != nil && *age < 12:
		advice = "Anak memerlukan nutrisi seimbang: karbohidrat, protein, lemak sehat."
		recs, err = take(cat.ProductsByCategory(ctx, models.CategoryMilk, models.CategoryBaby))
	default:
		switch goal {
		case GoalWeightLoss:
			advice = "Kurangi gula/lemak, pilih porsi kecil, tambah protein & serat."
			recs, err = filterByCalories(ctx, cat, func(cal int64) bool { return cal <= 200 })
		case GoalWeightGain:
			advice = "Tambah asupan kalori berkualitas & protein."
			recs, err = filterByCalories(ctx, cat, func(cal int64) bool { return cal >= 300 })
		case GoalMaintenance, "":
			advice = "Seimbangkan porsi, olahraga teratur."
			recs, err = take(cat.AllProducts(ctx))
		case GoalLactating:
			advice = "Ibu menyusui butuh ekstra kalori dan cairan."
			recs, err = take(cat.ProductsByCategory(ctx, models.CategoryMilk))
		default:
			advice = "Konsultasikan kebutuhan spesifik dengan ahli gizi."
		}
	}
	if err != nil {
		return "", nil, err
	}
	return advice, dedupeProducts(recs, maxRecommendations), nil
}

// take caps a product query result at three, the per-rule recommendation limit.
func take(products []models.Product, err error) ([]models.Product, error) {
	if err != nil {
		return nil, err
	}
	if len(products) > 3 {
		products = products[:3]
	}
	return products, nil
}

func filterByCalories(ctx context.Context, cat Catalog, keep func(int64) bool) ([]models.Product, error) {
	products, err := cat.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Product
	for _, p := range products {
		if p.Calories != nil && keep(*p.Calories) {
			out = append(out, p)
			if len(out) == 3 {
				break
			}
		}
	}
	return out, nil
}

func dedupeProducts(products []models.Product, limit int) []models.Product {
	seen := make(map[int64]bool)
	var out []models.Product
	for _, p := range products {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}
