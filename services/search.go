package services

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"storebot/models"
)

// labelCandidate pairs a lowercased searchable label (name or code) with its product.
type labelCandidate struct {
	label   string
	product models.Product
	score   float64
}

// similarity is a normalized edit-similarity ratio in [0,1]:
// 1 - levenshtein(a,b) / max(len(a), len(b)). Equal strings score 1.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	max := la
	if lb > max {
		max = lb
	}
	if max == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(max)
}

// SearchProducts finds products whose name or code approximately matches the
// query. Labels scoring at least cutoff are kept in descending-similarity
// order; when none qualify, a case-insensitive substring scan is the fallback.
// The cap applies to matched labels, then results are de-duplicated by
// product id, so a product whose name and code both rank in the top
// maxResults consumes two slots. An empty query returns no results.
func SearchProducts(ctx context.Context, cat Catalog, query string, maxResults int, cutoff float64) ([]models.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	products, err := cat.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	// Full scan over (name, code) labels; fine at catalog scale.
	pool := make([]labelCandidate, 0, 2*len(products))
	for _, p := range products {
		pool = append(pool, labelCandidate{label: strings.ToLower(p.Name), product: p})
		pool = append(pool, labelCandidate{label: strings.ToLower(p.Code), product: p})
	}

	var matched []labelCandidate
	for _, c := range pool {
		c.score = similarity(q, c.label)
		if c.score >= cutoff {
			matched = append(matched, c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})
	if len(matched) > maxResults {
		matched = matched[:maxResults]
	}

	seen := make(map[int64]bool)
	var results []models.Product
	for _, c := range matched {
		if seen[c.product.ID] {
			continue
		}
		seen[c.product.ID] = true
		results = append(results, c.product)
	}
	if len(results) > 0 {
		return results, nil
	}

	// Substring fallback, same de-duplication and cap.
	for _, c := range pool {
		if len(results) >= maxResults {
			break
		}
		if strings.Contains(c.label, q) && !seen[c.product.ID] {
			seen[c.product.ID] = true
			results = append(results, c.product)
		}
	}
	return results, nil
}
