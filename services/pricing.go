package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"storebot/models"
)

const (
	taxRate              = 0.11
	freeDeliveryMin      = 50000
	deliveryFeeAddressed = 10000
	deliveryFeeDefault   = 15000
)

// ComputeSubtotal prices a cart: subtotal is the exact sum of price*qty over
// entries whose product resolves; entries that no longer resolve are skipped.
// Lines come back in ascending product-id order so replies are stable.
func ComputeSubtotal(ctx context.Context, cat Catalog, cart map[int64]int) (int64, []CartLine, error) {
	ids := make([]int64, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var subtotal int64
	var lines []CartLine
	for _, id := range ids {
		p, err := cat.ProductByID(ctx, id)
		if err != nil {
			return 0, nil, err
		}
		if p == nil {
			continue
		}
		qty := cart[id]
		line := p.Price * int64(qty)
		subtotal += line
		lines = append(lines, CartLine{Product: *p, Qty: qty, LineTotal: line})
	}
	return subtotal, lines, nil
}

// ApplyPromotion evaluates a promo code against a subtotal. Unknown, inactive
// or ineligible codes yield zero discount and no promotion, never an error.
// Discount is floor(subtotal * percent / 100). Catering-only promotions apply
// only to catering orders with pax >= the promotion's minimum.
func ApplyPromotion(ctx context.Context, cat Catalog, subtotal int64, promoCode string, isCatering bool, pax int) (int64, *models.Promotion, error) {
	code := strings.ToUpper(strings.TrimSpace(promoCode))
	if code == "" {
		return 0, nil, nil
	}
	promo, err := cat.ActivePromotionByCode(ctx, code)
	if err != nil {
		return 0, nil, err
	}
	if promo == nil || subtotal < promo.MinSubtotal {
		return 0, nil, nil
	}
	if promo.CateringOnly && (!isCatering || (promo.MinPax > 0 && pax < promo.MinPax)) {
		return 0, nil, nil
	}
	discount := int64(math.Floor(float64(subtotal) * promo.DiscountPercent / 100))
	return discount, promo, nil
}

// ComputeTax is 11% of the discounted subtotal, rounded half away from zero
// to the nearest integer unit.
func ComputeTax(afterDiscount int64) int64 {
	return int64(math.Round(float64(afterDiscount) * taxRate))
}

// ComputeDeliveryFee: free above the threshold; below it, cheaper when an
// address is known.
func ComputeDeliveryFee(subtotal int64, hasAddress bool) int64 {
	if subtotal >= freeDeliveryMin {
		return 0
	}
	if hasAddress {
		return deliveryFeeAddressed
	}
	return deliveryFeeDefault
}
