package services

import (
	"context"

	"storebot/models"
)

// CartLine is one priced cart entry.
type CartLine struct {
	Product   models.Product
	Qty       int
	LineTotal int64
}

// AddToCart increments the quantity for a product, inserting it if absent.
// Quantity must be positive; anything else is a validation failure, never a
// silent clamp.
func AddToCart(st *ConversationState, productID int64, qty int) error {
	if qty <= 0 {
		return Validation("Jumlah harus berupa angka positif.")
	}
	if st.Cart == nil {
		st.Cart = make(map[int64]int)
	}
	st.Cart[productID] += qty
	return nil
}

// CartView resolves the cart against the catalog and returns priced lines
// with the subtotal. Entries whose product no longer resolves are skipped.
func CartView(ctx context.Context, cat Catalog, st *ConversationState) ([]CartLine, int64, error) {
	subtotal, lines, err := ComputeSubtotal(ctx, cat, st.Cart)
	return lines, subtotal, err
}

func ClearCart(st *ConversationState) {
	st.Cart = make(map[int64]int)
}
