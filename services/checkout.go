package services

import (
	"context"
	"fmt"

	"storebot/models"
)

type CheckoutInput struct {
	Name                string
	Phone               string
	Address             string
	PromoCode           string
	IsCatering          bool
	Pax                 int
	CateringPackageCode string
}

type CheckoutResult struct {
	Order models.Order
	Lines []CartLine
}

// Checkout prices the conversation's cart (or a catering request), applies
// the promotion, tax and delivery fee, and persists the resulting order.
// Validation failures reject the request before anything is written. The cart
// is cleared only on a successful non-catering checkout.
func Checkout(ctx context.Context, cat Catalog, orders OrderStore, st *ConversationState, in CheckoutInput) (*CheckoutResult, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, Validation("Nama dan telepon wajib.")
	}
	if len(st.Cart) == 0 && !in.IsCatering {
		return nil, Validation("Keranjang kosong.")
	}

	subtotal, lines, err := ComputeSubtotal(ctx, cat, st.Cart)
	if err != nil {
		return nil, fmt.Errorf("price cart: %w", err)
	}

	var pkg *models.Product
	if in.IsCatering {
		if in.CateringPackageCode != "" {
			pkg, err = cat.ProductByCode(ctx, in.CateringPackageCode)
		} else {
			pkg, err = cat.FirstCateringPackage(ctx)
		}
		if err != nil {
			return nil, fmt.Errorf("resolve catering package: %w", err)
		}
		if pkg == nil {
			return nil, Validation("Tidak ada paket catering tersedia.")
		}
		if in.Pax <= 0 {
			return nil, Validation("Untuk catering, tentukan pax (>0).")
		}
		subtotal = pkg.Price * int64(in.Pax)
		lines = nil
	}

	discount, promo, err := ApplyPromotion(ctx, cat, subtotal, in.PromoCode, in.IsCatering, in.Pax)
	if err != nil {
		return nil, fmt.Errorf("apply promotion: %w", err)
	}
	tax := ComputeTax(subtotal - discount)
	deliveryFee := ComputeDeliveryFee(subtotal, in.Address != "")
	total := subtotal - discount + tax + deliveryFee

	orderNo, err := NewOrderNo()
	if err != nil {
		return nil, fmt.Errorf("order number: %w", err)
	}
	order := models.Order{
		OrderNo:      orderNo,
		CustomerName: in.Name,
		Phone:        in.Phone,
		Address:      in.Address,
		IsCatering:   in.IsCatering,
		Subtotal:     subtotal,
		Discount:     discount,
		Tax:          tax,
		DeliveryFee:  deliveryFee,
		Total:        total,
		Status:       models.OrderStatusPending,
	}
	if in.IsCatering {
		order.CateringPackage = pkg.Code
		order.Pax = in.Pax
	}
	if promo != nil {
		order.PromoCode = promo.Code
	}

	var items []models.OrderItem
	if !in.IsCatering {
		for _, l := range lines {
			items = append(items, models.OrderItem{
				ProductID: l.Product.ID,
				Quantity:  l.Qty,
				UnitPrice: l.Product.Price,
			})
		}
	}

	if err := orders.CreateOrder(ctx, &order, items); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if !in.IsCatering {
		ClearCart(st)
	}
	return &CheckoutResult{Order: order, Lines: lines}, nil
}
