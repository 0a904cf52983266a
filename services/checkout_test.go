package services

import (
	"context"
	"strings"
	"testing"
)

func TestCheckout_ItemizedWithFreeShipping(t *testing.T) {
	cat := fixtureCatalog()
	orders := newMemOrderStore()
	st := NewConversationState()
	st.Cart[1] = 2 // Milo 2 x 33000

	result, err := Checkout(context.Background(), cat, orders, st, CheckoutInput{
		Name:      "Budi",
		Phone:     "0812",
		PromoCode: "FREESHIP50",
	})
	if err != nil {
		t.Fatal(err)
	}
	o := result.Order
	if o.Subtotal != 66000 {
		t.Errorf("subtotal = %d, want 66000", o.Subtotal)
	}
	if o.Discount != 0 {
		t.Errorf("discount = %d, want 0 (FREESHIP50 is 0%%)", o.Discount)
	}
	if o.Tax != 7260 {
		t.Errorf("tax = %d, want 7260", o.Tax)
	}
	if o.DeliveryFee != 0 {
		t.Errorf("delivery fee = %d, want 0 above the threshold", o.DeliveryFee)
	}
	if o.Total != 73260 {
		t.Errorf("total = %d, want 73260", o.Total)
	}
	if o.PromoCode != "FREESHIP50" {
		t.Errorf("promo code = %q, want FREESHIP50", o.PromoCode)
	}
	if !strings.HasPrefix(o.OrderNo, "NSB") || len(o.OrderNo) != 9 {
		t.Errorf("order no = %q, want NSB + 6 chars", o.OrderNo)
	}
	if len(orders.items[o.ID]) != 1 {
		t.Errorf("want 1 line item, got %d", len(orders.items[o.ID]))
	}
	if len(st.Cart) != 0 {
		t.Error("cart should be cleared after itemized checkout")
	}
}

func TestCheckout_Catering(t *testing.T) {
	cat := fixtureCatalog()
	orders := newMemOrderStore()
	st := NewConversationState()

	result, err := Checkout(context.Background(), cat, orders, st, CheckoutInput{
		Name:       "Siti",
		Phone:      "0813",
		IsCatering: true,
		Pax:        60,
		PromoCode:  "CATER5",
	})
	if err != nil {
		t.Fatal(err)
	}
	o := result.Order
	if o.Subtotal != 1500000 { // first catering package, 25000 x 60
		t.Errorf("subtotal = %d, want 1500000", o.Subtotal)
	}
	if o.Discount != 75000 {
		t.Errorf("discount = %d, want 75000", o.Discount)
	}
	if o.Tax != 156750 {
		t.Errorf("tax = %d, want 156750", o.Tax)
	}
	if o.DeliveryFee != 0 {
		t.Errorf("delivery fee = %d, want 0", o.DeliveryFee)
	}
	if o.Total != 1581750 {
		t.Errorf("total = %d, want 1581750", o.Total)
	}
	if o.CateringPackage != "NESTLE-CATER-HEMAT" {
		t.Errorf("package = %q, want first catering entry", o.CateringPackage)
	}
	if o.Pax != 60 {
		t.Errorf("pax = %d, want 60", o.Pax)
	}
	if len(orders.items[o.ID]) != 0 {
		t.Error("catering orders have no line items")
	}
}

func TestCheckout_CateringByExplicitCode(t *testing.T) {
	cat := fixtureCatalog()
	orders := newMemOrderStore()
	st := NewConversationState()

	result, err := Checkout(context.Background(), cat, orders, st, CheckoutInput{
		Name:                "Siti",
		Phone:               "0813",
		IsCatering:          true,
		Pax:                 10,
		CateringPackageCode: "NESTLE-CATER-PREMIUM",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Order.Subtotal != 400000 {
		t.Errorf("subtotal = %d, want 40000 x 10", result.Order.Subtotal)
	}
}

func TestCheckout_Rejections(t *testing.T) {
	cat := fixtureCatalog()
	ctx := context.Background()

	tests := []struct {
		name string
		cart map[int64]int
		in   CheckoutInput
	}{
		{"blank name", map[int64]int{1: 1}, CheckoutInput{Phone: "0812"}},
		{"blank phone", map[int64]int{1: 1}, CheckoutInput{Name: "Budi"}},
		{"empty cart not catering", nil, CheckoutInput{Name: "Budi", Phone: "0812"}},
		{"catering pax zero", nil, CheckoutInput{Name: "Budi", Phone: "0812", IsCatering: true, Pax: 0}},
		{"catering unknown package", nil, CheckoutInput{Name: "Budi", Phone: "0812", IsCatering: true, Pax: 10, CateringPackageCode: "NO-SUCH"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := newMemOrderStore()
			st := NewConversationState()
			for id, qty := range tt.cart {
				st.Cart[id] = qty
			}
			_, err := Checkout(ctx, cat, orders, st, tt.in)
			if !IsValidation(err) {
				t.Fatalf("want validation failure, got %v", err)
			}
			if len(orders.orders) != 0 {
				t.Error("no order may be created on rejection")
			}
		})
	}
}

func TestCheckout_CateringNoPackagesAtAll(t *testing.T) {
	cat := fixtureCatalog()
	cat.products = cat.products[:6] // drop the catering packages
	orders := newMemOrderStore()

	_, err := Checkout(context.Background(), cat, orders, NewConversationState(), CheckoutInput{
		Name: "Budi", Phone: "0812", IsCatering: true, Pax: 10,
	})
	if !IsValidation(err) {
		t.Fatalf("want validation failure, got %v", err)
	}
}

func TestCheckout_CateringKeepsCart(t *testing.T) {
	cat := fixtureCatalog()
	orders := newMemOrderStore()
	st := NewConversationState()
	st.Cart[1] = 1

	_, err := Checkout(context.Background(), cat, orders, st, CheckoutInput{
		Name: "Budi", Phone: "0812", IsCatering: true, Pax: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Cart) != 1 {
		t.Error("catering checkout must not clear the itemized cart")
	}
}
