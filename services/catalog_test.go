package services

import (
	"context"
	"strings"
	"time"

	"storebot/models"
)

// memCatalog is the in-memory Catalog used throughout the package tests.
type memCatalog struct {
	products   []models.Product
	promotions []models.Promotion
}

func (m *memCatalog) AllProducts(ctx context.Context) ([]models.Product, error) {
	return m.products, nil
}

func (m *memCatalog) ProductsByCategory(ctx context.Context, categories ...string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		for _, c := range categories {
			if p.Category == c {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (m *memCatalog) ProductByID(ctx context.Context, id int64) (*models.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, nil
}

func (m *memCatalog) ProductByCode(ctx context.Context, code string) (*models.Product, error) {
	for i := range m.products {
		if m.products[i].Code == code {
			return &m.products[i], nil
		}
	}
	return nil, nil
}

func (m *memCatalog) ActivePromotionByCode(ctx context.Context, code string) (*models.Promotion, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for i := range m.promotions {
		if m.promotions[i].Code == code && m.promotions[i].Active {
			return &m.promotions[i], nil
		}
	}
	return nil, nil
}

func (m *memCatalog) FirstCateringPackage(ctx context.Context) (*models.Product, error) {
	for i := range m.products {
		if m.products[i].Category == models.CategoryCatering {
			return &m.products[i], nil
		}
	}
	return nil, nil
}

// memOrderStore records created orders so checkout tests can assert on what
// was (or was not) persisted.
type memOrderStore struct {
	orders []models.Order
	items  map[int64][]models.OrderItem
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{items: make(map[int64][]models.OrderItem)}
}

func (m *memOrderStore) CreateOrder(ctx context.Context, o *models.Order, items []models.OrderItem) error {
	o.ID = int64(len(m.orders) + 1)
	o.CreatedAt = time.Now()
	for i := range items {
		items[i].OrderID = o.ID
		items[i].ID = int64(i + 1)
	}
	m.orders = append(m.orders, *o)
	m.items[o.ID] = items
	return nil
}

func (m *memOrderStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			return &m.orders[i], nil
		}
	}
	return nil, nil
}

func (m *memOrderStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	out := make([]models.Order, len(m.orders))
	for i := range m.orders {
		out[len(m.orders)-1-i] = m.orders[i]
	}
	return out, nil
}

func (m *memOrderStore) ListOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	return m.items[orderID], nil
}

func (m *memOrderStore) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			return nil
		}
	}
	return nil
}

func calories(v int64) *int64 { return &v }

// fixtureCatalog mirrors the seed data the assistant ships with.
func fixtureCatalog() *memCatalog {
	return &memCatalog{
		products: []models.Product{
			{ID: 1, Code: "NESTLE-MILO-200", Name: "Milo Active-Go 200g", Category: models.CategoryBeverage, Price: 33000, Calories: calories(400), Description: "Minuman coklat malt bergizi"},
			{ID: 2, Code: "NESTLE-NESCAFE-100", Name: "Nescafé Classic 100g", Category: models.CategoryBeverage, Price: 42000, Calories: calories(2), Description: "Kopi instan"},
			{ID: 3, Code: "NESTLE-DANCOW-400", Name: "Dancow Fortigro 3+ 400g", Category: models.CategoryMilk, Price: 75000, Calories: calories(200), Description: "Susu pertumbuhan"},
			{ID: 4, Code: "NESTLE-CERELAC-250", Name: "Cerelac Nutri 250g", Category: models.CategoryBaby, Price: 65000, Calories: calories(450), Description: "MP-ASI pendamping"},
			{ID: 5, Code: "NESTLE-BEARBRAND-370", Name: "Bear Brand 370ml", Category: models.CategoryMilk, Price: 12000, Calories: calories(120), Description: "Susu steril"},
			{ID: 6, Code: "NESTLE-SNACK-CRISP", Name: "Nestlé Crisps", Category: models.CategorySnack, Price: 15000, Calories: calories(220), Description: "Cemilan gurih"},
			{ID: 7, Code: "NESTLE-CATER-HEMAT", Name: "Paket Catering Hemat", Category: models.CategoryCatering, Price: 25000, IsCateringOption: true, Description: "Paket catering ekonomis/per-pax"},
			{ID: 8, Code: "NESTLE-CATER-PREMIUM", Name: "Paket Catering Premium", Category: models.CategoryCatering, Price: 40000, IsCateringOption: true, Description: "Paket catering premium/per-pax"},
		},
		promotions: []models.Promotion{
			{ID: 1, Code: "WELCOME10", DiscountPercent: 10, MinSubtotal: 0, Active: true},
			{ID: 2, Code: "CATER5", DiscountPercent: 5, MinSubtotal: 0, CateringOnly: true, MinPax: 50, Active: true},
			{ID: 3, Code: "FREESHIP50", DiscountPercent: 0, MinSubtotal: 50000, Active: true},
			{ID: 4, Code: "OLD20", DiscountPercent: 20, MinSubtotal: 0, Active: false},
		},
	}
}
