package models

import "time"

// Order is a priced order as persisted in the orders table. Catering orders
// carry Pax and CateringPackage and have no line items; itemized orders are
// the other way around.
type Order struct {
	ID              int64
	OrderNo         string
	CustomerName    string
	Phone           string
	Address         string
	IsCatering      bool
	CateringPackage string // package product code, empty when not catering
	Pax             int
	Subtotal        int64
	Discount        int64
	Tax             int64
	DeliveryFee     int64
	Total           int64
	PromoCode       string
	Status          string
	CreatedAt       time.Time
}

type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice int64
}

const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// OrderStatuses lists the valid statuses in lifecycle order (for admin UI).
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}
