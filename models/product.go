package models

type Product struct {
	ID               int64
	Code             string
	Name             string
	Category         string // "beverage", "milk", "baby", "snack", "catering"
	Price            int64
	Calories         *int64
	Protein          *float64
	Fat              *float64
	Carbs            *float64
	Description      string
	IsCateringOption bool
}

const (
	CategoryBeverage = "beverage"
	CategoryMilk     = "milk"
	CategoryBaby     = "baby"
	CategorySnack    = "snack"
	CategoryCatering = "catering"
)

// Promotion is a named discount rule. CateringOnly promotions apply only to
// catering orders with at least MinPax persons.
type Promotion struct {
	ID              int64
	Code            string
	Description     string
	DiscountPercent float64
	MinSubtotal     int64
	CateringOnly    bool
	MinPax          int
	Active          bool
}
