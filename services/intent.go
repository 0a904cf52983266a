package services

import (
	"strconv"
	"strings"
)

type IntentKind int

const (
	IntentBlank IntentKind = iota
	IntentGreeting
	IntentHelp
	IntentMenu
	IntentProductInfo
	IntentRecipe
	IntentPlaceOrder
	IntentBrandInfo
	IntentNutrition
	IntentViewCart
	IntentRecycleReport
	IntentPointsBalance
	IntentRedeemPoints
	IntentCheckout
	IntentUnknown
)

// Intent is the classified purpose of one utterance. Only the fields of the
// matched kind are set.
type Intent struct {
	Kind     IntentKind
	Query    string // ProductInfo / Recipe: search text; BrandInfo: brand key
	Qty      int    // PlaceOrder / RecycleReport
	Age      *int   // Nutrition, nil when no age was given
	Goal     string // Nutrition
	Material string // RecycleReport
	Raw      string // original message, always set
}

var greetingWords = []string{"halo", "hai", "hi", "selamat"}
var helpWords = []string{"bantuan", "help", "perintah"}

// brandKeys in match order; "bear brand" before "bearbrand" is irrelevant
// since both map to the same key.
var brandKeys = []string{"nescafe", "milo", "dancow", "cerelac", "bear brand", "bearbrand"}

var nutritionGoals = []string{
	GoalWeightLoss, GoalWeightGain, "weightgain", GoalMaintenance,
	GoalLactating, "pregnant", "child_growth",
}

// ParseIntent classifies a raw utterance with ordered first-match rules.
// Command prefixes (produk/resep/pesan/order) outrank bare brand keywords so
// that "pesan milo 2" orders instead of echoing the Milo blurb.
func ParseIntent(raw string) Intent {
	msg := strings.TrimSpace(raw)
	in := Intent{Raw: msg}
	if msg == "" {
		in.Kind = IntentBlank
		return in
	}
	low := strings.ToLower(msg)

	switch {
	case containsAny(low, greetingWords):
		in.Kind = IntentGreeting
	case containsAny(low, helpWords):
		in.Kind = IntentHelp
	case low == "menu" || low == "produk" || low == "katalog":
		in.Kind = IntentMenu
	case strings.HasPrefix(low, "produk ") || strings.HasPrefix(low, "product "):
		in.Kind = IntentProductInfo
		in.Query = strings.TrimSpace(msg[strings.Index(msg, " ")+1:])
	case strings.HasPrefix(low, "resep "):
		in.Kind = IntentRecipe
		in.Query = strings.TrimSpace(low[len("resep "):])
	case strings.HasPrefix(low, "pesan ") || strings.HasPrefix(low, "order "):
		in.Kind = IntentPlaceOrder
		in.Query, in.Qty = parseOrderCommand(msg)
	case brandIn(low) != "":
		in.Kind = IntentBrandInfo
		in.Query = brandIn(low)
	case strings.Contains(low, "rekomendasi gizi") || strings.Contains(low, "nutrition"):
		in.Kind = IntentNutrition
		in.Age, in.Goal = parseNutritionCommand(low)
	case strings.Contains(low, "keranjang") || strings.Contains(low, "cart"):
		in.Kind = IntentViewCart
	case isRecycleReport(low):
		in.Kind = IntentRecycleReport
		in.Qty, in.Material = parseRecycleCommand(low)
	case strings.Contains(low, "poin saya") || low == "poin":
		in.Kind = IntentPointsBalance
	case strings.Contains(low, "tukar poin"):
		in.Kind = IntentRedeemPoints
	case strings.Contains(low, "checkout"):
		in.Kind = IntentCheckout
	default:
		in.Kind = IntentUnknown
	}
	return in
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func brandIn(low string) string {
	for _, b := range brandKeys {
		if strings.Contains(low, b) {
			if b == "bear brand" || b == "bearbrand" {
				return "bearbrand"
			}
			return b
		}
	}
	return ""
}

// parseOrderCommand splits "pesan <name...> [qty]": a trailing integer token
// is the quantity (default 1), the rest is the product name.
func parseOrderCommand(msg string) (name string, qty int) {
	parts := strings.Fields(msg)[1:]
	qty = 1
	if len(parts) == 0 {
		return "", qty
	}
	if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
		qty = n
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, " "), qty
}

// parseNutritionCommand picks the first integer token as age and the first
// token from the goal vocabulary as goal.
func parseNutritionCommand(low string) (age *int, goal string) {
	for _, t := range strings.Fields(low) {
		if age == nil {
			if n, err := strconv.Atoi(t); err == nil {
				a := n
				age = &a
				continue
			}
		}
		if goal == "" {
			for _, g := range nutritionGoals {
				if t == g {
					goal = t
					break
				}
			}
		}
	}
	return age, goal
}

func isRecycleReport(low string) bool {
	return strings.HasPrefix(low, "lapor daur ulang") ||
		strings.HasPrefix(low, "lapor daurulang") ||
		(strings.Contains(low, "daur") && strings.Contains(low, "lapor"))
}

// parseRecycleCommand finds the first integer token as the item count, with
// everything after it as the material; without a count the last token is the
// material and the count defaults to 1.
func parseRecycleCommand(low string) (qty int, material string) {
	tokens := strings.Fields(low)
	qty = 1
	for i, t := range tokens {
		if n, err := strconv.Atoi(t); err == nil {
			qty = n
			if i+1 < len(tokens) {
				material = strings.Join(tokens[i+1:], " ")
			}
			return qty, material
		}
	}
	if len(tokens) > 0 {
		material = tokens[len(tokens)-1]
	}
	return qty, material
}
