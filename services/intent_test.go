package services

import "testing"

func TestParseIntent_Kinds(t *testing.T) {
	tests := []struct {
		in   string
		want IntentKind
	}{
		{"", IntentBlank},
		{"   ", IntentBlank},
		{"halo", IntentGreeting},
		{"Selamat pagi", IntentGreeting},
		{"bantuan", IntentHelp},
		{"help", IntentHelp},
		{"menu", IntentMenu},
		{"produk", IntentMenu},
		{"katalog", IntentMenu},
		{"produk milo", IntentProductInfo},
		{"product nescafe", IntentProductInfo},
		{"resep dancow", IntentRecipe},
		{"pesan Milo 3", IntentPlaceOrder},
		{"order cerelac", IntentPlaceOrder},
		{"milo", IntentBrandInfo},
		{"ada bear brand?", IntentBrandInfo},
		{"rekomendasi gizi usia 30 weight_loss", IntentNutrition},
		{"keranjang", IntentViewCart},
		{"cart", IntentViewCart},
		{"lapor daur ulang 5 botol", IntentRecycleReport},
		{"poin saya", IntentPointsBalance},
		{"poin", IntentPointsBalance},
		{"tukar poin", IntentRedeemPoints},
		{"checkout", IntentCheckout},
		{"apa kabar dunia", IntentUnknown},
	}
	for _, tt := range tests {
		if got := ParseIntent(tt.in); got.Kind != tt.want {
			t.Errorf("ParseIntent(%q).Kind = %d, want %d", tt.in, got.Kind, tt.want)
		}
	}
}

func TestParseIntent_OrderCommand(t *testing.T) {
	in := ParseIntent("pesan Milo 3")
	if in.Kind != IntentPlaceOrder || in.Query != "Milo" || in.Qty != 3 {
		t.Errorf("got kind=%d query=%q qty=%d", in.Kind, in.Query, in.Qty)
	}

	// Order commands outrank brand keywords.
	if in := ParseIntent("pesan milo 2"); in.Kind != IntentPlaceOrder {
		t.Errorf("'pesan milo 2' must be an order, got kind %d", in.Kind)
	}

	// No trailing number means quantity 1.
	in = ParseIntent("order bear brand")
	if in.Qty != 1 || in.Query != "bear brand" {
		t.Errorf("got query=%q qty=%d, want 'bear brand'/1", in.Query, in.Qty)
	}
}

func TestParseIntent_RecipeOutranksBrand(t *testing.T) {
	in := ParseIntent("resep milo")
	if in.Kind != IntentRecipe || in.Query != "milo" {
		t.Errorf("got kind=%d query=%q", in.Kind, in.Query)
	}
}

func TestParseIntent_Nutrition(t *testing.T) {
	in := ParseIntent("rekomendasi gizi usia 30 weight_loss")
	if in.Age == nil || *in.Age != 30 {
		t.Errorf("age = %v, want 30", in.Age)
	}
	if in.Goal != GoalWeightLoss {
		t.Errorf("goal = %q, want weight_loss", in.Goal)
	}

	in = ParseIntent("rekomendasi gizi maintenance")
	if in.Age != nil {
		t.Errorf("age should be nil, got %v", *in.Age)
	}
	if in.Goal != GoalMaintenance {
		t.Errorf("goal = %q", in.Goal)
	}
}

func TestParseIntent_Recycle(t *testing.T) {
	in := ParseIntent("lapor daur ulang 5 botol plastik")
	if in.Qty != 5 || in.Material != "botol plastik" {
		t.Errorf("got qty=%d material=%q", in.Qty, in.Material)
	}

	in = ParseIntent("lapor daur ulang botol")
	if in.Qty != 1 || in.Material != "botol" {
		t.Errorf("missing count defaults to 1: qty=%d material=%q", in.Qty, in.Material)
	}
}
