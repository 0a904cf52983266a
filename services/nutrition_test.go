package services

import (
	"context"
	"strings"
	"testing"

	"storebot/models"
)

func intp(v int) *int { return &v }

func TestNutritionAdvice_Rules(t *testing.T) {
	cat := fixtureCatalog()
	ctx := context.Background()

	tests := []struct {
		name         string
		age          *int
		goal         string
		wantContains string
		wantCategory []string // every recommendation must be in one of these
		wantRecs     bool
	}{
		{"infant", intp(1), "", "ASI", []string{models.CategoryBaby}, true},
		{"child", intp(8), "", "nutrisi seimbang", []string{models.CategoryMilk, models.CategoryBaby}, true},
		{"weight loss", nil, GoalWeightLoss, "Kurangi gula", nil, true},
		{"weight gain", intp(30), GoalWeightGain, "kalori berkualitas", nil, true},
		{"maintenance", nil, GoalMaintenance, "Seimbangkan porsi", nil, true},
		{"empty goal", nil, "", "Seimbangkan porsi", nil, true},
		{"lactating", nil, GoalLactating, "menyusui", []string{models.CategoryMilk}, true},
		{"unknown goal", nil, "bulking", "ahli gizi", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advice, recs, err := NutritionAdvice(ctx, cat, tt.age, tt.goal)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(advice, tt.wantContains) {
				t.Errorf("advice %q should contain %q", advice, tt.wantContains)
			}
			if tt.wantRecs && len(recs) == 0 {
				t.Error("expected recommendations")
			}
			if !tt.wantRecs && len(recs) != 0 {
				t.Errorf("expected no recommendations, got %d", len(recs))
			}
			if len(recs) > maxRecommendations {
				t.Errorf("recommendations capped at %d, got %d", maxRecommendations, len(recs))
			}
			for _, p := range recs {
				if tt.wantCategory == nil {
					continue
				}
				ok := false
				for _, c := range tt.wantCategory {
					if p.Category == c {
						ok = true
					}
				}
				if !ok {
					t.Errorf("product %s has category %s, want one of %v", p.Name, p.Category, tt.wantCategory)
				}
			}
		})
	}
}

func TestNutritionAdvice_CalorieFilters(t *testing.T) {
	cat := fixtureCatalog()
	ctx := context.Background()

	_, recs, err := NutritionAdvice(ctx, cat, nil, GoalWeightLoss)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range recs {
		if p.Calories == nil || *p.Calories > 200 {
			t.Errorf("weight loss recommendation %s should have calories <= 200", p.Name)
		}
	}

	_, recs, err = NutritionAdvice(ctx, cat, nil, GoalWeightGain)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range recs {
		if p.Calories == nil || *p.Calories < 300 {
			t.Errorf("weight gain recommendation %s should have calories >= 300", p.Name)
		}
	}
}

func TestNutritionAdvice_AgeBeatsGoal(t *testing.T) {
	// An infant age wins even when a goal is present.
	advice, _, err := NutritionAdvice(context.Background(), fixtureCatalog(), intp(1), GoalWeightLoss)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(advice, "ASI") {
		t.Errorf("age rule should win over goal, got %q", advice)
	}
}
