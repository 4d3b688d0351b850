package services_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/services"
)

// dailyPlan builds a one-day plan with the given ingredients spread over the
// breakfast slot; enough for aggregation tests that don't care about slots.
func dailyPlan(ingredients ...string) *models.MealPlan {
	return &models.MealPlan{
		PlanType: models.PlanDaily,
		Days: map[string]models.DayPlan{
			models.DailyKey: {
				models.SlotBreakfast: {Description: "test", Ingredients: ingredients, Kcal: 300},
			},
		},
	}
}

func TestBuildShoppingListKnownPrices(t *testing.T) {
	t.Parallel()

	list := services.BuildShoppingList(dailyPlan("2 uova", "1 banana"))

	if len(list.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(list.Items))
	}
	if list.Total != 0.80 {
		t.Fatalf("total = %.2f, want 0.80", list.Total)
	}
	if len(list.Unmatched) != 0 {
		t.Fatalf("unexpected unmatched: %v", list.Unmatched)
	}
}

func TestBuildShoppingListUnmatched(t *testing.T) {
	t.Parallel()

	list := services.BuildShoppingList(dailyPlan("2 uova", "pesto di pistacchi"))

	if len(list.Unmatched) != 1 || list.Unmatched[0] != "pesto di pistacchi" {
		t.Fatalf("unmatched = %v, want [pesto di pistacchi]", list.Unmatched)
	}
	// The unmatched ingredient must not contribute to the total.
	if list.Total != 0.50 {
		t.Fatalf("total = %.2f, want 0.50", list.Total)
	}
}

func TestBuildShoppingListAccumulatesDuplicates(t *testing.T) {
	t.Parallel()

	plan := &models.MealPlan{
		PlanType: models.PlanDaily,
		Days: map[string]models.DayPlan{
			models.DailyKey: {
				models.SlotBreakfast: {Description: "a", Ingredients: []string{"2 uova"}, Kcal: 300},
				models.SlotDinner:    {Description: "b", Ingredients: []string{"2 uova"}, Kcal: 400},
			},
		},
	}

	list := services.BuildShoppingList(plan)
	if len(list.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(list.Items))
	}
	item := list.Items[0]
	if item.Count != 2 {
		t.Fatalf("count = %d, want 2", item.Count)
	}
	if item.Quantity != "2 pz x2" {
		t.Fatalf("quantity = %q, want %q", item.Quantity, "2 pz x2")
	}
	if item.Cost != 1.00 {
		t.Fatalf("cost = %.2f, want 1.00", item.Cost)
	}
}

func TestBuildShoppingListPartialMatch(t *testing.T) {
	t.Parallel()

	// Quantity differs from the table phrase; the noun still resolves.
	list := services.BuildShoppingList(dailyPlan("180g petto di pollo"))

	if len(list.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(list.Items))
	}
	if list.Items[0].Name != "Petto di pollo" {
		t.Fatalf("name = %q, want Petto di pollo", list.Items[0].Name)
	}
	if len(list.Unmatched) != 0 {
		t.Fatalf("unexpected unmatched: %v", list.Unmatched)
	}
}

func TestBuildShoppingListPartialMatchWholeWords(t *testing.T) {
	t.Parallel()

	// "melanzane" must not resolve to the earlier "1 mela" entry just because
	// "mela" is a prefix of it.
	list := services.BuildShoppingList(dailyPlan("250g melanzane"))

	if len(list.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(list.Items))
	}
	if list.Items[0].Name != "Melanzane" {
		t.Fatalf("name = %q, want Melanzane", list.Items[0].Name)
	}
}

func TestBuildShoppingListCaseAndSpacingInsensitive(t *testing.T) {
	t.Parallel()

	list := services.BuildShoppingList(dailyPlan("  2   UOVA "))
	if len(list.Items) != 1 || list.Items[0].Name != "Uova" {
		t.Fatalf("normalized match failed: %+v", list)
	}
}

func TestBuildShoppingListIdempotent(t *testing.T) {
	t.Parallel()

	plan := dailyPlan("2 uova", "1 banana", "60g avena", "pesto di pistacchi")

	first := services.BuildShoppingList(plan)
	second := services.BuildShoppingList(plan)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("lists differ across runs:\n%+v\n%+v", first, second)
	}
}

func TestBuildShoppingListTotalIsRoundedSum(t *testing.T) {
	t.Parallel()

	plan := dailyPlan("2 uova", "1 banana", "125g yogurt greco", "30g mandorle")
	list := services.BuildShoppingList(plan)

	var sum float64
	for _, item := range list.Items {
		sum += item.Cost
	}
	// Per-item costs and the total round independently; with single-count
	// items they agree exactly.
	if math.Abs(list.Total-math.Round(sum*100)/100) > 0.011 {
		t.Fatalf("total %.2f drifts more than a cent from item sum %.2f", list.Total, sum)
	}
}

func TestBuildShoppingListGroupsPartitionItems(t *testing.T) {
	t.Parallel()

	plan := dailyPlan("2 uova", "1 banana", "60g avena", "100g ceci")
	list := services.BuildShoppingList(plan)

	var grouped int
	seen := make(map[string]bool)
	for _, group := range list.Groups {
		if seen[group.Category] {
			t.Fatalf("category %q appears in more than one group", group.Category)
		}
		seen[group.Category] = true
		for _, item := range group.Items {
			if item.Category != group.Category {
				t.Fatalf("item %q filed under %q", item.Name, group.Category)
			}
			grouped++
		}
	}
	if grouped != len(list.Items) {
		t.Fatalf("groups hold %d items, flat list has %d", grouped, len(list.Items))
	}
}

func TestBuildShoppingListEmptyPlan(t *testing.T) {
	t.Parallel()

	list := services.BuildShoppingList(&models.MealPlan{
		PlanType: models.PlanDaily,
		Days:     map[string]models.DayPlan{},
	})

	if len(list.Items) != 0 || list.Total != 0 {
		t.Fatalf("empty plan produced items: %+v", list)
	}
}
