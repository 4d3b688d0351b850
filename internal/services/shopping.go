package services

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

// costEntry maps an ingredient phrase (with its embedded quantity) to a
// category, canonical name, display quantity and unit cost in EUR.
type costEntry struct {
	Phrase   string
	Category string
	Name     string
	Quantity string
	Cost     float64
}

// IngredientCostTable is the static price reference, in declaration order.
// Partial-match ties are broken by this order.
var IngredientCostTable = []costEntry{
	// Proteine
	{"120g petto di pollo", "Proteine", "Petto di pollo", "120g", 1.80},
	{"150g petto di tacchino", "Proteine", "Petto di tacchino", "150g", 2.10},
	{"2 uova", "Proteine", "Uova", "2 pz", 0.50},
	{"120g manzo magro", "Proteine", "Manzo magro", "120g", 2.60},
	{"100g bresaola", "Proteine", "Bresaola", "100g", 2.80},
	{"150g tofu", "Proteine", "Tofu", "150g", 1.90},
	// Pesce
	{"120g salmone", "Pesce", "Salmone", "120g", 3.50},
	{"150g merluzzo", "Pesce", "Merluzzo", "150g", 2.40},
	{"100g tonno al naturale", "Pesce", "Tonno al naturale", "100g", 1.20},
	{"100g gamberetti", "Pesce", "Gamberetti", "100g", 2.50},
	// Latticini
	{"125g yogurt greco", "Latticini", "Yogurt greco", "125g", 0.90},
	{"150g yogurt magro", "Latticini", "Yogurt magro", "150g", 0.70},
	{"100g ricotta", "Latticini", "Ricotta", "100g", 1.10},
	{"30g parmigiano", "Latticini", "Parmigiano", "30g", 0.95},
	{"125g fiocchi di latte", "Latticini", "Fiocchi di latte", "125g", 1.30},
	{"200ml latte scremato", "Latticini", "Latte scremato", "200ml", 0.35},
	{"200ml latte di mandorla", "Latticini", "Latte di mandorla", "200ml", 0.60},
	// Carboidrati
	{"80g riso integrale", "Carboidrati", "Riso integrale", "80g", 0.40},
	{"70g pasta integrale", "Carboidrati", "Pasta integrale", "70g", 0.35},
	{"60g avena", "Carboidrati", "Avena", "60g", 0.30},
	{"2 fette pane integrale", "Carboidrati", "Pane integrale", "2 fette", 0.45},
	{"200g patate dolci", "Carboidrati", "Patate dolci", "200g", 0.80},
	{"70g quinoa", "Carboidrati", "Quinoa", "70g", 1.10},
	{"50g gallette di riso", "Carboidrati", "Gallette di riso", "50g", 0.55},
	{"80g farro", "Carboidrati", "Farro", "80g", 0.50},
	{"60g couscous integrale", "Carboidrati", "Couscous integrale", "60g", 0.45},
	{"1 piadina integrale", "Carboidrati", "Piadina integrale", "1 pz", 0.80},
	// Frutta e Verdura
	{"1 banana", "Frutta e Verdura", "Banana", "1 pz", 0.30},
	{"1 mela", "Frutta e Verdura", "Mela", "1 pz", 0.40},
	{"1 arancia", "Frutta e Verdura", "Arancia", "1 pz", 0.45},
	{"1 kiwi", "Frutta e Verdura", "Kiwi", "1 pz", 0.50},
	{"1 pera", "Frutta e Verdura", "Pera", "1 pz", 0.45},
	{"1 avocado", "Frutta e Verdura", "Avocado", "1 pz", 1.50},
	{"150g frutti di bosco", "Frutta e Verdura", "Frutti di bosco", "150g", 1.80},
	{"200g broccoli", "Frutta e Verdura", "Broccoli", "200g", 0.90},
	{"200g zucchine", "Frutta e Verdura", "Zucchine", "200g", 0.70},
	{"150g spinaci", "Frutta e Verdura", "Spinaci", "150g", 0.95},
	{"insalata mista", "Frutta e Verdura", "Insalata mista", "1 busta", 1.00},
	{"200g pomodori", "Frutta e Verdura", "Pomodori", "200g", 0.85},
	{"150g peperoni", "Frutta e Verdura", "Peperoni", "150g", 0.75},
	{"100g carote", "Frutta e Verdura", "Carote", "100g", 0.30},
	{"200g verdure grigliate", "Frutta e Verdura", "Verdure grigliate", "200g", 1.20},
	{"150g asparagi", "Frutta e Verdura", "Asparagi", "150g", 1.60},
	{"200g melanzane", "Frutta e Verdura", "Melanzane", "200g", 0.70},
	{"150g fagiolini", "Frutta e Verdura", "Fagiolini", "150g", 0.90},
	// Legumi
	{"100g ceci", "Legumi", "Ceci", "100g", 0.50},
	{"100g lenticchie", "Legumi", "Lenticchie", "100g", 0.55},
	{"100g fagioli neri", "Legumi", "Fagioli neri", "100g", 0.60},
	// Grassi e Condimenti
	{"30g mandorle", "Grassi e Condimenti", "Mandorle", "30g", 0.85},
	{"30g noci", "Grassi e Condimenti", "Noci", "30g", 0.90},
	{"20g burro di arachidi", "Grassi e Condimenti", "Burro di arachidi", "20g", 0.40},
	{"1 cucchiaio olio extravergine", "Grassi e Condimenti", "Olio extravergine", "1 cucchiaio", 0.25},
	{"10g semi di chia", "Grassi e Condimenti", "Semi di chia", "10g", 0.35},
	{"15g semi di zucca", "Grassi e Condimenti", "Semi di zucca", "15g", 0.40},
	{"20g cioccolato fondente", "Grassi e Condimenti", "Cioccolato fondente", "20g", 0.60},
	// Dispensa
	{"25g miele", "Dispensa", "Miele", "25g", 0.30},
	{"100g hummus", "Dispensa", "Hummus", "100g", 1.20},
	{"30g proteine in polvere", "Dispensa", "Proteine in polvere", "30g", 1.20},
	{"1 barretta proteica", "Dispensa", "Barretta proteica", "1 pz", 1.50},
}

// BuildShoppingList flattens a plan's ingredients (all slots, all days,
// duplicates preserved), prices each against the cost table and returns the
// grouped, costed list. Unmatched ingredients are collected in Unmatched
// rather than silently dropped.
//
// Matching is exact first, then partial (the ingredient contains the table
// phrase with its quantity stripped, or vice versa); partial ties go to the
// first entry in table declaration order. Per-item costs and the total are
// rounded to 2 decimals independently, so re-summing displayed costs may
// drift by ±0.01 from the total.
func BuildShoppingList(plan *models.MealPlan) models.ShoppingList {
	list := models.ShoppingList{}

	type accumulated struct {
		entry costEntry
		count int
		cost  float64
	}
	var order []string
	acc := make(map[string]*accumulated)

	for _, ingredient := range flattenIngredients(plan) {
		entry, ok := matchIngredient(ingredient)
		if !ok {
			list.Unmatched = append(list.Unmatched, ingredient)
			continue
		}

		key := entry.Category + "|" + entry.Name
		a, seen := acc[key]
		if !seen {
			a = &accumulated{entry: entry}
			acc[key] = a
			order = append(order, key)
		}
		a.count++
		a.cost += entry.Cost
	}

	var total float64
	for _, key := range order {
		a := acc[key]
		quantity := a.entry.Quantity
		if a.count > 1 {
			quantity = fmt.Sprintf("%s x%d", a.entry.Quantity, a.count)
		}
		list.Items = append(list.Items, models.ShoppingItem{
			Category: a.entry.Category,
			Name:     a.entry.Name,
			Quantity: quantity,
			Cost:     round2(a.cost),
			Count:    a.count,
		})
		total += a.cost
	}
	list.Total = round2(total)

	list.Groups = groupByCategory(list.Items)
	return list
}

// flattenIngredients walks days and slots in canonical order so the flat
// sequence is stable for identical plans.
func flattenIngredients(plan *models.MealPlan) []string {
	var out []string
	for _, day := range plan.DayKeys() {
		dayPlan, ok := plan.Days[day]
		if !ok {
			continue
		}
		for _, slot := range models.SlotOrder {
			meal, ok := dayPlan[slot]
			if !ok {
				continue
			}
			out = append(out, meal.Ingredients...)
		}
	}
	return out
}

// matchIngredient resolves one ingredient string against the cost table.
func matchIngredient(ingredient string) (costEntry, bool) {
	norm := normalizeIngredient(ingredient)
	if norm == "" {
		return costEntry{}, false
	}

	// Exact match on the full phrase.
	for _, entry := range IngredientCostTable {
		if normalizeIngredient(entry.Phrase) == norm {
			return entry, true
		}
	}

	// Partial match: compare against the phrase with its quantity stripped,
	// so "180g petto di pollo" still resolves to the chicken entry. Matching
	// is on whole words, otherwise "melanzane" would hit the "mela" entry.
	// First declaration-order hit wins.
	normNoun := stripQuantity(norm)
	for _, entry := range IngredientCostTable {
		stripped := stripQuantity(normalizeIngredient(entry.Phrase))
		if stripped == "" {
			continue
		}
		if containsFields(norm, stripped) {
			return entry, true
		}
		if normNoun != "" && containsFields(stripped, normNoun) {
			return entry, true
		}
	}

	return costEntry{}, false
}

// containsFields reports whether needle's words appear as a consecutive run
// of whole words inside haystack.
func containsFields(haystack, needle string) bool {
	h := strings.Fields(haystack)
	n := strings.Fields(needle)
	if len(n) == 0 || len(n) > len(h) {
		return false
	}

	for i := 0; i+len(n) <= len(h); i++ {
		match := true
		for j := range n {
			if h[i+j] != n[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func normalizeIngredient(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// stripQuantity drops leading tokens that carry an embedded amount ("120g",
// "2", "200ml") so the food noun phrase remains.
func stripQuantity(s string) string {
	tokens := strings.Fields(s)
	for len(tokens) > 0 && startsWithDigit(tokens[0]) {
		tokens = tokens[1:]
	}
	return strings.Join(tokens, " ")
}

func startsWithDigit(tok string) bool {
	if tok == "" {
		return false
	}
	return unicode.IsDigit(rune(tok[0]))
}

// groupByCategory partitions items by category in stable first-seen order.
// Presentation only: totals are computed before this partition.
func groupByCategory(items []models.ShoppingItem) []models.ShoppingGroup {
	var groups []models.ShoppingGroup
	index := make(map[string]int)

	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, models.ShoppingGroup{Category: item.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
