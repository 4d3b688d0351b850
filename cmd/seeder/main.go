package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/config"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/database"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/services"
)

func main() {
	// Command line flags
	dryRun := flag.Bool("dry-run", false, "Preview changes without writing to database")
	truncate := flag.Bool("truncate", false, "Empty the ingredient_costs table before seeding")
	localFile := flag.String("file", "", "Import prices from a CSV file instead of the built-in table")
	flag.Parse()

	// Load .env
	godotenv.Load()

	// Load config
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Starting ingredient price seeding...")

	var costs []models.IngredientCost
	if *localFile != "" {
		file, err := os.Open(*localFile)
		if err != nil {
			log.Fatalf("Failed to open local file: %v", err)
		}
		defer file.Close()

		costs, err = parsePriceCSV(file)
		if err != nil {
			log.Fatalf("Failed to parse price CSV: %v", err)
		}
		log.Printf("Read %d prices from %s", len(costs), *localFile)
	} else {
		costs = builtinCosts()
		log.Printf("Using built-in price table (%d entries)", len(costs))
	}

	if *dryRun {
		log.Println("DRY RUN - No changes will be made")
		printPreview(costs, 20)
		return
	}

	ctx := context.Background()

	if *truncate {
		if err := db.TruncateIngredientCosts(ctx); err != nil {
			log.Fatalf("Failed to truncate ingredient_costs: %v", err)
		}
		log.Println("Truncated ingredient_costs")
	}

	for i := range costs {
		if err := db.UpsertIngredientCost(ctx, &costs[i]); err != nil {
			log.Fatalf("Failed to upsert %q: %v", costs[i].Phrase, err)
		}
	}

	total, err := db.CountIngredientCosts(ctx)
	if err != nil {
		log.Fatalf("Failed to count ingredient_costs: %v", err)
	}
	log.Printf("Seeding complete: %d prices written, %d rows in table", len(costs), total)
}

// parsePriceCSV reads rows of phrase,category,name,quantity,cost. Column
// order follows the header, so exports from spreadsheets keep working when
// columns are rearranged.
func parsePriceCSV(reader io.Reader) ([]models.IngredientCost, error) {
	csvReader := csv.NewReader(bufio.NewReader(reader))

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"phrase", "category", "name", "quantity", "cost"} {
		if _, ok := colMap[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	seen := make(map[string]bool)
	var costs []models.IngredientCost

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Warning: skipping malformed row: %v", err)
			continue
		}

		phrase := strings.TrimSpace(record[colMap["phrase"]])
		if phrase == "" {
			continue
		}
		if seen[strings.ToLower(phrase)] {
			log.Printf("Warning: duplicate phrase %q, keeping first occurrence", phrase)
			continue
		}

		cost, err := strconv.ParseFloat(strings.TrimSpace(record[colMap["cost"]]), 64)
		if err != nil || cost < 0 {
			log.Printf("Warning: skipping %q, invalid cost %q", phrase, record[colMap["cost"]])
			continue
		}

		seen[strings.ToLower(phrase)] = true
		costs = append(costs, models.IngredientCost{
			Phrase:   phrase,
			Category: strings.TrimSpace(record[colMap["category"]]),
			Name:     strings.TrimSpace(record[colMap["name"]]),
			Quantity: strings.TrimSpace(record[colMap["quantity"]]),
			Cost:     cost,
		})
	}

	return costs, nil
}

// builtinCosts converts the compiled-in price table used by the shopping
// list aggregator into database rows.
func builtinCosts() []models.IngredientCost {
	costs := make([]models.IngredientCost, 0, len(services.IngredientCostTable))
	for _, entry := range services.IngredientCostTable {
		costs = append(costs, models.IngredientCost{
			Phrase:   entry.Phrase,
			Category: entry.Category,
			Name:     entry.Name,
			Quantity: entry.Quantity,
			Cost:     entry.Cost,
		})
	}
	return costs
}

// printPreview shows a sample of the prices to be seeded
func printPreview(costs []models.IngredientCost, limit int) {
	fmt.Println("\n=== Preview of prices to seed ===")
	fmt.Printf("Total: %d entries\n\n", len(costs))

	categoryCount := make(map[string]int)
	for _, c := range costs {
		categoryCount[c.Category]++
	}

	fmt.Println("Entries per category:")
	for category, n := range categoryCount {
		fmt.Printf("  %s: %d\n", category, n)
	}

	fmt.Printf("\nSample entries (first %d):\n", limit)
	for i, c := range costs {
		if i >= limit {
			break
		}
		fmt.Printf("  %-30s %-12s %-10s EUR %.2f\n", c.Phrase, c.Category, c.Quantity, c.Cost)
	}
}
