package services_test

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/services"
)

func generatePlan(t *testing.T, planType models.PlanType) *models.MealPlan {
	t.Helper()

	planner := services.NewTemplatePlanner(rand.New(rand.NewSource(11)))
	plan, err := planner.Generate(context.Background(), services.PlanRequest{
		TargetCalories: 2100,
		Activity:       1.55,
		Goal:           models.GoalMaintain,
		PlanType:       planType,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	return plan
}

func TestPlanPDFDaily(t *testing.T) {
	t.Parallel()

	exporter := services.NewPDFExporter("")
	data, err := exporter.PlanPDF(generatePlan(t, models.PlanDaily))
	if err != nil {
		t.Fatalf("PlanPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF (starts with %q)", data[:8])
	}
}

func TestPlanPDFWeeklyLargerThanDaily(t *testing.T) {
	t.Parallel()

	exporter := services.NewPDFExporter("")

	daily, err := exporter.PlanPDF(generatePlan(t, models.PlanDaily))
	if err != nil {
		t.Fatalf("PlanPDF(daily) error: %v", err)
	}
	weekly, err := exporter.PlanPDF(generatePlan(t, models.PlanWeekly))
	if err != nil {
		t.Fatalf("PlanPDF(weekly) error: %v", err)
	}

	// Seven rendered days spill past one page; the document must grow.
	if len(weekly) <= len(daily) {
		t.Fatalf("weekly PDF (%d bytes) not larger than daily (%d bytes)", len(weekly), len(daily))
	}
}

func TestShoppingPDF(t *testing.T) {
	t.Parallel()

	list := services.BuildShoppingList(generatePlan(t, models.PlanWeekly))

	exporter := services.NewPDFExporter("")
	data, err := exporter.ShoppingPDF(list)
	if err != nil {
		t.Fatalf("ShoppingPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestPlanPDFBadLogoDoesNotAbortExport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		fmt.Fprint(w, "this is not a png")
	}))
	defer server.Close()

	exporter := services.NewPDFExporter(server.URL)
	data, err := exporter.PlanPDF(generatePlan(t, models.PlanDaily))
	if err != nil {
		t.Fatalf("unreadable logo aborted the export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestPlanPDFUnreachableLogoDoesNotAbortExport(t *testing.T) {
	t.Parallel()

	exporter := services.NewPDFExporter("http://127.0.0.1:1/logo.png")
	data, err := exporter.PlanPDF(generatePlan(t, models.PlanDaily))
	if err != nil {
		t.Fatalf("unreachable logo aborted the export: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("empty document")
	}
}

func TestShoppingPDFEmptyList(t *testing.T) {
	t.Parallel()

	exporter := services.NewPDFExporter("")
	data, err := exporter.ShoppingPDF(models.ShoppingList{})
	if err != nil {
		t.Fatalf("ShoppingPDF() error: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("empty list produced no document")
	}
}
