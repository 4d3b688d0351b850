package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

// testPlanner builds a GeminiPlanner pointed at a local server.
func testPlanner(serverURL string) *GeminiPlanner {
	return &GeminiPlanner{
		apiKey:      "test-key",
		model:       "test-model",
		baseURL:     serverURL,
		client:      &http.Client{Timeout: 5 * time.Second},
		maxAttempts: 3,
	}
}

func validDayJSON() string {
	day := map[string]models.MealSlot{}
	for _, slot := range models.SlotOrder {
		day[slot] = models.MealSlot{
			Description: "Pasto " + slot,
			Ingredients: []string{"2 uova"},
			Kcal:        350,
		}
	}
	b, _ := json.Marshal(day)
	return string(b)
}

func modelResponse(text string) string {
	resp := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestGeminiGenerateDaily(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, modelResponse(validDayJSON()))
	}))
	defer server.Close()

	g := testPlanner(server.URL)
	plan, err := g.Generate(context.Background(), PlanRequest{
		TargetCalories: 2000,
		Goal:           models.GoalMaintain,
		PlanType:       models.PlanDaily,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if requests.Load() != 1 {
		t.Fatalf("daily plan made %d requests, want 1", requests.Load())
	}
	day, ok := plan.Days[models.DailyKey]
	if !ok {
		t.Fatalf("plan missing %q day", models.DailyKey)
	}
	for _, slot := range models.SlotOrder {
		if _, ok := day[slot]; !ok {
			t.Fatalf("missing slot %q", slot)
		}
	}
}

func TestGeminiGenerateWeeklyMakesSevenRequests(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, modelResponse(validDayJSON()))
	}))
	defer server.Close()

	g := testPlanner(server.URL)
	plan, err := g.Generate(context.Background(), PlanRequest{PlanType: models.PlanWeekly})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if requests.Load() != 7 {
		t.Fatalf("weekly plan made %d requests, want 7", requests.Load())
	}
	if len(plan.Days) != 7 {
		t.Fatalf("weekly plan has %d days, want 7", len(plan.Days))
	}
}

func TestGeminiAcceptsFencedJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, modelResponse("```json\n"+validDayJSON()+"\n```"))
	}))
	defer server.Close()

	g := testPlanner(server.URL)
	if _, err := g.Generate(context.Background(), PlanRequest{PlanType: models.PlanDaily}); err != nil {
		t.Fatalf("fenced JSON rejected: %v", err)
	}
}

func TestGeminiMalformedPayloadNotRetried(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, modelResponse("this is not json"))
	}))
	defer server.Close()

	g := testPlanner(server.URL)
	_, err := g.Generate(context.Background(), PlanRequest{PlanType: models.PlanDaily})
	if !errors.Is(err, ErrInvalidAIResponse) {
		t.Fatalf("err = %v, want ErrInvalidAIResponse", err)
	}
	if requests.Load() != 1 {
		t.Fatalf("validation failure retried: %d requests", requests.Load())
	}
}

func TestGeminiMissingSlotFailsValidation(t *testing.T) {
	t.Parallel()

	day := map[string]models.MealSlot{}
	for _, slot := range models.SlotOrder[:4] {
		day[slot] = models.MealSlot{Description: "x", Ingredients: []string{"y"}, Kcal: 100}
	}
	b, _ := json.Marshal(day)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, modelResponse(string(b)))
	}))
	defer server.Close()

	g := testPlanner(server.URL)
	_, err := g.Generate(context.Background(), PlanRequest{PlanType: models.PlanDaily})
	if !errors.Is(err, ErrInvalidAIResponse) {
		t.Fatalf("err = %v, want ErrInvalidAIResponse", err)
	}
}

func TestGeminiErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		retried bool
	}{
		{"bad api key", http.StatusForbidden, `{"error":{"status":"PERMISSION_DENIED","message":"API key not valid"}}`, ErrAPIKey, false},
		{"quota exhausted", http.StatusTooManyRequests, `{"error":{"status":"RESOURCE_EXHAUSTED","message":"quota exceeded"}}`, ErrQuotaExhausted, false},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"status":"UNAVAILABLE","message":"slow down"}}`, ErrRateLimited, true},
		{"overloaded", http.StatusServiceUnavailable, `{"error":{"status":"UNAVAILABLE","message":"try later"}}`, ErrServiceOverloaded, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var requests atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			g := testPlanner(server.URL)
			_, err := g.Generate(context.Background(), PlanRequest{PlanType: models.PlanDaily})
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}

			wantRequests := int32(1)
			if tt.retried {
				wantRequests = int32(g.maxAttempts)
			}
			if requests.Load() != wantRequests {
				t.Fatalf("made %d requests, want %d", requests.Load(), wantRequests)
			}
		})
	}
}

func TestGeminiTransientFailureThenSuccess(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, modelResponse(validDayJSON()))
	}))
	defer server.Close()

	g := testPlanner(server.URL)
	if _, err := g.Generate(context.Background(), PlanRequest{PlanType: models.PlanDaily}); err != nil {
		t.Fatalf("Generate() error after recovery: %v", err)
	}
	if requests.Load() != 2 {
		t.Fatalf("made %d requests, want 2", requests.Load())
	}
}

func TestGeminiContentBlocked(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"promptFeedback":{"blockReason":"SAFETY"}}`)
	}))
	defer server.Close()

	g := testPlanner(server.URL)
	_, err := g.Generate(context.Background(), PlanRequest{PlanType: models.PlanDaily})
	if !errors.Is(err, ErrContentBlocked) {
		t.Fatalf("err = %v, want ErrContentBlocked", err)
	}
}

func TestGeminiMissingAPIKey(t *testing.T) {
	t.Parallel()

	g := testPlanner("http://unreachable.invalid")
	g.apiKey = ""
	_, err := g.Generate(context.Background(), PlanRequest{PlanType: models.PlanDaily})
	if !errors.Is(err, ErrAPIKey) {
		t.Fatalf("err = %v, want ErrAPIKey", err)
	}
}
