package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

// Generation errors, by origin. Handlers translate each into its own
// user-facing message; only the transient ones are ever retried.
var (
	ErrInvalidAIResponse = errors.New("invalid AI response")
	ErrAPIKey            = errors.New("AI API key missing or invalid")
	ErrQuotaExhausted    = errors.New("AI quota exhausted")
	ErrRateLimited       = errors.New("AI rate limited")
	ErrServiceOverloaded = errors.New("AI service overloaded")
	ErrContentBlocked    = errors.New("AI content blocked by safety filter")
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiPlanner generates plans through the Gemini generateContent API with
// schema-constrained JSON output.
type GeminiPlanner struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client

	// maxAttempts bounds retries on transient failures (network, 429, 503).
	// Schema/validation failures are never retried.
	maxAttempts int
}

func NewGeminiPlanner(apiKey, model string) *GeminiPlanner {
	return &GeminiPlanner{
		apiKey:      apiKey,
		model:       model,
		baseURL:     geminiBaseURL,
		client:      &http.Client{Timeout: 60 * time.Second},
		maxAttempts: 3,
	}
}

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type geminiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// daySchema constrains the model output to exactly the five slot objects.
var daySchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"colazione": {"$ref": "#/definitions/meal"},
		"spuntino_mattutino": {"$ref": "#/definitions/meal"},
		"pranzo": {"$ref": "#/definitions/meal"},
		"spuntino_pomeridiano": {"$ref": "#/definitions/meal"},
		"cena": {"$ref": "#/definitions/meal"}
	},
	"required": ["colazione", "spuntino_mattutino", "pranzo", "spuntino_pomeridiano", "cena"],
	"definitions": {
		"meal": {
			"type": "object",
			"properties": {
				"description": {"type": "string"},
				"ingredients": {"type": "array", "items": {"type": "string"}},
				"kcal": {"type": "integer"}
			},
			"required": ["description", "ingredients", "kcal"]
		}
	}
}`)

// Generate builds a plan by asking the model for one schema-constrained day
// at a time. Weekly plans are seven independent generations.
func (g *GeminiPlanner) Generate(ctx context.Context, req PlanRequest) (*models.MealPlan, error) {
	if g.apiKey == "" {
		return nil, ErrAPIKey
	}

	plan := &models.MealPlan{
		TargetCalories: req.TargetCalories,
		PlanType:       req.PlanType,
		Days:           make(map[string]models.DayPlan),
	}

	for _, day := range plan.DayKeys() {
		dayPlan, err := g.generateDay(ctx, req, day)
		if err != nil {
			return nil, err
		}
		plan.Days[day] = dayPlan
	}

	return plan, nil
}

func (g *GeminiPlanner) generateDay(ctx context.Context, req PlanRequest, day string) (models.DayPlan, error) {
	text, err := g.prompt(ctx, g.buildDayPrompt(req, day))
	if err != nil {
		return nil, err
	}

	var raw map[string]models.MealSlot
	if err := json.Unmarshal([]byte(cleanModelJSON(text)), &raw); err != nil {
		log.Printf("gemini: unparseable day payload: %v", err)
		return nil, ErrInvalidAIResponse
	}

	// Validate against the declared schema before use: all five slots, each
	// with a description, at least one ingredient and a positive kcal value.
	dayPlan := make(models.DayPlan, len(models.SlotOrder))
	for _, slot := range models.SlotOrder {
		meal, ok := raw[slot]
		if !ok || strings.TrimSpace(meal.Description) == "" || len(meal.Ingredients) == 0 || meal.Kcal <= 0 {
			log.Printf("gemini: slot %q failed schema validation", slot)
			return nil, ErrInvalidAIResponse
		}
		dayPlan[slot] = meal
	}

	return dayPlan, nil
}

func (g *GeminiPlanner) buildDayPrompt(req PlanRequest, day string) string {
	var b strings.Builder
	b.WriteString("Sei un nutrizionista professionista. Crea il piano alimentare di un giorno")
	if req.PlanType == models.PlanWeekly {
		fmt.Fprintf(&b, " (%s)", day)
	}
	b.WriteString(" con cinque pasti: colazione, spuntino mattutino, pranzo, spuntino pomeridiano, cena.\n\n")

	fmt.Fprintf(&b, "Obiettivo calorico giornaliero: %d kcal.\n", req.TargetCalories)
	fmt.Fprintf(&b, "Obiettivo: %s.\n", req.Goal)
	if len(req.Allergies) > 0 {
		fmt.Fprintf(&b, "Allergie, da escludere tassativamente: %s.\n", strings.Join(req.Allergies, ", "))
	}
	if len(req.Intolerances) > 0 {
		fmt.Fprintf(&b, "Intolleranze, da escludere tassativamente: %s.\n", strings.Join(req.Intolerances, ", "))
	}

	b.WriteString("\nRispondi solo con JSON conforme allo schema richiesto. ")
	b.WriteString("Ogni pasto ha una descrizione breve, la lista degli ingredienti con le quantità in italiano e le kcal stimate.")
	return b.String()
}

// prompt POSTs one generateContent request, retrying transient failures with
// a short backoff.
func (g *GeminiPlanner) prompt(ctx context.Context, text string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(time.Duration(attempt-1) * 500 * time.Millisecond):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		out, err := g.doRequest(ctx, text)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isTransient(err) {
			return "", err
		}
		log.Printf("gemini: attempt %d/%d failed: %v", attempt, g.maxAttempts, err)
	}
	return "", lastErr
}

func isTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServiceOverloaded)
}

func (g *GeminiPlanner) doRequest(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: text}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   daySchema,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceOverloaded, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceOverloaded, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTPError(resp.StatusCode, respBody)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", ErrInvalidAIResponse
	}

	if parsed.PromptFeedback.BlockReason != "" {
		return "", ErrContentBlocked
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrInvalidAIResponse
	}
	if parsed.Candidates[0].FinishReason == "SAFETY" {
		return "", ErrContentBlocked
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func classifyHTTPError(status int, body []byte) error {
	var eb geminiErrorBody
	_ = json.Unmarshal(body, &eb)
	detail := strings.ToLower(eb.Error.Status + " " + eb.Error.Message)

	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		if strings.Contains(detail, "api key") || strings.Contains(detail, "permission") {
			return ErrAPIKey
		}
		return fmt.Errorf("%w: status %d", ErrInvalidAIResponse, status)
	case http.StatusTooManyRequests:
		if strings.Contains(detail, "quota") || strings.Contains(detail, "resource_exhausted") {
			return ErrQuotaExhausted
		}
		return ErrRateLimited
	case http.StatusServiceUnavailable, http.StatusInternalServerError:
		return ErrServiceOverloaded
	default:
		return fmt.Errorf("%w: status %d", ErrInvalidAIResponse, status)
	}
}

// cleanModelJSON strips markdown fences some models wrap around JSON output.
func cleanModelJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
