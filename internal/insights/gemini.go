// Package insights answers free-form questions about recent training and
// nutrition records using Gemini.
package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fittrack/internal/models"

	"google.golang.org/genai"
)

// ErrNoAPIKey is returned when no Gemini API key has been configured.
var ErrNoAPIKey = errors.New("GEMINI_API_KEY not set")

// Snapshot is the slice of records a question is answered against.
type Snapshot struct {
	Workouts  []models.Workout
	Diets     []models.Diet
	Wearables []models.Wearable
}

// Analyzer answers a question about a Snapshot.
type Analyzer interface {
	Analyze(ctx context.Context, snap Snapshot, question string) (string, error)
}

// GeminiAnalyzer implements Analyzer on top of the Gemini API.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

// NewGeminiAnalyzer creates a Gemini client for the given key and model.
func NewGeminiAnalyzer(ctx context.Context, apiKey, model string) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiAnalyzer{client: client, model: model}, nil
}

func (g *GeminiAnalyzer) Analyze(ctx context.Context, snap Snapshot, question string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(question), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: BuildPrompt(snap)},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	var answer strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		answer.WriteString(part.Text)
	}
	if answer.Len() == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return answer.String(), nil
}

// BuildPrompt renders the system instruction describing the user's records.
func BuildPrompt(snap Snapshot) string {
	var b strings.Builder
	b.WriteString("You are a helpful fitness assistant analyzing a person's training log. ")
	b.WriteString("Answer using only the records below. Newest records come first.\n\n")

	b.WriteString("--- Workouts ---\n")
	if len(snap.Workouts) == 0 {
		b.WriteString("(none)\n")
	}
	for _, w := range snap.Workouts {
		fmt.Fprintf(&b, "#%d %s, %d min, %d kcal\n", w.ID, w.Type, w.Duration, w.Calories)
	}

	b.WriteString("\n--- Meals ---\n")
	if len(snap.Diets) == 0 {
		b.WriteString("(none)\n")
	}
	for _, d := range snap.Diets {
		fmt.Fprintf(&b, "#%d %s, %d kcal, %d g protein\n", d.ID, d.Meal, d.Calories, d.Protein)
	}

	b.WriteString("\n--- Wearable readings ---\n")
	if len(snap.Wearables) == 0 {
		b.WriteString("(none)\n")
	}
	for _, r := range snap.Wearables {
		fmt.Fprintf(&b, "[%s] heart rate %d bpm, %d steps\n", r.RecordedAt, r.HeartRate, r.Steps)
	}

	return b.String()
}
