// Package extract recovers statement metadata and candidate transactions
// from document text through structured calls against a generative
// inference service.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used when none is configured.
const DefaultModelName = "gemini-2.5-flash"

// Generator runs one structured inference call: a prompt/schema pair over
// a slice of document text, returning the populated record as a generic
// JSON object. Implementations are side-effect-free and may be slow or
// failing; callers own timeouts.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt, text string, schema *genai.Schema) (map[string]interface{}, error)
}

// GeminiGenerator is the production Generator backed by the GenAI SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator. Credentials come
// from the environment, same as the rest of the GenAI SDK.
func NewGeminiGenerator(ctx context.Context, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiGenerator: create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// GenerateJSON sends prompt and text to the model with an enforced JSON
// response schema and returns the decoded object.
func (g *GeminiGenerator) GenerateJSON(ctx context.Context, prompt, text string, schema *genai.Schema) (map[string]interface{}, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
				{Text: text},
			},
		},
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr[float32](0),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("GenerateJSON: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("GenerateJSON: empty response from model")
	}

	clean := cleanModelJSON(rawText)

	var parsed interface{}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("GenerateJSON: unmarshal JSON: %w\nraw response: %s", err, rawText)
	}

	switch v := parsed.(type) {
	case map[string]interface{}:
		return v, nil
	case []interface{}:
		// Schema enforcement makes the top level an object, but keep the
		// bare-array fallback for models that ignore instructions.
		return map[string]interface{}{"transactions": v}, nil
	default:
		return nil, fmt.Errorf("GenerateJSON: model output is %T, want JSON object", parsed)
	}
}

// cleanModelJSON strips Markdown fences and stray text around the JSON
// body if the model ignored the response-format instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Keep only the outermost JSON value when junk surrounds it.
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")
	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := strings.LastIndex(s, "}"); end > objStart {
			s = strings.TrimSpace(s[objStart : end+1])
		}
	} else if arrStart != -1 {
		if end := strings.LastIndex(s, "]"); end > arrStart {
			s = strings.TrimSpace(s[arrStart : end+1])
		}
	}

	return s
}
