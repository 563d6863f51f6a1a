package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiExtractor calls Gemini with the fixed extraction prompt, one request
// per reappropriation chunk.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates the model client. The API key is an explicit
// configuration value, not read from the process environment here.
func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

// ExtractDetails sends one chunk to the model and parses the strict-JSON
// response. Any failure (transport, empty response, malformed JSON) comes
// back as an error; the caller decides whether to substitute defaults.
func (e *GeminiExtractor) ExtractDetails(ctx context.Context, text string) (Details, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: systemInstruction + "\n\n" + buildDetailsPrompt(text)},
			},
		},
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return Details{}, fmt.Errorf("generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return Details{}, fmt.Errorf("empty response from model")
	}

	return parseDetailsJSON(rawText)
}

// parseDetailsJSON strips any Markdown wrapping the model added despite
// instructions and decodes the four detail fields, defaulting each missing
// one to "N/A".
func parseDetailsJSON(raw string) (Details, error) {
	clean := cleanModelJSON(raw)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return Details{}, fmt.Errorf("unmarshal model JSON: %w (raw: %s)", err, raw)
	}

	return Details{
		ReappropriationAmount: detailField(parsed, "Reappropriation Amount"),
		AppropriationAmount:   detailField(parsed, "Appropriation Amount"),
		Year:                  detailField(parsed, "Year of Appropriation"),
		AppropriationID:       detailField(parsed, "Appropriation ID"),
	}, nil
}

// detailField reads one field as a string, tolerating numeric values and
// falling back to "N/A".
func detailField(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return "N/A"
	}
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return "N/A"
		}
		return s
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return "N/A"
	}
}

// cleanModelJSON removes ``` fences and any junk around the JSON object if
// the model ignored the no-Markdown instruction.
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

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
