// Package ocr provides optical character recognition for schedule
// screenshots via the Gemini vision API. It is the engine's only external
// collaborator: per image it produces the raw transcript text plus a 0-100
// confidence score, and everything downstream is pure in-memory logic.
package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used for transcription.
const DefaultModel = "gemini-2.5-flash"

// Result is what one recognition call yields for one image.
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0-100
}

// Client is an abstraction over OCR providers.
type Client interface {
	// Recognize transcribes one screenshot into raw text plus a confidence
	// score. mimeType is the image's MIME type, e.g. "image/png".
	Recognize(ctx context.Context, image []byte, mimeType string) (*Result, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client using Google Gemini's vision capability.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed OCR client. An empty model uses
// DefaultModel.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// recognizePrompt asks for a verbatim transcription. The parser depends on
// line segmentation, so the model is told to keep one screen row per line
// and never to interpret or reorder what it sees.
const recognizePrompt = `You are an OCR engine. Transcribe ALL visible text from this screenshot of a work-schedule app, top to bottom, exactly as it appears. Keep one line of output per visual row. Do not interpret, summarize, translate, or reorder anything.

Return ONLY valid JSON matching this exact structure:
{
  "text": string,      // the full transcription, lines separated by \n
  "confidence": number // 0-100: how legible the text in the image was
}

Return ONLY the JSON object, no markdown, no explanation, no code blocks.`

// Recognize transcribes one screenshot. Transient API failures are retried
// with jittered exponential backoff.
func (c *GeminiClient) Recognize(ctx context.Context, image []byte, mimeType string) (*Result, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0) // transcription must be deterministic
	model.ResponseMIMEType = "application/json"

	var resp *genai.GenerateContentResponse
	err := retry.Do(
		func() error {
			var genErr error
			resp, genErr = model.GenerateContent(ctx,
				genai.ImageData(imageFormat(mimeType), image),
				genai.Text(recognizePrompt),
			)
			return genErr
		},
		retry.Context(ctx),
		retry.Attempts(4),
		retry.Delay(time.Second),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("recognition failed after retries: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	var result Result
	if err := json.Unmarshal([]byte(cleanJSONBlock(text)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse recognition response: %w", err)
	}

	// The score is model-reported; keep it inside the documented 0-100 range.
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 100 {
		result.Confidence = 100
	}

	return &result, nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// imageFormat converts a MIME type ("image/png") to the bare format name
// the genai SDK expects ("png").
func imageFormat(mimeType string) string {
	if format, ok := strings.CutPrefix(mimeType, "image/"); ok {
		return format
	}
	return mimeType
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
