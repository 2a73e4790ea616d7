package ocr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"png", "image/png", "png"},
		{"jpeg", "image/jpeg", "jpeg"},
		{"webp", "image/webp", "webp"},
		{"already bare", "png", "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, imageFormat(tt.input))
		})
	}
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain JSON", `{"text": "Fri"}`, `{"text": "Fri"}`},
		{"json fence", "```json\n{\"text\": \"Fri\"}\n```", `{"text": "Fri"}`},
		{"bare fence", "```\n{\"text\": \"Fri\"}\n```", `{"text": "Fri"}`},
		{"surrounding whitespace", "  {\"text\": \"Fri\"}  ", `{"text": "Fri"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSONBlock(tt.input))
		})
	}
}

func TestResultRoundTripsRecognitionPayload(t *testing.T) {
	payload := cleanJSONBlock("```json\n{\"text\": \"February 2026\\nFri\", \"confidence\": 87.5}\n```")

	var result Result
	require.NoError(t, json.Unmarshal([]byte(payload), &result))
	assert.Equal(t, "February 2026\nFri", result.Text)
	assert.InDelta(t, 87.5, result.Confidence, 0.001)
}
