package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gearshift/internal/types"
)

// pngHeader is the PNG file signature, enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestLoadImageInputs(t *testing.T) {
	tmpDir := t.TempDir()

	pngPath := filepath.Join(tmpDir, "week1.png")
	require.NoError(t, os.WriteFile(pngPath, pngHeader, 0o644))

	inputs, err := loadImageInputs([]string{pngPath})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "week1.png", inputs[0].Name)
	assert.Equal(t, "image/png", inputs[0].MIME)
	assert.Equal(t, pngHeader, inputs[0].Data)
}

func TestLoadImageInputsSniffsUnknownExtension(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "capture.screenshot")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	inputs, err := loadImageInputs([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "image/png", inputs[0].MIME)
}

func TestLoadImageInputsRejectsNonImage(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "notes.bin")
	require.NoError(t, os.WriteFile(path, []byte("just some text"), 0o644))

	_, err := loadImageInputs([]string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not look like an image")
}

func TestLoadImageInputsMissingFile(t *testing.T) {
	_, err := loadImageInputs([]string{filepath.Join(t.TempDir(), "missing.png")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read image")
}

func TestReadShiftsFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "shifts.json")

	doc := shiftsDocument{
		Shifts: []types.Shift{
			{Date: "2024-03-04", StartTime: "09:00", EndTime: "17:00", Title: "Front End"},
		},
		Warnings: []string{"Screenshot 1 was readable but contained no shifts"},
	}
	require.NoError(t, writeJSON(path, doc))

	loaded, err := readShiftsFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Shifts, 1)
	assert.Equal(t, "2024-03-04", loaded.Shifts[0].Date)
	assert.Equal(t, doc.Warnings, loaded.Warnings)
}

func TestReadShiftsFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name        string
		content     string
		errorString string
	}{
		{
			name:        "invalid JSON",
			content:     "{not json",
			errorString: "failed to parse",
		},
		{
			name:        "no shifts",
			content:     `{"shifts": []}`,
			errorString: "contains no shifts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := readShiftsFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestResolveRunConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	runAPIKey = ""
	runModel = ""
	runConfigPath = ""

	_, err := resolveRunConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestResolveRunConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DATABASE_URL", "")
	runAPIKey = ""
	runModel = ""
	runConfigPath = ""
	runConcurrency = 0
	runTitleSegments = 0
	runTitleJoin = ""

	cfg, err := resolveRunConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 2, cfg.TitlePathSegments)
	assert.Equal(t, " - ", cfg.TitleJoin)
}
