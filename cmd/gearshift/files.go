package main

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/gearshift/internal/pipeline"
	"github.com/jonathan/gearshift/internal/types"
)

// loadImageInputs reads screenshot files from disk and determines their MIME
// types, preferring the file extension and falling back to content sniffing.
func loadImageInputs(paths []string) ([]pipeline.ImageInput, error) {
	var inputs []pipeline.ImageInput
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image %s: %w", path, err)
		}

		mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
		if !strings.HasPrefix(mimeType, "image/") {
			mimeType = http.DetectContentType(data)
		}
		if !strings.HasPrefix(mimeType, "image/") {
			return nil, fmt.Errorf("%s does not look like an image", path)
		}

		inputs = append(inputs, pipeline.ImageInput{
			Name: filepath.Base(path),
			Data: data,
			MIME: mimeType,
		})
	}
	return inputs, nil
}

// shiftsDocument is the on-disk shape produced by "gearshift run --out" and
// consumed by export-ics and sync.
type shiftsDocument struct {
	Shifts   []types.Shift `json:"shifts"`
	Warnings []string      `json:"warnings,omitempty"`
}

// readShiftsFile loads a shifts JSON document from disk.
func readShiftsFile(path string) (*shiftsDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shifts file %s: %w", path, err)
	}

	var doc shiftsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse shifts JSON: %w", err)
	}
	if len(doc.Shifts) == 0 {
		return nil, fmt.Errorf("shifts file %s contains no shifts", path)
	}
	return &doc, nil
}

// writeJSON marshals v with indentation and writes it to path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
