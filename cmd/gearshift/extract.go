package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/gearshift/internal/observability"
	"github.com/jonathan/gearshift/internal/ocr"
	"github.com/jonathan/gearshift/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <image>...",
	Short: "Transcribe schedule screenshots to text",
	Long:  "Run OCR over one or more schedule screenshots and print the raw transcript and confidence for each, without parsing.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtract,
}

var (
	extractAPIKey string
	extractModel  string
	extractJSON   bool
)

func init() {
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")
	extractCmd.Flags().StringVar(&extractModel, "model", ocr.DefaultModel, "Gemini model to use for OCR")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print transcripts as JSON instead of formatted text")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	apiKey := extractAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (use --api-key or set GEMINI_API_KEY)")
	}

	inputs, err := loadImageInputs(args)
	if err != nil {
		return err
	}

	client, err := ocr.NewGeminiClient(cmd.Context(), apiKey, extractModel)
	if err != nil {
		return fmt.Errorf("failed to create OCR client: %w", err)
	}
	defer client.Close()

	var reports []types.ImageReport
	for i, input := range inputs {
		result, err := client.Recognize(cmd.Context(), input.Data, input.MIME)
		if err != nil {
			return fmt.Errorf("failed to transcribe %s: %w", input.Name, err)
		}
		reports = append(reports, types.ImageReport{
			Index:      i,
			Transcript: result.Text,
			Confidence: result.Confidence,
		})
	}

	if extractJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(reports)
	}

	printer := observability.NewPrinter(os.Stdout)
	for _, report := range reports {
		printer.PrintTranscript(report)
	}
	return nil
}
