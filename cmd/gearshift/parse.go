package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/gearshift/internal/schedule"
)

var parseCmd = &cobra.Command{
	Use:   "parse [transcript-file]",
	Short: "Parse a schedule transcript into shift candidates",
	Long:  "Parse already-transcribed schedule text into structured shift candidates. Reads from the given file, or from stdin when no file is provided.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

var (
	parseTitleSegments int
	parseTitleJoin     string
)

func init() {
	defaults := schedule.DefaultOptions()
	parseCmd.Flags().IntVar(&parseTitleSegments, "title-segments", defaults.TitlePathSegments, "Trailing department-path segments kept as the shift title")
	parseCmd.Flags().StringVar(&parseTitleJoin, "title-join", defaults.TitleJoin, "Separator between kept title segments")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	var text []byte
	var err error

	if len(args) == 1 {
		text, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read transcript: %w", err)
		}
	} else {
		text, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	parser := schedule.NewParser(&schedule.Options{
		TitlePathSegments: parseTitleSegments,
		TitleJoin:         parseTitleJoin,
	})
	candidates := parser.Parse(string(text))

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(candidates)
}
