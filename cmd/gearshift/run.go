package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/gearshift/internal/config"
	"github.com/jonathan/gearshift/internal/db"
	"github.com/jonathan/gearshift/internal/observability"
	"github.com/jonathan/gearshift/internal/ocr"
	"github.com/jonathan/gearshift/internal/pipeline"
	"github.com/jonathan/gearshift/internal/schedule"
)

var runCmd = &cobra.Command{
	Use:   "run <image>...",
	Short: "Run the full pipeline over schedule screenshots",
	Long:  "Transcribe, parse, and reconcile one or more schedule screenshots into a deduplicated set of shifts. Optionally persists the session to PostgreSQL and writes the result as JSON.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRun,
}

var (
	runConfigPath    string
	runAPIKey        string
	runModel         string
	runConcurrency   int
	runTitleSegments int
	runTitleJoin     string
	runSave          bool
	runOut           string
	runVerbose       bool
)

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "Path to JSON config file")
	runCmd.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")
	runCmd.Flags().StringVar(&runModel, "model", "", "Gemini model to use for OCR")
	runCmd.Flags().IntVar(&runConcurrency, "concurrency", 0, "Max screenshots recognized in parallel")
	runCmd.Flags().IntVar(&runTitleSegments, "title-segments", 0, "Trailing department-path segments kept as the shift title")
	runCmd.Flags().StringVar(&runTitleJoin, "title-join", "", "Separator between kept title segments")
	runCmd.Flags().BoolVar(&runSave, "save", false, "Persist the session to PostgreSQL (requires DATABASE_URL)")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "Write the session as JSON to this file")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print progress while processing")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveRunConfig()
	if err != nil {
		return err
	}

	inputs, err := loadImageInputs(args)
	if err != nil {
		return err
	}

	client, err := ocr.NewGeminiClient(cmd.Context(), cfg.APIKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to create OCR client: %w", err)
	}
	defer client.Close()

	var database *db.DB
	if runSave {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--save requires a database URL (set DATABASE_URL or database_url in the config file)")
		}
		database, err = db.Connect(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
	}

	opts := pipeline.RunOptions{
		Images:     inputs,
		Recognizer: client,
		Parser: schedule.NewParser(&schedule.Options{
			TitlePathSegments: cfg.TitlePathSegments,
			TitleJoin:         cfg.TitleJoin,
		}),
		Database:    database,
		Concurrency: cfg.Concurrency,
	}
	if runVerbose || cfg.Verbose {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", e.Step, e.Message)
		}
	}

	result, err := pipeline.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintSession(&result.Session)

	if runOut != "" {
		if err := writeJSON(runOut, result.Session); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Session written to %s\n", runOut)
	}
	return nil
}

// resolveRunConfig layers the config file under CLI flags and environment
// variables. Flags win over the file; the environment fills remaining gaps.
func resolveRunConfig() (config.Config, error) {
	flags := config.Config{
		APIKey:            runAPIKey,
		Model:             runModel,
		Concurrency:       runConcurrency,
		TitlePathSegments: runTitleSegments,
		TitleJoin:         runTitleJoin,
	}

	if runConfigPath != "" {
		fileCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		if err := fileCfg.Validate(); err != nil {
			return config.Config{}, err
		}
		flags = flags.MergeWithDefaults(*fileCfg)
	}

	if flags.APIKey == "" {
		flags.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if flags.APIKey == "" {
		return config.Config{}, fmt.Errorf("API key is required (use --api-key, set GEMINI_API_KEY, or use a config file)")
	}
	if flags.Model == "" {
		flags.Model = ocr.DefaultModel
	}
	if flags.DatabaseURL == "" {
		flags.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	defaults := schedule.DefaultOptions()
	if flags.TitlePathSegments == 0 {
		flags.TitlePathSegments = defaults.TitlePathSegments
	}
	if flags.TitleJoin == "" {
		flags.TitleJoin = defaults.TitleJoin
	}

	return flags, nil
}
