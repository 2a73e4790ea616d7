package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/gearshift/internal/ics"
	"github.com/jonathan/gearshift/internal/schemas"
)

var exportICSCmd = &cobra.Command{
	Use:   "export-ics <shifts-file>",
	Short: "Export shifts to an iCalendar file",
	Long:  "Read a shifts JSON document (as written by 'gearshift run --out') and write an importable .ics calendar file with one event per shift.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportICS,
}

var (
	exportOut      string
	exportValidate bool
)

func init() {
	exportICSCmd.Flags().StringVarP(&exportOut, "out", "o", ics.DefaultFilename, "Output .ics file path")
	exportICSCmd.Flags().BoolVar(&exportValidate, "validate", true, "Validate the shifts file against the JSON schema before exporting")

	rootCmd.AddCommand(exportICSCmd)
}

func runExportICS(_ *cobra.Command, args []string) error {
	if exportValidate {
		schemaPath := schemas.ResolveSchemaPath("schemas/shifts.schema.json")
		if err := schemas.ValidateJSON(schemaPath, args[0]); err != nil {
			return err
		}
	}

	doc, err := readShiftsFile(args[0])
	if err != nil {
		return err
	}

	content, err := ics.Generate(doc.Shifts)
	if err != nil {
		return fmt.Errorf("failed to generate calendar: %w", err)
	}

	if err := os.WriteFile(exportOut, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}

	fmt.Fprintf(os.Stdout, "Exported %d shifts to %s\n", len(doc.Shifts), exportOut)
	return nil
}
