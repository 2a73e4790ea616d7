// Package main provides the entry point for the GearShift CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gearshift",
	Short: "Schedule screenshot parser and calendar sync",
	Long:  "GearShift turns noisy screenshots of work schedules into structured shift records, reconciles overlapping captures, and exports the result to iCalendar files or Google Calendar.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
