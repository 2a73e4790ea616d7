package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/gearshift/internal/gcal"
)

var syncCmd = &cobra.Command{
	Use:   "sync <shifts-file>",
	Short: "Sync shifts to Google Calendar",
	Long:  "Read a shifts JSON document and create one event per shift in the user's primary Google Calendar. Requires an OAuth access token with calendar events scope.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSync,
}

var (
	syncAccessToken string
	syncTimeZone    string
)

func init() {
	syncCmd.Flags().StringVar(&syncAccessToken, "access-token", "", "Google OAuth access token (defaults to GOOGLE_ACCESS_TOKEN)")
	syncCmd.Flags().StringVar(&syncTimeZone, "timezone", "", "IANA time zone for events (defaults to the local zone)")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	accessToken := syncAccessToken
	if accessToken == "" {
		accessToken = os.Getenv("GOOGLE_ACCESS_TOKEN")
	}
	if accessToken == "" {
		return fmt.Errorf("access token is required (use --access-token or set GOOGLE_ACCESS_TOKEN)")
	}

	doc, err := readShiftsFile(args[0])
	if err != nil {
		return err
	}

	result, err := gcal.Sync(cmd.Context(), accessToken, doc.Shifts, syncTimeZone)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Created %d of %d events\n", result.Created, len(doc.Shifts))
	for _, msg := range result.Errors {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
	}
	if result.Created == 0 {
		return fmt.Errorf("no events were created")
	}
	return nil
}
