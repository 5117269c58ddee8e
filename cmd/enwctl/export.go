package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ENW_BACK-END/internal/export"
	"ENW_BACK-END/internal/models"
)

func newExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export records to Google Sheets",
	}

	var (
		spreadsheet string
		credentials string
		sheet       string
		status      string
		header      bool
	)
	volunteersCmd := &cobra.Command{
		Use:   "volunteers",
		Short: "Append volunteers to a Google Sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := os.ReadFile(credentials)
			if err != nil {
				return fmt.Errorf("read credentials: %w", err)
			}
			client, err := export.NewSheetsClient(cmd.Context(), key)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close(cmd.Context())

			n, err := export.NewExporter(e.svc.Volunteers, client, e.log).Volunteers(cmd.Context(), export.VolunteerOptions{
				SpreadsheetID: spreadsheet,
				Sheet:         sheet,
				Status:        models.VolunteerStatus(status),
				Header:        header,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows appended\n", n)
			return nil
		},
	}
	volunteersCmd.Flags().StringVar(&spreadsheet, "spreadsheet", "", "Spreadsheet ID (required)")
	volunteersCmd.Flags().StringVar(&credentials, "credentials", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"), "Service account key file")
	volunteersCmd.Flags().StringVar(&sheet, "sheet", "Volunteers", "Sheet (tab) name")
	volunteersCmd.Flags().StringVar(&status, "status", "", "Only export volunteers with this status")
	volunteersCmd.Flags().BoolVar(&header, "header", false, "Write a header row first")
	_ = volunteersCmd.MarkFlagRequired("spreadsheet")

	exportCmd.AddCommand(volunteersCmd)
	return exportCmd
}
