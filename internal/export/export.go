// Package export copies records into Google Sheets for coordinators.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/services"
)

// Appender appends rows below the last row of a sheet range.
type Appender interface {
	Append(ctx context.Context, spreadsheetID, sheetRange string, rows [][]any) (int64, error)
}

// SheetsClient wraps the Google Sheets API client
type SheetsClient struct {
	service *sheets.Service
}

// NewSheetsClient authenticates with a service account key file.
func NewSheetsClient(ctx context.Context, credentialsJSON []byte) (*SheetsClient, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}
	service, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsClient{service: service}, nil
}

// Append writes rows as raw values and reports how many rows were added.
func (c *SheetsClient) Append(ctx context.Context, spreadsheetID, sheetRange string, rows [][]any) (int64, error) {
	resp, err := c.service.Spreadsheets.Values.Append(spreadsheetID, sheetRange, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("failed to append values: %w", err)
	}
	if resp.Updates == nil {
		return 0, nil
	}
	return resp.Updates.UpdatedRows, nil
}

// VolunteerHeader is the first row written by a fresh export.
var VolunteerHeader = []any{
	"ID", "First name", "Last name", "Email", "Phone", "Age", "Address",
	"Skills", "Availability", "Status", "Background check", "Applied at",
}

// VolunteerRow flattens v into one sheet row matching VolunteerHeader.
func VolunteerRow(v *models.Volunteer) []any {
	skills := make([]string, 0, len(v.Skills))
	for _, s := range v.Skills {
		skills = append(skills, string(s))
	}
	return []any{
		v.ID,
		v.FirstName,
		v.LastName,
		v.Email,
		v.Phone,
		v.Age,
		v.Address,
		strings.Join(skills, ", "),
		strings.Join(v.Availability, ", "),
		string(v.Status),
		v.BackgroundCheck,
		v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Exporter pages through volunteers and appends them to a sheet.
type Exporter struct {
	volunteers *services.VolunteerService
	out        Appender
	log        zerolog.Logger
}

// NewExporter creates a new Exporter instance
func NewExporter(v *services.VolunteerService, out Appender, log zerolog.Logger) *Exporter {
	return &Exporter{volunteers: v, out: out, log: log}
}

// VolunteerOptions selects what Volunteers exports.
type VolunteerOptions struct {
	SpreadsheetID string
	Sheet         string
	Status        models.VolunteerStatus
	Header        bool
}

// Volunteers appends every matching volunteer, newest first, and returns the
// number of rows written including the header.
func (e *Exporter) Volunteers(ctx context.Context, opts VolunteerOptions) (int64, error) {
	sheet := opts.Sheet
	if sheet == "" {
		sheet = "Volunteers"
	}
	rng := sheet + "!A1"

	var rows [][]any
	if opts.Header {
		rows = append(rows, VolunteerHeader)
	}
	for offset := 0; ; {
		page, err := e.volunteers.List(ctx, models.VolunteerFilter{
			Status: opts.Status,
			Limit:  services.MaxPageSize,
			Offset: offset,
		})
		if err != nil {
			return 0, err
		}
		for _, v := range page.Data {
			rows = append(rows, VolunteerRow(v))
		}
		offset += len(page.Data)
		if len(page.Data) == 0 || int64(offset) >= page.Total {
			break
		}
	}

	if len(rows) == 0 {
		e.log.Info().Msg("no volunteers to export")
		return 0, nil
	}
	n, err := e.out.Append(ctx, opts.SpreadsheetID, rng, rows)
	if err != nil {
		return 0, err
	}
	e.log.Info().Int64("rows", n).Str("range", rng).Msg("volunteers exported")
	return n, nil
}
