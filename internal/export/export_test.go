package export

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/notify"
	"ENW_BACK-END/internal/services"
	"ENW_BACK-END/internal/store/memory"
	"ENW_BACK-END/internal/store/storetest"
)

type captureAppender struct {
	spreadsheet, rng string
	rows             [][]any
}

func (c *captureAppender) Append(_ context.Context, id, rng string, rows [][]any) (int64, error) {
	c.spreadsheet, c.rng = id, rng
	c.rows = append(c.rows, rows...)
	return int64(len(rows)), nil
}

func TestExporter_Volunteers(t *testing.T) {
	ctx := context.Background()
	svc := services.NewVolunteerService(memory.New(), notify.Noop{}, zerolog.Nop())
	for i := 0; i < services.MaxPageSize+5; i++ {
		_, err := svc.Create(ctx, storetest.Volunteer())
		require.NoError(t, err)
	}

	out := &captureAppender{}
	n, err := NewExporter(svc, out, zerolog.Nop()).Volunteers(ctx, VolunteerOptions{SpreadsheetID: "sheet-id", Header: true})
	require.NoError(t, err)

	assert.Equal(t, int64(services.MaxPageSize+6), n)
	assert.Equal(t, "sheet-id", out.spreadsheet)
	assert.Equal(t, "Volunteers!A1", out.rng)
	assert.Equal(t, VolunteerHeader, out.rows[0])
}

func TestExporter_NothingToExport(t *testing.T) {
	svc := services.NewVolunteerService(memory.New(), notify.Noop{}, zerolog.Nop())
	out := &captureAppender{}
	n, err := NewExporter(svc, out, zerolog.Nop()).Volunteers(context.Background(), VolunteerOptions{SpreadsheetID: "x"})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, out.rng)
}

func TestVolunteerRow(t *testing.T) {
	v := storetest.Volunteer()
	v.ID = "v1"
	v.Status = models.VolunteerStatus("ACTIVE")
	row := VolunteerRow(v)
	require.Len(t, row, len(VolunteerHeader))
	assert.Equal(t, "SHOPPING, TECHNOLOGY", row[7])
	assert.Equal(t, "ACTIVE", row[9])
}
