package calendarRepo

import (
	"context"
	"errors"

	"studiobook/models"
)

// ErrNotFound is returned when no calendar day exists for the date.
var ErrNotFound = errors.New("calendar day not found")

// CalendarRepository is the durable store of per-date administrator
// overrides. Rows are keyed (org_id, date) and only ever upserted.
type CalendarRepository interface {
	GetByDate(ctx context.Context, orgID, date string) (*models.CalendarDay, error)
	ListRange(ctx context.Context, orgID, startDate, endDate string) ([]models.CalendarDay, error)

	// Upsert writes the full override record (admin path).
	Upsert(ctx context.Context, day *models.CalendarDay) (*models.CalendarDay, error)

	// UpsertNote writes only the advisory notes field, creating the row as
	// "available" when absent. Workflow paths never touch day_status.
	UpsertNote(ctx context.Context, orgID, date, notes string) error

	// ClearNote blanks the notes field on an existing row; it is a no-op
	// when the row does not exist.
	ClearNote(ctx context.Context, orgID, date string) error
}
