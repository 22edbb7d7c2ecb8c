package bookingRepo

import (
	"context"
	"errors"

	"studiobook/models"
)

// ErrNotFound is returned when no booking matches the lookup.
var ErrNotFound = errors.New("booking not found")

// BookingRepository is the durable store of booking requests and their
// approval lifecycle.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByApprovalToken(ctx context.Context, token string) (*models.Booking, error)

	// ListActiveByDate returns the non-denied bookings for one date.
	ListActiveByDate(ctx context.Context, orgID, date string) ([]models.Booking, error)

	// ListActiveByDateRange returns pending and approved bookings with
	// booking_date in [startDate, endDate], inclusive.
	ListActiveByDateRange(ctx context.Context, orgID, startDate, endDate string) ([]models.Booking, error)

	// TransitionStatus performs the one authoritative state change: it sets
	// the booking's status to toStatus and clears the approval token,
	// conditioned on the status still being fromStatus at write time. It
	// returns false when the condition did not hold (someone else already
	// transitioned the row), with no error.
	TransitionStatus(ctx context.Context, id, fromStatus, toStatus string) (bool, error)

	// HasOtherActiveOnDate reports whether any pending or approved booking
	// other than excludeID exists for the date.
	HasOtherActiveOnDate(ctx context.Context, orgID, date, excludeID string) (bool, error)

	// SetCadenceRefs backfills the external pipeline identifiers after the
	// best-effort CRM sync.
	SetCadenceRefs(ctx context.Context, id, contactID, cadenceDealID, dealID string) error
}
