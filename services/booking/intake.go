package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	bookingRepo "studiobook/database/repository/booking"
	calendarRepo "studiobook/database/repository/calendar"
	"studiobook/models"
	"studiobook/services/availability"
	"studiobook/services/crm"
	"studiobook/services/notify"
	"studiobook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	approvalTokenLength = 48
	approvalTokenTTL    = 7 * 24 * time.Hour
)

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// DefaultIntakeService validates, availability-checks, and persists new
// session requests, then fires the best-effort side effects.
type DefaultIntakeService struct {
	Bookings bookingRepo.BookingRepository
	Calendar calendarRepo.CalendarRepository
	CRM      crm.SyncService
	Notifier notify.Dispatcher
	OrgID    string
}

// Submit runs the full intake pipeline. Validation and availability failures
// come back as *ValidationError and *UnavailableError; anything else is a
// store failure and nothing was persisted.
func (s *DefaultIntakeService) Submit(ctx context.Context, input models.BookingRequestInput) (*models.BookingReceipt, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	bookings, err := s.Bookings.ListActiveByDate(ctx, s.OrgID, input.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for %s: %w", input.BookingDate, err)
	}
	day, err := s.Calendar.GetByDate(ctx, s.OrgID, input.BookingDate)
	if err != nil && !errors.Is(err, calendarRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to load calendar day %s: %w", input.BookingDate, err)
	}

	// The request's own times were validated above, so an error here means a
	// stored booking carries malformed data. That is our problem, not the
	// requester's.
	verdict, err := availability.Check(input.StartTime, input.EndTime, bookings, day)
	if err != nil {
		return nil, fmt.Errorf("availability check for %s failed: %w", input.BookingDate, err)
	}
	if !verdict.Available {
		return nil, &UnavailableError{Reason: verdict.Reason}
	}

	token, err := utils.NewApprovalToken(approvalTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate approval token: %w", err)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(approvalTokenTTL)
	booking := &models.Booking{
		ID:                uuid.New().String(),
		OrgID:             s.OrgID,
		ClientName:        strings.TrimSpace(input.ClientName),
		ClientEmail:       strings.TrimSpace(input.ClientEmail),
		ClientPhone:       strings.TrimSpace(input.ClientPhone),
		BookingType:       input.BookingType,
		NumPeople:         input.NumPeople,
		BookingDate:       input.BookingDate,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		LocationType:      input.LocationType,
		Location:          strings.TrimSpace(input.LocationManual),
		SpecialRequests:   strings.TrimSpace(input.SpecialRequests),
		ApprovalStatus:    models.StatusPending,
		ApprovalToken:     token,
		ApprovalExpiresAt: &expiresAt,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.Bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	logger := utils.GetLogger()

	// Everything past this point is best-effort: the booking exists and the
	// client gets a receipt regardless.
	note := fmt.Sprintf("Pending booking from %s", booking.ClientName)
	if err := s.Calendar.UpsertNote(ctx, s.OrgID, booking.BookingDate, note); err != nil {
		logger.Warn("intake: failed to write calendar note",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}

	receipt := &models.BookingReceipt{
		BookingID: booking.ID,
		DealID:    fmt.Sprintf("portfolio-%s", booking.ID),
	}

	contactID, dealID, err := s.CRM.SyncIntake(ctx, booking)
	if err != nil {
		logger.Warn("intake: CRM sync failed",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
	if dealID != "" {
		receipt.DealID = dealID
	}
	receipt.ContactID = contactID
	if contactID != "" || dealID != "" {
		booking.CadenceContactID = contactID
		booking.CadenceDealID = dealID
		booking.DealID = receipt.DealID
		if err := s.Bookings.SetCadenceRefs(ctx, booking.ID, contactID, dealID, receipt.DealID); err != nil {
			logger.Warn("intake: failed to backfill pipeline refs",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	s.Notifier.BookingRequested(booking)

	logger.Info("intake: booking created",
		zap.String("bookingID", booking.ID),
		zap.String("date", booking.BookingDate),
		zap.String("slot", booking.StartTime+"-"+booking.EndTime))
	return receipt, nil
}

func validateInput(in models.BookingRequestInput) error {
	switch {
	case strings.TrimSpace(in.ClientName) == "":
		return NewValidationError("client_name is required")
	case strings.TrimSpace(in.ClientEmail) == "":
		return NewValidationError("client_email is required")
	case in.BookingDate == "":
		return NewValidationError("booking_date is required")
	case in.StartTime == "":
		return NewValidationError("start_time is required")
	case in.EndTime == "":
		return NewValidationError("end_time is required")
	}

	if !dateRe.MatchString(in.BookingDate) {
		return NewValidationError("booking_date must be formatted YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", in.BookingDate); err != nil {
		return NewValidationError("booking_date is not a valid date")
	}
	if !clockRe.MatchString(in.StartTime) || !clockRe.MatchString(in.EndTime) {
		return NewValidationError("start_time and end_time must be formatted HH:MM")
	}
	if _, err := time.Parse("15:04", in.StartTime); err != nil {
		return NewValidationError("start_time is not a valid time")
	}
	if _, err := time.Parse("15:04", in.EndTime); err != nil {
		return NewValidationError("end_time is not a valid time")
	}
	if in.BookingType != models.TypePersonal && in.BookingType != models.TypeEvent {
		return NewValidationError("booking_type must be \"personal\" or \"event\"")
	}
	if in.BookingType == models.TypeEvent && in.NumPeople < 1 {
		return NewValidationError("num_people is required for event bookings")
	}
	if in.LocationType != "" && in.LocationType != "flexible" && in.LocationType != "provided" {
		return NewValidationError("location_type must be \"flexible\" or \"provided\"")
	}
	return nil
}
