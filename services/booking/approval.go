package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "studiobook/database/repository/booking"
	calendarRepo "studiobook/database/repository/calendar"
	"studiobook/models"
	"studiobook/services/notify"
	"studiobook/utils"

	"go.uber.org/zap"
)

// DefaultApprovalService resolves approve/deny links. The only write it
// performs on the booking itself is the conditional pending → terminal
// transition; calendar notes and notifications follow best-effort.
type DefaultApprovalService struct {
	Bookings bookingRepo.BookingRepository
	Calendar calendarRepo.CalendarRepository
	Notifier notify.Dispatcher
	OrgID    string
}

// Resolve presents a token with an action and reports what happened. Any two
// concurrent calls with the same token agree on a single winner: exactly one
// observes OutcomeSucceeded.
func (s *DefaultApprovalService) Resolve(ctx context.Context, token string, action Action) (Resolution, error) {
	booking, err := s.Bookings.GetByApprovalToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return Resolution{Outcome: OutcomeNotFound}, nil
		}
		return Resolution{Outcome: OutcomeStoreFailure}, fmt.Errorf("token lookup failed: %w", err)
	}

	if booking.ApprovalStatus != models.StatusPending {
		return Resolution{Outcome: OutcomeAlreadyProcessed, Booking: booking}, nil
	}
	if booking.TokenExpired(time.Now().UTC()) {
		// The row stays pending; expiry only blocks the link.
		return Resolution{Outcome: OutcomeExpired, Booking: booking}, nil
	}

	toStatus := models.StatusApproved
	if action == ActionDeny {
		toStatus = models.StatusDenied
	}

	ok, err := s.Bookings.TransitionStatus(ctx, booking.ID, models.StatusPending, toStatus)
	if err != nil {
		return Resolution{Outcome: OutcomeStoreFailure}, fmt.Errorf("status transition failed: %w", err)
	}
	if !ok {
		// Lost the race: someone resolved this booking between our read and
		// the conditional write. Report what it became.
		current, err := s.Bookings.GetByID(ctx, booking.ID)
		if err != nil {
			current = booking
		}
		return Resolution{Outcome: OutcomeAlreadyProcessed, Booking: current}, nil
	}

	booking.ApprovalStatus = toStatus
	booking.ApprovalToken = ""
	s.applySideEffects(ctx, booking, action)

	utils.GetLogger().Info("approval: booking resolved",
		zap.String("bookingID", booking.ID),
		zap.String("action", string(action)),
		zap.String("date", booking.BookingDate))
	return Resolution{Outcome: OutcomeSucceeded, Booking: booking}, nil
}

func (s *DefaultApprovalService) applySideEffects(ctx context.Context, booking *models.Booking, action Action) {
	logger := utils.GetLogger()

	switch action {
	case ActionApprove:
		note := fmt.Sprintf("Confirmed booking: %s", booking.ClientName)
		if err := s.Calendar.UpsertNote(ctx, s.OrgID, booking.BookingDate, note); err != nil {
			logger.Warn("approval: failed to write calendar note",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
		s.Notifier.BookingApproved(booking)

	case ActionDeny:
		// Only clear the note when no other live booking still needs it.
		hasOther, err := s.Bookings.HasOtherActiveOnDate(ctx, s.OrgID, booking.BookingDate, booking.ID)
		if err != nil {
			logger.Warn("approval: failed to check remaining bookings",
				zap.String("bookingID", booking.ID), zap.Error(err))
		} else if !hasOther {
			if err := s.Calendar.ClearNote(ctx, s.OrgID, booking.BookingDate); err != nil {
				logger.Warn("approval: failed to clear calendar note",
					zap.String("bookingID", booking.ID), zap.Error(err))
			}
		}
		s.Notifier.BookingDenied(booking)
	}
}
