// Package calendar serves the derived month view and the administrator's
// day-override writes. The month view is computed on every read from the
// bookings and override collections; nothing is cached or denormalized.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	bookingRepo "studiobook/database/repository/booking"
	calendarRepo "studiobook/database/repository/calendar"
	"studiobook/models"
	"studiobook/services/availability"
)

var (
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidationError reports malformed calendar input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Service exposes the calendar read and write operations.
type Service interface {
	// MonthView summarizes every day of the month: the effective status,
	// how many live bookings it carries, and their time slots.
	MonthView(ctx context.Context, month string) (*models.MonthView, error)
	// UpsertDay writes an administrator override for one date.
	UpsertDay(ctx context.Context, input models.CalendarDayInput) (*models.CalendarDay, error)
	// AvailableSlots lists the open start times on one date.
	AvailableSlots(ctx context.Context, date string) ([]string, error)
}

// DefaultCalendarService is the production implementation.
type DefaultCalendarService struct {
	Bookings bookingRepo.BookingRepository
	Calendar calendarRepo.CalendarRepository
	OrgID    string
}

// MonthView builds the per-day summary map for a "YYYY-MM" month.
func (s *DefaultCalendarService) MonthView(ctx context.Context, month string) (*models.MonthView, error) {
	if !monthRe.MatchString(month) {
		return nil, &ValidationError{Message: "month must be formatted YYYY-MM"}
	}
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, &ValidationError{Message: "month is not a valid month"}
	}
	last := first.AddDate(0, 1, -1)
	startDate := first.Format("2006-01-02")
	endDate := last.Format("2006-01-02")

	view := &models.MonthView{
		Month:     month,
		StartDate: startDate,
		EndDate:   endDate,
		Days:      make(map[string]*models.DaySummary, last.Day()),
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		view.Days[d.Format("2006-01-02")] = &models.DaySummary{
			Status:    models.DayAvailable,
			TimeSlots: []models.TimeSlotView{},
		}
	}

	overrides, err := s.Calendar.ListRange(ctx, s.OrgID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar overrides: %w", err)
	}
	for _, o := range overrides {
		if day, ok := view.Days[o.Date]; ok {
			day.Status = o.DayStatus
		}
	}

	bookings, err := s.Bookings.ListActiveByDateRange(ctx, s.OrgID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	for _, b := range bookings {
		day, ok := view.Days[b.BookingDate]
		if !ok {
			continue
		}
		day.BookingsCount++
		day.TimeSlots = append(day.TimeSlots, models.TimeSlotView{
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
		// A day with two or more live bookings reads as booked unless an
		// explicit override says otherwise.
		if day.BookingsCount >= 2 && day.Status == models.DayAvailable {
			day.Status = models.DayBooked
		}
	}

	return view, nil
}

// UpsertDay validates and writes the administrator override for one date.
func (s *DefaultCalendarService) UpsertDay(ctx context.Context, input models.CalendarDayInput) (*models.CalendarDay, error) {
	if !dateRe.MatchString(input.Date) {
		return nil, &ValidationError{Message: "date must be formatted YYYY-MM-DD"}
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, &ValidationError{Message: "date is not a valid date"}
	}
	if !models.ValidDayStatus(input.DayStatus) {
		return nil, &ValidationError{Message: "day_status must be one of: available, off, no_more_bookings, booked"}
	}

	day := &models.CalendarDay{
		OrgID:     s.OrgID,
		Date:      input.Date,
		DayStatus: input.DayStatus,
		Notes:     input.Notes,
		UpdatedAt: time.Now().UTC(),
	}
	saved, err := s.Calendar.Upsert(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert calendar day: %w", err)
	}
	return saved, nil
}

// AvailableSlots returns the open hourly start times on the date, applying
// the same rules intake uses to accept a booking.
func (s *DefaultCalendarService) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	if !dateRe.MatchString(date) {
		return nil, &ValidationError{Message: "date must be formatted YYYY-MM-DD"}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &ValidationError{Message: "date is not a valid date"}
	}

	bookings, err := s.Bookings.ListActiveByDate(ctx, s.OrgID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for %s: %w", date, err)
	}
	day, err := s.Calendar.GetByDate(ctx, s.OrgID, date)
	if err != nil && !errors.Is(err, calendarRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to load calendar day %s: %w", date, err)
	}

	slots, err := availability.ComputeAvailableSlots(bookings, day)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []string{}
	}
	return slots, nil
}
