// Package availability holds the pure scheduling rules that gate a single
// photographer's day: the fixed slot grid, overlap and spacing checks, the
// daily capacity cap, and the administrator day overrides. Nothing here
// touches storage; every function operates only on its inputs.
package availability

import (
	"fmt"
	"strconv"
	"strings"

	"studiobook/models"
)

// Business rules.
const (
	MaxShootsPerDay       = 3
	MinHoursBetweenShoots = 3
	DefaultShootDuration  = 2 // hours, personal sessions
)

// Rejection reasons returned to the client verbatim.
const (
	ReasonDayOff         = "This date is unavailable for bookings."
	ReasonNoMoreBookings = "No more bookings are being accepted for this date."
	ReasonDateFull       = "Maximum of 3 shoots per day reached."
	ReasonTimeConflict   = "Booking conflicts with existing shoots. Minimum 3 hours required between bookings."
)

// slotGrid is the fixed set of candidate start times, hourly 09:00-18:00.
var slotGrid = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00", "18:00",
}

// parseClock converts "HH:MM" (or "HH:MM:SS") to minutes from midnight.
func parseClock(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("malformed time %q", t)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q: %w", t, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q: %w", t, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", t)
	}
	return hours*60 + minutes, nil
}

// ConflictResult reports whether a candidate interval clashes with the
// approved bookings on a date.
type ConflictResult struct {
	Conflict  bool
	Reason    string
	Conflicts []models.Booking
}

// CheckConflict evaluates the candidate [startTime, endTime) against every
// approved booking on the date. Pending and denied bookings are ignored:
// approval is the sole authoritative gate, so two overlapping requests can
// coexist as pending until one of them is approved.
//
// Two rules apply per approved booking: no interval overlap, and a spacing
// buffer of at least MinHoursBetweenShoots between the end of one session
// and the start of the next, in either order. A gap of exactly the buffer
// passes; anything shorter fails.
func CheckConflict(startTime, endTime string, bookings []models.Booking) (ConflictResult, error) {
	newStart, err := parseClock(startTime)
	if err != nil {
		return ConflictResult{}, err
	}
	newEnd, err := parseClock(endTime)
	if err != nil {
		return ConflictResult{}, err
	}

	buffer := MinHoursBetweenShoots * 60
	var conflicts []models.Booking

	for _, b := range bookings {
		if b.ApprovalStatus != models.StatusApproved {
			continue
		}
		existingStart, err := parseClock(b.StartTime)
		if err != nil {
			return ConflictResult{}, fmt.Errorf("stored booking %s: %w", b.ID, err)
		}
		existingEnd, err := parseClock(b.EndTime)
		if err != nil {
			return ConflictResult{}, fmt.Errorf("stored booking %s: %w", b.ID, err)
		}

		// Overlap.
		if newStart < existingEnd && newEnd > existingStart {
			conflicts = append(conflicts, b)
			continue
		}
		// Candidate follows the existing session too closely.
		if newStart >= existingEnd && newStart-existingEnd < buffer {
			conflicts = append(conflicts, b)
			continue
		}
		// Candidate ends too close before the existing session starts.
		if existingStart >= newEnd && existingStart-newEnd < buffer {
			conflicts = append(conflicts, b)
		}
	}

	if len(conflicts) > 0 {
		return ConflictResult{Conflict: true, Reason: ReasonTimeConflict, Conflicts: conflicts}, nil
	}
	return ConflictResult{}, nil
}

// IsDateFull reports whether the date has reached the daily capacity of
// approved shoots.
func IsDateFull(bookings []models.Booking) bool {
	approved := 0
	for _, b := range bookings {
		if b.ApprovalStatus == models.StatusApproved {
			approved++
		}
	}
	return approved >= MaxShootsPerDay
}

func hasApproved(bookings []models.Booking) bool {
	for _, b := range bookings {
		if b.ApprovalStatus == models.StatusApproved {
			return true
		}
	}
	return false
}

// ComputeAvailableSlots returns the candidate start times still open on the
// date, in grid order. Each grid slot is kept only if a default-duration
// session starting there produces no conflict. calendarDay may be nil when
// the administrator never touched the date.
func ComputeAvailableSlots(bookings []models.Booking, calendarDay *models.CalendarDay) ([]string, error) {
	if calendarDay != nil {
		if calendarDay.DayStatus == models.DayOff {
			return nil, nil
		}
		if calendarDay.DayStatus == models.DayNoMoreBookings && hasApproved(bookings) {
			return nil, nil
		}
	}
	if IsDateFull(bookings) {
		return nil, nil
	}

	var open []string
	for _, slot := range slotGrid {
		endTime := CalculateEndTime(slot, models.TypePersonal, 0)
		res, err := CheckConflict(slot, endTime, bookings)
		if err != nil {
			return nil, err
		}
		if !res.Conflict {
			open = append(open, slot)
		}
	}
	return open, nil
}

// CalculateEndTime derives the session end from its start and type.
// Personal sessions run 2 hours; events run 3, or 4 when more than 5 people
// attend. The grid never reaches midnight, so no rollover handling.
func CalculateEndTime(startTime, bookingType string, numPeople int) string {
	durationHours := DefaultShootDuration
	if bookingType == models.TypeEvent {
		if numPeople > 5 {
			durationHours = 4
		} else {
			durationHours = 3
		}
	}

	parts := strings.SplitN(startTime, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes := "00"
	if len(parts) == 2 {
		minutes = parts[1]
	}
	return fmt.Sprintf("%02d:%s", hours+durationHours, minutes)
}

// Verdict is the outcome of checking one specific requested slot.
type Verdict struct {
	Available bool
	Reason    string
}

// Check runs the full availability decision for a specific requested slot:
// day override, capacity, then conflict/buffer rules. It is the single rule
// set shared by slot listing and intake revalidation.
func Check(startTime, endTime string, bookings []models.Booking, calendarDay *models.CalendarDay) (Verdict, error) {
	if calendarDay != nil {
		if calendarDay.DayStatus == models.DayOff {
			return Verdict{Reason: ReasonDayOff}, nil
		}
		if calendarDay.DayStatus == models.DayNoMoreBookings && hasApproved(bookings) {
			return Verdict{Reason: ReasonNoMoreBookings}, nil
		}
	}
	if IsDateFull(bookings) {
		return Verdict{Reason: ReasonDateFull}, nil
	}

	res, err := CheckConflict(startTime, endTime, bookings)
	if err != nil {
		return Verdict{}, err
	}
	if res.Conflict {
		return Verdict{Reason: res.Reason}, nil
	}
	return Verdict{Available: true}, nil
}
