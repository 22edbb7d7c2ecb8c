package models

import "time"

// CalendarDay statuses an administrator can set on a date.
const (
	DayAvailable      = "available"
	DayOff            = "off"
	DayNoMoreBookings = "no_more_bookings"
	DayBooked         = "booked"
)

// AllowedDayStatuses lists the valid values for CalendarDay.DayStatus.
var AllowedDayStatuses = []string{DayAvailable, DayOff, DayNoMoreBookings, DayBooked}

// CalendarDay is the administrator override record for one date. There is
// at most one per (org_id, date); it is only ever upserted, never deleted.
type CalendarDay struct {
	OrgID     string    `bson:"org_id" json:"org_id"`
	Date      string    `bson:"date" json:"date"` // "2006-01-02"
	DayStatus string    `bson:"day_status" json:"day_status"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidDayStatus reports whether s is one of the allowed day statuses.
func ValidDayStatus(s string) bool {
	for _, allowed := range AllowedDayStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// TimeSlotView is a booked interval shown on the month view.
type TimeSlotView struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DaySummary is the derived month-view entry for a single date. It is
// recomputed from bookings and calendar overrides on every read; there is
// no cached copy anywhere.
type DaySummary struct {
	Status        string         `json:"status"`
	BookingsCount int            `json:"bookingsCount"`
	TimeSlots     []TimeSlotView `json:"timeSlots"`
}

// MonthView is the response body of the month calendar endpoint.
type MonthView struct {
	Month     string                 `json:"month"` // "2006-01"
	StartDate string                 `json:"startDate"`
	EndDate   string                 `json:"endDate"`
	Days      map[string]*DaySummary `json:"days"`
}
