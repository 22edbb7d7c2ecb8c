package models

// BookingRequestInput is the intake request body.
type BookingRequestInput struct {
	ClientName      string `json:"client_name"`
	ClientEmail     string `json:"client_email"`
	ClientPhone     string `json:"client_phone,omitempty"`
	BookingType     string `json:"booking_type"`
	NumPeople       int    `json:"num_people,omitempty"`
	BookingDate     string `json:"booking_date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	LocationType    string `json:"location_type"`
	LocationManual  string `json:"location_manual,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// CalendarDayInput is the admin calendar upsert request body.
type CalendarDayInput struct {
	Date      string `json:"date"`
	DayStatus string `json:"day_status"`
	Notes     string `json:"notes,omitempty"`
}
