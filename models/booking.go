package models

import "time"

// Booking approval lifecycle states. A booking leaves "pending" exactly
// once, to either "approved" or "denied"; both are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

// Booking types.
const (
	TypePersonal = "personal"
	TypeEvent    = "event"
)

// Booking represents one session request and its approval lifecycle.
type Booking struct {
	ID          string `bson:"id" json:"id"`
	OrgID       string `bson:"org_id" json:"org_id"`
	ClientName  string `bson:"client_name" json:"client_name"`
	ClientEmail string `bson:"client_email" json:"client_email"`
	ClientPhone string `bson:"client_phone,omitempty" json:"client_phone,omitempty"`

	BookingType string `bson:"booking_type" json:"booking_type"`         // "personal" or "event"
	NumPeople   int    `bson:"num_people,omitempty" json:"num_people,omitempty"` // event only

	BookingDate string `bson:"booking_date" json:"booking_date"` // "2006-01-02"
	StartTime   string `bson:"start_time" json:"start_time"`     // "15:04"
	EndTime     string `bson:"end_time" json:"end_time"`         // "15:04"

	LocationType    string `bson:"location_type" json:"location_type"` // "flexible" or "provided"
	Location        string `bson:"location,omitempty" json:"location,omitempty"`
	SpecialRequests string `bson:"special_requests,omitempty" json:"special_requests,omitempty"`

	// ApprovalToken is non-empty iff ApprovalStatus == "pending". It is the
	// single-use secret carried by the approve/deny links and is cleared by
	// the one status transition.
	ApprovalStatus    string     `bson:"approval_status" json:"approval_status"`
	ApprovalToken     string     `bson:"approval_token,omitempty" json:"-"`
	ApprovalExpiresAt *time.Time `bson:"approval_expires_at,omitempty" json:"approval_expires_at,omitempty"`

	// External sales-pipeline references, backfilled after intake.
	CadenceContactID string `bson:"cadence_contact_id,omitempty" json:"cadence_contact_id,omitempty"`
	CadenceDealID    string `bson:"cadence_deal_id,omitempty" json:"cadence_deal_id,omitempty"`
	DealID           string `bson:"deal_id,omitempty" json:"deal_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TokenExpired reports whether the approval token has lapsed at the given
// instant. A booking without an expiry never lapses.
func (b *Booking) TokenExpired(now time.Time) bool {
	return b.ApprovalExpiresAt != nil && b.ApprovalExpiresAt.Before(now)
}

// BookingReceipt is what intake returns to the client on success.
type BookingReceipt struct {
	BookingID string `json:"bookingId"`
	DealID    string `json:"dealId"`
	ContactID string `json:"contactId,omitempty"`
}
