package booking

import (
	"context"

	"studiobook/models"
)

// IntakeService accepts new session requests.
type IntakeService interface {
	Submit(ctx context.Context, input models.BookingRequestInput) (*models.BookingReceipt, error)
}

// Action is what an approval link asks for.
type Action string

const (
	ActionApprove Action = "approve"
	ActionDeny    Action = "deny"
)

// Outcome classifies the result of presenting an approval token.
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeAlreadyProcessed
	OutcomeNotFound
	OutcomeExpired
	OutcomeStoreFailure
)

// Resolution is the outcome of Resolve plus the booking it concerned, when
// one was found.
type Resolution struct {
	Outcome Outcome
	Booking *models.Booking
}

// ApprovalService drives the single pending → approved|denied transition.
type ApprovalService interface {
	Resolve(ctx context.Context, token string, action Action) (Resolution, error)
}
