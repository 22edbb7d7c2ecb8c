package tasks

import (
	"encoding/json"

	"studiobook/models"

	"github.com/hibiken/asynq"
)

// Task type names consumed by the background worker.
const (
	TypeEmailSend = "email:send"
	TypeDealStage = "crm:deal_stage"
)

// Email kinds carried by TypeEmailSend tasks.
const (
	EmailBookingReceived   = "booking_received"
	EmailApprovalRequest   = "approval_request"
	EmailApprovalConfirmed = "approval_confirmed"
	EmailDenialNotice      = "denial_notice"
)

// EmailPayload is the payload of an email:send task. It carries a snapshot
// of the booking so the worker never re-reads the store.
//
// The booking's own ApprovalToken field never survives JSON marshaling (it
// is tagged out so the secret stays off the HTTP surface), so the
// approval-request kind carries the token in its own field instead.
type EmailPayload struct {
	Kind          string         `json:"kind"`
	Booking       models.Booking `json:"booking"`
	ApprovalToken string         `json:"approval_token,omitempty"`
}

// DealStagePayload is the payload of a crm:deal_stage task.
type DealStagePayload struct {
	DealID      string `json:"dealId"`
	Status      string `json:"status"` // "won" or "lost"
	CloseReason string `json:"closeReason,omitempty"`
}

// NewEmailTask builds an email:send task. Only the approval request needs
// the single-use token; every other kind ships without it.
func NewEmailTask(kind string, booking models.Booking) (*asynq.Task, error) {
	payload := EmailPayload{Kind: kind, Booking: booking}
	if kind == EmailApprovalRequest {
		payload.ApprovalToken = booking.ApprovalToken
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailSend, b), nil
}

// NewDealStageTask builds a crm:deal_stage task.
func NewDealStageTask(dealID, status, closeReason string) (*asynq.Task, error) {
	b, err := json.Marshal(DealStagePayload{DealID: dealID, Status: status, CloseReason: closeReason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDealStage, b), nil
}
