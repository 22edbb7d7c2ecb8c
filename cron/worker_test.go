package cron

import (
	"context"
	"testing"

	"studiobook/models"
	"studiobook/services/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingMailer struct {
	kind    string
	booking models.Booking
}

func (m *capturingMailer) SendBookingReceived(ctx context.Context, b *models.Booking) error {
	m.kind, m.booking = tasks.EmailBookingReceived, *b
	return nil
}

func (m *capturingMailer) SendApprovalRequest(ctx context.Context, b *models.Booking) error {
	m.kind, m.booking = tasks.EmailApprovalRequest, *b
	return nil
}

func (m *capturingMailer) SendApprovalConfirmed(ctx context.Context, b *models.Booking) error {
	m.kind, m.booking = tasks.EmailApprovalConfirmed, *b
	return nil
}

func (m *capturingMailer) SendDenialNotice(ctx context.Context, b *models.Booking) error {
	m.kind, m.booking = tasks.EmailDenialNotice, *b
	return nil
}

func TestHandleEmailTaskRestoresApprovalToken(t *testing.T) {
	booking := models.Booking{
		ID:            "bk-1",
		ClientName:    "Ada Lovelace",
		ApprovalToken: "SECRETTOKEN",
	}
	task, err := tasks.NewEmailTask(tasks.EmailApprovalRequest, booking)
	require.NoError(t, err)

	mail := &capturingMailer{}
	handler := handleEmailTask(mail)

	require.NoError(t, handler(context.Background(), task))
	assert.Equal(t, tasks.EmailApprovalRequest, mail.kind)
	assert.Equal(t, "SECRETTOKEN", mail.booking.ApprovalToken)
}

func TestHandleEmailTaskOtherKindsHaveNoToken(t *testing.T) {
	booking := models.Booking{ID: "bk-1", ApprovalToken: "SECRETTOKEN"}
	task, err := tasks.NewEmailTask(tasks.EmailApprovalConfirmed, booking)
	require.NoError(t, err)

	mail := &capturingMailer{}
	require.NoError(t, handleEmailTask(mail)(context.Background(), task))
	assert.Equal(t, tasks.EmailApprovalConfirmed, mail.kind)
	assert.Empty(t, mail.booking.ApprovalToken)
}
