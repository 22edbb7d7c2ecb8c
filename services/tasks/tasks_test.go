package tasks

import (
	"encoding/json"
	"testing"

	"studiobook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailTaskCarriesApprovalToken(t *testing.T) {
	b := models.Booking{
		ID:            "bk-1",
		ClientName:    "Ada Lovelace",
		ApprovalToken: "SECRETTOKEN",
	}

	task, err := NewEmailTask(EmailApprovalRequest, b)
	require.NoError(t, err)

	var p EmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, EmailApprovalRequest, p.Kind)
	assert.Equal(t, "SECRETTOKEN", p.ApprovalToken)
	// The booking's own token field is deliberately stripped by its json tag.
	assert.Empty(t, p.Booking.ApprovalToken)
}

func TestEmailTaskOmitsTokenForOtherKinds(t *testing.T) {
	b := models.Booking{ID: "bk-1", ApprovalToken: "SECRETTOKEN"}

	for _, kind := range []string{EmailBookingReceived, EmailApprovalConfirmed, EmailDenialNotice} {
		task, err := NewEmailTask(kind, b)
		require.NoError(t, err)

		var p EmailPayload
		require.NoError(t, json.Unmarshal(task.Payload(), &p))
		assert.Empty(t, p.ApprovalToken, "kind %s must not carry the token", kind)
	}
}

func TestDealStageTaskRoundTrip(t *testing.T) {
	task, err := NewDealStageTask("dl-1", "lost", "Declined from portfolio site")
	require.NoError(t, err)
	assert.Equal(t, TypeDealStage, task.Type())

	var p DealStagePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "dl-1", p.DealID)
	assert.Equal(t, "lost", p.Status)
	assert.Equal(t, "Declined from portfolio site", p.CloseReason)
}
