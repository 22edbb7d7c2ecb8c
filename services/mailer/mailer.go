// Package mailer sends transactional booking emails through a
// Resend-compatible HTTP API. When no API key is configured every send is a
// logged no-op, which keeps local development working without credentials.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"studiobook/config"
	"studiobook/models"
	"studiobook/utils"

	"go.uber.org/zap"
)

// Service sends the booking lifecycle emails.
type Service interface {
	// SendBookingReceived tells the client their request is pending review.
	SendBookingReceived(ctx context.Context, booking *models.Booking) error
	// SendApprovalRequest sends the photographer the approve/deny links.
	SendApprovalRequest(ctx context.Context, booking *models.Booking) error
	// SendApprovalConfirmed tells the client the session is confirmed.
	SendApprovalConfirmed(ctx context.Context, booking *models.Booking) error
	// SendDenialNotice tells the client the slot could not be accommodated.
	SendDenialNotice(ctx context.Context, booking *models.Booking) error
}

// ResendMailer posts messages to a Resend-compatible /emails endpoint.
type ResendMailer struct {
	apiURL     string
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewResendMailer constructs a mailer from the loaded configuration.
func NewResendMailer() *ResendMailer {
	return &ResendMailer{
		apiURL: config.AppConfig.MailAPIURL,
		apiKey: config.AppConfig.MailAPIKey,
		from:   config.AppConfig.FromEmail,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) send(ctx context.Context, to, subject, html string) error {
	if m.apiKey == "" {
		utils.GetLogger().Warn("mailer: no API key configured, skipping email",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	body, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email API returned %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}

func (m *ResendMailer) SendBookingReceived(ctx context.Context, booking *models.Booking) error {
	subject := fmt.Sprintf("Booking Request Received - %s", booking.BookingDate)
	return m.send(ctx, booking.ClientEmail, subject, bookingReceivedHTML(booking))
}

func (m *ResendMailer) SendApprovalRequest(ctx context.Context, booking *models.Booking) error {
	to := config.AppConfig.PhotographerEmail
	if to == "" {
		utils.GetLogger().Warn("mailer: no photographer email configured, skipping approval request",
			zap.String("bookingID", booking.ID))
		return nil
	}
	subject := fmt.Sprintf("New Booking Request - %s on %s", booking.ClientName, booking.BookingDate)
	return m.send(ctx, to, subject, approvalRequestHTML(booking, config.AppConfig.AppURL))
}

func (m *ResendMailer) SendApprovalConfirmed(ctx context.Context, booking *models.Booking) error {
	subject := fmt.Sprintf("Booking Confirmed - %s", booking.BookingDate)
	return m.send(ctx, booking.ClientEmail, subject, approvalConfirmedHTML(booking))
}

func (m *ResendMailer) SendDenialNotice(ctx context.Context, booking *models.Booking) error {
	subject := fmt.Sprintf("Booking Update - %s", booking.BookingDate)
	return m.send(ctx, booking.ClientEmail, subject, denialNoticeHTML(booking))
}
