// Package crm mirrors booking requests into the sales pipeline: a contact
// per client, a deal per request, and won/lost stage moves on approval and
// denial. Every operation here is best-effort from the booking engine's
// point of view.
package crm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	crmRepo "studiobook/database/repository/crm"
	"studiobook/models"
	"studiobook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deal sizing used when a booking becomes a deal.
const (
	eventRatePerPerson  = 150
	personalSessionRate = 200
)

// SyncService mirrors bookings into the pipeline store.
type SyncService interface {
	// SyncIntake finds or creates a contact for the client and opens a deal
	// in the organization's first pipeline. Either identifier may come back
	// empty when the pipeline is not configured; that is not an error.
	SyncIntake(ctx context.Context, booking *models.Booking) (contactID, dealID string, err error)
	MarkDealWon(ctx context.Context, dealID string) error
	MarkDealLost(ctx context.Context, dealID, closeReason string) error
}

// DefaultSyncService is the production implementation.
type DefaultSyncService struct {
	Repo crmRepo.CRMRepository
}

// SyncIntake creates or links the contact record and opens a deal carrying
// the full booking context.
func (s *DefaultSyncService) SyncIntake(ctx context.Context, booking *models.Booking) (string, string, error) {
	logger := utils.GetLogger()

	contactID, err := s.findOrCreateContact(ctx, booking)
	if err != nil {
		return "", "", fmt.Errorf("contact sync failed: %w", err)
	}

	pipeline, err := s.Repo.FirstPipeline(ctx, booking.OrgID)
	if err != nil {
		if errors.Is(err, crmRepo.ErrNotFound) {
			logger.Warn("crm: no pipeline configured, skipping deal creation",
				zap.String("orgID", booking.OrgID))
			return contactID, "", nil
		}
		return contactID, "", fmt.Errorf("pipeline lookup failed: %w", err)
	}

	stage, err := s.Repo.FirstStage(ctx, pipeline.ID)
	if err != nil {
		if errors.Is(err, crmRepo.ErrNotFound) {
			logger.Warn("crm: pipeline has no stages, skipping deal creation",
				zap.String("pipelineID", pipeline.ID))
			return contactID, "", nil
		}
		return contactID, "", fmt.Errorf("stage lookup failed: %w", err)
	}

	deal, err := buildDeal(booking, pipeline.ID, stage.ID, contactID)
	if err != nil {
		return contactID, "", err
	}
	if err := s.Repo.CreateDeal(ctx, deal); err != nil {
		return contactID, "", fmt.Errorf("deal creation failed: %w", err)
	}
	return contactID, deal.ID, nil
}

func (s *DefaultSyncService) findOrCreateContact(ctx context.Context, booking *models.Booking) (string, error) {
	existing, err := s.Repo.FindContactByEmail(ctx, booking.OrgID, booking.ClientEmail)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, crmRepo.ErrNotFound) {
		return "", err
	}

	contact := &models.Contact{
		ID:        uuid.New().String(),
		OrgID:     booking.OrgID,
		Name:      booking.ClientName,
		Email:     booking.ClientEmail,
		Phone:     booking.ClientPhone,
		Source:    "Portfolio Website",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateContact(ctx, contact); err != nil {
		return "", err
	}
	return contact.ID, nil
}

func buildDeal(booking *models.Booking, pipelineID, stageID, contactID string) (*models.Deal, error) {
	kind := "Portrait"
	amount := float64(personalSessionRate)
	typeLine := "Personal/Portrait"
	if booking.BookingType == models.TypeEvent {
		kind = "Event"
		people := booking.NumPeople
		if people < 1 {
			people = 1
		}
		amount = float64(people * eventRatePerPerson)
		typeLine = fmt.Sprintf("Event (%d people)", people)
	}

	location := "Flexible / TBD"
	if booking.LocationType == "provided" && booking.Location != "" {
		location = booking.Location
	}
	phone := booking.ClientPhone
	if phone == "" {
		phone = "Not provided"
	}
	requests := booking.SpecialRequests
	if requests == "" {
		requests = "None"
	}

	description := fmt.Sprintf(
		"Booking Request from Portfolio Website\n\nDate: %s\nTime: %s - %s\nLocation: %s\nType: %s\n\nEmail: %s\nPhone: %s\n\nSpecial Requests:\n%s",
		booking.BookingDate, booking.StartTime, booking.EndTime,
		location, typeLine, booking.ClientEmail, phone, requests,
	)

	customData, err := json.Marshal(map[string]any{
		"booking_id":       booking.ID,
		"booking_type":     booking.BookingType,
		"num_people":       booking.NumPeople,
		"location_type":    booking.LocationType,
		"location":         booking.Location,
		"start_time":       booking.StartTime,
		"end_time":         booking.EndTime,
		"special_requests": booking.SpecialRequests,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode deal custom data: %w", err)
	}
	metadata, err := json.Marshal(map[string]string{
		"source":     "studiobook",
		"booking_id": booking.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode deal metadata: %w", err)
	}

	return &models.Deal{
		ID:          uuid.New().String(),
		OrgID:       booking.OrgID,
		PipelineID:  pipelineID,
		StageID:     stageID,
		ContactID:   contactID,
		Name:        fmt.Sprintf("%s Session - %s", kind, booking.ClientName),
		Description: description,
		Amount:      amount,
		Status:      models.DealOpen,
		Probability: 50,
		CloseDate:   booking.BookingDate,
		CustomData:  string(customData),
		Metadata:    string(metadata),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// MarkDealWon moves the deal to its pipeline's won stage.
func (s *DefaultSyncService) MarkDealWon(ctx context.Context, dealID string) error {
	return s.closeDeal(ctx, dealID, models.DealWon, "")
}

// MarkDealLost moves the deal to its pipeline's lost stage.
func (s *DefaultSyncService) MarkDealLost(ctx context.Context, dealID, closeReason string) error {
	return s.closeDeal(ctx, dealID, models.DealLost, closeReason)
}

func (s *DefaultSyncService) closeDeal(ctx context.Context, dealID, status, closeReason string) error {
	deal, err := s.Repo.GetDeal(ctx, dealID)
	if err != nil {
		return fmt.Errorf("deal lookup failed: %w", err)
	}

	var stage *models.PipelineStage
	if status == models.DealWon {
		stage, err = s.Repo.FindWonStage(ctx, deal.PipelineID)
	} else {
		stage, err = s.Repo.FindLostStage(ctx, deal.PipelineID)
	}
	if err != nil {
		if errors.Is(err, crmRepo.ErrNotFound) {
			utils.GetLogger().Warn("crm: pipeline has no terminal stage for status",
				zap.String("pipelineID", deal.PipelineID), zap.String("status", status))
			return nil
		}
		return fmt.Errorf("terminal stage lookup failed: %w", err)
	}

	if err := s.Repo.CloseDeal(ctx, dealID, stage.ID, status, closeReason); err != nil {
		return fmt.Errorf("deal close failed: %w", err)
	}
	return nil
}
