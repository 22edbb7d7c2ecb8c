package crmRepo

import (
	"context"
	"errors"

	"studiobook/models"
)

// ErrNotFound is returned when the looked-up CRM record does not exist.
var ErrNotFound = errors.New("crm record not found")

// CRMRepository stores the sales-pipeline records booking intake syncs into:
// contacts, pipelines with their stages, and deals.
type CRMRepository interface {
	FindContactByEmail(ctx context.Context, orgID, email string) (*models.Contact, error)
	CreateContact(ctx context.Context, contact *models.Contact) error

	// FirstPipeline returns the organization's oldest pipeline.
	FirstPipeline(ctx context.Context, orgID string) (*models.Pipeline, error)
	// FirstStage returns the pipeline's lowest-position stage.
	FirstStage(ctx context.Context, pipelineID string) (*models.PipelineStage, error)
	FindWonStage(ctx context.Context, pipelineID string) (*models.PipelineStage, error)
	FindLostStage(ctx context.Context, pipelineID string) (*models.PipelineStage, error)

	CreateDeal(ctx context.Context, deal *models.Deal) error
	GetDeal(ctx context.Context, dealID string) (*models.Deal, error)
	CloseDeal(ctx context.Context, dealID, stageID, status, closeReason string) error
}
