package crmRepo

import (
	"context"
	"fmt"
	"time"

	"studiobook/database"
	"studiobook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCRMRepo implements CRMRepository using MongoDB.
type MongoCRMRepo struct {
	contactColl  *mongo.Collection
	pipelineColl *mongo.Collection
	stageColl    *mongo.Collection
	dealColl     *mongo.Collection
}

// NewMongoCRMRepo constructs a new instance of MongoCRMRepo.
func NewMongoCRMRepo() CRMRepository {
	db := database.MongoClient.Database("studiobook")
	return &MongoCRMRepo{
		contactColl:  db.Collection("contacts"),
		pipelineColl: db.Collection("pipelines"),
		stageColl:    db.Collection("pipeline_stages"),
		dealColl:     db.Collection("deals"),
	}
}

// FindContactByEmail looks up a contact by organization and email.
func (repo *MongoCRMRepo) FindContactByEmail(ctx context.Context, orgID, email string) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var contact models.Contact
	err := repo.contactColl.FindOne(ctx, bson.M{"org_id": orgID, "email": email}).Decode(&contact)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching contact %s: %w", email, err)
	}
	return &contact, nil
}

// CreateContact inserts a new contact document.
func (repo *MongoCRMRepo) CreateContact(ctx context.Context, contact *models.Contact) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.contactColl.InsertOne(ctx, contact); err != nil {
		return fmt.Errorf("error creating contact: %w", err)
	}
	return nil
}

// FirstPipeline returns the organization's oldest pipeline.
func (repo *MongoCRMRepo) FirstPipeline(ctx context.Context, orgID string) (*models.Pipeline, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})
	var pipeline models.Pipeline
	err := repo.pipelineColl.FindOne(ctx, bson.M{"org_id": orgID}, opts).Decode(&pipeline)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching pipeline for org %s: %w", orgID, err)
	}
	return &pipeline, nil
}

// FirstStage returns the pipeline's lowest-position stage.
func (repo *MongoCRMRepo) FirstStage(ctx context.Context, pipelineID string) (*models.PipelineStage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: 1}})
	var stage models.PipelineStage
	err := repo.stageColl.FindOne(ctx, bson.M{"pipeline_id": pipelineID}, opts).Decode(&stage)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching first stage of pipeline %s: %w", pipelineID, err)
	}
	return &stage, nil
}

func (repo *MongoCRMRepo) findStage(ctx context.Context, filter bson.M) (*models.PipelineStage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var stage models.PipelineStage
	err := repo.stageColl.FindOne(ctx, filter).Decode(&stage)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching pipeline stage: %w", err)
	}
	return &stage, nil
}

// FindWonStage returns the pipeline's won stage.
func (repo *MongoCRMRepo) FindWonStage(ctx context.Context, pipelineID string) (*models.PipelineStage, error) {
	return repo.findStage(ctx, bson.M{"pipeline_id": pipelineID, "is_won": true})
}

// FindLostStage returns the pipeline's lost stage.
func (repo *MongoCRMRepo) FindLostStage(ctx context.Context, pipelineID string) (*models.PipelineStage, error) {
	return repo.findStage(ctx, bson.M{"pipeline_id": pipelineID, "is_lost": true})
}

// CreateDeal inserts a new deal document.
func (repo *MongoCRMRepo) CreateDeal(ctx context.Context, deal *models.Deal) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.dealColl.InsertOne(ctx, deal); err != nil {
		return fmt.Errorf("error creating deal: %w", err)
	}
	return nil
}

// GetDeal retrieves a deal by ID.
func (repo *MongoCRMRepo) GetDeal(ctx context.Context, dealID string) (*models.Deal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var deal models.Deal
	err := repo.dealColl.FindOne(ctx, bson.M{"id": dealID}).Decode(&deal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching deal %s: %w", dealID, err)
	}
	return &deal, nil
}

// CloseDeal moves a deal to a terminal stage and stamps its close time.
func (repo *MongoCRMRepo) CloseDeal(ctx context.Context, dealID, stageID, status, closeReason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"stage_id":  stageID,
		"status":    status,
		"closed_at": time.Now().UTC(),
	}
	if closeReason != "" {
		set["close_reason"] = closeReason
	}
	if _, err := repo.dealColl.UpdateOne(ctx, bson.M{"id": dealID}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("error closing deal %s: %w", dealID, err)
	}
	return nil
}
