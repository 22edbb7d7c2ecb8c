package models

import "time"

// Deal statuses in the sales pipeline.
const (
	DealOpen = "open"
	DealWon  = "won"
	DealLost = "lost"
)

// Contact is a sales-pipeline contact record.
type Contact struct {
	ID        string    `bson:"id" json:"id"`
	OrgID     string    `bson:"org_id" json:"org_id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Source    string    `bson:"source,omitempty" json:"source,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Pipeline is a sales pipeline owned by an organization.
type Pipeline struct {
	ID        string    `bson:"id" json:"id"`
	OrgID     string    `bson:"org_id" json:"org_id"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// PipelineStage is one stage of a pipeline, ordered by Position.
type PipelineStage struct {
	ID         string `bson:"id" json:"id"`
	PipelineID string `bson:"pipeline_id" json:"pipeline_id"`
	Name       string `bson:"name" json:"name"`
	Position   int    `bson:"position" json:"position"`
	IsWon      bool   `bson:"is_won" json:"is_won"`
	IsLost     bool   `bson:"is_lost" json:"is_lost"`
}

// Deal is a sales-pipeline deal created for each booking request.
type Deal struct {
	ID          string     `bson:"id" json:"id"`
	OrgID       string     `bson:"org_id" json:"org_id"`
	PipelineID  string     `bson:"pipeline_id" json:"pipeline_id"`
	StageID     string     `bson:"stage_id" json:"stage_id"`
	ContactID   string     `bson:"contact_id,omitempty" json:"contact_id,omitempty"`
	Name        string     `bson:"name" json:"name"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Amount      float64    `bson:"amount" json:"amount"`
	Status      string     `bson:"status" json:"status"`
	Probability int        `bson:"probability" json:"probability"`
	CloseDate   string     `bson:"close_date,omitempty" json:"close_date,omitempty"`
	ClosedAt    *time.Time `bson:"closed_at,omitempty" json:"closed_at,omitempty"`
	CloseReason string     `bson:"close_reason,omitempty" json:"close_reason,omitempty"`
	CustomData  string     `bson:"custom_data,omitempty" json:"custom_data,omitempty"`
	Metadata    string     `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
}
