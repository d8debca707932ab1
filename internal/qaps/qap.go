// Package qaps implements the Quality Assurance Plan domain: specification
// reconciliation against a baseline catalog, mismatch assignment to
// responsible departments, and assembly of the lifecycle record consumed by
// the multi-level approval pipeline.
package qaps

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle status of a QAP record. Statuses beyond level-2
// are owned by the approval pipeline that consumes the record.
type Status string

// Statuses produced by this service.
const (
	StatusDraft  Status = "draft"
	StatusLevel2 Status = "level-2"
)

// SubmitAction is the timeline entry recorded when a plan is submitted.
const SubmitAction = "Submitted for Level 2 review"

// Header holds the order identity fields. All are required before a plan can
// be submitted; drafts may carry an incomplete header.
type Header struct {
	CustomerName  string  `json:"customer_name" validate:"required"`
	ProjectName   string  `json:"project_name" validate:"required"`
	OrderQuantity float64 `json:"order_quantity" validate:"gt=0"`
	ProductType   string  `json:"product_type" validate:"required"`
	Plant         string  `json:"plant" validate:"required"`
}

// TimelineEntry records one approval-pipeline action on a plan.
type TimelineEntry struct {
	Level     int       `json:"level"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

// QAP is the finalized lifecycle record handed to the approval pipeline.
// Items carries both criteria groups concatenated in seeding order.
// LevelStartTimes and LevelEndTimes let the pipeline compute dwell time
// per review level.
type QAP struct {
	ID uuid.UUID `json:"id"`
	Header
	Status          Status            `json:"status"`
	CurrentLevel    int               `json:"current_level"`
	SubmittedBy     string            `json:"submitted_by"`
	SubmittedAt     *time.Time        `json:"submitted_at,omitempty"`
	Items           []Item            `json:"items"`
	Assignments     AssignmentMap     `json:"assignments"`
	Timeline        []TimelineEntry   `json:"timeline"`
	CreatedAt       time.Time         `json:"created_at"`
	LastModifiedAt  time.Time         `json:"last_modified_at"`
	LevelStartTimes map[int]time.Time `json:"level_start_times"`
	LevelEndTimes   map[int]time.Time `json:"level_end_times"`
}

// Mismatches returns the items currently marked does-not-match, in sequence order.
func (q *QAP) Mismatches() []Item {
	var out []Item
	for _, item := range q.Items {
		if item.Mismatch() {
			out = append(out, item)
		}
	}
	return out
}
