package model

import (
	"time"

	"github.com/spendgraph/spendgraph/pkg/domain/types"
)

// Relation represents a directed, typed, weighted edge between two entities
type Relation struct {
	ID             types.RelationID   `json:"id" firestore:"id"`
	SourceEntityID types.EntityID     `json:"source_entity_id" firestore:"source_entity_id"`
	TargetEntityID types.EntityID     `json:"target_entity_id" firestore:"target_entity_id"`
	Type           types.RelationType `json:"relation_type" firestore:"relation_type"`

	// Weight is in [0,1]; merge strengthens it by 0.1 per repeated occurrence
	Weight float64 `json:"weight" firestore:"weight"`

	Attributes RelationAttributes `json:"attributes" firestore:"attributes"`

	ReceiptID       types.ReceiptID `json:"receipt_id,omitempty" firestore:"receipt_id,omitempty"`
	TransactionDate time.Time       `json:"transaction_date,omitempty" firestore:"transaction_date,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

// RelationAttributes holds the known optional attributes of a relation
type RelationAttributes struct {
	// Price of the product for purchased_at relations
	Price float64 `json:"price,omitempty" firestore:"price,omitempty"`
	// Amount of the whole transaction for paid_with relations
	Amount float64 `json:"amount,omitempty" firestore:"amount,omitempty"`
}

// NewRelation creates a relation with a fresh ID
func NewRelation(source, target types.EntityID, relationType types.RelationType, weight float64) *Relation {
	now := time.Now().UTC()
	return &Relation{
		ID:             types.NewRelationID(),
		SourceEntityID: source,
		TargetEntityID: target,
		Type:           relationType,
		Weight:         weight,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
