package types

import "github.com/google/uuid"

// EntityID is a unique identifier for a graph entity
type EntityID string

// NewEntityID generates a new time-ordered entity ID
func NewEntityID() EntityID {
	return EntityID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of EntityID
func (id EntityID) String() string {
	return string(id)
}

// RelationID is a unique identifier for a graph relation
type RelationID string

// NewRelationID generates a new time-ordered relation ID
func NewRelationID() RelationID {
	return RelationID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of RelationID
func (id RelationID) String() string {
	return string(id)
}

// GraphID is a unique identifier for a knowledge graph
type GraphID string

// NewGraphID generates a new time-ordered graph ID
func NewGraphID() GraphID {
	return GraphID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of GraphID
func (id GraphID) String() string {
	return string(id)
}

// UserID identifies the owner of receipts and graphs
type UserID string

// String returns the string representation of UserID
func (id UserID) String() string {
	return string(id)
}

// ReceiptID identifies a processed receipt
type ReceiptID string

// NewReceiptID generates a new time-ordered receipt ID
func NewReceiptID() ReceiptID {
	return ReceiptID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of ReceiptID
func (id ReceiptID) String() string {
	return string(id)
}
