package interfaces

import (
	"context"

	"github.com/spendgraph/spendgraph/pkg/domain/model"
	"github.com/spendgraph/spendgraph/pkg/domain/types"
)

// GraphRepository defines the interface for knowledge graph persistence.
// Graphs are addressable both by internal ID and by their human-readable
// name (date + sanitized merchant).
type GraphRepository interface {
	// Put stores a graph, overwriting any previous document with the same ID
	Put(ctx context.Context, graph *model.KnowledgeGraph) error

	// Get retrieves a graph by ID
	Get(ctx context.Context, id types.GraphID) (*model.KnowledgeGraph, error)

	// GetByName retrieves a user's graph by its human-readable name
	GetByName(ctx context.Context, userID types.UserID, name string) (*model.KnowledgeGraph, error)

	// ListByUser retrieves up to limit graphs owned by the user,
	// most recently updated first
	ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.KnowledgeGraph, error)

	// Delete removes a graph by ID
	Delete(ctx context.Context, id types.GraphID) error
}
