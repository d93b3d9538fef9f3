package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spendgraph/spendgraph/pkg/domain/model"
	"github.com/spendgraph/spendgraph/pkg/domain/types"
	"github.com/spendgraph/spendgraph/pkg/utils/logging"
)

const defaultListLimit = 50

// GetGraph retrieves a stored graph by ID
func (uc *UseCases) GetGraph(ctx context.Context, graphID types.GraphID) (*model.KnowledgeGraph, error) {
	graph, err := uc.repo.Graph().Get(ctx, graphID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get graph", goerr.V("graph_id", graphID))
	}
	return graph, nil
}

// GetGraphByName retrieves a user's graph by its human-readable name
func (uc *UseCases) GetGraphByName(ctx context.Context, userID types.UserID, name string) (*model.KnowledgeGraph, error) {
	graph, err := uc.repo.Graph().GetByName(ctx, userID, name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get graph by name",
			goerr.V("user_id", userID), goerr.V("name", name))
	}
	return graph, nil
}

// ListGraphs retrieves a user's graphs, most recently updated first.
// A non-positive limit falls back to the default page size.
func (uc *UseCases) ListGraphs(ctx context.Context, userID types.UserID, limit int) ([]*model.KnowledgeGraph, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	graphs, err := uc.repo.Graph().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list graphs", goerr.V("user_id", userID))
	}
	return graphs, nil
}

// DeleteGraph removes a stored graph
func (uc *UseCases) DeleteGraph(ctx context.Context, graphID types.GraphID) error {
	if err := uc.repo.Graph().Delete(ctx, graphID); err != nil {
		return goerr.Wrap(err, "failed to delete graph", goerr.V("graph_id", graphID))
	}

	logging.From(ctx).Info("graph deleted", "graph_id", graphID)
	return nil
}
