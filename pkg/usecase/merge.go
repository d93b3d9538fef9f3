package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spendgraph/spendgraph/pkg/domain/model"
	"github.com/spendgraph/spendgraph/pkg/domain/types"
	"github.com/spendgraph/spendgraph/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const (
	mergeWeightBoost  = 0.1
	maxRelationWeight = 1.0
)

// MergeGraphs combines several stored graphs into a new one. Entities
// naming the same thing (case-insensitive name plus type) collapse
// into a single node; repeated relations strengthen the surviving
// edge. Source graphs are left untouched and the merged graph is
// persisted like a built one.
func (uc *UseCases) MergeGraphs(ctx context.Context, userID types.UserID, graphIDs []types.GraphID) (*model.KnowledgeGraph, error) {
	if len(graphIDs) == 0 {
		return nil, goerr.Wrap(ErrNoGraphsToMerge, "no graph IDs given")
	}

	graphs, err := uc.loadGraphs(ctx, graphIDs)
	if err != nil {
		return nil, err
	}
	if len(graphs) == 0 {
		return nil, goerr.Wrap(ErrGraphNotFound, "none of the requested graphs exist",
			goerr.V("graph_ids", graphIDs))
	}

	merged := mergeGraphs(graphs, userID)

	logging.From(ctx).Info("graphs merged",
		"merged_graph_id", merged.ID,
		"source_graphs", len(graphs),
		"entities", merged.TotalEntities,
		"relations", merged.TotalRelations)

	uc.persistGraph(ctx, merged)

	return merged, nil
}

// loadGraphs fetches graphs concurrently, skipping IDs that no longer
// exist. Order of the input IDs is preserved in the result.
func (uc *UseCases) loadGraphs(ctx context.Context, graphIDs []types.GraphID) ([]*model.KnowledgeGraph, error) {
	loaded := make([]*model.KnowledgeGraph, len(graphIDs))

	eg, ctx := errgroup.WithContext(ctx)
	for i, id := range graphIDs {
		eg.Go(func() error {
			graph, err := uc.repo.Graph().Get(ctx, id)
			if err != nil {
				logging.From(ctx).Warn("skipping unresolvable graph",
					"graph_id", id, "error", err)
				return nil
			}
			loaded[i] = graph
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to load graphs")
	}

	graphs := make([]*model.KnowledgeGraph, 0, len(loaded))
	for _, g := range loaded {
		if g != nil {
			graphs = append(graphs, g)
		}
	}
	return graphs, nil
}

type entityKey struct {
	name string
	typ  types.EntityType
}

type relationKey struct {
	source types.EntityID
	target types.EntityID
	typ    types.RelationType
}

func mergeGraphs(graphs []*model.KnowledgeGraph, userID types.UserID) *model.KnowledgeGraph {
	now := time.Now().UTC()
	merged := model.NewKnowledgeGraph(
		fmt.Sprintf("merged_graph_%s_%s", userID, now.Format("20060102_150405")),
		userID)
	merged.Description = fmt.Sprintf("Merged knowledge graph from %d receipts", len(graphs))

	// survivors maps each source entity ID to the entity that absorbed it
	survivors := map[types.EntityID]types.EntityID{}
	byKey := map[entityKey]*model.Entity{}

	for _, source := range graphs {
		graph := source.Clone()
		merged.ReceiptIDs = append(merged.ReceiptIDs, graph.ReceiptIDs...)

		for _, entity := range graph.Entities {
			key := entityKey{name: strings.ToLower(entity.Name), typ: entity.Type}

			if existing, ok := byKey[key]; ok {
				existing.Attributes = existing.Attributes.Merge(entity.Attributes)
				if entity.Confidence > existing.Confidence {
					existing.Confidence = entity.Confidence
				}
				if existing.Category == "" {
					existing.Category = entity.Category
				}
				survivors[entity.ID] = existing.ID
				continue
			}

			byKey[key] = entity
			survivors[entity.ID] = entity.ID
			merged.AddEntity(entity)
		}

		relationsByKey := map[relationKey]*model.Relation{}
		for _, r := range merged.Relations {
			relationsByKey[relationKey{r.SourceEntityID, r.TargetEntityID, r.Type}] = r
		}

		for _, relation := range graph.Relations {
			source, ok := survivors[relation.SourceEntityID]
			if !ok {
				continue
			}
			target, ok := survivors[relation.TargetEntityID]
			if !ok {
				continue
			}
			relation.SourceEntityID = source
			relation.TargetEntityID = target

			key := relationKey{source, target, relation.Type}
			if existing, ok := relationsByKey[key]; ok {
				existing.Weight = min(existing.Weight+mergeWeightBoost, maxRelationWeight)
				existing.UpdatedAt = now
				continue
			}

			relationsByKey[key] = relation
			// Endpoints are guaranteed present: both map to surviving entities
			_ = merged.AddRelation(relation)
		}
	}

	return merged
}
