package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spendgraph/spendgraph/pkg/domain/interfaces"
	"github.com/spendgraph/spendgraph/pkg/domain/model"
	"github.com/spendgraph/spendgraph/pkg/domain/types"
)

type graphRepository struct {
	mu     sync.RWMutex
	graphs map[types.GraphID]*model.KnowledgeGraph
}

func newGraphRepository() *graphRepository {
	return &graphRepository{
		graphs: make(map[types.GraphID]*model.KnowledgeGraph),
	}
}

func (r *graphRepository) Put(ctx context.Context, graph *model.KnowledgeGraph) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	graph.UpdatedAt = time.Now().UTC()
	r.graphs[graph.ID] = graph.Clone()
	return nil
}

func (r *graphRepository) Get(ctx context.Context, id types.GraphID) (*model.KnowledgeGraph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	graph, ok := r.graphs[id]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrGraphNotFound, "graph not found", goerr.V("id", id))
	}

	return graph.Clone(), nil
}

func (r *graphRepository) GetByName(ctx context.Context, userID types.UserID, name string) (*model.KnowledgeGraph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, graph := range r.graphs {
		if graph.UserID == userID && graph.Name == name {
			return graph.Clone(), nil
		}
	}

	return nil, goerr.Wrap(interfaces.ErrGraphNotFound, "graph not found",
		goerr.V("user_id", userID), goerr.V("name", name))
}

func (r *graphRepository) ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.KnowledgeGraph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	graphs := make([]*model.KnowledgeGraph, 0)
	for _, graph := range r.graphs {
		if graph.UserID == userID {
			graphs = append(graphs, graph.Clone())
		}
	}

	sort.Slice(graphs, func(i, j int) bool {
		return graphs[i].UpdatedAt.After(graphs[j].UpdatedAt)
	})

	if len(graphs) > limit {
		graphs = graphs[:limit]
	}

	return graphs, nil
}

func (r *graphRepository) Delete(ctx context.Context, id types.GraphID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.graphs[id]; !ok {
		return goerr.Wrap(interfaces.ErrGraphNotFound, "graph not found", goerr.V("id", id))
	}

	delete(r.graphs, id)
	return nil
}
