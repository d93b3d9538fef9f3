package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spendgraph/spendgraph/pkg/domain/interfaces"
	"github.com/spendgraph/spendgraph/pkg/domain/model"
	"github.com/spendgraph/spendgraph/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const graphCollection = "knowledge_graphs"

type graphRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newGraphRepository(client *firestore.Client) *graphRepository {
	return &graphRepository{
		client: client,
	}
}

func (r *graphRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + graphCollection)
}

func (r *graphRepository) Put(ctx context.Context, graph *model.KnowledgeGraph) error {
	graph.UpdatedAt = time.Now().UTC()

	docRef := r.collection().Doc(string(graph.ID))
	if _, err := docRef.Set(ctx, graph); err != nil {
		return goerr.Wrap(err, "failed to put graph", goerr.V("id", graph.ID))
	}

	return nil
}

func (r *graphRepository) Get(ctx context.Context, id types.GraphID) (*model.KnowledgeGraph, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrGraphNotFound, "graph not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get graph", goerr.V("id", id))
	}

	var graph model.KnowledgeGraph
	if err := doc.DataTo(&graph); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal graph", goerr.V("id", id))
	}

	return &graph, nil
}

func (r *graphRepository) GetByName(ctx context.Context, userID types.UserID, name string) (*model.KnowledgeGraph, error) {
	iter := r.collection().
		Where("user_id", "==", string(userID)).
		Where("name", "==", name).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(interfaces.ErrGraphNotFound, "graph not found",
			goerr.V("user_id", userID), goerr.V("name", name))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query graph by name",
			goerr.V("user_id", userID), goerr.V("name", name))
	}

	var graph model.KnowledgeGraph
	if err := doc.DataTo(&graph); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal graph", goerr.V("name", name))
	}

	return &graph, nil
}

func (r *graphRepository) ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.KnowledgeGraph, error) {
	iter := r.collection().
		Where("user_id", "==", string(userID)).
		OrderBy("updated_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	graphs := make([]*model.KnowledgeGraph, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate graphs", goerr.V("user_id", userID))
		}

		var graph model.KnowledgeGraph
		if err := doc.DataTo(&graph); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal graph")
		}

		graphs = append(graphs, &graph)
	}

	return graphs, nil
}

func (r *graphRepository) Delete(ctx context.Context, id types.GraphID) error {
	docRef := r.collection().Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrGraphNotFound, "graph not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get graph", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete graph", goerr.V("id", id))
	}

	return nil
}
