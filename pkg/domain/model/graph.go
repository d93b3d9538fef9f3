package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spendgraph/spendgraph/pkg/domain/types"
)

// KnowledgeGraph aggregates the entities and relations built from one
// receipt, or from a merge of several graphs. Once persisted it is only
// modified through an explicit merge, which produces a new graph.
type KnowledgeGraph struct {
	ID          types.GraphID `json:"id" firestore:"id"`
	Name        string        `json:"name" firestore:"name"`
	Description string        `json:"description,omitempty" firestore:"description,omitempty"`

	Entities  []*Entity   `json:"entities" firestore:"entities"`
	Relations []*Relation `json:"relations" firestore:"relations"`

	ReceiptIDs []types.ReceiptID `json:"receipt_ids" firestore:"receipt_ids"`
	UserID     types.UserID      `json:"user_id" firestore:"user_id"`

	// Counters are recomputed on every mutation so that
	// TotalEntities == len(Entities) and TotalRelations == len(Relations)
	TotalEntities  int `json:"total_entities" firestore:"total_entities"`
	TotalRelations int `json:"total_relations" firestore:"total_relations"`

	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

// NewKnowledgeGraph creates an empty graph owned by the given user
func NewKnowledgeGraph(name string, userID types.UserID) *KnowledgeGraph {
	now := time.Now().UTC()
	return &KnowledgeGraph{
		ID:        types.NewGraphID(),
		Name:      name,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddEntity appends an entity and recomputes the entity counter
func (g *KnowledgeGraph) AddEntity(entity *Entity) {
	g.Entities = append(g.Entities, entity)
	g.TotalEntities = len(g.Entities)
	g.UpdatedAt = time.Now().UTC()
}

// AddRelation appends a relation and recomputes the relation counter.
// Both endpoints must already exist in the graph.
func (g *KnowledgeGraph) AddRelation(relation *Relation) error {
	if g.EntityByID(relation.SourceEntityID) == nil {
		return goerr.New("relation source entity not in graph",
			goerr.V("source_entity_id", relation.SourceEntityID),
			goerr.V("relation_type", relation.Type))
	}
	if g.EntityByID(relation.TargetEntityID) == nil {
		return goerr.New("relation target entity not in graph",
			goerr.V("target_entity_id", relation.TargetEntityID),
			goerr.V("relation_type", relation.Type))
	}

	g.Relations = append(g.Relations, relation)
	g.TotalRelations = len(g.Relations)
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// EntityByID returns the entity with the given ID, or nil
func (g *KnowledgeGraph) EntityByID(id types.EntityID) *Entity {
	for _, e := range g.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// EntitiesByType returns all entities of the given type in insertion order
func (g *KnowledgeGraph) EntitiesByType(entityType types.EntityType) []*Entity {
	var entities []*Entity
	for _, e := range g.Entities {
		if e.Type == entityType {
			entities = append(entities, e)
		}
	}
	return entities
}

// RelationsForEntity returns all relations touching the given entity
func (g *KnowledgeGraph) RelationsForEntity(id types.EntityID) []*Relation {
	var relations []*Relation
	for _, r := range g.Relations {
		if r.SourceEntityID == id || r.TargetEntityID == id {
			relations = append(relations, r)
		}
	}
	return relations
}

// Clone returns a deep copy of the graph. Merge operates on clones so
// that source graphs are never mutated.
func (g *KnowledgeGraph) Clone() *KnowledgeGraph {
	copied := &KnowledgeGraph{
		ID:             g.ID,
		Name:           g.Name,
		Description:    g.Description,
		UserID:         g.UserID,
		TotalEntities:  g.TotalEntities,
		TotalRelations: g.TotalRelations,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}

	if g.Entities != nil {
		copied.Entities = make([]*Entity, len(g.Entities))
		for i, e := range g.Entities {
			entity := *e
			copied.Entities[i] = &entity
		}
	}
	if g.Relations != nil {
		copied.Relations = make([]*Relation, len(g.Relations))
		for i, r := range g.Relations {
			relation := *r
			copied.Relations[i] = &relation
		}
	}
	if g.ReceiptIDs != nil {
		copied.ReceiptIDs = make([]types.ReceiptID, len(g.ReceiptIDs))
		copy(copied.ReceiptIDs, g.ReceiptIDs)
	}

	return copied
}
