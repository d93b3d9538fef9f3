package types

import "fmt"

// RelationType represents the type of a directed edge between two entities.
// The assembler emits only the first five; similar_to and
// frequently_bought_together are reserved for derived relations.
type RelationType string

const (
	RelationPurchasedAt              RelationType = "purchased_at"
	RelationBelongsToCategory        RelationType = "belongs_to_category"
	RelationManufacturedBy           RelationType = "manufactured_by"
	RelationLocatedAt                RelationType = "located_at"
	RelationPaidWith                 RelationType = "paid_with"
	RelationSimilarTo                RelationType = "similar_to"
	RelationFrequentlyBoughtTogether RelationType = "frequently_bought_together"
)

// AllRelationTypes returns all valid relation types
func AllRelationTypes() []RelationType {
	return []RelationType{
		RelationPurchasedAt,
		RelationBelongsToCategory,
		RelationManufacturedBy,
		RelationLocatedAt,
		RelationPaidWith,
		RelationSimilarTo,
		RelationFrequentlyBoughtTogether,
	}
}

// IsValid checks if the relation type is valid
func (t RelationType) IsValid() bool {
	switch t {
	case RelationPurchasedAt,
		RelationBelongsToCategory,
		RelationManufacturedBy,
		RelationLocatedAt,
		RelationPaidWith,
		RelationSimilarTo,
		RelationFrequentlyBoughtTogether:
		return true
	default:
		return false
	}
}

// String returns the string representation of the relation type
func (t RelationType) String() string {
	return string(t)
}

// ParseRelationType parses a string into a RelationType
func ParseRelationType(s string) (RelationType, error) {
	t := RelationType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid relation type: %s", s)
	}
	return t, nil
}
