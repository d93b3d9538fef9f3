package types

import "fmt"

// EntityType represents the type of a knowledge graph entity.
// The set is closed; the assembler never emits anything outside it.
type EntityType string

const (
	EntityTypeProduct       EntityType = "product"
	EntityTypeMerchant      EntityType = "merchant"
	EntityTypeCategory      EntityType = "category"
	EntityTypeLocation      EntityType = "location"
	EntityTypeBrand         EntityType = "brand"
	EntityTypePaymentMethod EntityType = "payment_method"
)

// AllEntityTypes returns all valid entity types
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeProduct,
		EntityTypeMerchant,
		EntityTypeCategory,
		EntityTypeLocation,
		EntityTypeBrand,
		EntityTypePaymentMethod,
	}
}

// IsValid checks if the entity type is valid
func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeProduct,
		EntityTypeMerchant,
		EntityTypeCategory,
		EntityTypeLocation,
		EntityTypeBrand,
		EntityTypePaymentMethod:
		return true
	default:
		return false
	}
}

// String returns the string representation of the entity type
func (t EntityType) String() string {
	return string(t)
}

// ParseEntityType parses a string into an EntityType
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid entity type: %s", s)
	}
	return t, nil
}
