package model

import (
	"time"

	"github.com/spendgraph/spendgraph/pkg/domain/types"
)

// Entity represents a node in the knowledge graph
type Entity struct {
	ID   types.EntityID   `json:"id" firestore:"id"`
	Name string           `json:"name" firestore:"name"`
	Type types.EntityType `json:"type" firestore:"type"`

	// Category is populated only for product entities
	Category string `json:"category,omitempty" firestore:"category,omitempty"`

	Attributes EntityAttributes `json:"attributes" firestore:"attributes"`

	// Confidence is a [0,1] classification certainty. Entities that are
	// not AI-classified (merchant, location, payment method) default to 1.0.
	Confidence float64 `json:"confidence" firestore:"confidence"`

	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

// NewEntity creates an entity with a fresh ID and full confidence
func NewEntity(name string, entityType types.EntityType) *Entity {
	now := time.Now().UTC()
	return &Entity{
		ID:         types.NewEntityID(),
		Name:       name,
		Type:       entityType,
		Confidence: 1.0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// EntityAttributes holds the known optional attribute blocks of an entity.
// The schema is additive and partially populated; which fields are set
// depends on the entity type.
type EntityAttributes struct {
	// Merchant fields
	Address     string  `json:"address,omitempty" firestore:"address,omitempty"`
	Phone       string  `json:"phone,omitempty" firestore:"phone,omitempty"`
	TaxID       string  `json:"tax_id,omitempty" firestore:"tax_id,omitempty"`
	TotalAmount float64 `json:"total_amount,omitempty" firestore:"total_amount,omitempty"`

	// Location / category / brand context
	Role         string `json:"role,omitempty" firestore:"role,omitempty"`
	DetectedFrom string `json:"detected_from,omitempty" firestore:"detected_from,omitempty"`

	// Payment method fields
	CardLastFour string `json:"card_last_four,omitempty" firestore:"card_last_four,omitempty"`

	// Product fields
	Price       float64 `json:"price,omitempty" firestore:"price,omitempty"`
	Quantity    int     `json:"quantity,omitempty" firestore:"quantity,omitempty"`
	TotalPrice  float64 `json:"total_price,omitempty" firestore:"total_price,omitempty"`
	SKU         string  `json:"sku,omitempty" firestore:"sku,omitempty"`
	Description string  `json:"description,omitempty" firestore:"description,omitempty"`
	Brand       string  `json:"brand,omitempty" firestore:"brand,omitempty"`
	ProductType string  `json:"product_type,omitempty" firestore:"product_type,omitempty"`

	Warranty      *WarrantyInfo  `json:"warranty,omitempty" firestore:"warranty,omitempty"`
	Expiry        *ExpiryInfo    `json:"expiry,omitempty" firestore:"expiry,omitempty"`
	Nutrition     *NutritionInfo `json:"nutrition,omitempty" firestore:"nutrition,omitempty"`
	PriceAnalysis *PriceAnalysis `json:"price_analysis,omitempty" firestore:"price_analysis,omitempty"`
}

// WarrantyInfo describes warranty coverage of a product
type WarrantyInfo struct {
	HasWarranty bool   `json:"has_warranty" firestore:"has_warranty"`
	Period      string `json:"warranty_period,omitempty" firestore:"warranty_period,omitempty"`
	Expiry      string `json:"warranty_expiry,omitempty" firestore:"warranty_expiry,omitempty"`
}

// ExpiryInfo describes the expiry outlook of a product. ExpiryDate uses
// the YYYY-MM-DD format throughout.
type ExpiryInfo struct {
	HasExpiry         bool   `json:"has_expiry" firestore:"has_expiry"`
	ExpiryDate        string `json:"expiry_date,omitempty" firestore:"expiry_date,omitempty"`
	IsExpiringSoon    bool   `json:"is_expiring_soon" firestore:"is_expiring_soon"`
	DaysUntilExpiry   int    `json:"days_until_expiry,omitempty" firestore:"days_until_expiry,omitempty"`
	ShelfLifeAnalysis string `json:"shelf_life_analysis,omitempty" firestore:"shelf_life_analysis,omitempty"`
}

// NutritionInfo carries food flags of a product
type NutritionInfo struct {
	IsFood      bool     `json:"is_food" firestore:"is_food"`
	Allergens   []string `json:"allergens,omitempty" firestore:"allergens,omitempty"`
	DietaryTags []string `json:"dietary_tags,omitempty" firestore:"dietary_tags,omitempty"`
}

// PriceAnalysis carries per-unit pricing and discount flags of a product
type PriceAnalysis struct {
	UnitPrice          float64 `json:"unit_price" firestore:"unit_price"`
	PricePerUnit       float64 `json:"price_per_unit,omitempty" firestore:"price_per_unit,omitempty"`
	IsDiscounted       bool    `json:"is_discounted" firestore:"is_discounted"`
	DiscountPercentage float64 `json:"discount_percentage,omitempty" firestore:"discount_percentage,omitempty"`
	OriginalPrice      float64 `json:"original_price,omitempty" firestore:"original_price,omitempty"`
}

// Merge returns the union of a and other. Fields set on other overwrite
// the receiver's, matching map-union semantics where later keys win.
func (a EntityAttributes) Merge(other EntityAttributes) EntityAttributes {
	merged := a

	if other.Address != "" {
		merged.Address = other.Address
	}
	if other.Phone != "" {
		merged.Phone = other.Phone
	}
	if other.TaxID != "" {
		merged.TaxID = other.TaxID
	}
	if other.TotalAmount != 0 {
		merged.TotalAmount = other.TotalAmount
	}
	if other.Role != "" {
		merged.Role = other.Role
	}
	if other.DetectedFrom != "" {
		merged.DetectedFrom = other.DetectedFrom
	}
	if other.CardLastFour != "" {
		merged.CardLastFour = other.CardLastFour
	}
	if other.Price != 0 {
		merged.Price = other.Price
	}
	if other.Quantity != 0 {
		merged.Quantity = other.Quantity
	}
	if other.TotalPrice != 0 {
		merged.TotalPrice = other.TotalPrice
	}
	if other.SKU != "" {
		merged.SKU = other.SKU
	}
	if other.Description != "" {
		merged.Description = other.Description
	}
	if other.Brand != "" {
		merged.Brand = other.Brand
	}
	if other.ProductType != "" {
		merged.ProductType = other.ProductType
	}
	if other.Warranty != nil {
		merged.Warranty = other.Warranty
	}
	if other.Expiry != nil {
		merged.Expiry = other.Expiry
	}
	if other.Nutrition != nil {
		merged.Nutrition = other.Nutrition
	}
	if other.PriceAnalysis != nil {
		merged.PriceAnalysis = other.PriceAnalysis
	}

	return merged
}
