package model

import (
	"time"

	"github.com/spendgraph/spendgraph/pkg/domain/types"
)

// GraphAnalytics holds frequency and spend aggregates computed over one graph
type GraphAnalytics struct {
	GraphID types.GraphID `json:"graph_id"`

	MostFrequentProducts  []ProductStat  `json:"most_frequent_products"`
	MostFrequentMerchants []MerchantStat `json:"most_frequent_merchants"`

	CategoryDistribution map[string]int             `json:"category_distribution"`
	RelationTypeCounts   map[types.RelationType]int `json:"relation_type_counts"`

	TotalReceiptsAnalyzed int       `json:"total_receipts_analyzed"`
	AnalyzedAt            time.Time `json:"analysis_date"`
}

// ProductStat is one row of the top-products ranking
type ProductStat struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	TotalSpent float64 `json:"total_spent"`
}

// MerchantStat is one row of the top-merchants ranking. VisitCount is
// the number of purchased_at relations touching the merchant.
type MerchantStat struct {
	Name       string  `json:"name"`
	VisitCount int     `json:"visit_count"`
	TotalSpent float64 `json:"total_spent"`
}
