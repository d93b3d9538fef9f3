package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spendgraph/spendgraph/pkg/domain/model"
	"github.com/spendgraph/spendgraph/pkg/domain/types"
)

const analyticsTopN = 10

// AnalyzeGraph computes frequency and spend aggregates over one stored
// graph: top products, top merchants, category distribution and the
// relation type histogram.
func (uc *UseCases) AnalyzeGraph(ctx context.Context, graphID types.GraphID) (*model.GraphAnalytics, error) {
	graph, err := uc.repo.Graph().Get(ctx, graphID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load graph for analytics",
			goerr.V("graph_id", graphID))
	}

	return analyzeGraph(graph), nil
}

func analyzeGraph(graph *model.KnowledgeGraph) *model.GraphAnalytics {
	analytics := &model.GraphAnalytics{
		GraphID:               graph.ID,
		CategoryDistribution:  map[string]int{},
		RelationTypeCounts:    map[types.RelationType]int{},
		TotalReceiptsAnalyzed: len(graph.ReceiptIDs),
		AnalyzedAt:            time.Now().UTC(),
	}

	entityByID := make(map[types.EntityID]*model.Entity, len(graph.Entities))
	for _, e := range graph.Entities {
		entityByID[e.ID] = e
	}

	// Products ranked by occurrence under a case-insensitive name key
	type productAgg struct {
		name  string
		count int
		spent float64
	}
	products := map[string]*productAgg{}
	var productOrder []string

	for _, e := range graph.Entities {
		if e.Type != types.EntityTypeProduct {
			continue
		}
		key := strings.ToLower(e.Name)
		agg, ok := products[key]
		if !ok {
			agg = &productAgg{name: e.Name}
			products[key] = agg
			productOrder = append(productOrder, key)
		}
		agg.count++
		agg.spent += e.Attributes.TotalPrice
	}

	// Merchants ranked by purchase edges; spend summed from edge prices
	type merchantAgg struct {
		name   string
		visits int
		spent  float64
	}
	merchants := map[types.EntityID]*merchantAgg{}
	var merchantOrder []types.EntityID

	for _, r := range graph.Relations {
		analytics.RelationTypeCounts[r.Type]++

		switch r.Type {
		case types.RelationPurchasedAt:
			merchant, ok := entityByID[r.TargetEntityID]
			if !ok {
				continue
			}
			agg, exists := merchants[merchant.ID]
			if !exists {
				agg = &merchantAgg{name: merchant.Name}
				merchants[merchant.ID] = agg
				merchantOrder = append(merchantOrder, merchant.ID)
			}
			agg.visits++
			agg.spent += r.Attributes.Price

		case types.RelationBelongsToCategory:
			if category, ok := entityByID[r.TargetEntityID]; ok {
				analytics.CategoryDistribution[category.Name]++
			}
		}
	}

	for _, key := range productOrder {
		agg := products[key]
		analytics.MostFrequentProducts = append(analytics.MostFrequentProducts, model.ProductStat{
			Name:       agg.name,
			Count:      agg.count,
			TotalSpent: agg.spent,
		})
	}
	sort.SliceStable(analytics.MostFrequentProducts, func(i, j int) bool {
		return analytics.MostFrequentProducts[i].Count > analytics.MostFrequentProducts[j].Count
	})
	if len(analytics.MostFrequentProducts) > analyticsTopN {
		analytics.MostFrequentProducts = analytics.MostFrequentProducts[:analyticsTopN]
	}

	for _, id := range merchantOrder {
		agg := merchants[id]
		analytics.MostFrequentMerchants = append(analytics.MostFrequentMerchants, model.MerchantStat{
			Name:       agg.name,
			VisitCount: agg.visits,
			TotalSpent: agg.spent,
		})
	}
	sort.SliceStable(analytics.MostFrequentMerchants, func(i, j int) bool {
		return analytics.MostFrequentMerchants[i].VisitCount > analytics.MostFrequentMerchants[j].VisitCount
	})
	if len(analytics.MostFrequentMerchants) > analyticsTopN {
		analytics.MostFrequentMerchants = analytics.MostFrequentMerchants[:analyticsTopN]
	}

	return analytics
}
