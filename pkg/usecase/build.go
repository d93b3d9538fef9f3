package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spendgraph/spendgraph/pkg/domain/model"
	"github.com/spendgraph/spendgraph/pkg/domain/types"
	"github.com/spendgraph/spendgraph/pkg/service/classify"
	"github.com/spendgraph/spendgraph/pkg/utils/async"
	"github.com/spendgraph/spendgraph/pkg/utils/errutil"
	"github.com/spendgraph/spendgraph/pkg/utils/logging"
)

const maxMerchantNameInGraphName = 20

// BuildFromReceipt constructs a knowledge graph from one receipt:
// items are recovered from raw text when the structured list is
// missing or poorer, classified, and assembled into typed entities
// and relations. The graph is returned immediately and persisted in
// the background; a storage failure is logged but does not fail the
// build.
func (uc *UseCases) BuildFromReceipt(ctx context.Context, receipt *model.Receipt) (*model.KnowledgeGraph, error) {
	if receipt == nil {
		return nil, goerr.New("receipt is nil")
	}
	if strings.TrimSpace(receipt.MerchantName) == "" {
		return nil, goerr.Wrap(ErrEmptyMerchantName, "cannot build graph",
			goerr.V("receipt_id", receipt.ID))
	}

	items := uc.resolveItems(ctx, receipt)

	classifyInput := make([]classify.Item, len(items))
	for i, item := range items {
		classifyInput[i] = classify.Item{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.UnitPrice,
			Quantity:    item.Quantity,
		}
	}
	classifications, business := uc.classifier.Classify(ctx, receipt.MerchantName, classifyInput)

	graph, err := assembleGraph(receipt, items, classifications, business)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("knowledge graph built",
		"graph_id", graph.ID,
		"graph_name", graph.Name,
		"entities", graph.TotalEntities,
		"relations", graph.TotalRelations,
		"items", len(items))

	uc.persistGraph(ctx, graph)

	return graph, nil
}

// resolveItems decides between the receipt's structured item list and
// items recovered from raw text. Extraction wins when the structured
// list is empty or the extractor finds strictly more items.
func (uc *UseCases) resolveItems(ctx context.Context, receipt *model.Receipt) []model.ReceiptItem {
	extracted := uc.extractor.Extract(ctx, receipt.RawText, receipt.TotalAmount)

	if len(receipt.Items) == 0 || len(extracted) > len(receipt.Items) {
		items := make([]model.ReceiptItem, len(extracted))
		for i, e := range extracted {
			items[i] = model.ReceiptItem{
				Name:       e.Name,
				UnitPrice:  e.UnitPrice,
				Quantity:   e.Quantity,
				TotalPrice: e.TotalPrice,
			}
		}
		if len(receipt.Items) > 0 {
			logging.From(ctx).Debug("extracted items replace structured items",
				"structured", len(receipt.Items), "extracted", len(extracted))
		}
		return items
	}

	return receipt.Items
}

func assembleGraph(receipt *model.Receipt, items []model.ReceiptItem, classifications []classify.Classification, business *classify.BusinessAnalysis) (*model.KnowledgeGraph, error) {
	date := receipt.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	graph := model.NewKnowledgeGraph(graphName(receipt.MerchantName, date), receipt.UserID)
	graph.Description = fmt.Sprintf("Knowledge graph for receipt from %s on %s",
		receipt.MerchantName, date.Format("2006-01-02"))
	if receipt.ID != "" {
		graph.ReceiptIDs = []types.ReceiptID{receipt.ID}
	}

	merchant := model.NewEntity(receipt.MerchantName, types.EntityTypeMerchant)
	merchant.Attributes = model.EntityAttributes{
		Address:     receipt.MerchantAddress,
		Phone:       receipt.MerchantPhone,
		TaxID:       receipt.MerchantTaxID,
		TotalAmount: receipt.TotalAmount,
	}
	if business != nil {
		merchant.Category = business.BusinessCategory
	}
	graph.AddEntity(merchant)

	if receipt.MerchantAddress != "" {
		location := model.NewEntity(receipt.MerchantAddress, types.EntityTypeLocation)
		location.Attributes.Role = "merchant_location"
		graph.AddEntity(location)

		if err := graph.AddRelation(model.NewRelation(
			merchant.ID, location.ID, types.RelationLocatedAt, 1.0)); err != nil {
			return nil, err
		}
	}

	if receipt.PaymentMethod != "" {
		payment := model.NewEntity(receipt.PaymentMethod, types.EntityTypePaymentMethod)
		payment.Attributes.CardLastFour = receipt.CardLastFour
		graph.AddEntity(payment)

		paidWith := model.NewRelation(merchant.ID, payment.ID, types.RelationPaidWith, 1.0)
		paidWith.Attributes.Amount = receipt.TotalAmount
		paidWith.ReceiptID = receipt.ID
		paidWith.TransactionDate = date
		if err := graph.AddRelation(paidWith); err != nil {
			return nil, err
		}
	}

	// Category and brand entities are shared across items within the graph
	categoryEntities := map[string]*model.Entity{}
	brandEntities := map[string]*model.Entity{}

	for i, item := range items {
		var c classify.Classification
		if i < len(classifications) {
			c = classifications[i]
		}

		product := model.NewEntity(item.Name, types.EntityTypeProduct)
		product.Category = c.Category
		if c.Confidence > 0 {
			product.Confidence = c.Confidence
		}
		product.Attributes = model.EntityAttributes{
			Price:         item.UnitPrice,
			Quantity:      item.Quantity,
			TotalPrice:    item.TotalPrice,
			SKU:           item.SKU,
			Description:   item.Description,
			Brand:         c.Brand,
			ProductType:   c.ProductType,
			Warranty:      c.Warranty,
			Expiry:        c.Expiry,
			Nutrition:     c.Nutrition,
			PriceAnalysis: c.Price,
		}
		graph.AddEntity(product)

		purchased := model.NewRelation(product.ID, merchant.ID, types.RelationPurchasedAt, 1.0)
		purchased.Attributes.Price = item.TotalPrice
		purchased.ReceiptID = receipt.ID
		purchased.TransactionDate = date
		if err := graph.AddRelation(purchased); err != nil {
			return nil, err
		}

		if c.Category != "" {
			category, ok := categoryEntities[c.Category]
			if !ok {
				category = model.NewEntity(c.Category, types.EntityTypeCategory)
				categoryEntities[c.Category] = category
				graph.AddEntity(category)
			}

			weight := c.Confidence
			if weight <= 0 {
				weight = 0.5
			}
			if err := graph.AddRelation(model.NewRelation(
				product.ID, category.ID, types.RelationBelongsToCategory, weight)); err != nil {
				return nil, err
			}
		}

		if c.Brand != "" {
			brand, ok := brandEntities[c.Brand]
			if !ok {
				brand = model.NewEntity(c.Brand, types.EntityTypeBrand)
				brandEntities[c.Brand] = brand
				graph.AddEntity(brand)
			}

			if err := graph.AddRelation(model.NewRelation(
				product.ID, brand.ID, types.RelationManufacturedBy, 0.9)); err != nil {
				return nil, err
			}
		}
	}

	return graph, nil
}

// graphName builds the storage name: purchase date plus the merchant
// name with path-hostile characters replaced and length capped. The
// cap counts runes so a multibyte name is never cut mid-character.
func graphName(merchantName string, date time.Time) string {
	sanitized := strings.NewReplacer(" ", "_", "/", "_", "\\", "_").Replace(merchantName)
	if runes := []rune(sanitized); len(runes) > maxMerchantNameInGraphName {
		sanitized = string(runes[:maxMerchantNameInGraphName])
	}
	return fmt.Sprintf("%s_%s", date.Format("2006-01-02"), sanitized)
}

// persistGraph stores the graph, in the background by default. The
// build result is already in the caller's hands, so a storage failure
// is reported but never propagated.
func (uc *UseCases) persistGraph(ctx context.Context, graph *model.KnowledgeGraph) {
	store := func(ctx context.Context) error {
		if err := uc.repo.Graph().Put(ctx, graph); err != nil {
			errutil.Handle(ctx, err, "failed to persist knowledge graph")
		}
		return nil
	}

	if uc.persistSync {
		_ = store(ctx)
		return
	}
	async.Dispatch(ctx, store)
}
