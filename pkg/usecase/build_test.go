package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/spendgraph/spendgraph/pkg/domain/interfaces"
	"github.com/spendgraph/spendgraph/pkg/domain/model"
	"github.com/spendgraph/spendgraph/pkg/domain/types"
	"github.com/spendgraph/spendgraph/pkg/repository/memory"
	"github.com/spendgraph/spendgraph/pkg/usecase"
)

func newTestUseCases(repo interfaces.Repository) *usecase.UseCases {
	return usecase.New(repo, usecase.WithSyncPersist())
}

func testReceipt(userID types.UserID) *model.Receipt {
	return &model.Receipt{
		ID:              types.NewReceiptID(),
		UserID:          userID,
		MerchantName:    "Fresh Mart",
		MerchantAddress: "123 Main Street",
		MerchantPhone:   "555-0001",
		Date:            time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC),
		TotalAmount:     9.48,
		PaymentMethod:   "credit_card",
		CardLastFour:    "4242",
		Items: []model.ReceiptItem{
			{Name: "Whole Milk", UnitPrice: 3.49, Quantity: 1, TotalPrice: 3.49},
			{Name: "Brown Bread", UnitPrice: 2.99, Quantity: 2, TotalPrice: 5.98},
		},
	}
}

func TestBuildFromReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("full receipt produces connected graph", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo)

		receipt := testReceipt("user-1")
		graph, err := uc.BuildFromReceipt(ctx, receipt)
		gt.NoError(t, err).Required()

		gt.Value(t, graph.Name).Equal("2026-08-26_Fresh_Mart")
		gt.Value(t, graph.UserID).Equal(types.UserID("user-1"))
		gt.Array(t, graph.ReceiptIDs).Length(1)

		// merchant, location, payment, 2 products, 1 shared category
		merchants := graph.EntitiesByType(types.EntityTypeMerchant)
		gt.Array(t, merchants).Length(1).Required()
		gt.Value(t, merchants[0].Name).Equal("Fresh Mart")
		gt.Value(t, merchants[0].Attributes.Address).Equal("123 Main Street")
		gt.Value(t, merchants[0].Attributes.TotalAmount).Equal(9.48)

		gt.Array(t, graph.EntitiesByType(types.EntityTypeLocation)).Length(1)
		payments := graph.EntitiesByType(types.EntityTypePaymentMethod)
		gt.Array(t, payments).Length(1).Required()
		gt.Value(t, payments[0].Attributes.CardLastFour).Equal("4242")

		products := graph.EntitiesByType(types.EntityTypeProduct)
		gt.Array(t, products).Length(2).Required()
		gt.Value(t, products[0].Category).Equal("grocery")
		gt.Value(t, products[0].Attributes.TotalPrice).Equal(3.49)

		// Both products share the grocery category entity
		gt.Array(t, graph.EntitiesByType(types.EntityTypeCategory)).Length(1)

		gt.Value(t, graph.TotalEntities).Equal(len(graph.Entities))
		gt.Value(t, graph.TotalRelations).Equal(len(graph.Relations))

		// Every relation endpoint resolves inside the graph
		for _, r := range graph.Relations {
			gt.Value(t, graph.EntityByID(r.SourceEntityID)).NotNil()
			gt.Value(t, graph.EntityByID(r.TargetEntityID)).NotNil()
		}
	})

	t.Run("relation wiring", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo)

		graph, err := uc.BuildFromReceipt(ctx, testReceipt("user-1"))
		gt.NoError(t, err).Required()

		counts := map[types.RelationType]int{}
		for _, r := range graph.Relations {
			counts[r.Type]++
		}
		gt.Value(t, counts[types.RelationPurchasedAt]).Equal(2)
		gt.Value(t, counts[types.RelationBelongsToCategory]).Equal(2)
		gt.Value(t, counts[types.RelationLocatedAt]).Equal(1)
		gt.Value(t, counts[types.RelationPaidWith]).Equal(1)

		for _, r := range graph.Relations {
			switch r.Type {
			case types.RelationPurchasedAt:
				gt.Number(t, r.Attributes.Price).Greater(0.0)
				gt.Value(t, r.Weight).Equal(1.0)
			case types.RelationPaidWith:
				gt.Value(t, r.Attributes.Amount).Equal(9.48)
			case types.RelationBelongsToCategory:
				gt.Value(t, r.Weight).Equal(0.7)
			}
		}
	})

	t.Run("graph is persisted", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo)

		graph, err := uc.BuildFromReceipt(ctx, testReceipt("user-1"))
		gt.NoError(t, err).Required()

		stored, err := repo.Graph().Get(ctx, graph.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Name).Equal(graph.Name)
	})

	t.Run("empty merchant name fails", func(t *testing.T) {
		uc := newTestUseCases(memory.New())

		receipt := testReceipt("user-1")
		receipt.MerchantName = "  "

		_, err := uc.BuildFromReceipt(ctx, receipt)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrEmptyMerchantName)).True()
	})

	t.Run("items recovered from raw text when structured list empty", func(t *testing.T) {
		uc := newTestUseCases(memory.New())

		receipt := testReceipt("user-1")
		receipt.Items = nil
		receipt.RawText = "MILK 1L  Rs. 55.00\nBREAD\n42.00\nTOTAL  97.00"
		receipt.TotalAmount = 97.00

		graph, err := uc.BuildFromReceipt(ctx, receipt)
		gt.NoError(t, err).Required()

		products := graph.EntitiesByType(types.EntityTypeProduct)
		gt.Array(t, products).Length(2).Required()
		gt.Value(t, products[0].Name).Equal("MILK 1L")
		gt.Value(t, products[1].Name).Equal("BREAD")
	})

	t.Run("richer extraction replaces structured items", func(t *testing.T) {
		uc := newTestUseCases(memory.New())

		receipt := testReceipt("user-1")
		receipt.Items = receipt.Items[:1]
		receipt.RawText = "Apple Juice  $4.00\nGrape Soda  $6.00\nGreen Tea  $3.00"
		receipt.TotalAmount = 0

		graph, err := uc.BuildFromReceipt(ctx, receipt)
		gt.NoError(t, err).Required()
		gt.Array(t, graph.EntitiesByType(types.EntityTypeProduct)).Length(3)
	})

	t.Run("structured items win over poorer extraction", func(t *testing.T) {
		uc := newTestUseCases(memory.New())

		receipt := testReceipt("user-1")
		receipt.RawText = "no items here"

		graph, err := uc.BuildFromReceipt(ctx, receipt)
		gt.NoError(t, err).Required()

		products := graph.EntitiesByType(types.EntityTypeProduct)
		gt.Array(t, products).Length(2).Required()
		gt.Value(t, products[0].Name).Equal("Whole Milk")
	})

	t.Run("long merchant name truncated in graph name", func(t *testing.T) {
		uc := newTestUseCases(memory.New())

		receipt := testReceipt("user-1")
		receipt.MerchantName = "An Extremely Long Supermarket Chain Name"

		graph, err := uc.BuildFromReceipt(ctx, receipt)
		gt.NoError(t, err).Required()
		gt.Value(t, graph.Name).Equal("2026-08-26_An_Extremely_Long_Su")
	})

	t.Run("multibyte merchant name truncated on rune boundary", func(t *testing.T) {
		uc := newTestUseCases(memory.New())

		receipt := testReceipt("user-1")
		receipt.MerchantName = "सुपरमार्केट फ्रेश मार्ट एंड ग्रोसरी स्टोर"

		graph, err := uc.BuildFromReceipt(ctx, receipt)
		gt.NoError(t, err).Required()

		name := strings.TrimPrefix(graph.Name, "2026-08-26_")
		gt.Bool(t, utf8.ValidString(name)).True()
		gt.Number(t, utf8.RuneCountInString(name)).LessOrEqual(20)
	})

	t.Run("storage failure does not fail the build", func(t *testing.T) {
		uc := newTestUseCases(&failingRepo{})

		graph, err := uc.BuildFromReceipt(ctx, testReceipt("user-1"))
		gt.NoError(t, err).Required()
		gt.Value(t, graph).NotNil()
	})
}

// failingRepo rejects every write to exercise the fire-and-forget
// persistence path
type failingRepo struct{}

var _ interfaces.Repository = &failingRepo{}

func (r *failingRepo) Graph() interfaces.GraphRepository { return &failingGraphRepo{} }
func (r *failingRepo) Close() error                      { return nil }

type failingGraphRepo struct{}

func (r *failingGraphRepo) Put(ctx context.Context, graph *model.KnowledgeGraph) error {
	return goerr.New("storage unavailable")
}

func (r *failingGraphRepo) Get(ctx context.Context, id types.GraphID) (*model.KnowledgeGraph, error) {
	return nil, goerr.New("storage unavailable")
}

func (r *failingGraphRepo) GetByName(ctx context.Context, userID types.UserID, name string) (*model.KnowledgeGraph, error) {
	return nil, goerr.New("storage unavailable")
}

func (r *failingGraphRepo) ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.KnowledgeGraph, error) {
	return nil, goerr.New("storage unavailable")
}

func (r *failingGraphRepo) Delete(ctx context.Context, id types.GraphID) error {
	return goerr.New("storage unavailable")
}
