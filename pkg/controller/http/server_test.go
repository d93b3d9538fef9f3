package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	server "github.com/spendgraph/spendgraph/pkg/controller/http"
	"github.com/spendgraph/spendgraph/pkg/domain/model"
	"github.com/spendgraph/spendgraph/pkg/domain/types"
	"github.com/spendgraph/spendgraph/pkg/repository/memory"
	"github.com/spendgraph/spendgraph/pkg/usecase"
)

func newTestServer() (*server.Server, *usecase.UseCases) {
	uc := usecase.New(memory.New(), usecase.WithSyncPersist())
	return server.New(uc), uc
}

func receiptBody(t *testing.T, merchantName string) *bytes.Buffer {
	t.Helper()

	receipt := model.Receipt{
		UserID:        "user-1",
		MerchantName:  merchantName,
		Date:          time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
		TotalAmount:   6.48,
		PaymentMethod: "cash",
		Items: []model.ReceiptItem{
			{Name: "Whole Milk", UnitPrice: 3.49, Quantity: 1, TotalPrice: 3.49},
			{Name: "Brown Bread", UnitPrice: 2.99, Quantity: 1, TotalPrice: 2.99},
		},
	}

	body := &bytes.Buffer{}
	gt.NoError(t, json.NewEncoder(body).Encode(receipt)).Required()
	return body
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestBuildGraphEndpoint(t *testing.T) {
	t.Run("valid receipt", func(t *testing.T) {
		srv, _ := newTestServer()

		req := httptest.NewRequest(http.MethodPost, "/api/graphs", receiptBody(t, "Fresh Mart"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusCreated)

		var graph model.KnowledgeGraph
		gt.NoError(t, json.NewDecoder(rec.Body).Decode(&graph)).Required()
		gt.Value(t, graph.Name).Equal("2026-08-26_Fresh_Mart")
		gt.Number(t, graph.TotalEntities).Greater(0)
		gt.Number(t, graph.TotalRelations).Greater(0)
	})

	t.Run("missing merchant name", func(t *testing.T) {
		srv, _ := newTestServer()

		req := httptest.NewRequest(http.MethodPost, "/api/graphs", receiptBody(t, ""))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv, _ := newTestServer()

		req := httptest.NewRequest(http.MethodPost, "/api/graphs", bytes.NewBufferString("not json"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestGetAndListGraphEndpoints(t *testing.T) {
	srv, uc := newTestServer()
	ctx := context.Background()

	graph, err := uc.BuildFromReceipt(ctx, &model.Receipt{
		ID:           types.NewReceiptID(),
		UserID:       "user-1",
		MerchantName: "Corner Shop",
		Date:         time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		Items:        []model.ReceiptItem{{Name: "Tea", UnitPrice: 2, Quantity: 1, TotalPrice: 2}},
	})
	gt.NoError(t, err).Required()

	t.Run("get by ID", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/graphs/"+string(graph.ID), nil))

		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var got model.KnowledgeGraph
		gt.NoError(t, json.NewDecoder(rec.Body).Decode(&got)).Required()
		gt.Value(t, got.ID).Equal(graph.ID)
	})

	t.Run("get missing returns 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/graphs/"+string(types.NewGraphID()), nil))

		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("list requires user_id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/graphs", nil))

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("list by user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/graphs?user_id=user-1", nil))

		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Graphs []*model.KnowledgeGraph `json:"graphs"`
			Count  int                     `json:"count"`
		}
		gt.NoError(t, json.NewDecoder(rec.Body).Decode(&resp)).Required()
		gt.Value(t, resp.Count).Equal(1)
		gt.Array(t, resp.Graphs).Length(1)
	})
}

func TestDeleteGraphEndpoint(t *testing.T) {
	srv, uc := newTestServer()

	graph, err := uc.BuildFromReceipt(context.Background(), &model.Receipt{
		UserID:       "user-1",
		MerchantName: "Delete Mart",
		Items:        []model.ReceiptItem{{Name: "Milk", UnitPrice: 1, Quantity: 1, TotalPrice: 1}},
	})
	gt.NoError(t, err).Required()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/graphs/"+string(graph.ID), nil))
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/graphs/"+string(graph.ID), nil))
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestMergeGraphsEndpoint(t *testing.T) {
	srv, uc := newTestServer()
	ctx := context.Background()

	var ids []types.GraphID
	for i := 0; i < 2; i++ {
		graph, err := uc.BuildFromReceipt(ctx, &model.Receipt{
			ID:           types.NewReceiptID(),
			UserID:       "user-1",
			MerchantName: "Merge Mart",
			Items:        []model.ReceiptItem{{Name: "Milk", UnitPrice: 2, Quantity: 1, TotalPrice: 2}},
		})
		gt.NoError(t, err).Required()
		ids = append(ids, graph.ID)
	}

	t.Run("merge two graphs", func(t *testing.T) {
		body := fmt.Sprintf(`{"user_id": "user-1", "graph_ids": ["%s", "%s"]}`, ids[0], ids[1])

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/graphs/merge", bytes.NewBufferString(body)))

		gt.Value(t, rec.Code).Equal(http.StatusCreated)

		var merged model.KnowledgeGraph
		gt.NoError(t, json.NewDecoder(rec.Body).Decode(&merged)).Required()
		gt.Array(t, merged.ReceiptIDs).Length(2)
	})

	t.Run("unknown IDs return 404", func(t *testing.T) {
		body := fmt.Sprintf(`{"user_id": "user-1", "graph_ids": ["%s"]}`, types.NewGraphID())

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/graphs/merge", bytes.NewBufferString(body)))

		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("empty ID list returns 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/graphs/merge",
			bytes.NewBufferString(`{"user_id": "user-1", "graph_ids": []}`)))

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestGraphAnalyticsEndpoint(t *testing.T) {
	srv, uc := newTestServer()

	graph, err := uc.BuildFromReceipt(context.Background(), &model.Receipt{
		ID:           types.NewReceiptID(),
		UserID:       "user-1",
		MerchantName: "Stats Mart",
		Items: []model.ReceiptItem{
			{Name: "Milk", UnitPrice: 3, Quantity: 1, TotalPrice: 3},
			{Name: "Bread", UnitPrice: 2, Quantity: 1, TotalPrice: 2},
		},
	})
	gt.NoError(t, err).Required()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/graphs/"+string(graph.ID)+"/analytics", nil))

	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var analytics model.GraphAnalytics
	gt.NoError(t, json.NewDecoder(rec.Body).Decode(&analytics)).Required()
	gt.Value(t, analytics.GraphID).Equal(graph.ID)
	gt.Array(t, analytics.MostFrequentProducts).Length(2)
	gt.Value(t, analytics.TotalReceiptsAnalyzed).Equal(1)
}
