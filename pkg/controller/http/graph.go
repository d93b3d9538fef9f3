package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spendgraph/spendgraph/pkg/domain/model"
	"github.com/spendgraph/spendgraph/pkg/domain/types"
	"github.com/spendgraph/spendgraph/pkg/usecase"
	"github.com/spendgraph/spendgraph/pkg/utils/errutil"
)

// buildGraph constructs a knowledge graph from a posted receipt
func (s *Server) buildGraph(w http.ResponseWriter, r *http.Request) {
	var receipt model.Receipt
	if err := json.NewDecoder(r.Body).Decode(&receipt); err != nil {
		errutil.HandleHTTP(r.Context(), w,
			goerr.Wrap(err, "invalid receipt body"), http.StatusBadRequest)
		return
	}
	if receipt.ID == "" {
		receipt.ID = types.NewReceiptID()
	}

	graph, err := s.uc.BuildFromReceipt(r.Context(), &receipt)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, buildErrorStatus(err))
		return
	}

	respondJSON(w, r, http.StatusCreated, graph)
}

// listGraphs returns a user's graphs, most recently updated first
func (s *Server) listGraphs(w http.ResponseWriter, r *http.Request) {
	userID := types.UserID(r.URL.Query().Get("user_id"))
	if userID == "" {
		errutil.HandleHTTP(r.Context(), w,
			goerr.New("user_id query parameter is required"), http.StatusBadRequest)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w,
				goerr.Wrap(err, "invalid limit"), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	graphs, err := s.uc.ListGraphs(r.Context(), userID, limit)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"graphs": graphs,
		"count":  len(graphs),
	})
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	graphID := types.GraphID(chi.URLParam(r, "graphID"))

	graph, err := s.uc.GetGraph(r.Context(), graphID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, notFoundStatus(err))
		return
	}

	respondJSON(w, r, http.StatusOK, graph)
}

func (s *Server) deleteGraph(w http.ResponseWriter, r *http.Request) {
	graphID := types.GraphID(chi.URLParam(r, "graphID"))

	if err := s.uc.DeleteGraph(r.Context(), graphID); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, notFoundStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type mergeRequest struct {
	UserID   types.UserID    `json:"user_id"`
	GraphIDs []types.GraphID `json:"graph_ids"`
}

// mergeGraphs combines stored graphs into a new one
func (s *Server) mergeGraphs(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w,
			goerr.Wrap(err, "invalid merge request body"), http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		errutil.HandleHTTP(r.Context(), w,
			goerr.New("user_id is required"), http.StatusBadRequest)
		return
	}

	merged, err := s.uc.MergeGraphs(r.Context(), req.UserID, req.GraphIDs)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, mergeErrorStatus(err))
		return
	}

	respondJSON(w, r, http.StatusCreated, merged)
}

func (s *Server) graphAnalytics(w http.ResponseWriter, r *http.Request) {
	graphID := types.GraphID(chi.URLParam(r, "graphID"))

	analytics, err := s.uc.AnalyzeGraph(r.Context(), graphID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, notFoundStatus(err))
		return
	}

	respondJSON(w, r, http.StatusOK, analytics)
}

func buildErrorStatus(err error) int {
	if errors.Is(err, usecase.ErrEmptyMerchantName) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func mergeErrorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNoGraphsToMerge):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrGraphNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func notFoundStatus(err error) int {
	if errors.Is(err, usecase.ErrGraphNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
