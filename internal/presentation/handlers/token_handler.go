package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bimakw/uniswap-subgraph/internal/domain/entities"
	"github.com/bimakw/uniswap-subgraph/internal/domain/services"
)

// maxPairsLimit bounds the limit query parameter of the pairs listing
const maxPairsLimit = 1000

// TokenHandler serves token lookups
type TokenHandler struct {
	market *services.MarketService
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(market *services.MarketService) *TokenHandler {
	return &TokenHandler{market: market}
}

// PairsResponse lists the pools of a token
type PairsResponse struct {
	Token string          `json:"token"`
	Count int             `json:"count"`
	Pairs []entities.Pair `json:"pairs"`
}

// GetToken handles GET /api/v1/tokens/{id}
func (h *TokenHandler) GetToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.market.GetToken(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

// GetPairs handles GET /api/v1/tokens/{id}/pairs
func (h *TokenHandler) GetPairs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 || n > maxPairsLimit {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 1000")
			return
		}
		limit = n
	}

	id := chi.URLParam(r, "id")
	pairs, err := h.market.TopPairs(r.Context(), id, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PairsResponse{
		Token: id,
		Count: len(pairs),
		Pairs: pairs,
	})
}
