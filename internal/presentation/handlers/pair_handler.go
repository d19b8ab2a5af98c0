package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bimakw/uniswap-subgraph/internal/domain/entities"
	"github.com/bimakw/uniswap-subgraph/internal/domain/services"
	"github.com/bimakw/uniswap-subgraph/internal/infrastructure/subgraph"
)

// maxSwapsPage is the largest page the subgraph serves
const maxSwapsPage = 1000

// PairHandler serves pool resolution and swap listings
type PairHandler struct {
	market *services.MarketService
}

// NewPairHandler creates a new pair handler
func NewPairHandler(market *services.MarketService) *PairHandler {
	return &PairHandler{market: market}
}

// SwapsResponse lists mapped swaps of a pool
type SwapsResponse struct {
	Pair  string                 `json:"pair"`
	Count int                    `json:"count"`
	Swaps []entities.Transaction `json:"swaps"`
}

// SwapsNearResponse lists unmapped swap records around a timestamp
type SwapsNearResponse struct {
	Pair  string               `json:"pair"`
	Start int64                `json:"start"`
	End   int64                `json:"end"`
	Count int                  `json:"count"`
	Swaps []subgraph.RawRecord `json:"swaps"`
}

// Resolve handles GET /api/v1/pairs/resolve?token0=&token1=
func (h *PairHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	token0 := r.URL.Query().Get("token0")
	token1 := r.URL.Query().Get("token1")
	if token0 == "" || token1 == "" {
		writeError(w, http.StatusBadRequest, "missing_params", "token0 and token1 are required")
		return
	}

	pair, err := h.market.ResolvePair(r.Context(), token0, token1)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

// Swaps handles GET /api/v1/pairs/{id}/swaps
func (h *PairHandler) Swaps(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := subgraph.SwapQueryOptions{
		OrderBy:        query.Get("orderBy"),
		OrderDirection: query.Get("orderDirection"),
	}

	if firstStr := query.Get("first"); firstStr != "" {
		first, err := strconv.Atoi(firstStr)
		if err != nil || first <= 0 || first > maxSwapsPage {
			writeError(w, http.StatusBadRequest, "invalid_first", "first must be between 1 and 1000")
			return
		}
		opts.First = first
	}
	if opts.OrderDirection != "" && opts.OrderDirection != "asc" && opts.OrderDirection != "desc" {
		writeError(w, http.StatusBadRequest, "invalid_order_direction", "orderDirection must be asc or desc")
		return
	}

	pairID := chi.URLParam(r, "id")
	swaps, err := h.market.RecentSwaps(r.Context(), pairID, opts)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SwapsResponse{
		Pair:  pairID,
		Count: len(swaps),
		Swaps: swaps,
	})
}

// SwapsNear handles GET /api/v1/pairs/{id}/swaps/near?timestamp=&window=
func (h *PairHandler) SwapsNear(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	timestamp, err := strconv.ParseInt(query.Get("timestamp"), 10, 64)
	if err != nil || timestamp < 0 {
		writeError(w, http.StatusBadRequest, "invalid_timestamp", "timestamp must be a unix timestamp")
		return
	}

	window := subgraph.DefaultSwapWindow
	if windowStr := query.Get("window"); windowStr != "" {
		window, err = strconv.ParseInt(windowStr, 10, 64)
		if err != nil || window <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_window", "window must be a positive number of seconds")
			return
		}
	}

	pairID := chi.URLParam(r, "id")
	swaps, err := h.market.SwapsNear(r.Context(), pairID, timestamp, window)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	start, end := subgraph.SwapWindow(timestamp, window)
	writeJSON(w, http.StatusOK, SwapsNearResponse{
		Pair:  pairID,
		Start: start,
		End:   end,
		Count: len(swaps),
		Swaps: swaps,
	})
}
