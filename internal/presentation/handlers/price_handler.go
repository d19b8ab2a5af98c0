package handlers

import (
	"net/http"
	"time"

	"github.com/bimakw/uniswap-subgraph/internal/domain/services"
)

type PriceHandler struct {
	market *services.MarketService
}

func NewPriceHandler(market *services.MarketService) *PriceHandler {
	return &PriceHandler{market: market}
}

type PriceResponse struct {
	Base      string `json:"base"`
	Quote     string `json:"quote"`
	Price     string `json:"price"`
	Pair      string `json:"pair"`
	FeeTier   int64  `json:"feeTier"`
	VolumeUSD string `json:"volumeUSD"`
	UpdatedAt string `json:"updatedAt"`
}

// GetPrice handles GET /api/v1/price?base=&quote=
func (h *PriceHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	if base == "" {
		writeError(w, http.StatusBadRequest, "missing_base", "base token is required")
		return
	}

	quote, err := h.market.SpotPrice(r.Context(), base, r.URL.Query().Get("quote"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PriceResponse{
		Base:      quote.Base,
		Quote:     quote.Quote,
		Price:     quote.Price.String(),
		Pair:      quote.Pair.ID,
		FeeTier:   quote.Pair.FeeTier.Int64(),
		VolumeUSD: quote.Pair.VolumeUSD.String(),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
