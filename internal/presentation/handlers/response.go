package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bimakw/uniswap-subgraph/internal/domain/services"
	"github.com/bimakw/uniswap-subgraph/internal/infrastructure/subgraph"
	"github.com/bimakw/uniswap-subgraph/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("Failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// writeServiceError maps service and subgraph errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		transportErr *subgraph.TransportError
		decodeErr    *subgraph.DecodeError
	)

	switch {
	case errors.Is(err, services.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, "invalid_token", err.Error())
	case errors.Is(err, services.ErrInvalidPair):
		writeError(w, http.StatusBadRequest, "invalid_pair", err.Error())
	case errors.Is(err, services.ErrTokenNotFound):
		writeError(w, http.StatusNotFound, "token_not_found", err.Error())
	case errors.Is(err, services.ErrPairNotFound):
		writeError(w, http.StatusNotFound, "pair_not_found", err.Error())
	case errors.As(err, &transportErr):
		logger.Warn("Subgraph unavailable",
			zap.String("path", r.URL.Path),
			zap.Int("status", transportErr.StatusCode))
		writeError(w, http.StatusBadGateway, "subgraph_unavailable", err.Error())
	case errors.As(err, &decodeErr):
		logger.Warn("Unexpected subgraph response",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, "subgraph_bad_response", err.Error())
	default:
		logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, "subgraph_error", err.Error())
	}
}
