package http

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/transport/http/dto"
)

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument),
		errors.Is(err, apperrors.ErrInvalidTradeDirection),
		errors.Is(err, apperrors.ErrInsufficientLiquidity),
		errors.Is(err, apperrors.ErrExceededSlippage),
		errors.Is(err, apperrors.ErrZeroTradingTokens),
		errors.Is(err, apperrors.ErrUnsupportedCurveOperation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidFee),
		errors.Is(err, apperrors.ErrInvalidCurve),
		errors.Is(err, apperrors.ErrEmptySupply),
		errors.Is(err, apperrors.ErrInvalidSupply),
		errors.Is(err, apperrors.ErrCalculationFailure),
		errors.Is(err, apperrors.ErrFeeCalculationFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrPairRead):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response write error", zap.Error(err))
	}
}

// writeError reports err as JSON. Internal errors are not echoed back.
func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("internal error", zap.Error(err))
		msg = "internal error"
	}
	s.writeJSON(w, code, dto.ErrorResponse{Error: msg})
}
