package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-engine/internal/transport/http/dto"
	"github.com/fleshka4/amm-engine/internal/transport/http/validate"
)

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.requestTimeout > 0 {
		return context.WithTimeout(r.Context(), s.requestTimeout)
	}
	return context.WithCancel(r.Context())
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.EstimateRequestValidate(r)
	if err != nil {
		if code == 0 {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.Estimate(ctx, req.ToService())
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			s.logger.Error("estimate failed", zap.Error(err))
			http.Error(w, "internal error", code)
			return
		}
		http.Error(w, err.Error(), code)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(out.String())); err != nil {
		s.logger.Warn("estimate write error", zap.Error(err))
	}
}

func (s *Server) handlePairState(w http.ResponseWriter, r *http.Request) {
	pair, code, err := validate.PairAddressValidate(mux.Vars(r)["pair"])
	if err != nil {
		s.writeError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	pool, err := s.svc.PairState(ctx, pair)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.NewPoolState(pool))
}
