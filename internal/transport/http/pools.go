package http

import (
	"net/http"

	"github.com/fleshka4/amm-engine/internal/transport/http/dto"
	"github.com/fleshka4/amm-engine/internal/transport/http/validate"
)

// quote runs a pool operation and writes its JSON response. A failed decode
// carries its own status code; service errors are mapped by statusFor.
func quote[Req, Resp any](s *Server, w http.ResponseWriter, req *Req, code int, err error, op func(Req) (Resp, error)) {
	if err != nil {
		if code == 0 {
			code = http.StatusBadRequest
		}
		s.writeError(w, code, err)
		return
	}

	resp, err := op(*req)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.InitializeRequestValidate(r)
	quote(s, w, req, code, err, func(req dto.InitializeRequest) (dto.InitializeResponse, error) {
		q, err := s.svc.Initialize(req.ToService())
		return dto.NewInitializeResponse(q), err
	})
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.SwapRequestValidate(r)
	quote(s, w, req, code, err, func(req dto.SwapRequest) (dto.SwapResponse, error) {
		q, err := s.svc.Swap(req.ToService())
		return dto.NewSwapResponse(q), err
	})
}

func (s *Server) handleDepositAll(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.DepositAllRequestValidate(r)
	quote(s, w, req, code, err, func(req dto.DepositAllRequest) (dto.DepositAllResponse, error) {
		q, err := s.svc.DepositAllTokenTypes(req.ToService())
		return dto.NewDepositAllResponse(q), err
	})
}

func (s *Server) handleWithdrawAll(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.WithdrawAllRequestValidate(r)
	quote(s, w, req, code, err, func(req dto.WithdrawAllRequest) (dto.WithdrawAllResponse, error) {
		q, err := s.svc.WithdrawAllTokenTypes(req.ToService())
		return dto.NewWithdrawAllResponse(q), err
	})
}

func (s *Server) handleDepositSingle(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.DepositSingleRequestValidate(r)
	quote(s, w, req, code, err, func(req dto.DepositSingleRequest) (dto.DepositSingleResponse, error) {
		q, err := s.svc.DepositSingleTokenTypeExactAmountIn(req.ToService())
		return dto.NewDepositSingleResponse(q), err
	})
}

func (s *Server) handleWithdrawSingle(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.WithdrawSingleRequestValidate(r)
	quote(s, w, req, code, err, func(req dto.WithdrawSingleRequest) (dto.WithdrawSingleResponse, error) {
		q, err := s.svc.WithdrawSingleTokenTypeExactAmountOut(req.ToService())
		return dto.NewWithdrawSingleResponse(q), err
	})
}
