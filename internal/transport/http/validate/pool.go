package validate

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/fleshka4/amm-engine/internal/transport/http/dto"
)

// MaxBodyBytes limits the size of a pool request body.
const MaxBodyBytes = 64 << 10

// decodeBody reads exactly one JSON document from the request body. Unknown
// fields are rejected. Routes are bound to POST by the router.
func decodeBody(r *http.Request, v any) (int, error) {
	if r.Body == nil {
		return http.StatusBadRequest, errors.New("empty body")
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, errors.Wrap(err, "body too large")
		}
		return http.StatusBadRequest, errors.Wrap(err, "bad json body")
	}
	if dec.More() {
		return http.StatusBadRequest, errors.New("unexpected data after json body")
	}
	return 0, nil
}

func requireDirection(present bool) (int, error) {
	if !present {
		return http.StatusBadRequest, errors.New("direction is required")
	}
	return 0, nil
}

// InitializeRequestValidate decodes POST /pools/initialize.
func InitializeRequestValidate(r *http.Request) (*dto.InitializeRequest, int, error) {
	var req dto.InitializeRequest
	if code, err := decodeBody(r, &req); err != nil {
		return nil, code, err
	}
	return &req, 0, nil
}

// SwapRequestValidate decodes POST /pools/swap.
func SwapRequestValidate(r *http.Request) (*dto.SwapRequest, int, error) {
	var req dto.SwapRequest
	if code, err := decodeBody(r, &req); err != nil {
		return nil, code, err
	}
	if code, err := requireDirection(req.Direction != nil); err != nil {
		return nil, code, err
	}
	if req.AmountIn == 0 {
		return nil, http.StatusBadRequest, errors.New("amount_in must be positive")
	}
	return &req, 0, nil
}

// DepositAllRequestValidate decodes POST /pools/deposit.
func DepositAllRequestValidate(r *http.Request) (*dto.DepositAllRequest, int, error) {
	var req dto.DepositAllRequest
	if code, err := decodeBody(r, &req); err != nil {
		return nil, code, err
	}
	return &req, 0, nil
}

// WithdrawAllRequestValidate decodes POST /pools/withdraw.
func WithdrawAllRequestValidate(r *http.Request) (*dto.WithdrawAllRequest, int, error) {
	var req dto.WithdrawAllRequest
	if code, err := decodeBody(r, &req); err != nil {
		return nil, code, err
	}
	return &req, 0, nil
}

// DepositSingleRequestValidate decodes POST /pools/deposit-single.
func DepositSingleRequestValidate(r *http.Request) (*dto.DepositSingleRequest, int, error) {
	var req dto.DepositSingleRequest
	if code, err := decodeBody(r, &req); err != nil {
		return nil, code, err
	}
	if code, err := requireDirection(req.Direction != nil); err != nil {
		return nil, code, err
	}
	return &req, 0, nil
}

// WithdrawSingleRequestValidate decodes POST /pools/withdraw-single.
func WithdrawSingleRequestValidate(r *http.Request) (*dto.WithdrawSingleRequest, int, error) {
	var req dto.WithdrawSingleRequest
	if code, err := decodeBody(r, &req); err != nil {
		return nil, code, err
	}
	if code, err := requireDirection(req.Direction != nil); err != nil {
		return nil, code, err
	}
	return &req, 0, nil
}
