package dto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	sdto "github.com/fleshka4/amm-engine/internal/service/dto"
)

// EstimateRequest represents a parsed HTTP request for the /estimate endpoint.
type EstimateRequest struct {
	Pool      common.Address
	Src       common.Address
	Dst       common.Address
	SrcAmount *big.Int
}

// ToService converts the request for the service layer.
func (r EstimateRequest) ToService() sdto.EstimateRequest {
	return sdto.EstimateRequest{
		Pool:      r.Pool,
		Src:       r.Src,
		Dst:       r.Dst,
		SrcAmount: r.SrcAmount,
	}
}
