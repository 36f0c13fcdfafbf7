package dto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EstimateRequest asks for the output of a swap through an on-chain Uniswap V2
// pair. SrcAmount must fit in 256 bits.
type EstimateRequest struct {
	Pool      common.Address
	Src       common.Address
	Dst       common.Address
	SrcAmount *big.Int
}
