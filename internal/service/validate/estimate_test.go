package validate

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/service/dto"
)

func TestEstimateRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edit  func(*dto.EstimateRequest)
		valid bool
	}{
		{name: "valid request", valid: true},
		{name: "one wei", edit: func(r *dto.EstimateRequest) { r.SrcAmount = big.NewInt(1) }, valid: true},
		{name: "max uint64", edit: func(r *dto.EstimateRequest) { r.SrcAmount = new(big.Int).SetUint64(^uint64(0)) }, valid: true},
		{name: "empty pool", edit: func(r *dto.EstimateRequest) { r.Pool = common.Address{} }},
		{name: "empty src", edit: func(r *dto.EstimateRequest) { r.Src = common.Address{} }},
		{name: "empty dst", edit: func(r *dto.EstimateRequest) { r.Dst = common.Address{} }},
		{name: "same src and dst", edit: func(r *dto.EstimateRequest) { r.Dst = r.Src }},
		{
			name: "same address in different case",
			edit: func(r *dto.EstimateRequest) {
				r.Src = common.HexToAddress("0xabc123")
				r.Dst = common.HexToAddress("0xABC123")
			},
		},
		{name: "nil amount", edit: func(r *dto.EstimateRequest) { r.SrcAmount = nil }},
		{name: "zero amount", edit: func(r *dto.EstimateRequest) { r.SrcAmount = big.NewInt(0) }},
		{name: "negative amount", edit: func(r *dto.EstimateRequest) { r.SrcAmount = big.NewInt(-100) }},
		{name: "amount above 64 bits", edit: func(r *dto.EstimateRequest) { r.SrcAmount = new(big.Int).Lsh(big.NewInt(1), 64) }, valid: true},
		{
			name:  "max uint256",
			edit:  func(r *dto.EstimateRequest) { r.SrcAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)) },
			valid: true,
		},
		{name: "amount above 256 bits", edit: func(r *dto.EstimateRequest) { r.SrcAmount = new(big.Int).Lsh(big.NewInt(1), 256) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := dto.EstimateRequest{
				Pool:      common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e"),
				Src:       common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"),
				Dst:       common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
				SrcAmount: big.NewInt(1_000_000_000_000_000_000),
			}
			if tt.edit != nil {
				tt.edit(&req)
			}

			err := EstimateRequestValidate(req)
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		})
	}
}
