package dto

import (
	"github.com/fleshka4/amm-engine/internal/curve"
	"github.com/fleshka4/amm-engine/internal/fees"
)

// PoolState is a snapshot of a pool: vault balances, pool token supply and
// the immutable pool configuration.
type PoolState struct {
	TokenAAmount   uint64
	TokenBAmount   uint64
	PoolSupply     uint64
	Fees           fees.Schedule
	CurveKind      curve.Kind
	CurveParameter uint64
}

// Reserve returns the vault balance of the token sold in direction dir.
func (p PoolState) Reserve(dir curve.TradeDirection) uint64 {
	if dir == curve.BtoA {
		return p.TokenBAmount
	}
	return p.TokenAAmount
}

// WithReserve returns a copy of p with the vault of the token sold in
// direction dir set to amount.
func (p PoolState) WithReserve(dir curve.TradeDirection, amount uint64) PoolState {
	if dir == curve.BtoA {
		p.TokenBAmount = amount
	} else {
		p.TokenAAmount = amount
	}
	return p
}

// InitializeRequest creates a pool from the deposited reserves in Pool.
type InitializeRequest struct {
	Pool PoolState
}

// InitializeQuote is the result of pool creation.
type InitializeQuote struct {
	PoolTokensMinted uint64
	Pool             PoolState
}

// SwapRequest sells AmountIn of the token given by Direction.
type SwapRequest struct {
	Pool             PoolState
	Direction        curve.TradeDirection
	AmountIn         uint64
	MinimumAmountOut uint64
	WithHostFee      bool
}

// SwapQuote describes the transfers and mints of a swap.
type SwapQuote struct {
	AmountIn  uint64
	AmountOut uint64
	TradeFee  uint64
	OwnerFee  uint64
	// OwnerFeePoolTokens are minted to the fee receiver.
	OwnerFeePoolTokens uint64
	// HostFeePoolTokens are minted to the host fee receiver.
	HostFeePoolTokens uint64
	Pool              PoolState
}

// DepositAllRequest mints PoolTokenAmount for a deposit of both tokens.
type DepositAllRequest struct {
	Pool                PoolState
	PoolTokenAmount     uint64
	MaximumTokenAAmount uint64
	MaximumTokenBAmount uint64
}

// DepositAllQuote describes a deposit of both tokens.
type DepositAllQuote struct {
	TokenAAmount     uint64
	TokenBAmount     uint64
	PoolTokensMinted uint64
	Pool             PoolState
}

// WithdrawAllRequest redeems PoolTokenAmount for both tokens.
type WithdrawAllRequest struct {
	Pool                PoolState
	PoolTokenAmount     uint64
	MinimumTokenAAmount uint64
	MinimumTokenBAmount uint64
	// FromFeeAccount is set when the fee receiver withdraws, which waives the withdraw fee.
	FromFeeAccount bool
}

// WithdrawAllQuote describes a withdrawal of both tokens.
type WithdrawAllQuote struct {
	TokenAAmount     uint64
	TokenBAmount     uint64
	PoolTokensBurned uint64
	// WithdrawFee is transferred to the fee receiver instead of being burned.
	WithdrawFee uint64
	Pool        PoolState
}

// DepositSingleRequest deposits an exact amount of one token.
type DepositSingleRequest struct {
	Pool                   PoolState
	Direction              curve.TradeDirection
	SourceTokenAmount      uint64
	MinimumPoolTokenAmount uint64
}

// DepositSingleQuote describes a single sided deposit.
type DepositSingleQuote struct {
	PoolTokensMinted uint64
	Pool             PoolState
}

// WithdrawSingleRequest withdraws an exact amount of one token.
type WithdrawSingleRequest struct {
	Pool                   PoolState
	Direction              curve.TradeDirection
	DestinationTokenAmount uint64
	MaximumPoolTokenAmount uint64
	FromFeeAccount         bool
}

// WithdrawSingleQuote describes a single sided withdrawal. The user pays
// PoolTokensBurned + WithdrawFee pool tokens.
type WithdrawSingleQuote struct {
	PoolTokensBurned uint64
	WithdrawFee      uint64
	Pool             PoolState
}
