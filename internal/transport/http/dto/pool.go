package dto

import (
	"github.com/fleshka4/amm-engine/internal/curve"
	"github.com/fleshka4/amm-engine/internal/fees"
	sdto "github.com/fleshka4/amm-engine/internal/service/dto"
)

// PoolState is the JSON form of a pool snapshot. curve_type defaults to
// constant_product.
type PoolState struct {
	TokenAAmount   uint64        `json:"token_a_amount"`
	TokenBAmount   uint64        `json:"token_b_amount"`
	PoolSupply     uint64        `json:"pool_supply"`
	Fees           fees.Schedule `json:"fees"`
	CurveType      curve.Kind    `json:"curve_type"`
	CurveParameter uint64        `json:"curve_parameter"`
}

// ToService converts the snapshot for the service layer.
func (p PoolState) ToService() sdto.PoolState {
	return sdto.PoolState{
		TokenAAmount:   p.TokenAAmount,
		TokenBAmount:   p.TokenBAmount,
		PoolSupply:     p.PoolSupply,
		Fees:           p.Fees,
		CurveKind:      p.CurveType,
		CurveParameter: p.CurveParameter,
	}
}

// NewPoolState converts a service snapshot to its JSON form.
func NewPoolState(p sdto.PoolState) PoolState {
	return PoolState{
		TokenAAmount:   p.TokenAAmount,
		TokenBAmount:   p.TokenBAmount,
		PoolSupply:     p.PoolSupply,
		Fees:           p.Fees,
		CurveType:      p.CurveKind,
		CurveParameter: p.CurveParameter,
	}
}

// InitializeRequest is the body of POST /pools/initialize.
type InitializeRequest struct {
	Pool PoolState `json:"pool"`
}

// InitializeResponse is returned by POST /pools/initialize.
type InitializeResponse struct {
	PoolTokensMinted uint64    `json:"pool_tokens_minted"`
	Pool             PoolState `json:"pool"`
}

// SwapRequest is the body of POST /pools/swap.
type SwapRequest struct {
	Pool             PoolState             `json:"pool"`
	Direction        *curve.TradeDirection `json:"direction"`
	AmountIn         uint64                `json:"amount_in"`
	MinimumAmountOut uint64                `json:"minimum_amount_out"`
	WithHostFee      bool                  `json:"with_host_fee"`
}

// SwapResponse is returned by POST /pools/swap.
type SwapResponse struct {
	AmountIn           uint64    `json:"amount_in"`
	AmountOut          uint64    `json:"amount_out"`
	TradeFee           uint64    `json:"trade_fee"`
	OwnerFee           uint64    `json:"owner_fee"`
	OwnerFeePoolTokens uint64    `json:"owner_fee_pool_tokens"`
	HostFeePoolTokens  uint64    `json:"host_fee_pool_tokens"`
	Pool               PoolState `json:"pool"`
}

// DepositAllRequest is the body of POST /pools/deposit.
type DepositAllRequest struct {
	Pool                PoolState `json:"pool"`
	PoolTokenAmount     uint64    `json:"pool_token_amount"`
	MaximumTokenAAmount uint64    `json:"maximum_token_a_amount"`
	MaximumTokenBAmount uint64    `json:"maximum_token_b_amount"`
}

// DepositAllResponse is returned by POST /pools/deposit.
type DepositAllResponse struct {
	TokenAAmount     uint64    `json:"token_a_amount"`
	TokenBAmount     uint64    `json:"token_b_amount"`
	PoolTokensMinted uint64    `json:"pool_tokens_minted"`
	Pool             PoolState `json:"pool"`
}

// WithdrawAllRequest is the body of POST /pools/withdraw.
type WithdrawAllRequest struct {
	Pool                PoolState `json:"pool"`
	PoolTokenAmount     uint64    `json:"pool_token_amount"`
	MinimumTokenAAmount uint64    `json:"minimum_token_a_amount"`
	MinimumTokenBAmount uint64    `json:"minimum_token_b_amount"`
	FromFeeAccount      bool      `json:"from_fee_account"`
}

// WithdrawAllResponse is returned by POST /pools/withdraw.
type WithdrawAllResponse struct {
	TokenAAmount     uint64    `json:"token_a_amount"`
	TokenBAmount     uint64    `json:"token_b_amount"`
	PoolTokensBurned uint64    `json:"pool_tokens_burned"`
	WithdrawFee      uint64    `json:"withdraw_fee"`
	Pool             PoolState `json:"pool"`
}

// DepositSingleRequest is the body of POST /pools/deposit-single.
type DepositSingleRequest struct {
	Pool                   PoolState             `json:"pool"`
	Direction              *curve.TradeDirection `json:"direction"`
	SourceTokenAmount      uint64                `json:"source_token_amount"`
	MinimumPoolTokenAmount uint64                `json:"minimum_pool_token_amount"`
}

// DepositSingleResponse is returned by POST /pools/deposit-single.
type DepositSingleResponse struct {
	PoolTokensMinted uint64    `json:"pool_tokens_minted"`
	Pool             PoolState `json:"pool"`
}

// WithdrawSingleRequest is the body of POST /pools/withdraw-single.
type WithdrawSingleRequest struct {
	Pool                   PoolState             `json:"pool"`
	Direction              *curve.TradeDirection `json:"direction"`
	DestinationTokenAmount uint64                `json:"destination_token_amount"`
	MaximumPoolTokenAmount uint64                `json:"maximum_pool_token_amount"`
	FromFeeAccount         bool                  `json:"from_fee_account"`
}

// WithdrawSingleResponse is returned by POST /pools/withdraw-single.
type WithdrawSingleResponse struct {
	PoolTokensBurned uint64    `json:"pool_tokens_burned"`
	WithdrawFee      uint64    `json:"withdraw_fee"`
	Pool             PoolState `json:"pool"`
}

// ErrorResponse is the JSON body of a failed pool request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func direction(d *curve.TradeDirection) curve.TradeDirection {
	if d == nil {
		return curve.AtoB
	}
	return *d
}

// ToService converts the request for the service layer.
func (r InitializeRequest) ToService() sdto.InitializeRequest {
	return sdto.InitializeRequest{Pool: r.Pool.ToService()}
}

// ToService converts the request for the service layer.
func (r SwapRequest) ToService() sdto.SwapRequest {
	return sdto.SwapRequest{
		Pool:             r.Pool.ToService(),
		Direction:        direction(r.Direction),
		AmountIn:         r.AmountIn,
		MinimumAmountOut: r.MinimumAmountOut,
		WithHostFee:      r.WithHostFee,
	}
}

// ToService converts the request for the service layer.
func (r DepositAllRequest) ToService() sdto.DepositAllRequest {
	return sdto.DepositAllRequest{
		Pool:                r.Pool.ToService(),
		PoolTokenAmount:     r.PoolTokenAmount,
		MaximumTokenAAmount: r.MaximumTokenAAmount,
		MaximumTokenBAmount: r.MaximumTokenBAmount,
	}
}

// ToService converts the request for the service layer.
func (r WithdrawAllRequest) ToService() sdto.WithdrawAllRequest {
	return sdto.WithdrawAllRequest{
		Pool:                r.Pool.ToService(),
		PoolTokenAmount:     r.PoolTokenAmount,
		MinimumTokenAAmount: r.MinimumTokenAAmount,
		MinimumTokenBAmount: r.MinimumTokenBAmount,
		FromFeeAccount:      r.FromFeeAccount,
	}
}

// ToService converts the request for the service layer.
func (r DepositSingleRequest) ToService() sdto.DepositSingleRequest {
	return sdto.DepositSingleRequest{
		Pool:                   r.Pool.ToService(),
		Direction:              direction(r.Direction),
		SourceTokenAmount:      r.SourceTokenAmount,
		MinimumPoolTokenAmount: r.MinimumPoolTokenAmount,
	}
}

// ToService converts the request for the service layer.
func (r WithdrawSingleRequest) ToService() sdto.WithdrawSingleRequest {
	return sdto.WithdrawSingleRequest{
		Pool:                   r.Pool.ToService(),
		Direction:              direction(r.Direction),
		DestinationTokenAmount: r.DestinationTokenAmount,
		MaximumPoolTokenAmount: r.MaximumPoolTokenAmount,
		FromFeeAccount:         r.FromFeeAccount,
	}
}

// NewInitializeResponse converts a service quote.
func NewInitializeResponse(q sdto.InitializeQuote) InitializeResponse {
	return InitializeResponse{PoolTokensMinted: q.PoolTokensMinted, Pool: NewPoolState(q.Pool)}
}

// NewSwapResponse converts a service quote.
func NewSwapResponse(q sdto.SwapQuote) SwapResponse {
	return SwapResponse{
		AmountIn:           q.AmountIn,
		AmountOut:          q.AmountOut,
		TradeFee:           q.TradeFee,
		OwnerFee:           q.OwnerFee,
		OwnerFeePoolTokens: q.OwnerFeePoolTokens,
		HostFeePoolTokens:  q.HostFeePoolTokens,
		Pool:               NewPoolState(q.Pool),
	}
}

// NewDepositAllResponse converts a service quote.
func NewDepositAllResponse(q sdto.DepositAllQuote) DepositAllResponse {
	return DepositAllResponse{
		TokenAAmount:     q.TokenAAmount,
		TokenBAmount:     q.TokenBAmount,
		PoolTokensMinted: q.PoolTokensMinted,
		Pool:             NewPoolState(q.Pool),
	}
}

// NewWithdrawAllResponse converts a service quote.
func NewWithdrawAllResponse(q sdto.WithdrawAllQuote) WithdrawAllResponse {
	return WithdrawAllResponse{
		TokenAAmount:     q.TokenAAmount,
		TokenBAmount:     q.TokenBAmount,
		PoolTokensBurned: q.PoolTokensBurned,
		WithdrawFee:      q.WithdrawFee,
		Pool:             NewPoolState(q.Pool),
	}
}

// NewDepositSingleResponse converts a service quote.
func NewDepositSingleResponse(q sdto.DepositSingleQuote) DepositSingleResponse {
	return DepositSingleResponse{PoolTokensMinted: q.PoolTokensMinted, Pool: NewPoolState(q.Pool)}
}

// NewWithdrawSingleResponse converts a service quote.
func NewWithdrawSingleResponse(q sdto.WithdrawSingleQuote) WithdrawSingleResponse {
	return WithdrawSingleResponse{
		PoolTokensBurned: q.PoolTokensBurned,
		WithdrawFee:      q.WithdrawFee,
		Pool:             NewPoolState(q.Pool),
	}
}
