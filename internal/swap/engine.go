// Package swap combines a fee schedule with a pricing curve into the pool
// operations: swaps, single sided deposits and withdrawals, and pro-rata
// conversions between pool tokens and trading tokens.
//
// Amounts enter and leave the engine as uint64. Intermediate values are kept
// in 256 bits and every narrowing is checked.
package swap

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/curve"
	"github.com/fleshka4/amm-engine/internal/dexmath"
	"github.com/fleshka4/amm-engine/internal/fees"
)

// Result is the outcome of a swap, fees included.
type Result struct {
	// NewSwapSourceAmount is the source reserve after the trade.
	NewSwapSourceAmount uint64
	// NewSwapDestinationAmount is the destination reserve after the trade.
	NewSwapDestinationAmount uint64
	// SourceAmountSwapped is the amount moved into the source vault, fees included.
	SourceAmountSwapped uint64
	// DestinationAmountSwapped is the amount paid out to the user.
	DestinationAmountSwapped uint64
	// TradeFee stays in the pool.
	TradeFee uint64
	// OwnerFee stays in the pool too, its value is minted to the fee receiver.
	OwnerFee uint64
}

// TradingTokens holds amounts of both token types.
type TradingTokens struct {
	TokenAAmount uint64
	TokenBAmount uint64
}

// Engine prices pool operations. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	calculator curve.Calculator
	fees       fees.Schedule
}

// NewEngine validates the curve and fee schedule and builds an Engine.
func NewEngine(calculator curve.Calculator, schedule fees.Schedule) (*Engine, error) {
	if calculator == nil {
		return nil, errors.Wrap(apperrors.ErrInvalidCurve, "nil calculator")
	}
	if err := multierr.Combine(calculator.Validate(), schedule.Validate()); err != nil {
		return nil, err
	}
	return &Engine{calculator: calculator, fees: schedule}, nil
}

// Calculator returns the pricing curve.
func (e *Engine) Calculator() curve.Calculator { return e.calculator }

// Fees returns the fee schedule.
func (e *Engine) Fees() fees.Schedule { return e.fees }

// WideResult is a swap outcome before narrowing to 64 bits.
type WideResult struct {
	NewSwapSourceAmount      uint256.Int
	NewSwapDestinationAmount uint256.Int
	SourceAmountSwapped      uint256.Int
	DestinationAmountSwapped uint256.Int
	TradeFee                 uint256.Int
	OwnerFee                 uint256.Int
}

// Swap sells sourceAmount to the pool. Fees are taken out of sourceAmount,
// never added on top of it.
func (e *Engine) Swap(sourceAmount, swapSourceAmount, swapDestinationAmount uint64, dir curve.TradeDirection) (Result, error) {
	wide, err := e.SwapWide(dexmath.U(sourceAmount), dexmath.U(swapSourceAmount), dexmath.U(swapDestinationAmount), dir)
	if err != nil {
		return Result{}, err
	}

	var res Result
	if err := narrowAll(
		narrowing{&res.NewSwapSourceAmount, wide.NewSwapSourceAmount, "new source reserve"},
		narrowing{&res.NewSwapDestinationAmount, wide.NewSwapDestinationAmount, "new destination reserve"},
		narrowing{&res.SourceAmountSwapped, wide.SourceAmountSwapped, "source amount swapped"},
		narrowing{&res.DestinationAmountSwapped, wide.DestinationAmountSwapped, "destination amount swapped"},
		narrowing{&res.TradeFee, wide.TradeFee, "trade fee"},
		narrowing{&res.OwnerFee, wide.OwnerFee, "owner fee"},
	); err != nil {
		return Result{}, err
	}
	return res, nil
}

// SwapWide is Swap over 256-bit amounts, for pools whose reserves do not fit
// in 64 bits such as Uniswap V2 pairs. Products that overflow 256 bits fail
// with ErrCalculationFailure.
func (e *Engine) SwapWide(source, swapSourceAmount, swapDestinationAmount uint256.Int, dir curve.TradeDirection) (WideResult, error) {
	tradeFee, ok := e.fees.TradingFee(source)
	if !ok {
		return WideResult{}, errors.Wrap(apperrors.ErrFeeCalculationFailure, "trading fee")
	}
	ownerFee, ok := e.fees.OwnerTradingFee(source)
	if !ok {
		return WideResult{}, errors.Wrap(apperrors.ErrFeeCalculationFailure, "owner trading fee")
	}
	totalFees, ok := dexmath.Add(tradeFee, ownerFee)
	if !ok {
		return WideResult{}, errors.Wrap(apperrors.ErrFeeCalculationFailure, "total fees")
	}
	net, ok := dexmath.Sub(source, totalFees)
	if !ok {
		return WideResult{}, errors.Wrapf(apperrors.ErrCalculationFailure, "fees %s exceed amount %s", totalFees.Dec(), source.Dec())
	}

	if _, ok := dexmath.Mul(swapSourceAmount, swapDestinationAmount); !ok && e.calculator.Kind() != curve.KindConstantPrice {
		return WideResult{}, errors.Wrap(apperrors.ErrCalculationFailure, "reserve product overflows 256 bits")
	}
	swapped, ok := e.calculator.SwapWithoutFees(net, swapSourceAmount, swapDestinationAmount, dir)
	if !ok {
		return WideResult{}, errors.Wrap(apperrors.ErrZeroTradingTokens, "swap")
	}

	sourceSwapped, ok := dexmath.Add(swapped.SourceAmountSwapped, totalFees)
	if !ok {
		return WideResult{}, errors.Wrap(apperrors.ErrCalculationFailure, "source amount swapped")
	}
	newSource, ok := dexmath.Add(swapSourceAmount, sourceSwapped)
	if !ok {
		return WideResult{}, errors.Wrap(apperrors.ErrCalculationFailure, "new source reserve")
	}
	newDestination, ok := dexmath.Sub(swapDestinationAmount, swapped.DestinationAmountSwapped)
	if !ok {
		return WideResult{}, errors.Wrap(apperrors.ErrCalculationFailure, "new destination reserve")
	}

	return WideResult{
		NewSwapSourceAmount:      newSource,
		NewSwapDestinationAmount: newDestination,
		SourceAmountSwapped:      sourceSwapped,
		DestinationAmountSwapped: swapped.DestinationAmountSwapped,
		TradeFee:                 tradeFee,
		OwnerFee:                 ownerFee,
	}, nil
}

// DepositSingleTokenType returns the pool tokens minted for depositing
// sourceAmount of one token type. The deposit is treated as swapping half of it,
// so trade and owner fees are charged on that half.
func (e *Engine) DepositSingleTokenType(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply uint64, dir curve.TradeDirection) (uint64, error) {
	if !e.calculator.AllowsDeposits() {
		return 0, errors.Wrapf(apperrors.ErrUnsupportedCurveOperation, "%s curve does not allow deposits", e.calculator.Kind())
	}
	if sourceAmount == 0 {
		return 0, nil
	}

	half := dexmath.U(max(1, sourceAmount/2))
	tradeFee, ok := e.fees.TradingFee(half)
	if !ok {
		return 0, errors.Wrap(apperrors.ErrFeeCalculationFailure, "trading fee")
	}
	ownerFee, ok := e.fees.OwnerTradingFee(half)
	if !ok {
		return 0, errors.Wrap(apperrors.ErrFeeCalculationFailure, "owner trading fee")
	}
	totalFees, ok := dexmath.Add(tradeFee, ownerFee)
	if !ok {
		return 0, errors.Wrap(apperrors.ErrFeeCalculationFailure, "total fees")
	}
	adjusted, ok := dexmath.Sub(dexmath.U(sourceAmount), totalFees)
	if !ok {
		return 0, errors.Wrap(apperrors.ErrCalculationFailure, "fees exceed deposit")
	}

	poolTokens, ok := e.calculator.DepositSingleTokenType(
		adjusted,
		dexmath.U(swapTokenAAmount),
		dexmath.U(swapTokenBAmount),
		dexmath.U(poolSupply),
		dir,
	)
	if !ok {
		return 0, errors.Wrap(apperrors.ErrZeroTradingTokens, "deposit conversion")
	}
	return narrow(poolTokens, "pool tokens")
}

// WithdrawSingleTokenTypeExactOut returns the pool tokens to burn for receiving
// exactly destinationAmount of one token type. Half of the amount is grossed up
// by the trading fees and the conversion rounds in favour of the pool.
func (e *Engine) WithdrawSingleTokenTypeExactOut(destinationAmount, swapTokenAAmount, swapTokenBAmount, poolSupply uint64, dir curve.TradeDirection) (uint64, error) {
	if !e.calculator.AllowsWithdrawals() {
		return 0, errors.Wrapf(apperrors.ErrUnsupportedCurveOperation, "%s curve does not allow withdrawals", e.calculator.Kind())
	}
	if destinationAmount == 0 {
		return 0, nil
	}

	destination := dexmath.U(destinationAmount)
	half, ok := dexmath.CeilDiv(destination, dexmath.U(2))
	if !ok {
		return 0, errors.Wrap(apperrors.ErrCalculationFailure, "half of withdrawal")
	}
	preFee, ok := e.fees.PreTradingFeeAmount(half)
	if !ok {
		return 0, errors.Wrap(apperrors.ErrFeeCalculationFailure, "pre trading fee amount")
	}
	rest, ok := dexmath.Sub(destination, half)
	if !ok {
		return 0, errors.Wrap(apperrors.ErrCalculationFailure, "rest of withdrawal")
	}
	adjusted, ok := dexmath.Add(rest, preFee)
	if !ok {
		return 0, errors.Wrap(apperrors.ErrCalculationFailure, "withdrawal with fees")
	}

	burn, ok := e.calculator.WithdrawSingleTokenTypeExactOut(
		adjusted,
		dexmath.U(swapTokenAAmount),
		dexmath.U(swapTokenBAmount),
		dexmath.U(poolSupply),
		dir,
		curve.Ceiling,
	)
	if !ok {
		return 0, errors.Wrap(apperrors.ErrZeroTradingTokens, "withdraw conversion")
	}
	return narrow(burn, "pool tokens")
}

// PoolTokensToTradingTokens splits poolTokens into their share of both reserves.
func (e *Engine) PoolTokensToTradingTokens(poolTokens, poolSupply, swapTokenAAmount, swapTokenBAmount uint64, round curve.RoundDirection) (TradingTokens, error) {
	res, ok := e.calculator.PoolTokensToTradingTokens(
		dexmath.U(poolTokens),
		dexmath.U(poolSupply),
		dexmath.U(swapTokenAAmount),
		dexmath.U(swapTokenBAmount),
		round,
	)
	if !ok {
		return TradingTokens{}, errors.Wrap(apperrors.ErrZeroTradingTokens, "pool token conversion")
	}

	var out TradingTokens
	if err := narrowAll(
		narrowing{&out.TokenAAmount, res.TokenAAmount, "token A amount"},
		narrowing{&out.TokenBAmount, res.TokenBAmount, "token B amount"},
	); err != nil {
		return TradingTokens{}, err
	}
	return out, nil
}

// NewPoolSupply is the pool token supply minted when a pool is created.
func (e *Engine) NewPoolSupply() (uint64, error) {
	return narrow(e.calculator.NewPoolSupply(), "initial pool supply")
}

// ValidateSupply checks that the initial reserves can back a pool.
func (e *Engine) ValidateSupply(tokenAAmount, tokenBAmount uint64) error {
	return e.calculator.ValidateSupply(tokenAAmount, tokenBAmount)
}

// AllowsDeposits reports whether the curve accepts deposits.
func (e *Engine) AllowsDeposits() bool { return e.calculator.AllowsDeposits() }

// AllowsWithdrawals reports whether the curve accepts withdrawals.
func (e *Engine) AllowsWithdrawals() bool { return e.calculator.AllowsWithdrawals() }

type narrowing struct {
	dst  *uint64
	src  uint256.Int
	name string
}

func narrowAll(items ...narrowing) error {
	for _, it := range items {
		v, err := narrow(it.src, it.name)
		if err != nil {
			return err
		}
		*it.dst = v
	}
	return nil
}

func narrow(x uint256.Int, name string) (uint64, error) {
	v, ok := dexmath.ToUint64(x)
	if !ok {
		return 0, errors.Wrapf(apperrors.ErrCalculationFailure, "%s overflows uint64", name)
	}
	return v, nil
}
