package curve

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/dexmath"
)

// Offset is a constant product curve where token B is priced as if the pool
// held TokenBOffset more of it. The virtual tokens are never paid out, which
// lets a pool start with token A only.
type Offset struct {
	TokenBOffset uint64
}

var _ Calculator = Offset{}

func (Offset) sealed() {}

// Kind implements Calculator.
func (Offset) Kind() Kind { return KindOffset }

// Parameter implements Calculator.
func (c Offset) Parameter() uint64 { return c.TokenBOffset }

// SwapWithoutFees implements Calculator.
func (c Offset) SwapWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount uint256.Int, dir TradeDirection) (SwapWithoutFeesResult, bool) {
	offset := dexmath.U(c.TokenBOffset)

	if dir == BtoA {
		inflatedSource, ok := dexmath.Add(swapSourceAmount, offset)
		if !ok {
			return SwapWithoutFeesResult{}, false
		}
		return constantProductSwap(sourceAmount, inflatedSource, swapDestinationAmount)
	}

	inflatedDestination, ok := dexmath.Add(swapDestinationAmount, offset)
	if !ok {
		return SwapWithoutFeesResult{}, false
	}
	result, ok := constantProductSwap(sourceAmount, swapSourceAmount, inflatedDestination)
	if !ok {
		return SwapWithoutFeesResult{}, false
	}
	if !result.DestinationAmountSwapped.Gt(&swapDestinationAmount) {
		return result, true
	}

	// Only the real reserve can leave the pool. Charge just enough source to
	// move the inflated reserve down to the offset.
	if swapDestinationAmount.IsZero() {
		return SwapWithoutFeesResult{}, false
	}
	invariant, ok := dexmath.Mul(swapSourceAmount, inflatedDestination)
	if !ok {
		return SwapWithoutFeesResult{}, false
	}
	requiredSource, ok := dexmath.CeilDiv(invariant, offset)
	if !ok {
		return SwapWithoutFeesResult{}, false
	}
	sourceNeeded, ok := dexmath.Sub(requiredSource, swapSourceAmount)
	if !ok {
		return SwapWithoutFeesResult{}, false
	}
	return SwapWithoutFeesResult{
		SourceAmountSwapped:      dexmath.Min(sourceAmount, sourceNeeded),
		DestinationAmountSwapped: swapDestinationAmount,
	}, true
}

// DepositSingleTokenType implements Calculator. Deposits are not supported.
func (Offset) DepositSingleTokenType(_, _, _, _ uint256.Int, _ TradeDirection) (uint256.Int, bool) {
	return uint256.Int{}, false
}

// WithdrawSingleTokenTypeExactOut implements Calculator.
func (c Offset) WithdrawSingleTokenTypeExactOut(destinationAmount, swapTokenAAmount, swapTokenBAmount, poolSupply uint256.Int, dir TradeDirection, round RoundDirection) (uint256.Int, bool) {
	if dir == AtoB {
		return withdrawSingleTokenTypeExactOut(destinationAmount, swapTokenAAmount, poolSupply, round)
	}
	if destinationAmount.Gt(&swapTokenBAmount) {
		return uint256.Int{}, false
	}
	inflated, ok := dexmath.Add(swapTokenBAmount, dexmath.U(c.TokenBOffset))
	if !ok {
		return uint256.Int{}, false
	}
	return withdrawSingleTokenTypeExactOut(destinationAmount, inflated, poolSupply, round)
}

// PoolTokensToTradingTokens implements Calculator. Only real reserves are split.
func (Offset) PoolTokensToTradingTokens(poolTokens, poolSupply, swapTokenAAmount, swapTokenBAmount uint256.Int, round RoundDirection) (TradingTokenResult, bool) {
	return poolTokensToTradingTokens(poolTokens, poolSupply, swapTokenAAmount, swapTokenBAmount, round)
}

// NewPoolSupply implements Calculator.
func (Offset) NewPoolSupply() uint256.Int { return dexmath.U(InitialPoolSupply) }

// Validate implements Calculator.
func (c Offset) Validate() error {
	if c.TokenBOffset == 0 {
		return errors.Wrap(apperrors.ErrInvalidCurve, "token B offset must be positive")
	}
	return nil
}

// ValidateSupply implements Calculator. Token B may start empty, the offset
// provides its liquidity.
func (Offset) ValidateSupply(tokenAAmount, _ uint64) error {
	if tokenAAmount == 0 {
		return errors.Wrap(apperrors.ErrEmptySupply, "token A")
	}
	return nil
}

// AllowsDeposits implements Calculator.
func (Offset) AllowsDeposits() bool { return false }

// AllowsWithdrawals implements Calculator.
func (Offset) AllowsWithdrawals() bool { return true }
