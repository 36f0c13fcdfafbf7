package curve

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/dexmath"
)

// ConstantProduct keeps reserveA * reserveB constant across swaps.
type ConstantProduct struct{}

var _ Calculator = ConstantProduct{}

func (ConstantProduct) sealed() {}

// Kind implements Calculator.
func (ConstantProduct) Kind() Kind { return KindConstantProduct }

// Parameter implements Calculator.
func (ConstantProduct) Parameter() uint64 { return 0 }

// SwapWithoutFees implements Calculator. The whole source amount is consumed.
func (ConstantProduct) SwapWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount uint256.Int, _ TradeDirection) (SwapWithoutFeesResult, bool) {
	return constantProductSwap(sourceAmount, swapSourceAmount, swapDestinationAmount)
}

// DepositSingleTokenType implements Calculator.
func (ConstantProduct) DepositSingleTokenType(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply uint256.Int, dir TradeDirection) (uint256.Int, bool) {
	reserve := swapTokenAAmount
	if dir == BtoA {
		reserve = swapTokenBAmount
	}
	return depositSingleTokenType(sourceAmount, reserve, poolSupply)
}

// WithdrawSingleTokenTypeExactOut implements Calculator.
func (ConstantProduct) WithdrawSingleTokenTypeExactOut(destinationAmount, swapTokenAAmount, swapTokenBAmount, poolSupply uint256.Int, dir TradeDirection, round RoundDirection) (uint256.Int, bool) {
	reserve := swapTokenAAmount
	if dir == BtoA {
		reserve = swapTokenBAmount
	}
	return withdrawSingleTokenTypeExactOut(destinationAmount, reserve, poolSupply, round)
}

// PoolTokensToTradingTokens implements Calculator.
func (ConstantProduct) PoolTokensToTradingTokens(poolTokens, poolSupply, swapTokenAAmount, swapTokenBAmount uint256.Int, round RoundDirection) (TradingTokenResult, bool) {
	return poolTokensToTradingTokens(poolTokens, poolSupply, swapTokenAAmount, swapTokenBAmount, round)
}

// NewPoolSupply implements Calculator.
func (ConstantProduct) NewPoolSupply() uint256.Int { return dexmath.U(InitialPoolSupply) }

// Validate implements Calculator.
func (ConstantProduct) Validate() error { return nil }

// ValidateSupply implements Calculator. Both reserves must be funded.
func (ConstantProduct) ValidateSupply(tokenAAmount, tokenBAmount uint64) error {
	if tokenAAmount == 0 {
		return errors.Wrap(apperrors.ErrEmptySupply, "token A")
	}
	if tokenBAmount == 0 {
		return errors.Wrap(apperrors.ErrEmptySupply, "token B")
	}
	return nil
}

// AllowsDeposits implements Calculator.
func (ConstantProduct) AllowsDeposits() bool { return true }

// AllowsWithdrawals implements Calculator.
func (ConstantProduct) AllowsWithdrawals() bool { return true }

// constantProductSwap computes the output for the invariant k = s * d.
// The new destination reserve is k / (s + in) rounded up, so the pool keeps the
// rounding dust and the invariant never decreases.
func constantProductSwap(sourceAmount, swapSourceAmount, swapDestinationAmount uint256.Int) (SwapWithoutFeesResult, bool) {
	invariant, ok := dexmath.Mul(swapSourceAmount, swapDestinationAmount)
	if !ok {
		return SwapWithoutFeesResult{}, false
	}
	newSwapSource, ok := dexmath.Add(swapSourceAmount, sourceAmount)
	if !ok {
		return SwapWithoutFeesResult{}, false
	}
	newSwapDestination, _, ok := dexmath.CheckedCeilDiv(invariant, newSwapSource)
	if !ok {
		return SwapWithoutFeesResult{}, false
	}
	destinationAmountSwapped, ok := dexmath.Sub(swapDestinationAmount, newSwapDestination)
	if !ok || destinationAmountSwapped.IsZero() {
		return SwapWithoutFeesResult{}, false
	}
	return SwapWithoutFeesResult{
		SourceAmountSwapped:      sourceAmount,
		DestinationAmountSwapped: destinationAmountSwapped,
	}, true
}

// depositSingleTokenType solves
//
//	issued = supply * (sqrt(1 + in/reserve) - 1)
//
// as isqrt(supply^2 * (reserve + in) / reserve) - supply, rounded down.
func depositSingleTokenType(sourceAmount, swapSourceAmount, poolSupply uint256.Int) (uint256.Int, bool) {
	if sourceAmount.IsZero() {
		return uint256.Int{}, true
	}
	supplySquared, ok := dexmath.Mul(poolSupply, poolSupply)
	if !ok {
		return uint256.Int{}, false
	}
	newSwapSource, ok := dexmath.Add(swapSourceAmount, sourceAmount)
	if !ok {
		return uint256.Int{}, false
	}
	scaled, ok := dexmath.MulDiv(supplySquared, newSwapSource, swapSourceAmount)
	if !ok {
		return uint256.Int{}, false
	}
	return dexmath.Sub(dexmath.Sqrt(scaled), poolSupply)
}

// withdrawSingleTokenTypeExactOut solves
//
//	burned = supply * (1 - sqrt(1 - out/reserve))
//
// as supply - sqrt(supply^2 * (reserve - out) / reserve). Ceiling takes the
// square root rounded down so more pool tokens are burned.
func withdrawSingleTokenTypeExactOut(destinationAmount, swapDestinationAmount, poolSupply uint256.Int, round RoundDirection) (uint256.Int, bool) {
	if destinationAmount.IsZero() {
		return uint256.Int{}, true
	}
	remaining, ok := dexmath.Sub(swapDestinationAmount, destinationAmount)
	if !ok {
		return uint256.Int{}, false
	}
	supplySquared, ok := dexmath.Mul(poolSupply, poolSupply)
	if !ok {
		return uint256.Int{}, false
	}
	product, ok := dexmath.Mul(supplySquared, remaining)
	if !ok {
		return uint256.Int{}, false
	}
	scaled, rem, ok := dexmath.DivMod(product, swapDestinationAmount)
	if !ok {
		return uint256.Int{}, false
	}

	root := dexmath.Sqrt(scaled)
	if round == Floor {
		var square uint256.Int
		square.Mul(&root, &root)
		if !rem.IsZero() || !square.Eq(&scaled) {
			root, ok = dexmath.Add(root, dexmath.U(1))
			if !ok {
				return uint256.Int{}, false
			}
		}
	}
	return dexmath.Sub(poolSupply, root)
}
