package curve

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/dexmath"
)

// ConstantPrice trades at a fixed rate: one token B always costs TokenBPrice
// tokens A.
type ConstantPrice struct {
	TokenBPrice uint64
}

var _ Calculator = ConstantPrice{}

func (ConstantPrice) sealed() {}

// Kind implements Calculator.
func (ConstantPrice) Kind() Kind { return KindConstantPrice }

// Parameter implements Calculator.
func (c ConstantPrice) Parameter() uint64 { return c.TokenBPrice }

// SwapWithoutFees implements Calculator.
//
// Selling A only takes whole multiples of the price. The output is capped by
// the destination reserve and the source is reduced to what the capped output
// costs.
func (c ConstantPrice) SwapWithoutFees(sourceAmount, _, swapDestinationAmount uint256.Int, dir TradeDirection) (SwapWithoutFeesResult, bool) {
	price := dexmath.U(c.TokenBPrice)

	var (
		sourceSwapped      uint256.Int
		destinationSwapped uint256.Int
		ok                 bool
	)
	switch dir {
	case BtoA:
		sourceSwapped = sourceAmount
		destinationSwapped, ok = dexmath.Mul(sourceAmount, price)
		if !ok {
			return SwapWithoutFeesResult{}, false
		}
	default:
		var rem uint256.Int
		destinationSwapped, rem, ok = dexmath.DivMod(sourceAmount, price)
		if !ok {
			return SwapWithoutFeesResult{}, false
		}
		sourceSwapped, ok = dexmath.Sub(sourceAmount, rem)
		if !ok {
			return SwapWithoutFeesResult{}, false
		}
	}

	if destinationSwapped.Gt(&swapDestinationAmount) {
		destinationSwapped = swapDestinationAmount
		switch dir {
		case BtoA:
			sourceSwapped, ok = dexmath.CeilDiv(destinationSwapped, price)
		default:
			sourceSwapped, ok = dexmath.Mul(destinationSwapped, price)
		}
		if !ok {
			return SwapWithoutFeesResult{}, false
		}
	}

	if sourceSwapped.IsZero() || destinationSwapped.IsZero() {
		return SwapWithoutFeesResult{}, false
	}
	return SwapWithoutFeesResult{
		SourceAmountSwapped:      sourceSwapped,
		DestinationAmountSwapped: destinationSwapped,
	}, true
}

// DepositSingleTokenType implements Calculator.
func (c ConstantPrice) DepositSingleTokenType(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply uint256.Int, dir TradeDirection) (uint256.Int, bool) {
	return c.tradingTokensToPoolTokens(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply, dir, Floor)
}

// WithdrawSingleTokenTypeExactOut implements Calculator.
func (c ConstantPrice) WithdrawSingleTokenTypeExactOut(destinationAmount, swapTokenAAmount, swapTokenBAmount, poolSupply uint256.Int, dir TradeDirection, round RoundDirection) (uint256.Int, bool) {
	return c.tradingTokensToPoolTokens(destinationAmount, swapTokenAAmount, swapTokenBAmount, poolSupply, dir, round)
}

// tradingTokensToPoolTokens values the pool in token A and issues pool tokens
// in proportion to the value of amount.
func (c ConstantPrice) tradingTokensToPoolTokens(amount, swapTokenAAmount, swapTokenBAmount, poolSupply uint256.Int, dir TradeDirection, round RoundDirection) (uint256.Int, bool) {
	if amount.IsZero() {
		return uint256.Int{}, true
	}
	price := dexmath.U(c.TokenBPrice)

	value := amount
	if dir == BtoA {
		var ok bool
		if value, ok = dexmath.Mul(amount, price); !ok {
			return uint256.Int{}, false
		}
	}

	tokenBValue, ok := dexmath.Mul(swapTokenBAmount, price)
	if !ok {
		return uint256.Int{}, false
	}
	totalValue, ok := dexmath.Add(tokenBValue, swapTokenAAmount)
	if !ok {
		return uint256.Int{}, false
	}
	scaled, ok := dexmath.Mul(poolSupply, value)
	if !ok {
		return uint256.Int{}, false
	}
	if round == Ceiling {
		return dexmath.CeilDiv(scaled, totalValue)
	}
	return dexmath.Div(scaled, totalValue)
}

// PoolTokensToTradingTokens implements Calculator.
func (ConstantPrice) PoolTokensToTradingTokens(poolTokens, poolSupply, swapTokenAAmount, swapTokenBAmount uint256.Int, round RoundDirection) (TradingTokenResult, bool) {
	return poolTokensToTradingTokens(poolTokens, poolSupply, swapTokenAAmount, swapTokenBAmount, round)
}

// NewPoolSupply implements Calculator.
func (ConstantPrice) NewPoolSupply() uint256.Int { return dexmath.U(InitialPoolSupply) }

// Validate implements Calculator.
func (c ConstantPrice) Validate() error {
	if c.TokenBPrice == 0 {
		return errors.Wrap(apperrors.ErrInvalidCurve, "token B price must be positive")
	}
	return nil
}

// ValidateSupply implements Calculator. A one sided pool is fine as the price
// does not depend on the reserves.
func (ConstantPrice) ValidateSupply(tokenAAmount, tokenBAmount uint64) error {
	if tokenAAmount == 0 && tokenBAmount == 0 {
		return errors.Wrap(apperrors.ErrEmptySupply, "both reserves are empty")
	}
	return nil
}

// AllowsDeposits implements Calculator.
func (ConstantPrice) AllowsDeposits() bool { return true }

// AllowsWithdrawals implements Calculator.
func (ConstantPrice) AllowsWithdrawals() bool { return true }
