// Package curve implements the pricing invariants a swap pool can use.
//
// A Calculator is one of ConstantProduct, ConstantPrice or Offset. All
// arithmetic is done on 256-bit integers and reports failure with ok=false.
package curve

import (
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/dexmath"
)

// InitialPoolSupply is the amount of pool tokens minted when a pool is created.
const InitialPoolSupply uint64 = 1_000_000_000

// Calculator is the contract shared by all curve shapes.
type Calculator interface {
	// Kind reports the curve shape.
	Kind() Kind

	// Parameter returns the token B price or offset, zero for constant product.
	Parameter() uint64

	// SwapWithoutFees calculates how much source token is taken and how much
	// destination token is given for sourceAmount, fees already deducted.
	SwapWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount uint256.Int, dir TradeDirection) (SwapWithoutFeesResult, bool)

	// DepositSingleTokenType returns the pool tokens issued for a deposit of
	// one token type, rounded down.
	DepositSingleTokenType(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply uint256.Int, dir TradeDirection) (uint256.Int, bool)

	// WithdrawSingleTokenTypeExactOut returns the pool tokens to burn to
	// withdraw exactly destinationAmount of one token type.
	WithdrawSingleTokenTypeExactOut(destinationAmount, swapTokenAAmount, swapTokenBAmount, poolSupply uint256.Int, dir TradeDirection, round RoundDirection) (uint256.Int, bool)

	// PoolTokensToTradingTokens splits poolTokens into their share of both reserves.
	PoolTokensToTradingTokens(poolTokens, poolSupply, swapTokenAAmount, swapTokenBAmount uint256.Int, round RoundDirection) (TradingTokenResult, bool)

	// NewPoolSupply is the pool token supply minted for a new pool.
	NewPoolSupply() uint256.Int

	// Validate checks the curve parameters.
	Validate() error

	// ValidateSupply checks that the initial reserves can back a pool.
	ValidateSupply(tokenAAmount, tokenBAmount uint64) error

	// AllowsDeposits reports whether deposits of any shape are allowed.
	AllowsDeposits() bool

	// AllowsWithdrawals reports whether withdrawals of any shape are allowed.
	AllowsWithdrawals() bool

	sealed()
}

// SwapWithoutFeesResult holds the raw curve output of a swap.
type SwapWithoutFeesResult struct {
	SourceAmountSwapped      uint256.Int
	DestinationAmountSwapped uint256.Int
}

// TradingTokenResult holds amounts of both token types.
type TradingTokenResult struct {
	TokenAAmount uint256.Int
	TokenBAmount uint256.Int
}

// Kind enumerates the curve shapes.
type Kind uint8

const (
	// KindConstantProduct is the uniswap style invariant a*b=k.
	KindConstantProduct Kind = iota
	// KindConstantPrice trades at a fixed price.
	KindConstantPrice
	// KindOffset is a constant product with a virtual token B offset.
	KindOffset
)

var kindNames = map[Kind]string{
	KindConstantProduct: "constant_product",
	KindConstantPrice:   "constant_price",
	KindOffset:          "offset",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind parses the textual name of a curve shape.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return k, nil
		}
	}
	return 0, errors.Wrapf(apperrors.ErrInvalidCurve, "unknown curve kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, errors.Wrapf(apperrors.ErrInvalidCurve, "unknown curve kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// New builds the calculator for kind. The parameter is the token B price for
// ConstantPrice, the token B offset for Offset and is ignored otherwise.
func New(kind Kind, parameter uint64) (Calculator, error) {
	switch kind {
	case KindConstantProduct:
		return ConstantProduct{}, nil
	case KindConstantPrice:
		return ConstantPrice{TokenBPrice: parameter}, nil
	case KindOffset:
		return Offset{TokenBOffset: parameter}, nil
	default:
		return nil, errors.Wrapf(apperrors.ErrInvalidCurve, "unknown curve kind %d", kind)
	}
}

// poolTokensToTradingTokens is the pro-rata split shared by every curve.
//
// Ceiling only rounds up amounts that are already nonzero, so a tiny amount of
// pool tokens yields zero and gets rejected instead of taking a whole token.
func poolTokensToTradingTokens(poolTokens, poolSupply, swapTokenAAmount, swapTokenBAmount uint256.Int, round RoundDirection) (TradingTokenResult, bool) {
	tokenA, ok := proRata(poolTokens, poolSupply, swapTokenAAmount, round)
	if !ok {
		return TradingTokenResult{}, false
	}
	tokenB, ok := proRata(poolTokens, poolSupply, swapTokenBAmount, round)
	if !ok {
		return TradingTokenResult{}, false
	}
	return TradingTokenResult{TokenAAmount: tokenA, TokenBAmount: tokenB}, true
}

func proRata(poolTokens, poolSupply, reserve uint256.Int, round RoundDirection) (uint256.Int, bool) {
	product, ok := dexmath.Mul(poolTokens, reserve)
	if !ok {
		return uint256.Int{}, false
	}
	amount, rem, ok := dexmath.DivMod(product, poolSupply)
	if !ok {
		return uint256.Int{}, false
	}
	if round == Ceiling && !rem.IsZero() && !amount.IsZero() {
		return dexmath.Add(amount, dexmath.U(1))
	}
	return amount, true
}
