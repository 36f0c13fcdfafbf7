// Package fees implements the fraction based fee schedule of a swap pool.
package fees

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/dexmath"
)

// Schedule holds all fee fractions of a pool. A fraction with both numerator
// and denominator set to zero is disabled.
type Schedule struct {
	// Trade fees stay in the vaults and raise the value of every pool token.
	TradeFeeNumerator   uint64 `yaml:"trade_fee_numerator" json:"trade_fee_numerator"`
	TradeFeeDenominator uint64 `yaml:"trade_fee_denominator" json:"trade_fee_denominator"`

	// Owner trade fees stay in the vaults too, but their value is minted as
	// pool tokens to the fee receiver.
	OwnerTradeFeeNumerator   uint64 `yaml:"owner_trade_fee_numerator" json:"owner_trade_fee_numerator"`
	OwnerTradeFeeDenominator uint64 `yaml:"owner_trade_fee_denominator" json:"owner_trade_fee_denominator"`

	// Owner withdraw fees are pool tokens sent to the fee receiver on every withdrawal.
	OwnerWithdrawFeeNumerator   uint64 `yaml:"owner_withdraw_fee_numerator" json:"owner_withdraw_fee_numerator"`
	OwnerWithdrawFeeDenominator uint64 `yaml:"owner_withdraw_fee_denominator" json:"owner_withdraw_fee_denominator"`

	// Host fees are a share of the owner trade fee, paid to the frontend hosting the trade.
	HostFeeNumerator   uint64 `yaml:"host_fee_numerator" json:"host_fee_numerator"`
	HostFeeDenominator uint64 `yaml:"host_fee_denominator" json:"host_fee_denominator"`
}

// Validate checks that every fraction is either disabled or lower than one.
// All offending fractions are reported.
func (s Schedule) Validate() error {
	return multierr.Combine(
		validateFraction("trade fee", s.TradeFeeNumerator, s.TradeFeeDenominator),
		validateFraction("owner trade fee", s.OwnerTradeFeeNumerator, s.OwnerTradeFeeDenominator),
		validateFraction("owner withdraw fee", s.OwnerWithdrawFeeNumerator, s.OwnerWithdrawFeeDenominator),
		validateFraction("host fee", s.HostFeeNumerator, s.HostFeeDenominator),
	)
}

func validateFraction(name string, numerator, denominator uint64) error {
	if numerator == 0 && denominator == 0 {
		return nil
	}
	if numerator >= denominator {
		return errors.Wrapf(apperrors.ErrInvalidFee, "%s %d/%d", name, numerator, denominator)
	}
	return nil
}

// TradingFee returns the trade fee charged on an amount of trading tokens.
func (s Schedule) TradingFee(amount uint256.Int) (uint256.Int, bool) {
	return CalculateFee(amount, dexmath.U(s.TradeFeeNumerator), dexmath.U(s.TradeFeeDenominator))
}

// OwnerTradingFee returns the owner fee charged on an amount of trading tokens.
func (s Schedule) OwnerTradingFee(amount uint256.Int) (uint256.Int, bool) {
	return CalculateFee(amount, dexmath.U(s.OwnerTradeFeeNumerator), dexmath.U(s.OwnerTradeFeeDenominator))
}

// OwnerWithdrawFee returns the withdraw fee charged on an amount of pool tokens.
func (s Schedule) OwnerWithdrawFee(poolTokens uint256.Int) (uint256.Int, bool) {
	return CalculateFee(poolTokens, dexmath.U(s.OwnerWithdrawFeeNumerator), dexmath.U(s.OwnerWithdrawFeeDenominator))
}

// HostFee returns the host share of an owner fee.
func (s Schedule) HostFee(ownerFee uint256.Int) (uint256.Int, bool) {
	return CalculateFee(ownerFee, dexmath.U(s.HostFeeNumerator), dexmath.U(s.HostFeeDenominator))
}

// PreTradingFeeAmount returns the input needed so that, after trade and owner
// fees, postFeeAmount is left.
//
// Both fractions are combined linearly, so the minimum fee of one token is not
// inverted for tiny amounts.
func (s Schedule) PreTradingFeeAmount(postFeeAmount uint256.Int) (uint256.Int, bool) {
	tradeN, tradeD := dexmath.U(s.TradeFeeNumerator), dexmath.U(s.TradeFeeDenominator)
	ownerN, ownerD := dexmath.U(s.OwnerTradeFeeNumerator), dexmath.U(s.OwnerTradeFeeDenominator)

	switch {
	case s.TradeFeeNumerator == 0 || s.TradeFeeDenominator == 0:
		return PreFeeAmount(postFeeAmount, ownerN, ownerD)
	case s.OwnerTradeFeeNumerator == 0 || s.OwnerTradeFeeDenominator == 0:
		return PreFeeAmount(postFeeAmount, tradeN, tradeD)
	}

	// n1/d1 + n2/d2 = (n1*d2 + n2*d1) / (d1*d2)
	left, ok := dexmath.Mul(tradeN, ownerD)
	if !ok {
		return uint256.Int{}, false
	}
	right, ok := dexmath.Mul(ownerN, tradeD)
	if !ok {
		return uint256.Int{}, false
	}
	numerator, ok := dexmath.Add(left, right)
	if !ok {
		return uint256.Int{}, false
	}
	denominator, ok := dexmath.Mul(tradeD, ownerD)
	if !ok {
		return uint256.Int{}, false
	}
	return PreFeeAmount(postFeeAmount, numerator, denominator)
}

// CalculateFee returns floor(amount*numerator/denominator). A fee that rounds
// down to zero is charged as one token, and a disabled fee or zero amount is free.
func CalculateFee(amount, numerator, denominator uint256.Int) (uint256.Int, bool) {
	if numerator.IsZero() || amount.IsZero() {
		return uint256.Int{}, true
	}

	fee, ok := dexmath.MulDiv(amount, numerator, denominator)
	if !ok {
		return uint256.Int{}, false
	}
	if fee.IsZero() {
		return dexmath.U(1), true
	}
	return fee, true
}

// PreFeeAmount inverts a single fee fraction: it returns the amount that
// leaves postFeeAmount once the fee is deducted. A fee of 100% leaves nothing.
func PreFeeAmount(postFeeAmount, numerator, denominator uint256.Int) (uint256.Int, bool) {
	if numerator.IsZero() || denominator.IsZero() {
		return postFeeAmount, true
	}
	if numerator.Eq(&denominator) || postFeeAmount.IsZero() {
		return uint256.Int{}, true
	}

	dividend, ok := dexmath.Mul(postFeeAmount, denominator)
	if !ok {
		return uint256.Int{}, false
	}
	divisor, ok := dexmath.Sub(denominator, numerator)
	if !ok {
		return uint256.Int{}, false
	}
	return CeilDiv(dividend, divisor)
}

// CeilDiv is (dividend + divisor - 1) / divisor.
func CeilDiv(dividend, divisor uint256.Int) (uint256.Int, bool) {
	return dexmath.CeilDiv(dividend, divisor)
}
