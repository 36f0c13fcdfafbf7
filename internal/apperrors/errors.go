package apperrors

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when the request parameters are invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidFee is returned when a fee fraction has a numerator that is not
	// strictly lower than its denominator.
	ErrInvalidFee = errors.New("invalid fee")

	// ErrInvalidCurve is returned when the curve parameters are invalid.
	ErrInvalidCurve = errors.New("invalid curve parameters")

	// ErrEmptySupply is returned when the pool reserves cannot back a new pool.
	ErrEmptySupply = errors.New("empty supply")

	// ErrInvalidSupply is returned when a pool is initialized with outstanding pool tokens.
	ErrInvalidSupply = errors.New("pool token supply is not zero")

	// ErrInvalidTradeDirection is returned for an unknown trade direction.
	ErrInvalidTradeDirection = errors.New("invalid trade direction")

	// ErrCalculationFailure is returned on overflow or underflow in reserve bookkeeping.
	ErrCalculationFailure = errors.New("calculation failure")

	// ErrFeeCalculationFailure is returned when a fee could not be computed.
	ErrFeeCalculationFailure = errors.New("fee calculation failure")

	// ErrZeroTradingTokens is returned when an operation rounds down to zero
	// usable tokens.
	ErrZeroTradingTokens = errors.New("zero trading tokens")

	// ErrExceededSlippage is returned when the computed amount is outside the
	// limit given by the caller.
	ErrExceededSlippage = errors.New("exceeded slippage")

	// ErrUnsupportedCurveOperation is returned when the curve does not allow
	// the requested operation.
	ErrUnsupportedCurveOperation = errors.New("unsupported curve operation")

	// ErrInsufficientLiquidity is returned when the pool does not have enough
	// reserves to satisfy the requested swap.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")

	// ErrPairRead is returned when fetching pair data (tokens or reserves) fails,
	// typically due to an RPC or ABI decoding error.
	ErrPairRead = errors.New("pair read failed")
)
