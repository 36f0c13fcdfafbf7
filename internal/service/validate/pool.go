package validate

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/curve"
	"github.com/fleshka4/amm-engine/internal/service/dto"
)

// PoolStateValidate checks the pool configuration. Every problem is reported.
func PoolStateValidate(pool dto.PoolState) error {
	calc, err := curve.New(pool.CurveKind, pool.CurveParameter)
	if err == nil {
		err = calc.Validate()
	}
	return multierr.Append(err, pool.Fees.Validate())
}

// DirectionValidate checks that dir is one of the two trade directions.
func DirectionValidate(dir curve.TradeDirection) error {
	if dir != curve.AtoB && dir != curve.BtoA {
		return errors.Wrapf(apperrors.ErrInvalidTradeDirection, "%d", dir)
	}
	return nil
}

// SwapRequestValidate validates a swap before it is priced.
func SwapRequestValidate(req dto.SwapRequest) error {
	return multierr.Combine(
		PoolStateValidate(req.Pool),
		DirectionValidate(req.Direction),
		positive(req.AmountIn, "amount in"),
	)
}

// DepositSingleRequestValidate validates a single sided deposit.
func DepositSingleRequestValidate(req dto.DepositSingleRequest) error {
	return multierr.Combine(
		PoolStateValidate(req.Pool),
		DirectionValidate(req.Direction),
	)
}

// WithdrawSingleRequestValidate validates a single sided withdrawal.
func WithdrawSingleRequestValidate(req dto.WithdrawSingleRequest) error {
	return multierr.Combine(
		PoolStateValidate(req.Pool),
		DirectionValidate(req.Direction),
	)
}

func positive(v uint64, name string) error {
	if v == 0 {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "%s cannot be zero", name)
	}
	return nil
}
