package service

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/curve"
	"github.com/fleshka4/amm-engine/internal/dexmath"
	"github.com/fleshka4/amm-engine/internal/service/dto"
	"github.com/fleshka4/amm-engine/internal/service/validate"
)

// Initialize creates a pool from the reserves in req.Pool and mints the
// initial pool token supply to the depositor.
func (s *PoolService) Initialize(req dto.InitializeRequest) (dto.InitializeQuote, error) {
	const op = "initialize"

	if err := validate.PoolStateValidate(req.Pool); err != nil {
		return dto.InitializeQuote{}, s.reject(op, err)
	}
	if req.Pool.PoolSupply != 0 {
		return dto.InitializeQuote{}, s.reject(op, errors.Wrapf(apperrors.ErrInvalidSupply, "supply %d", req.Pool.PoolSupply))
	}

	engine, err := newEngine(req.Pool)
	if err != nil {
		return dto.InitializeQuote{}, s.reject(op, err)
	}
	if err := engine.ValidateSupply(req.Pool.TokenAAmount, req.Pool.TokenBAmount); err != nil {
		return dto.InitializeQuote{}, s.reject(op, err)
	}

	pool := req.Pool
	if pool.PoolSupply, err = engine.NewPoolSupply(); err != nil {
		return dto.InitializeQuote{}, s.reject(op, err)
	}

	return dto.InitializeQuote{
		PoolTokensMinted: pool.PoolSupply,
		Pool:             pool,
	}, nil
}

// Swap prices a trade. The owner fee is converted to pool tokens minted to the
// fee receiver, and a host share is split off when requested.
func (s *PoolService) Swap(req dto.SwapRequest) (dto.SwapQuote, error) {
	const op = "swap"

	if err := validate.SwapRequestValidate(req); err != nil {
		return dto.SwapQuote{}, s.reject(op, err)
	}
	engine, err := newEngine(req.Pool)
	if err != nil {
		return dto.SwapQuote{}, s.reject(op, err)
	}

	p, dir := req.Pool, req.Direction
	res, err := engine.Swap(req.AmountIn, p.Reserve(dir), p.Reserve(dir.Opposite()), dir)
	if err != nil {
		return dto.SwapQuote{}, s.reject(op, err)
	}
	if res.DestinationAmountSwapped < req.MinimumAmountOut {
		return dto.SwapQuote{}, s.reject(op, errors.Wrapf(apperrors.ErrExceededSlippage,
			"amount out %d below minimum %d", res.DestinationAmountSwapped, req.MinimumAmountOut))
	}

	pool := p.WithReserve(dir, res.NewSwapSourceAmount).WithReserve(dir.Opposite(), res.NewSwapDestinationAmount)
	quote := dto.SwapQuote{
		AmountIn:  res.SourceAmountSwapped,
		AmountOut: res.DestinationAmountSwapped,
		TradeFee:  res.TradeFee,
		OwnerFee:  res.OwnerFee,
	}

	if res.OwnerFee > 0 {
		poolTokens, err := engine.WithdrawSingleTokenTypeExactOut(res.OwnerFee, pool.TokenAAmount, pool.TokenBAmount, p.PoolSupply, dir)
		if err != nil {
			return dto.SwapQuote{}, s.reject(op, errors.Wrapf(apperrors.ErrFeeCalculationFailure, "owner fee to pool tokens: %v", err))
		}

		minted := poolTokens
		if poolTokens > 0 && req.WithHostFee {
			hostFee, ok := p.Fees.HostFee(dexmath.U(poolTokens))
			if !ok {
				return dto.SwapQuote{}, s.reject(op, errors.Wrap(apperrors.ErrFeeCalculationFailure, "host fee"))
			}
			quote.HostFeePoolTokens = hostFee.Uint64()
			if quote.HostFeePoolTokens > poolTokens {
				return dto.SwapQuote{}, s.reject(op, errors.Wrap(apperrors.ErrFeeCalculationFailure, "host fee exceeds owner fee"))
			}
			poolTokens -= quote.HostFeePoolTokens
		}
		quote.OwnerFeePoolTokens = poolTokens

		if pool.PoolSupply, err = add64(p.PoolSupply, minted, "pool supply"); err != nil {
			return dto.SwapQuote{}, s.reject(op, err)
		}
	}

	quote.Pool = pool
	return quote, nil
}

// DepositAllTokenTypes prices minting PoolTokenAmount against a deposit of both
// tokens. The first deposit into an empty pool always mints the initial supply.
func (s *PoolService) DepositAllTokenTypes(req dto.DepositAllRequest) (dto.DepositAllQuote, error) {
	const op = "deposit_all"

	if err := validate.PoolStateValidate(req.Pool); err != nil {
		return dto.DepositAllQuote{}, s.reject(op, err)
	}
	engine, err := newEngine(req.Pool)
	if err != nil {
		return dto.DepositAllQuote{}, s.reject(op, err)
	}
	if !engine.AllowsDeposits() {
		return dto.DepositAllQuote{}, s.reject(op, errors.Wrapf(apperrors.ErrUnsupportedCurveOperation,
			"%s curve does not allow deposits", req.Pool.CurveKind))
	}

	p := req.Pool
	poolTokens, supply := req.PoolTokenAmount, p.PoolSupply
	if supply == 0 {
		if poolTokens, err = engine.NewPoolSupply(); err != nil {
			return dto.DepositAllQuote{}, s.reject(op, err)
		}
		supply = poolTokens
	}

	amounts, err := engine.PoolTokensToTradingTokens(poolTokens, supply, p.TokenAAmount, p.TokenBAmount, curve.Ceiling)
	if err != nil {
		return dto.DepositAllQuote{}, s.reject(op, err)
	}
	if err := checkMaximum(amounts.TokenAAmount, req.MaximumTokenAAmount, "token A"); err != nil {
		return dto.DepositAllQuote{}, s.reject(op, err)
	}
	if err := checkMaximum(amounts.TokenBAmount, req.MaximumTokenBAmount, "token B"); err != nil {
		return dto.DepositAllQuote{}, s.reject(op, err)
	}

	pool := p
	if pool.TokenAAmount, err = add64(p.TokenAAmount, amounts.TokenAAmount, "token A reserve"); err != nil {
		return dto.DepositAllQuote{}, s.reject(op, err)
	}
	if pool.TokenBAmount, err = add64(p.TokenBAmount, amounts.TokenBAmount, "token B reserve"); err != nil {
		return dto.DepositAllQuote{}, s.reject(op, err)
	}
	if pool.PoolSupply, err = add64(p.PoolSupply, poolTokens, "pool supply"); err != nil {
		return dto.DepositAllQuote{}, s.reject(op, err)
	}

	return dto.DepositAllQuote{
		TokenAAmount:     amounts.TokenAAmount,
		TokenBAmount:     amounts.TokenBAmount,
		PoolTokensMinted: poolTokens,
		Pool:             pool,
	}, nil
}

// WithdrawAllTokenTypes prices redeeming PoolTokenAmount for both tokens. The
// owner withdraw fee is sent to the fee receiver and only the rest is burned.
func (s *PoolService) WithdrawAllTokenTypes(req dto.WithdrawAllRequest) (dto.WithdrawAllQuote, error) {
	const op = "withdraw_all"

	if err := validate.PoolStateValidate(req.Pool); err != nil {
		return dto.WithdrawAllQuote{}, s.reject(op, err)
	}
	engine, err := newEngine(req.Pool)
	if err != nil {
		return dto.WithdrawAllQuote{}, s.reject(op, err)
	}
	if !engine.AllowsWithdrawals() {
		return dto.WithdrawAllQuote{}, s.reject(op, errors.Wrapf(apperrors.ErrUnsupportedCurveOperation,
			"%s curve does not allow withdrawals", req.Pool.CurveKind))
	}

	p := req.Pool
	withdrawFee, err := s.withdrawFee(p, req.PoolTokenAmount, req.FromFeeAccount)
	if err != nil {
		return dto.WithdrawAllQuote{}, s.reject(op, err)
	}
	burn, err := sub64(req.PoolTokenAmount, withdrawFee, "pool tokens after fee")
	if err != nil {
		return dto.WithdrawAllQuote{}, s.reject(op, err)
	}

	amounts, err := engine.PoolTokensToTradingTokens(burn, p.PoolSupply, p.TokenAAmount, p.TokenBAmount, curve.Floor)
	if err != nil {
		return dto.WithdrawAllQuote{}, s.reject(op, err)
	}
	tokenA := min(p.TokenAAmount, amounts.TokenAAmount)
	if err := checkMinimum(tokenA, req.MinimumTokenAAmount, p.TokenAAmount, "token A"); err != nil {
		return dto.WithdrawAllQuote{}, s.reject(op, err)
	}
	tokenB := min(p.TokenBAmount, amounts.TokenBAmount)
	if err := checkMinimum(tokenB, req.MinimumTokenBAmount, p.TokenBAmount, "token B"); err != nil {
		return dto.WithdrawAllQuote{}, s.reject(op, err)
	}

	pool := p
	pool.TokenAAmount -= tokenA
	pool.TokenBAmount -= tokenB
	if pool.PoolSupply, err = sub64(p.PoolSupply, burn, "pool supply"); err != nil {
		return dto.WithdrawAllQuote{}, s.reject(op, err)
	}

	return dto.WithdrawAllQuote{
		TokenAAmount:     tokenA,
		TokenBAmount:     tokenB,
		PoolTokensBurned: burn,
		WithdrawFee:      withdrawFee,
		Pool:             pool,
	}, nil
}

// DepositSingleTokenTypeExactAmountIn prices a deposit of one token.
func (s *PoolService) DepositSingleTokenTypeExactAmountIn(req dto.DepositSingleRequest) (dto.DepositSingleQuote, error) {
	const op = "deposit_single"

	if err := validate.DepositSingleRequestValidate(req); err != nil {
		return dto.DepositSingleQuote{}, s.reject(op, err)
	}
	engine, err := newEngine(req.Pool)
	if err != nil {
		return dto.DepositSingleQuote{}, s.reject(op, err)
	}
	if !engine.AllowsDeposits() {
		return dto.DepositSingleQuote{}, s.reject(op, errors.Wrapf(apperrors.ErrUnsupportedCurveOperation,
			"%s curve does not allow deposits", req.Pool.CurveKind))
	}

	p, dir := req.Pool, req.Direction
	var minted uint64
	if p.PoolSupply == 0 {
		minted, err = engine.NewPoolSupply()
	} else {
		minted, err = engine.DepositSingleTokenType(req.SourceTokenAmount, p.TokenAAmount, p.TokenBAmount, p.PoolSupply, dir)
	}
	if err != nil {
		return dto.DepositSingleQuote{}, s.reject(op, err)
	}
	if minted < req.MinimumPoolTokenAmount {
		return dto.DepositSingleQuote{}, s.reject(op, errors.Wrapf(apperrors.ErrExceededSlippage,
			"pool tokens %d below minimum %d", minted, req.MinimumPoolTokenAmount))
	}
	if minted == 0 {
		return dto.DepositSingleQuote{}, s.reject(op, errors.Wrap(apperrors.ErrZeroTradingTokens, "no pool tokens minted"))
	}

	reserve, err := add64(p.Reserve(dir), req.SourceTokenAmount, "reserve")
	if err != nil {
		return dto.DepositSingleQuote{}, s.reject(op, err)
	}
	pool := p.WithReserve(dir, reserve)
	if pool.PoolSupply, err = add64(p.PoolSupply, minted, "pool supply"); err != nil {
		return dto.DepositSingleQuote{}, s.reject(op, err)
	}

	return dto.DepositSingleQuote{PoolTokensMinted: minted, Pool: pool}, nil
}

// WithdrawSingleTokenTypeExactAmountOut prices withdrawing an exact amount of
// one token. The withdraw fee is charged on top of the burned pool tokens.
func (s *PoolService) WithdrawSingleTokenTypeExactAmountOut(req dto.WithdrawSingleRequest) (dto.WithdrawSingleQuote, error) {
	const op = "withdraw_single"

	if err := validate.WithdrawSingleRequestValidate(req); err != nil {
		return dto.WithdrawSingleQuote{}, s.reject(op, err)
	}
	engine, err := newEngine(req.Pool)
	if err != nil {
		return dto.WithdrawSingleQuote{}, s.reject(op, err)
	}

	p, dir := req.Pool, req.Direction
	if req.DestinationTokenAmount > p.Reserve(dir) {
		return dto.WithdrawSingleQuote{}, s.reject(op, errors.Wrapf(apperrors.ErrZeroTradingTokens,
			"amount %d above reserve %d", req.DestinationTokenAmount, p.Reserve(dir)))
	}

	burn, err := engine.WithdrawSingleTokenTypeExactOut(req.DestinationTokenAmount, p.TokenAAmount, p.TokenBAmount, p.PoolSupply, dir)
	if err != nil {
		return dto.WithdrawSingleQuote{}, s.reject(op, err)
	}
	withdrawFee, err := s.withdrawFee(p, burn, req.FromFeeAccount)
	if err != nil {
		return dto.WithdrawSingleQuote{}, s.reject(op, err)
	}
	total, err := add64(burn, withdrawFee, "pool tokens with fee")
	if err != nil {
		return dto.WithdrawSingleQuote{}, s.reject(op, err)
	}
	if total > req.MaximumPoolTokenAmount {
		return dto.WithdrawSingleQuote{}, s.reject(op, errors.Wrapf(apperrors.ErrExceededSlippage,
			"pool tokens %d above maximum %d", total, req.MaximumPoolTokenAmount))
	}
	if total == 0 {
		return dto.WithdrawSingleQuote{}, s.reject(op, errors.Wrap(apperrors.ErrZeroTradingTokens, "no pool tokens burned"))
	}

	pool := p.WithReserve(dir, p.Reserve(dir)-req.DestinationTokenAmount)
	if pool.PoolSupply, err = sub64(p.PoolSupply, burn, "pool supply"); err != nil {
		return dto.WithdrawSingleQuote{}, s.reject(op, err)
	}

	return dto.WithdrawSingleQuote{
		PoolTokensBurned: burn,
		WithdrawFee:      withdrawFee,
		Pool:             pool,
	}, nil
}

func (s *PoolService) withdrawFee(p dto.PoolState, poolTokens uint64, fromFeeAccount bool) (uint64, error) {
	if fromFeeAccount {
		return 0, nil
	}
	fee, ok := p.Fees.OwnerWithdrawFee(dexmath.U(poolTokens))
	if !ok {
		return 0, errors.Wrap(apperrors.ErrFeeCalculationFailure, "owner withdraw fee")
	}
	return fee.Uint64(), nil
}

func checkMaximum(amount, maximum uint64, name string) error {
	if amount > maximum {
		return errors.Wrapf(apperrors.ErrExceededSlippage, "%s amount %d above maximum %d", name, amount, maximum)
	}
	if amount == 0 {
		return errors.Wrapf(apperrors.ErrZeroTradingTokens, "%s amount", name)
	}
	return nil
}

func checkMinimum(amount, minimum, reserve uint64, name string) error {
	if amount < minimum {
		return errors.Wrapf(apperrors.ErrExceededSlippage, "%s amount %d below minimum %d", name, amount, minimum)
	}
	if amount == 0 && reserve != 0 {
		return errors.Wrapf(apperrors.ErrZeroTradingTokens, "%s amount", name)
	}
	return nil
}

func add64(x, y uint64, name string) (uint64, error) {
	sum, carry := bits.Add64(x, y, 0)
	if carry != 0 {
		return 0, errors.Wrapf(apperrors.ErrCalculationFailure, "%s overflows", name)
	}
	return sum, nil
}

func sub64(x, y uint64, name string) (uint64, error) {
	diff, borrow := bits.Sub64(x, y, 0)
	if borrow != 0 {
		return 0, errors.Wrapf(apperrors.ErrCalculationFailure, "%s underflows", name)
	}
	return diff, nil
}
