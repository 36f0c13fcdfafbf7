package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/curve"
	"github.com/fleshka4/amm-engine/internal/service/dto"
	"github.com/fleshka4/amm-engine/internal/service/validate"
	"github.com/fleshka4/amm-engine/internal/swap"
)

// Estimate calculates the output of a swap against a Uniswap V2 pair.
//
// The pair is read through the infra client and priced by the constant
// product engine with the configured estimate fees over 256-bit amounts, so
// 18-decimal reserves need no narrowing. token0 is token A.
func (s *PoolService) Estimate(ctx context.Context, req dto.EstimateRequest) (*big.Int, error) {
	const op = "estimate"

	if err := validate.EstimateRequestValidate(req); err != nil {
		return nil, s.reject(op, err)
	}
	if s.uniswapClient == nil {
		return nil, s.reject(op, errors.Wrap(apperrors.ErrPairRead, "rpc client is not configured"))
	}

	token0, token1, err := s.uniswapClient.GetPairTokens(ctx, req.Pool)
	if err != nil {
		return nil, s.reject(op, errors.Wrap(apperrors.ErrPairRead, err.Error()))
	}

	var dir curve.TradeDirection
	switch {
	case req.Src == token0 && req.Dst == token1:
		dir = curve.AtoB
	case req.Src == token1 && req.Dst == token0:
		dir = curve.BtoA
	default:
		return nil, s.reject(op, errors.Wrap(apperrors.ErrInvalidArgument, "src and dst are not the pair tokens"))
	}

	reserve0, reserve1, err := s.uniswapClient.GetPairReserves(ctx, req.Pool)
	if err != nil {
		return nil, s.reject(op, errors.Wrap(apperrors.ErrPairRead, err.Error()))
	}

	amountIn, err := toUint256(req.SrcAmount, "src amount")
	if err != nil {
		return nil, s.reject(op, err)
	}
	source, err := toUint256(reserve0, "reserve0")
	if err != nil {
		return nil, s.reject(op, err)
	}
	destination, err := toUint256(reserve1, "reserve1")
	if err != nil {
		return nil, s.reject(op, err)
	}
	if dir == curve.BtoA {
		source, destination = destination, source
	}

	engine, err := swap.NewEngine(curve.ConstantProduct{}, s.estimateFees)
	if err != nil {
		return nil, s.reject(op, err)
	}
	res, err := engine.SwapWide(amountIn, source, destination, dir)
	if err != nil {
		if errors.Is(err, apperrors.ErrZeroTradingTokens) {
			err = errors.Wrap(apperrors.ErrInsufficientLiquidity, err.Error())
		}
		return nil, s.reject(op, err)
	}

	s.logger.Debug("estimate",
		zap.Stringer("pool", req.Pool),
		zap.Stringer("direction", dir),
		zap.String("amount_in", res.SourceAmountSwapped.Dec()),
		zap.String("amount_out", res.DestinationAmountSwapped.Dec()),
	)

	return res.DestinationAmountSwapped.ToBig(), nil
}

// PairState reads a Uniswap V2 pair as a constant product pool snapshot with
// the estimate fees, ready to be priced by the pool operations.
func (s *PoolService) PairState(ctx context.Context, pair common.Address) (dto.PoolState, error) {
	const op = "pair_state"

	if pair == (common.Address{}) {
		return dto.PoolState{}, s.reject(op, errors.Wrap(apperrors.ErrInvalidArgument, "address cannot be empty"))
	}
	if s.uniswapClient == nil {
		return dto.PoolState{}, s.reject(op, errors.Wrap(apperrors.ErrPairRead, "rpc client is not configured"))
	}

	reserve0, reserve1, err := s.uniswapClient.GetPairReserves(ctx, pair)
	if err != nil {
		return dto.PoolState{}, s.reject(op, errors.Wrap(apperrors.ErrPairRead, err.Error()))
	}
	supply, err := s.uniswapClient.GetPairSupply(ctx, pair)
	if err != nil {
		return dto.PoolState{}, s.reject(op, errors.Wrap(apperrors.ErrPairRead, err.Error()))
	}

	pool, err := s.pairPool(reserve0, reserve1, supply)
	if err != nil {
		return dto.PoolState{}, s.reject(op, err)
	}
	return pool, nil
}

func (s *PoolService) pairPool(reserve0, reserve1, supply *big.Int) (dto.PoolState, error) {
	a, err := toUint64(reserve0, "reserve0")
	if err != nil {
		return dto.PoolState{}, err
	}
	b, err := toUint64(reserve1, "reserve1")
	if err != nil {
		return dto.PoolState{}, err
	}

	poolSupply, err := toUint64(supply, "total supply")
	if err != nil {
		return dto.PoolState{}, err
	}
	return dto.PoolState{
		TokenAAmount: a,
		TokenBAmount: b,
		PoolSupply:   poolSupply,
		Fees:         s.estimateFees,
		CurveKind:    curve.KindConstantProduct,
	}, nil
}

func toUint256(v *big.Int, name string) (uint256.Int, error) {
	if v == nil || v.Sign() < 0 {
		return uint256.Int{}, errors.Wrapf(apperrors.ErrCalculationFailure, "%s does not fit in 256 bits", name)
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return uint256.Int{}, errors.Wrapf(apperrors.ErrCalculationFailure, "%s does not fit in 256 bits", name)
	}
	return *u, nil
}

func toUint64(v *big.Int, name string) (uint64, error) {
	if v == nil || v.Sign() < 0 || !v.IsUint64() {
		return 0, errors.Wrapf(apperrors.ErrCalculationFailure, "%s does not fit in 64 bits", name)
	}
	return v.Uint64(), nil
}
