//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-engine/internal/curve"
	"github.com/fleshka4/amm-engine/internal/fees"
	"github.com/fleshka4/amm-engine/internal/infra/uniswap"
	"github.com/fleshka4/amm-engine/internal/service/dto"
	"github.com/fleshka4/amm-engine/internal/swap"
)

// Service represents interface for business logic.
type Service interface {
	Estimate(ctx context.Context, req dto.EstimateRequest) (*big.Int, error)
	PairState(ctx context.Context, pair common.Address) (dto.PoolState, error)

	Initialize(req dto.InitializeRequest) (dto.InitializeQuote, error)
	Swap(req dto.SwapRequest) (dto.SwapQuote, error)
	DepositAllTokenTypes(req dto.DepositAllRequest) (dto.DepositAllQuote, error)
	WithdrawAllTokenTypes(req dto.WithdrawAllRequest) (dto.WithdrawAllQuote, error)
	DepositSingleTokenTypeExactAmountIn(req dto.DepositSingleRequest) (dto.DepositSingleQuote, error)
	WithdrawSingleTokenTypeExactAmountOut(req dto.WithdrawSingleRequest) (dto.WithdrawSingleQuote, error)
}

// PoolService prices pool operations. Pools are passed in as snapshots and
// nothing is kept between calls.
type PoolService struct {
	uniswapClient uniswap.Client
	estimateFees  fees.Schedule
	logger        *zap.Logger
}

// NewPoolService creates PoolService. cli may be nil, in which case the
// on-chain reads are unavailable.
func NewPoolService(cli uniswap.Client, estimateFees fees.Schedule, logger *zap.Logger) *PoolService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PoolService{
		uniswapClient: cli,
		estimateFees:  estimateFees,
		logger:        logger,
	}
}

func newEngine(pool dto.PoolState) (*swap.Engine, error) {
	calc, err := curve.New(pool.CurveKind, pool.CurveParameter)
	if err != nil {
		return nil, err
	}
	return swap.NewEngine(calc, pool.Fees)
}

// reject logs a refused operation and passes err through.
func (s *PoolService) reject(op string, err error) error {
	s.logger.Debug("operation rejected", zap.String("op", op), zap.Error(err))
	return err
}
