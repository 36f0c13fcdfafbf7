package swap

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/curve"
	"github.com/fleshka4/amm-engine/internal/dexmath"
	"github.com/fleshka4/amm-engine/internal/fees"
)

func newEngine(t *testing.T, calc curve.Calculator, schedule fees.Schedule) *Engine {
	t.Helper()

	e, err := NewEngine(calc, schedule)
	require.NoError(t, err)
	return e
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		calc     curve.Calculator
		schedule fees.Schedule
		wantErr  error
	}{
		{name: "valid", calc: curve.ConstantProduct{}, schedule: fees.Schedule{TradeFeeNumerator: 1, TradeFeeDenominator: 100}},
		{name: "nil calculator", calc: nil, wantErr: apperrors.ErrInvalidCurve},
		{name: "zero price", calc: curve.ConstantPrice{}, wantErr: apperrors.ErrInvalidCurve},
		{name: "bad fee", calc: curve.ConstantProduct{}, schedule: fees.Schedule{HostFeeNumerator: 9, HostFeeDenominator: 1}, wantErr: apperrors.ErrInvalidFee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := NewEngine(tt.calc, tt.schedule)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, e)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.schedule, e.Fees())
			require.Equal(t, tt.calc, e.Calculator())
		})
	}
}

func TestEngine_Swap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		schedule fees.Schedule
		want     Result
	}{
		{
			name:     "trade fee",
			schedule: fees.Schedule{TradeFeeNumerator: 1, TradeFeeDenominator: 100},
			want: Result{
				NewSwapSourceAmount:      1_100,
				NewSwapDestinationAmount: 45_496,
				SourceAmountSwapped:      100,
				DestinationAmountSwapped: 4_504,
				TradeFee:                 1,
				OwnerFee:                 0,
			},
		},
		{
			name:     "owner fee",
			schedule: fees.Schedule{OwnerTradeFeeNumerator: 1, OwnerTradeFeeDenominator: 100},
			want: Result{
				NewSwapSourceAmount:      1_100,
				NewSwapDestinationAmount: 45_496,
				SourceAmountSwapped:      100,
				DestinationAmountSwapped: 4_504,
				TradeFee:                 0,
				OwnerFee:                 1,
			},
		},
		{
			name:     "no fees",
			schedule: fees.Schedule{},
			want: Result{
				NewSwapSourceAmount:      1_100,
				NewSwapDestinationAmount: 45_455,
				SourceAmountSwapped:      100,
				DestinationAmountSwapped: 4_545,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newEngine(t, curve.ConstantProduct{}, tt.schedule)
			got, err := e.Swap(100, 1_000, 50_000, curve.AtoB)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_Swap_FeesNeverExceedSource(t *testing.T) {
	t.Parallel()

	e := newEngine(t, curve.ConstantProduct{}, fees.Schedule{
		TradeFeeNumerator:        25,
		TradeFeeDenominator:      1_000,
		OwnerTradeFeeNumerator:   5,
		OwnerTradeFeeDenominator: 1_000,
	})

	for _, in := range []uint64{2, 3, 10, 999, 10_000, 123_456_789} {
		got, err := e.Swap(in, 1_000_000_000, 1_000_000_000, curve.BtoA)
		if err != nil {
			require.ErrorIs(t, err, apperrors.ErrZeroTradingTokens)
			continue
		}
		assert.LessOrEqual(t, got.TradeFee+got.OwnerFee, in)
		assert.Equal(t, in, got.SourceAmountSwapped)
	}

	greedy := newEngine(t, curve.ConstantProduct{}, fees.Schedule{
		TradeFeeNumerator:        1,
		TradeFeeDenominator:      2,
		OwnerTradeFeeNumerator:   1,
		OwnerTradeFeeDenominator: 2,
	})
	_, err := greedy.Swap(1, 1_000, 1_000, curve.AtoB)
	require.ErrorIs(t, err, apperrors.ErrCalculationFailure)
}

func TestEngine_Swap_ProductNeverDecreases(t *testing.T) {
	t.Parallel()

	e := newEngine(t, curve.ConstantProduct{}, fees.Schedule{})

	reserves := [][2]uint64{{1_000, 50_000}, {10, 10}, {4_000_000, 3}, {987_654, 123_456}}
	for _, r := range reserves {
		for _, in := range []uint64{1, 3, 100, 77_777} {
			got, err := e.Swap(in, r[0], r[1], curve.AtoB)
			if err != nil {
				require.ErrorIs(t, err, apperrors.ErrZeroTradingTokens)
				continue
			}
			before := r[0] * r[1]
			after := got.NewSwapSourceAmount * got.NewSwapDestinationAmount
			require.GreaterOrEqual(t, after, before, "reserves=%v in=%d", r, in)
		}
	}
}

func TestEngine_Swap_Failures(t *testing.T) {
	t.Parallel()

	e := newEngine(t, curve.ConstantProduct{}, fees.Schedule{})

	_, err := e.Swap(1, 1_000_000, 1, curve.AtoB)
	require.ErrorIs(t, err, apperrors.ErrZeroTradingTokens)

	_, err = e.Swap(1, 0, 0, curve.AtoB)
	require.ErrorIs(t, err, apperrors.ErrZeroTradingTokens)
}

func TestEngine_SwapWide(t *testing.T) {
	t.Parallel()

	e := newEngine(t, curve.ConstantProduct{}, fees.Schedule{TradeFeeNumerator: 3, TradeFeeDenominator: 1_000})

	reserveWETH, err := uint256.FromDecimal("10000000000000000000000")
	require.NoError(t, err)
	got, err := e.SwapWide(dexmath.U(1_000_000_000), dexmath.U(30_000_000_000_000), *reserveWETH, curve.AtoB)
	require.NoError(t, err)
	require.Equal(t, "332322289155923718", got.DestinationAmountSwapped.Dec())
	require.Equal(t, uint64(1_000_000_000), got.SourceAmountSwapped.Uint64())
	require.Equal(t, uint64(3_000_000), got.TradeFee.Uint64())

	// matches the narrow path when everything fits in 64 bits
	narrow, err := e.Swap(100, 1_000, 50_000, curve.AtoB)
	require.NoError(t, err)
	wide, err := e.SwapWide(dexmath.U(100), dexmath.U(1_000), dexmath.U(50_000), curve.AtoB)
	require.NoError(t, err)
	require.Equal(t, narrow.DestinationAmountSwapped, wide.DestinationAmountSwapped.Uint64())
	require.Equal(t, narrow.NewSwapSourceAmount, wide.NewSwapSourceAmount.Uint64())

	huge := new(uint256.Int).Lsh(uint256.NewInt(1), 130)
	_, err = e.SwapWide(dexmath.U(1_000), *huge, *huge, curve.AtoB)
	require.ErrorIs(t, err, apperrors.ErrCalculationFailure)
}

func TestEngine_DepositThenWithdraw(t *testing.T) {
	t.Parallel()

	const (
		supply   = 1_000_000
		reserveA = 1_000_000
		reserveB = 50_000_000
		amount   = 10_000
	)
	e := newEngine(t, curve.ConstantProduct{}, fees.Schedule{
		TradeFeeNumerator:        25,
		TradeFeeDenominator:      1_000,
		OwnerTradeFeeNumerator:   5,
		OwnerTradeFeeDenominator: 1_000,
	})

	swapped, err := e.Swap(amount, reserveA, reserveB, curve.AtoB)
	require.NoError(t, err)
	require.Equal(t, uint64(amount), swapped.SourceAmountSwapped)
	require.Equal(t, uint64(480_340), swapped.DestinationAmountSwapped)

	deposited, err := e.DepositSingleTokenType(swapped.SourceAmountSwapped, reserveA, reserveB, supply, curve.AtoB)
	require.NoError(t, err)
	require.Equal(t, uint64(4_912), deposited)

	withdrawn, err := e.WithdrawSingleTokenTypeExactOut(
		swapped.DestinationAmountSwapped,
		reserveA+swapped.SourceAmountSwapped,
		reserveB,
		supply+deposited,
		curve.BtoA,
	)
	require.NoError(t, err)
	require.Equal(t, uint64(4_914), withdrawn)
	require.GreaterOrEqual(t, withdrawn, deposited)
}

func TestEngine_SingleSidedEdgeCases(t *testing.T) {
	t.Parallel()

	e := newEngine(t, curve.ConstantProduct{}, fees.Schedule{TradeFeeNumerator: 1, TradeFeeDenominator: 100})

	got, err := e.DepositSingleTokenType(0, 1_000, 1_000, 1_000, curve.AtoB)
	require.NoError(t, err)
	require.Zero(t, got)

	// the minimum fee eats the whole deposit
	got, err = e.DepositSingleTokenType(1, 1_000_000, 50_000_000, 1_000_000, curve.AtoB)
	require.NoError(t, err)
	require.Zero(t, got)

	got, err = e.WithdrawSingleTokenTypeExactOut(0, 1_000, 1_000, 1_000, curve.AtoB)
	require.NoError(t, err)
	require.Zero(t, got)

	_, err = e.WithdrawSingleTokenTypeExactOut(2_000, 1_000, 1_000, 1_000, curve.AtoB)
	require.ErrorIs(t, err, apperrors.ErrZeroTradingTokens)

	_, err = e.DepositSingleTokenType(10, 0, 1_000, 1_000, curve.AtoB)
	require.ErrorIs(t, err, apperrors.ErrZeroTradingTokens)
}

func TestEngine_UnsupportedCurveOperation(t *testing.T) {
	t.Parallel()

	e := newEngine(t, curve.Offset{TokenBOffset: 1_000}, fees.Schedule{})

	require.False(t, e.AllowsDeposits())
	require.True(t, e.AllowsWithdrawals())

	_, err := e.DepositSingleTokenType(0, 1_000, 0, 1_000, curve.AtoB)
	require.ErrorIs(t, err, apperrors.ErrUnsupportedCurveOperation)

	burn, err := e.WithdrawSingleTokenTypeExactOut(10, 1_000_000, 0, 1_000_000, curve.AtoB)
	require.NoError(t, err)
	require.Positive(t, burn)
}

func TestEngine_PoolTokensToTradingTokens(t *testing.T) {
	t.Parallel()

	e := newEngine(t, curve.ConstantProduct{}, fees.Schedule{})

	got, err := e.PoolTokensToTradingTokens(3, 10, 7, 100, curve.Ceiling)
	require.NoError(t, err)
	require.Equal(t, TradingTokens{TokenAAmount: 3, TokenBAmount: 30}, got)

	got, err = e.PoolTokensToTradingTokens(3, 10, 7, 100, curve.Floor)
	require.NoError(t, err)
	require.Equal(t, TradingTokens{TokenAAmount: 2, TokenBAmount: 30}, got)

	_, err = e.PoolTokensToTradingTokens(3, 0, 7, 100, curve.Floor)
	require.ErrorIs(t, err, apperrors.ErrZeroTradingTokens)
}

func TestEngine_Supply(t *testing.T) {
	t.Parallel()

	e := newEngine(t, curve.ConstantProduct{}, fees.Schedule{})
	supply, err := e.NewPoolSupply()
	require.NoError(t, err)
	require.Equal(t, curve.InitialPoolSupply, supply)
	require.NoError(t, e.ValidateSupply(1, 1))
	require.ErrorIs(t, e.ValidateSupply(0, 1), apperrors.ErrEmptySupply)
}

func BenchmarkEngine_Swap(b *testing.B) {
	e, err := NewEngine(curve.ConstantProduct{}, fees.Schedule{TradeFeeNumerator: 3, TradeFeeDenominator: 1_000})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := e.Swap(1_000_000, 987_654_321_000, 123_456_789_000, curve.AtoB); err != nil {
			b.Fatal(err)
		}
	}
}
