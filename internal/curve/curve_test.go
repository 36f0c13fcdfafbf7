package curve

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/dexmath"
)

func u(x uint64) uint256.Int { return dexmath.U(x) }

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		kind      Kind
		parameter uint64
		want      Calculator
		wantErr   bool
	}{
		{name: "constant product", kind: KindConstantProduct, parameter: 7, want: ConstantProduct{}},
		{name: "constant price", kind: KindConstantPrice, parameter: 100, want: ConstantPrice{TokenBPrice: 100}},
		{name: "offset", kind: KindOffset, parameter: 5, want: Offset{TokenBOffset: 5}},
		{name: "unknown", kind: Kind(42), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := New(tt.kind, tt.parameter)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, apperrors.ErrInvalidCurve))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.kind, got.Kind())
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, err := ParseKind(" Constant_Price ")
	require.NoError(t, err)
	require.Equal(t, KindConstantPrice, k)

	_, err = ParseKind("stable")
	require.ErrorIs(t, err, apperrors.ErrInvalidCurve)

	var decoded Kind
	require.NoError(t, decoded.UnmarshalText([]byte("offset")))
	require.Equal(t, KindOffset, decoded)

	text, err := KindConstantProduct.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "constant_product", string(text))

	_, err = Kind(9).MarshalText()
	require.Error(t, err)
}

func TestParseTradeDirection(t *testing.T) {
	t.Parallel()

	d, err := ParseTradeDirection("A_TO_B")
	require.NoError(t, err)
	require.Equal(t, AtoB, d)
	require.Equal(t, BtoA, d.Opposite())

	var decoded TradeDirection
	require.NoError(t, decoded.UnmarshalText([]byte("b_to_a")))
	require.Equal(t, BtoA, decoded)

	_, err = ParseTradeDirection("sideways")
	require.ErrorIs(t, err, apperrors.ErrInvalidTradeDirection)

	require.Equal(t, "ceiling", Ceiling.String())
	require.Equal(t, "floor", Floor.String())
}

func TestPoolTokensToTradingTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		poolTokens uint64
		supply     uint64
		round      RoundDirection
		wantA      uint64
		wantB      uint64
	}{
		{name: "floor", poolTokens: 3, supply: 10, round: Floor, wantA: 2, wantB: 30},
		{name: "ceiling rounds remainder up", poolTokens: 3, supply: 10, round: Ceiling, wantA: 3, wantB: 30},
		{name: "ceiling keeps zero", poolTokens: 1, supply: 1_000, round: Ceiling, wantA: 0, wantB: 0},
		{name: "half", poolTokens: 500, supply: 1_000, round: Ceiling, wantA: 4, wantB: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, calc := range []Calculator{ConstantProduct{}, ConstantPrice{TokenBPrice: 3}, Offset{TokenBOffset: 9}} {
				got, ok := calc.PoolTokensToTradingTokens(u(tt.poolTokens), u(tt.supply), u(7), u(100), tt.round)
				require.True(t, ok)
				assert.Equal(t, tt.wantA, got.TokenAAmount.Uint64(), calc.Kind().String())
				assert.Equal(t, tt.wantB, got.TokenBAmount.Uint64(), calc.Kind().String())
			}
		})
	}

	_, ok := ConstantProduct{}.PoolTokensToTradingTokens(u(1), u(0), u(7), u(100), Floor)
	require.False(t, ok, "empty supply must fail")
}

func TestNewPoolSupply(t *testing.T) {
	t.Parallel()

	for _, calc := range []Calculator{ConstantProduct{}, ConstantPrice{TokenBPrice: 1}, Offset{TokenBOffset: 1}} {
		supply := calc.NewPoolSupply()
		require.Equal(t, InitialPoolSupply, supply.Uint64())
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, ConstantProduct{}.Validate())
	require.NoError(t, ConstantPrice{TokenBPrice: 1}.Validate())
	require.NoError(t, Offset{TokenBOffset: 1}.Validate())
	require.ErrorIs(t, ConstantPrice{}.Validate(), apperrors.ErrInvalidCurve)
	require.ErrorIs(t, Offset{}.Validate(), apperrors.ErrInvalidCurve)
}

func TestValidateSupply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		calc    Calculator
		a, b    uint64
		wantErr bool
	}{
		{name: "product both funded", calc: ConstantProduct{}, a: 1, b: 1},
		{name: "product empty a", calc: ConstantProduct{}, a: 0, b: 1, wantErr: true},
		{name: "product empty b", calc: ConstantProduct{}, a: 1, b: 0, wantErr: true},
		{name: "price one sided", calc: ConstantPrice{TokenBPrice: 2}, a: 0, b: 5},
		{name: "price empty", calc: ConstantPrice{TokenBPrice: 2}, a: 0, b: 0, wantErr: true},
		{name: "offset empty b", calc: Offset{TokenBOffset: 10}, a: 5, b: 0},
		{name: "offset empty a", calc: Offset{TokenBOffset: 10}, a: 0, b: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.calc.ValidateSupply(tt.a, tt.b)
			if tt.wantErr {
				require.ErrorIs(t, err, apperrors.ErrEmptySupply)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCapabilities(t *testing.T) {
	t.Parallel()

	require.True(t, ConstantProduct{}.AllowsDeposits())
	require.True(t, ConstantProduct{}.AllowsWithdrawals())
	require.True(t, ConstantPrice{}.AllowsDeposits())
	require.True(t, ConstantPrice{}.AllowsWithdrawals())
	require.False(t, Offset{}.AllowsDeposits())
	require.True(t, Offset{}.AllowsWithdrawals())
}
