package curve

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/fleshka4/amm-engine/internal/apperrors"
)

// TradeDirection tells which token is sold to the pool.
type TradeDirection uint8

const (
	// AtoB sells token A for token B.
	AtoB TradeDirection = iota
	// BtoA sells token B for token A.
	BtoA
)

func (d TradeDirection) String() string {
	switch d {
	case AtoB:
		return "a_to_b"
	case BtoA:
		return "b_to_a"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse direction.
func (d TradeDirection) Opposite() TradeDirection {
	if d == AtoB {
		return BtoA
	}
	return AtoB
}

// ParseTradeDirection accepts "a_to_b" and "b_to_a".
func ParseTradeDirection(s string) (TradeDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a_to_b":
		return AtoB, nil
	case "b_to_a":
		return BtoA, nil
	default:
		return 0, errors.Wrapf(apperrors.ErrInvalidTradeDirection, "%q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d TradeDirection) MarshalText() ([]byte, error) {
	if d != AtoB && d != BtoA {
		return nil, errors.Wrapf(apperrors.ErrInvalidTradeDirection, "%d", d)
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *TradeDirection) UnmarshalText(text []byte) error {
	parsed, err := ParseTradeDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// RoundDirection is the rounding applied to pool token conversions.
// Ceiling always favours the pool over the user.
type RoundDirection uint8

const (
	// Floor rounds down: 1.9 => 1.
	Floor RoundDirection = iota
	// Ceiling rounds up: 1.1 => 2.
	Ceiling
)

func (r RoundDirection) String() string {
	if r == Ceiling {
		return "ceiling"
	}
	return "floor"
}
