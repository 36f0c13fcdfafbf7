// Package dexmath provides overflow-checked 256-bit arithmetic for pool math.
//
// Every helper returns ok=false instead of panicking or wrapping around, so
// callers can tell a failed computation apart from a valid zero.
package dexmath

import "github.com/holiman/uint256"

// U returns x widened to 256 bits.
func U(x uint64) uint256.Int {
	var z uint256.Int
	z.SetUint64(x)
	return z
}

// Add returns x+y, or ok=false on overflow.
func Add(x, y uint256.Int) (uint256.Int, bool) {
	var z uint256.Int
	if _, overflow := z.AddOverflow(&x, &y); overflow {
		return uint256.Int{}, false
	}
	return z, true
}

// Sub returns x-y, or ok=false when y > x.
func Sub(x, y uint256.Int) (uint256.Int, bool) {
	var z uint256.Int
	if _, underflow := z.SubOverflow(&x, &y); underflow {
		return uint256.Int{}, false
	}
	return z, true
}

// Mul returns x*y, or ok=false on overflow.
func Mul(x, y uint256.Int) (uint256.Int, bool) {
	var z uint256.Int
	if _, overflow := z.MulOverflow(&x, &y); overflow {
		return uint256.Int{}, false
	}
	return z, true
}

// Div returns floor(x/y), or ok=false when y is zero.
func Div(x, y uint256.Int) (uint256.Int, bool) {
	if y.IsZero() {
		return uint256.Int{}, false
	}
	var z uint256.Int
	z.Div(&x, &y)
	return z, true
}

// DivMod returns the quotient and remainder of x/y, or ok=false when y is zero.
func DivMod(x, y uint256.Int) (uint256.Int, uint256.Int, bool) {
	if y.IsZero() {
		return uint256.Int{}, uint256.Int{}, false
	}
	var q, r uint256.Int
	q.DivMod(&x, &y, &r)
	return q, r, true
}

// MulDiv returns floor(x*y/d) with the product kept in 256 bits.
func MulDiv(x, y, d uint256.Int) (uint256.Int, bool) {
	p, ok := Mul(x, y)
	if !ok {
		return uint256.Int{}, false
	}
	return Div(p, d)
}

// CeilDiv returns ceil(dividend/divisor) as (dividend + divisor - 1) / divisor.
// It fails when the addition overflows or the divisor is zero.
func CeilDiv(dividend, divisor uint256.Int) (uint256.Int, bool) {
	if divisor.IsZero() {
		return uint256.Int{}, false
	}
	sum, ok := Add(dividend, divisor)
	if !ok {
		return uint256.Int{}, false
	}
	sum, ok = Sub(sum, U(1))
	if !ok {
		return uint256.Int{}, false
	}
	return Div(sum, divisor)
}

// CheckedCeilDiv divides dividend by rhs rounding the quotient up, and returns
// the smallest divisor that still produces that quotient:
//
//	quotient = ceil(dividend / rhs)
//	newRhs   = ceil(dividend / quotient)
//
// A zero quotient is reported as failure so that dividing a small amount by a
// large one never rounds up to a whole token.
func CheckedCeilDiv(dividend, rhs uint256.Int) (quotient, newRhs uint256.Int, ok bool) {
	quotient, rem, ok := DivMod(dividend, rhs)
	if !ok || quotient.IsZero() {
		return uint256.Int{}, uint256.Int{}, false
	}
	if rem.IsZero() {
		return quotient, rhs, true
	}

	quotient, ok = Add(quotient, U(1))
	if !ok {
		return uint256.Int{}, uint256.Int{}, false
	}
	newRhs, rem, ok = DivMod(dividend, quotient)
	if !ok {
		return uint256.Int{}, uint256.Int{}, false
	}
	if !rem.IsZero() {
		newRhs, ok = Add(newRhs, U(1))
		if !ok {
			return uint256.Int{}, uint256.Int{}, false
		}
	}
	return quotient, newRhs, true
}

// Sqrt returns floor(sqrt(x)).
func Sqrt(x uint256.Int) uint256.Int {
	var z uint256.Int
	z.Sqrt(&x)
	return z
}

// SqrtCeil returns ceil(sqrt(x)).
func SqrtCeil(x uint256.Int) uint256.Int {
	z := Sqrt(x)
	var sq uint256.Int
	sq.Mul(&z, &z)
	if sq.Eq(&x) {
		return z
	}
	var one uint256.Int
	one.SetOne()
	z.Add(&z, &one)
	return z
}

// Max returns the larger of x and y.
func Max(x, y uint256.Int) uint256.Int {
	if x.Lt(&y) {
		return y
	}
	return x
}

// Min returns the smaller of x and y.
func Min(x, y uint256.Int) uint256.Int {
	if x.Gt(&y) {
		return y
	}
	return x
}

// ToUint64 narrows x, or returns ok=false when it does not fit in 64 bits.
func ToUint64(x uint256.Int) (uint64, bool) {
	if !x.IsUint64() {
		return 0, false
	}
	return x.Uint64(), true
}
