package ipcalc

import "math/bits"

// uint128 is a fixed-width unsigned integer wide enough for an IPv6 address,
// stored as big-endian hi/lo halves. IPv4 addresses occupy the low 32 bits
// with hi == 0. Keeping both families in one integer type lets the range
// algebra run on plain register arithmetic for either width.
type uint128 struct {
	hi, lo uint64
}

func (u uint128) cmp(v uint128) int {
	switch {
	case u.hi != v.hi:
		if u.hi < v.hi {
			return -1
		}
		return 1
	case u.lo != v.lo:
		if u.lo < v.lo {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func (u uint128) less(v uint128) bool { return u.cmp(v) < 0 }

// addOne must not be called on the all-ones value.
func (u uint128) addOne() uint128 {
	lo, carry := bits.Add64(u.lo, 1, 0)
	return uint128{u.hi + carry, lo}
}

// subOne must not be called on zero.
func (u uint128) subOne() uint128 {
	lo, borrow := bits.Sub64(u.lo, 1, 0)
	return uint128{u.hi - borrow, lo}
}

func (u uint128) or(v uint128) uint128 {
	return uint128{u.hi | v.hi, u.lo | v.lo}
}

// trailingZeros returns the number of trailing zero bits, 128 for zero.
func (u uint128) trailingZeros() int {
	if u.lo != 0 {
		return bits.TrailingZeros64(u.lo)
	}
	return 64 + bits.TrailingZeros64(u.hi)
}

// lowMask returns the value with the low n bits set, saturating at 128.
func lowMask(n int) uint128 {
	switch {
	case n <= 0:
		return uint128{}
	case n < 64:
		return uint128{0, 1<<uint(n) - 1}
	case n == 64:
		return uint128{0, ^uint64(0)}
	case n < 128:
		return uint128{1<<uint(n-64) - 1, ^uint64(0)}
	default:
		return uint128{^uint64(0), ^uint64(0)}
	}
}
