// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package iitii

import (
	"golang.org/x/exp/constraints"
)

// Pos is a totally ordered numeric position type supplied by the caller,
// either integer or floating point. Unlike constraints.Ordered (which also
// admits ~string), Pos is restricted to the numeric kinds so that the
// interpolation model (model.go) can do generic arithmetic directly on P
// instead of converting through float64 at every step.
type Pos interface {
	constraints.Integer | constraints.Float
}

// BegFunc extracts the begin-position of an item. beg(item) <= end(item)
// must hold for every item; the index does not validate this, it is a
// caller contract.
type BegFunc[P Pos, I any] func(I) P

// EndFunc extracts the end-position of an item.
type EndFunc[P Pos, I any] func(I) P

// npos returns the sentinel maximum representable value for P, used as
// "+inf" (e.g. outsideMinBeg past the right edge). Its counterpart negInf
// is a separate lookup of the minimum, not a negation of npos.
func npos[P Pos]() P {
	var zero P
	// Determine the maximum value for P by type-switching on a representative
	// value. This covers every predeclared numeric kind except uintptr.
	switch any(zero).(type) {
	case int:
		return P(int(^uint(0) >> 1))
	case int8:
		return P(int8(1<<7 - 1))
	case int16:
		return P(int16(1<<15 - 1))
	case int32:
		return P(int32(1<<31 - 1))
	case int64:
		return P(int64(1<<63 - 1))
	case uint:
		return P(^uint(0))
	case uint8:
		return P(uint8(1<<8 - 1))
	case uint16:
		return P(uint16(1<<16 - 1))
	case uint32:
		return P(uint32(1<<32 - 1))
	case uint64:
		return P(uint64(1<<64 - 1))
	case float32:
		return P(float32(3.40282346638528859811704183484516925440e+38))
	case float64:
		return P(float64(1.797693134862315708145274237317043567981e+308))
	default:
		// uintptr and named numeric kinds not covered above: best effort,
		// callers of custom Pos kinds should not rely on npos().
		return zero
	}
}

// negInf returns a value usable as "negative infinity" for outside_max_end
// when no qualifying node exists: the minimum representable P for signed
// and floating kinds, zero for unsigned kinds (unsigned Pos cannot express
// true negative infinity, so the invariant degrades gracefully to "0 or
// below every real end", which still never causes a missed overlap: ends
// of real items are never used as a sentinel value).
func negInf[P Pos]() P {
	var zero P
	switch any(zero).(type) {
	case int:
		return P(-int(^uint(0)>>1) - 1)
	case int8:
		return P(int8(-1 << 7))
	case int16:
		return P(int16(-1 << 15))
	case int32:
		return P(int32(-1 << 31))
	case int64:
		return P(int64(-1 << 63))
	case float32:
		return P(float32(-3.40282346638528859811704183484516925440e+38))
	case float64:
		return P(float64(-1.797693134862315708145274237317043567981e+308))
	default:
		// unsigned kinds
		return zero
	}
}
