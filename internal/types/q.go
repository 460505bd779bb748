package types

import (
	"strconv"
	"strings"
)

// Q is a quality value (RFC 3261 Section 20.1) stored as two integers.
// q=0.7 is Q{Int: 0, Frac: 7}, q=0.075 is Q{Int: 0, Frac: 75} with three fraction digits.
type Q struct {
	Int  uint8
	Frac uint16
	// number of fraction digits as written, zero derives it from Frac
	digits uint8
}

// NewQ returns a quality value with the given number of fraction digits.
func NewQ(i uint8, frac uint16, digits uint8) Q {
	return Q{Int: i, Frac: frac, digits: digits}
}

func (q Q) scale() int {
	if q.digits > 0 {
		return int(q.digits)
	}
	switch {
	case q.Frac == 0:
		return 0
	case q.Frac < 10:
		return 1
	case q.Frac < 100:
		return 2
	default:
		return 3
	}
}

// Milli returns the value multiplied by 1000.
func (q Q) Milli() int {
	f := int(q.Frac)
	for range 3 - q.scale() {
		f *= 10
	}
	return int(q.Int)*1000 + f
}

// IsValid reports whether q lies in range 0..1.
func (q Q) IsValid() bool { return q.scale() <= 3 && q.Milli() <= 1000 }

func (q Q) String() string {
	s := strconv.Itoa(int(q.Int))
	n := q.scale()
	if n == 0 {
		return s
	}
	f := strconv.Itoa(int(q.Frac))
	return s + "." + strings.Repeat("0", max(n-len(f), 0)) + f
}

// Equal compares quality values numerically.
func (q Q) Equal(val any) bool {
	switch v := val.(type) {
	case Q:
		return q.Milli() == v.Milli()
	case *Q:
		return v != nil && q.Milli() == v.Milli()
	default:
		return false
	}
}
