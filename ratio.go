//
// Copyright (c) 2025, Antonio Chirizzi <antonio.chirizzi@gmail.com>
// All rights reserved.
//
// This code is released under 3-clause BSD license. Please see the
// file LICENSE
//

package sumresample

import (
	"fmt"
	"math"
)

// gcd is Euclid's algorithm. gcd(a, 0) == a, so a zero period has to be
// rejected before it gets here.
func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ReduceRatio returns the greatest common divisor and the lowest common
// multiple of two periods. The lcm is 64 bits wide since the product of two
// uint32 periods does not fit 32 bits. Both are 0 when both inputs are 0.
func ReduceRatio(a, b uint32) (g, lcm uint64) {
	g = gcd(uint64(a), uint64(b))
	if g == 0 {
		return 0, 0
	}
	return g, uint64(a) / g * uint64(b)
}

// normalizePeriods rewrites the pair as the coprime pair (lcm/new, lcm/old)
// when neither period divides the other, keeping phase arithmetic and loop
// counts bounded. Pairs where one divides the other are returned unchanged.
func normalizePeriods(oldPeriod, newPeriod uint32) (uint32, uint32) {
	if oldPeriod%newPeriod == 0 || newPeriod%oldPeriod == 0 {
		return oldPeriod, newPeriod
	}
	_, lcm := ReduceRatio(oldPeriod, newPeriod)
	return uint32(lcm / uint64(newPeriod)), uint32(lcm / uint64(oldPeriod))
}

// ParsePeriod narrows a period read from a flag or config value to the
// 32 bits the engines use. 0 and values above math.MaxUint32 are rejected
// with ErrInvalidPeriod instead of wrapping.
func ParsePeriod(v uint64) (uint32, error) {
	if v == 0 || v > math.MaxUint32 {
		return 0, newError(ErrInvalidPeriod, 0, fmt.Sprintf("period %d outside 1..%d", v, uint64(math.MaxUint32)))
	}
	return uint32(v), nil
}
