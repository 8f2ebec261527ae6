package fd

// arith.go: overflow-checked integer helpers used by bound computations.
//
// Every sum or product of domain bounds goes through these helpers and
// reports ErrOverflow instead of a wrapped value.

import (
	"fmt"
	"math"
)

// Add returns a+b or ErrOverflow.
func Add(a, b int) (int, error) {
	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return a + b, nil
}

// Subtract returns a-b or ErrOverflow.
func Subtract(a, b int) (int, error) {
	if (b < 0 && a > math.MaxInt+b) || (b > 0 && a < math.MinInt+b) {
		return 0, fmt.Errorf("%w: %d - %d", ErrOverflow, a, b)
	}
	return a - b, nil
}

// Multiply returns a*b or ErrOverflow.
func Multiply(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}
	c := a * b
	if c/b != a {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}
	return c, nil
}

// FloatToInt converts f to an int, refusing NaN and values outside the
// int range.
func FloatToInt(f float64) (int, error) {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%w: %g does not fit in an int", ErrOverflow, f)
	}
	return int(f), nil
}

// floorDiv returns floor(a/b) for b != 0.
func floorDiv(a, b int) int {
	if b == 0 {
		panic("floorDiv: zero divisor")
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// ceilDiv returns ceil(a/b) for b != 0.
func ceilDiv(a, b int) int {
	if b == 0 {
		panic("ceilDiv: zero divisor")
	}
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}

// sumBounds adds up a list of (min, max) pairs with overflow checks.
func sumBounds(lo, hi, addLo, addHi int) (int, int, error) {
	l, err := Add(lo, addLo)
	if err != nil {
		return 0, 0, err
	}
	h, err := Add(hi, addHi)
	if err != nil {
		return 0, 0, err
	}
	return l, h, nil
}

// residual returns the range left for one term of a sum whose terms add up
// to [totLo, totHi] when the term itself spans [termLo, termHi] and the
// sum must lie in [sumLo, sumHi]:
//
//	[sumLo - (totHi - termHi), sumHi - (totLo - termLo)]
func residual(sumLo, sumHi, totLo, totHi, termLo, termHi int) (int, int, error) {
	otherHi, err := Subtract(totHi, termHi)
	if err != nil {
		return 0, 0, err
	}
	otherLo, err := Subtract(totLo, termLo)
	if err != nil {
		return 0, 0, err
	}
	lo, err := Subtract(sumLo, otherHi)
	if err != nil {
		return 0, 0, err
	}
	hi, err := Subtract(sumHi, otherLo)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}
