package domain

import "math"

// Monetary amounts are uint64 base units (cents of the payment asset).
// Additions and subtractions on amounts must fail explicitly instead of
// wrapping; saturating arithmetic is reserved for counters.

func CheckedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrAmountUnderflow
	}
	return a - b, nil
}

// SaturatingSub is for counters that must never underflow, not for money.
func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
