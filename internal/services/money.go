package services

import "math"

// lineAmount returns price * quantity, or false if it does not fit in int64.
func lineAmount(price int64, quantity int) (int64, bool) {
	q := int64(quantity)
	if price < 0 || q < 0 {
		return 0, false
	}
	if q != 0 && price > math.MaxInt64/q {
		return 0, false
	}
	return price * q, true
}

// addAmount returns a + b for non-negative amounts, or false on overflow.
func addAmount(a, b int64) (int64, bool) {
	if a < 0 || b < 0 || a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}
