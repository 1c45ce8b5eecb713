package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Number is the set of numeric types accepted by the generic math helpers.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Clamp limits v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound (inclusive)
//   - hi: upper bound (inclusive)
//
// Returns:
//   - T: v if it lies within the bounds, otherwise the nearest bound
func Clamp[T Number](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
