package safemath

type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Add returns a + b and false if the result does not fit in T.
func Add[T Signed](a, b T) (T, bool) {
	c := a + b
	// overflow iff both operands share a sign that the sum does not
	if (a > 0 && b > 0 && c < 0) || (a < 0 && b < 0 && c >= 0) {
		return 0, false
	}
	return c, true
}

// Mul returns a * b and false if the result does not fit in T.
func Mul[T Signed](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	// -1 * min wraps back to min
	if a == -1 {
		return c, c != b
	}
	if b == -1 {
		return c, c != a
	}
	if c/b != a {
		return 0, false
	}
	return c, true
}
