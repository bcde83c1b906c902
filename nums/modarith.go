// Package nums implements the classical integer and complex helpers used by
// the quantum arithmetic gadgets: modular arithmetic, the extended Euclidean
// algorithm, continued-fraction convergents and polar complex numbers.
//
// All functions are pure; none of them touches qubits.
package nums

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var ErrNotCoprime = errors.New("arguments are not coprime")

// GCD returns the greatest common divisor of a and b.
func GCD[T constraints.Integer](a, b T) T {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// IsCoprime reports whether gcd(a, b) == 1.
func IsCoprime[T constraints.Integer](a, b T) bool {
	return GCD(a, b) == 1
}

// ExtendedGCD returns (g, x, y) such that a*x + b*y == g == gcd(a, b).
func ExtendedGCD(a, b int64) (g, x, y int64) {
	x, y = 1, 0
	u, v := int64(0), int64(1)
	for b != 0 {
		q := a / b
		a, b = b, a-q*b
		x, u = u, x-q*u
		y, v = v, y-q*v
	}
	return a, x, y
}

// InverseMod returns the multiplicative inverse of a modulo n, in [0, n).
// It fails with ErrNotCoprime when gcd(a, n) != 1.
func InverseMod(a, n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("modulus must be positive, got %d", n)
	}
	a = Mod(a, n)
	g, x, _ := ExtendedGCD(a, n)
	if g != 1 && g != -1 {
		return 0, fmt.Errorf("%w: gcd(%d, %d) = %d", ErrNotCoprime, a, n, g)
	}
	if g == -1 {
		x = -x
	}
	return Mod(x, n), nil
}

// Mod returns a mod n in [0, n), also for negative a.
func Mod(a, n int64) int64 {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// ExpMod returns base^exp mod n for exp >= 0, by square and multiply.
func ExpMod(base, exp, n int64) (int64, error) {
	if exp < 0 {
		return 0, fmt.Errorf("exponent must be non-negative, got %d", exp)
	}
	if n <= 0 {
		return 0, fmt.Errorf("modulus must be positive, got %d", n)
	}
	result := int64(1 % n)
	base = Mod(base, n)
	for exp > 0 {
		if exp&1 == 1 {
			result = MulMod(result, base, n)
		}
		base = MulMod(base, base, n)
		exp >>= 1
	}
	return result, nil
}

// MulMod returns a*b mod n without overflowing int64, for 0 <= a, b < n.
func MulMod(a, b, n int64) int64 {
	// fits in int64 directly when the product cannot overflow
	if a == 0 || b <= (1<<62)/a {
		return a * b % n
	}
	// double-and-add fallback
	var r int64
	a = Mod(a, n)
	for b > 0 {
		if b&1 == 1 {
			r = Mod(r+a, n)
		}
		a = Mod(a+a, n)
		b >>= 1
	}
	return r
}

// BitLength returns the number of bits needed to represent v (0 for v == 0).
func BitLength[T constraints.Integer](v T) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}
