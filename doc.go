// Package quarc provides composable reversible quantum-arithmetic circuits
// over qubit registers, together with the classical numeric helpers that
// support them.
//
// quarc is organized as a small gadget library:
//   - quantum: qubit handles, primitive gates, the operation API and the
//     Adjoint / Controlled / Conjugated combinators
//   - register: little/big-endian register types and the classical bit codec
//   - backend/statevector: a complex128 statevector execution engine
//   - std/arith: carry/sum primitives, ripple-carry adders, comparator
//   - std/qft: the quantum Fourier transform
//   - std/modular: phase-basis increment, modular increment, modular
//     multiply-add and multiplication by a constant modulo N
//   - nums: modular arithmetic, extended GCD, continued fractions
package quarc

import (
	"github.com/blang/semver/v4"
)

var Version = semver.MustParse("0.3.0")
