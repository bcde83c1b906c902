// Package arith provides the reversible arithmetic gadgets: carry and sum
// primitives, controlled-gate cascades, three ripple-carry adder variants,
// and a register comparator. All gadgets check their classical preconditions
// before issuing any gate, so a failed call leaves the registers untouched.
package arith

import (
	"fmt"

	"github.com/quarclib/quarc/quantum"
	"github.com/quarclib/quarc/register"
)

// Carry computes the carry bit of a one-bit addition:
//
//	cout ↦ cout ⊕ majority(cin, a, b),  b ↦ a ⊕ b.
//
// The partial sum left on b is what the adder's Sum stage and the backward
// uncompute pass consume.
func Carry(api *quantum.API, cin, a, b, cout quantum.Qubit) error {
	if err := api.CCNOT(a, b, cout); err != nil {
		return err
	}
	if err := api.CNOT(a, b); err != nil {
		return err
	}
	return api.CCNOT(cin, b, cout)
}

// Sum computes the sum bit of a one-bit addition: b ↦ b ⊕ a ⊕ cin.
// Self-inverse.
func Sum(api *quantum.API, cin, a, b quantum.Qubit) error {
	if err := api.CNOT(a, b); err != nil {
		return err
	}
	return api.CNOT(cin, b)
}

// equalWidth checks that the operand registers have the same width.
func equalWidth(xs, ys register.LittleEndian) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: registers of width %d and %d", quantum.ErrLengthMismatch, len(xs), len(ys))
	}
	return nil
}

// SwapRegisters exchanges two equal-width registers bit by bit.
func SwapRegisters(api *quantum.API, xs, ys register.LittleEndian) error {
	if err := equalWidth(xs, ys); err != nil {
		return err
	}
	for i := range xs {
		if err := api.Swap(xs[i], ys[i]); err != nil {
			return err
		}
	}
	return nil
}
