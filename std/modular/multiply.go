package modular

import (
	"fmt"

	"github.com/quarclib/quarc/nums"
	"github.com/quarclib/quarc/quantum"
	"github.com/quarclib/quarc/register"
	"github.com/quarclib/quarc/std/arith"
)

// ModularMultiplyByConstantLE maps x ↦ (constant·x) mod modulus in place on
// a computational-basis register. The constant must be in [0, modulus) and
// coprime to the modulus; coprimality is what makes the map a permutation,
// and its inverse constant is used to uncompute the scratch register.
func ModularMultiplyByConstantLE(api *quantum.API, constant, modulus int64, multiplier register.LittleEndian) error {
	width := len(multiplier)
	if constant < 0 || constant >= modulus {
		return fmt.Errorf("%w: constant %d not in [0, %d)", quantum.ErrOutOfRange, constant, modulus)
	}
	if err := checkModulus(modulus, width); err != nil {
		return err
	}
	if !nums.IsCoprime(constant, modulus) {
		return fmt.Errorf("%w: constant %d, modulus %d", nums.ErrNotCoprime, constant, modulus)
	}
	inverse, err := nums.InverseMod(constant, modulus)
	if err != nil {
		return err
	}
	assertBelowModulus(api, modulus, multiplier)

	return api.WithAncilla(width, func(anc []quantum.Qubit) error {
		ys := register.LittleEndian(anc)
		// ys ← constant·x mod modulus
		if err := ModularAddProductLE(api, constant, modulus, multiplier, ys); err != nil {
			return err
		}
		// move the product into place, the original x onto the scratch
		if err := arith.SwapRegisters(api, multiplier, ys); err != nil {
			return err
		}
		// ys ← x − inverse·(constant·x) = 0 mod modulus. The inverse pass is
		// an add-product by −inverse rather than an Adjoint of the forward
		// pass: inside a recording every flag ancilla of the replayed block
		// would stay live at once, inflating the scratch footprint from one
		// qubit to one per multiplier bit.
		return ModularAddProductLE(api, nums.Mod(-inverse, modulus), modulus, multiplier, ys)
	})
}
