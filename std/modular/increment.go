// Package modular implements constant-operand arithmetic on qubit registers:
// plain and modular increment, modular multiply-add, and in-place
// multiplication by a coprime constant. The heavy lifting happens in the
// Fourier basis, where adding a classical constant is one phase rotation per
// qubit; computational-basis wrappers conjugate with the QFT.
package modular

import (
	"fmt"

	"github.com/quarclib/quarc/quantum"
	"github.com/quarclib/quarc/register"
	"github.com/quarclib/quarc/std/qft"
)

// IntegerIncrementPhaseLE adds increment (mod 2^n) to a Fourier-encoded
// register: one rotation per qubit, no ancilla. The increment may be
// negative; the adjoint is the same operation with the increment negated.
func IntegerIncrementPhaseLE(api *quantum.API, increment int64, target register.PhaseLittleEndian) error {
	if len(target) == 0 {
		return fmt.Errorf("%w: empty register", quantum.ErrOutOfRange)
	}
	for j, q := range target {
		if err := api.PhaseShift(increment, uint8(j+1), q); err != nil {
			return err
		}
	}
	return nil
}

// IncrementByInteger adds increment (mod 2^n) to a computational-basis
// register by conjugating the phase-domain increment with the QFT. Under an
// ambient control context only the rotations are controlled; the transform
// uncomputes itself either way.
func IncrementByInteger(api *quantum.API, increment int64, target register.LittleEndian) error {
	if len(target) == 0 {
		return fmt.Errorf("%w: empty register", quantum.ErrOutOfRange)
	}
	ctls := api.ActiveControls()
	return api.Bare(func(api *quantum.API) error {
		return api.Conjugated(
			func(api *quantum.API) error { return qft.ApplyQFTLE(api, target) },
			func(api *quantum.API) error {
				return api.Controlled(ctls, func(api *quantum.API) error {
					return IntegerIncrementPhaseLE(api, increment, target.Phase())
				})
			},
		)
	})
}
