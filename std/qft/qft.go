// Package qft implements the quantum Fourier transform over little-endian
// registers.
package qft

import (
	"fmt"

	"github.com/quarclib/quarc/quantum"
	"github.com/quarclib/quarc/register"
)

// ApplyQFTLE moves a computational-basis register holding x to the Fourier
// encoding where qubit j carries the phase exp(2πi·x/2^(j+1)). No terminal
// bit-reversal swaps are applied, so the output order matches what the
// phase-domain arithmetic in std/modular expects; retag the register with
// Phase() after the transform. Invert with the Adjoint combinator.
func ApplyQFTLE(api *quantum.API, reg register.LittleEndian) error {
	if len(reg) == 0 {
		return fmt.Errorf("%w: empty register", quantum.ErrOutOfRange)
	}
	for j := len(reg) - 1; j >= 0; j-- {
		if err := api.H(reg[j]); err != nil {
			return err
		}
		for k := j - 1; k >= 0; k-- {
			err := api.Controlled([]quantum.Qubit{reg[k]}, func(api *quantum.API) error {
				return api.PhaseShift(1, uint8(j-k+1), reg[j])
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
