package modular

import (
	"fmt"

	"github.com/quarclib/quarc/debug"
	"github.com/quarclib/quarc/nums"
	"github.com/quarclib/quarc/quantum"
	"github.com/quarclib/quarc/register"
	"github.com/quarclib/quarc/std/qft"
)

// basisProbe is implemented by engines that can read register values from
// their state without emitting gates (the statevector engine does).
type basisProbe interface {
	MaxBasisValue(qs []quantum.Qubit) (int64, error)
}

// assertBelowModulus checks, in debug builds on probing engines, that every
// basis component of the computational-basis register is below the modulus.
// A no-op during recordings, where the engine state lags the gate stream.
func assertBelowModulus(api *quantum.API, modulus int64, target register.LittleEndian) {
	if !debug.Debug || api.Recording() {
		return
	}
	probe, ok := api.Engine().(basisProbe)
	if !ok {
		return
	}
	v, err := probe.MaxBasisValue(target)
	if err != nil {
		return
	}
	debug.Assert(v < modulus, fmt.Sprintf("register holds %d, not below modulus %d", v, modulus))
}

// checkModulus verifies that the modulus fits the register with its top bit
// reserved as zero: 2 <= modulus <= 2^(width-1).
func checkModulus(modulus int64, width int) error {
	if width < 1 || width > register.MaxWidth {
		return fmt.Errorf("%w: register width %d", quantum.ErrOutOfRange, width)
	}
	if modulus < 2 || modulus > 1<<(width-1) {
		return fmt.Errorf("%w: modulus %d not in [2, 2^%d] for width %d",
			quantum.ErrOutOfRange, modulus, width-1, width)
	}
	return nil
}

// ModularIncrementPhaseLE maps x ↦ (x + increment) mod modulus on a
// Fourier-encoded register. The register value must already be below the
// modulus (the computational-basis wrappers verify this in debug builds);
// the modulus itself must leave the register's top bit free so the
// comparison trick below has room for the sign.
//
// The sequence adds the increment, subtracts the modulus, copies the
// resulting sign bit onto a flag ancilla, and conditionally re-adds the
// modulus; a second sign copy uncomputes the flag. Under an ambient control
// context only the increment stages are controlled; the overflow repair is
// self-cancelling when the controls are off.
func ModularIncrementPhaseLE(api *quantum.API, increment, modulus int64, target register.PhaseLittleEndian) error {
	n := len(target)
	if err := checkModulus(modulus, n); err != nil {
		return err
	}
	a := nums.Mod(increment, modulus)
	ctls := api.ActiveControls()
	le := target.Computational()

	return api.Bare(func(api *quantum.API) error {
		return api.WithAncilla(1, func(anc []quantum.Qubit) error {
			flag := anc[0]
			copySign := func(api *quantum.API) error {
				return api.Conjugated(
					func(api *quantum.API) error {
						return api.Adjoint(func(api *quantum.API) error {
							return qft.ApplyQFTLE(api, le)
						})
					},
					func(api *quantum.API) error { return api.CNOT(le[n-1], flag) },
				)
			}
			ctlAdd := func(api *quantum.API, v int64) error {
				return api.Controlled(ctls, func(api *quantum.API) error {
					return IntegerIncrementPhaseLE(api, v, target)
				})
			}

			if err := ctlAdd(api, a); err != nil {
				return err
			}
			if err := IntegerIncrementPhaseLE(api, -modulus, target); err != nil {
				return err
			}
			if err := copySign(api); err != nil {
				return err
			}
			err := api.Controlled([]quantum.Qubit{flag}, func(api *quantum.API) error {
				return IntegerIncrementPhaseLE(api, modulus, target)
			})
			if err != nil {
				return err
			}
			if err := ctlAdd(api, -a); err != nil {
				return err
			}
			if err := copySign(api); err != nil {
				return err
			}
			if err := api.X(flag); err != nil {
				return err
			}
			return ctlAdd(api, a)
		})
	})
}

// ModularIncrementLE is the computational-basis form of
// ModularIncrementPhaseLE, conjugated with the QFT.
func ModularIncrementLE(api *quantum.API, increment, modulus int64, target register.LittleEndian) error {
	if err := checkModulus(modulus, len(target)); err != nil {
		return err
	}
	assertBelowModulus(api, modulus, target)
	ctls := api.ActiveControls()
	return api.Bare(func(api *quantum.API) error {
		return api.Conjugated(
			func(api *quantum.API) error { return qft.ApplyQFTLE(api, target) },
			func(api *quantum.API) error {
				return api.Controlled(ctls, func(api *quantum.API) error {
					return ModularIncrementPhaseLE(api, increment, modulus, target.Phase())
				})
			},
		)
	})
}

// ModularAddProductPhaseLE maps y ↦ (y + constant·x) mod modulus where x is
// the value of the multiplier register and y the Fourier-encoded target: one
// modular increment by constant·2^i mod modulus per multiplier bit.
func ModularAddProductPhaseLE(api *quantum.API, constant, modulus int64, multiplier register.LittleEndian, target register.PhaseLittleEndian) error {
	if err := checkModulus(modulus, len(target)); err != nil {
		return err
	}
	if len(multiplier) == 0 || len(multiplier) > register.MaxWidth {
		return fmt.Errorf("%w: multiplier width %d", quantum.ErrOutOfRange, len(multiplier))
	}
	a := nums.Mod(constant, modulus)
	for _, bit := range multiplier {
		err := api.Controlled([]quantum.Qubit{bit}, func(api *quantum.API) error {
			return ModularIncrementPhaseLE(api, a, modulus, target)
		})
		if err != nil {
			return err
		}
		a = nums.Mod(a*2, modulus)
	}
	return nil
}

// ModularAddProductLE is the computational-basis form of
// ModularAddProductPhaseLE, conjugated with the QFT.
func ModularAddProductLE(api *quantum.API, constant, modulus int64, multiplier register.LittleEndian, target register.LittleEndian) error {
	if err := checkModulus(modulus, len(target)); err != nil {
		return err
	}
	if len(multiplier) == 0 || len(multiplier) > register.MaxWidth {
		return fmt.Errorf("%w: multiplier width %d", quantum.ErrOutOfRange, len(multiplier))
	}
	assertBelowModulus(api, modulus, target)
	ctls := api.ActiveControls()
	return api.Bare(func(api *quantum.API) error {
		return api.Conjugated(
			func(api *quantum.API) error { return qft.ApplyQFTLE(api, target) },
			func(api *quantum.API) error {
				return api.Controlled(ctls, func(api *quantum.API) error {
					return ModularAddProductPhaseLE(api, constant, modulus, multiplier, target.Phase())
				})
			},
		)
	})
}
