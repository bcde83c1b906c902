package arith

import (
	"fmt"

	"github.com/quarclib/quarc/quantum"
	"github.com/quarclib/quarc/register"
)

// The three ripple-carry adders below all compute, in place,
//
//	ys ↦ xs + ys (mod 2^n),  carry ↦ carry ⊕ carry-out,
//
// for equal-width little-endian registers and a carry qubit initially |0⟩.
// They differ in the ancilla/gate-count trade-off:
//
//	AddD     n ancillas, one Carry per bit; the simplest to verify
//	AddCDKM  1 ancilla  (Cuccaro MAJ/UMA chain)
//	AddTTK   0 ancillas (Toffoli ladder directly on the inputs)
//
// AddD and AddTTK implement specialized controlled forms: their carry
// ladders compute and uncompute each other, so under an ambient control
// context only the gates that survive the round trip are controlled.

func checkAdd(xs, ys register.LittleEndian) error {
	if err := equalWidth(xs, ys); err != nil {
		return err
	}
	if len(xs) == 0 {
		return fmt.Errorf("%w: empty register", quantum.ErrOutOfRange)
	}
	return nil
}

// AddD is the carry-ripple adder with one ancilla per bit. aux[i] carries
// the ripple into bit i; the forward pass computes every carry, the MSB
// stage folds the carry-out, and the backward pass uncomputes the ripple
// while producing the sum bits.
func AddD(api *quantum.API, xs, ys register.LittleEndian, carry quantum.Qubit) error {
	if err := checkAdd(xs, ys); err != nil {
		return err
	}
	n := len(xs)
	ctls := api.ActiveControls()
	return api.Bare(func(api *quantum.API) error {
		return api.WithAncilla(n, func(aux []quantum.Qubit) error {
			for i := 0; i < n-1; i++ {
				if err := Carry(api, aux[i], xs[i], ys[i], aux[i+1]); err != nil {
					return err
				}
			}
			err := api.Controlled(ctls, func(api *quantum.API) error {
				if err := Carry(api, aux[n-1], xs[n-1], ys[n-1], carry); err != nil {
					return err
				}
				if err := api.CNOT(xs[n-1], ys[n-1]); err != nil {
					return err
				}
				return Sum(api, aux[n-1], xs[n-1], ys[n-1])
			})
			if err != nil {
				return err
			}
			for i := n - 2; i >= 0; i-- {
				err := api.Adjoint(func(api *quantum.API) error {
					return Carry(api, aux[i], xs[i], ys[i], aux[i+1])
				})
				if err != nil {
					return err
				}
				err = api.Controlled(ctls, func(api *quantum.API) error {
					return Sum(api, aux[i], xs[i], ys[i])
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// AddCDKM is the single-ancilla adder built from the MAJ/UMA chain.
func AddCDKM(api *quantum.API, xs, ys register.LittleEndian, carry quantum.Qubit) error {
	if err := checkAdd(xs, ys); err != nil {
		return err
	}
	n := len(xs)
	return api.WithAncilla(1, func(anc []quantum.Qubit) error {
		c0 := anc[0]
		if err := maj(api, c0, ys[0], xs[0]); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err := maj(api, xs[i-1], ys[i], xs[i]); err != nil {
				return err
			}
		}
		if err := api.CNOT(xs[n-1], carry); err != nil {
			return err
		}
		for i := n - 1; i >= 1; i-- {
			if err := uma(api, xs[i-1], ys[i], xs[i]); err != nil {
				return err
			}
		}
		return uma(api, c0, ys[0], xs[0])
	})
}

// maj folds the majority of (c, b, a) onto a, leaving b ↦ a⊕b and c ↦ a⊕c.
func maj(api *quantum.API, c, b, a quantum.Qubit) error {
	if err := api.CNOT(a, b); err != nil {
		return err
	}
	if err := api.CNOT(a, c); err != nil {
		return err
	}
	return api.CCNOT(c, b, a)
}

// uma undoes maj and leaves the sum bit on b.
func uma(api *quantum.API, c, b, a quantum.Qubit) error {
	if err := api.CCNOT(c, b, a); err != nil {
		return err
	}
	if err := api.CNOT(a, c); err != nil {
		return err
	}
	return api.CNOT(c, b)
}

// AddTTK is the ancilla-free adder. The outer conjugation stages
// ys[i] ↦ xs[i]⊕ys[i] and chains the xs carries; the inner Toffoli ladder
// ripples the carry up through xs and back down while depositing the sum
// bits. Width-1 registers degenerate to a single Toffoli.
func AddTTK(api *quantum.API, xs, ys register.LittleEndian, carry quantum.Qubit) error {
	if err := checkAdd(xs, ys); err != nil {
		return err
	}
	n := len(xs)
	ctls := api.ActiveControls()
	return api.Bare(func(api *quantum.API) error {
		if n > 1 {
			err := api.Controlled(ctls, func(api *quantum.API) error {
				return api.CNOT(xs[n-1], carry)
			})
			if err != nil {
				return err
			}
			err = api.Conjugated(
				func(api *quantum.API) error {
					for i := 1; i < n; i++ {
						if err := api.CNOT(xs[i], ys[i]); err != nil {
							return err
						}
					}
					return CascadeCNOT(api, xs[1:], true)
				},
				func(api *quantum.API) error {
					for i := 0; i < n-1; i++ {
						if err := api.CCNOT(xs[i], ys[i], xs[i+1]); err != nil {
							return err
						}
					}
					err := api.Controlled(ctls, func(api *quantum.API) error {
						return api.CCNOT(xs[n-1], ys[n-1], carry)
					})
					if err != nil {
						return err
					}
					for i := n - 1; i >= 1; i-- {
						err := api.Controlled(ctls, func(api *quantum.API) error {
							return api.CNOT(xs[i], ys[i])
						})
						if err != nil {
							return err
						}
						if err := api.CCNOT(xs[i-1], ys[i-1], xs[i]); err != nil {
							return err
						}
					}
					return nil
				},
			)
			if err != nil {
				return err
			}
		} else {
			err := api.Controlled(ctls, func(api *quantum.API) error {
				return api.CCNOT(xs[0], ys[0], carry)
			})
			if err != nil {
				return err
			}
		}
		return api.Controlled(ctls, func(api *quantum.API) error {
			return api.CNOT(xs[0], ys[0])
		})
	})
}
