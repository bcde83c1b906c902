package arith

import (
	"fmt"

	"github.com/quarclib/quarc/quantum"
)

// CascadeCNOT applies CNOT(qs[i], qs[i+1]) along the sequence, propagating
// each bit into its neighbor. With reverse set the chain runs from the top
// down, which inverts the forward chain.
func CascadeCNOT(api *quantum.API, qs []quantum.Qubit, reverse bool) error {
	if reverse {
		for i := len(qs) - 2; i >= 0; i-- {
			if err := api.CNOT(qs[i], qs[i+1]); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i < len(qs)-1; i++ {
		if err := api.CNOT(qs[i], qs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// CascadeCCNOT is the AND-ladder: it folds ctls pairwise into anc so that
// after the cascade anc[k-2] holds ctls[0] ∧ ... ∧ ctls[k-1] for each k.
// Requires len(anc) == len(ctls)-1 and at least two controls; anc must be
// clean (|0⟩). Self-uncomputing when applied a second time in reverse, which
// Conjugated does for free.
func CascadeCCNOT(api *quantum.API, ctls, anc []quantum.Qubit) error {
	if len(ctls) < 2 {
		return fmt.Errorf("%w: AND-ladder needs at least 2 controls, got %d", quantum.ErrOutOfRange, len(ctls))
	}
	if len(anc) != len(ctls)-1 {
		return fmt.Errorf("%w: AND-ladder over %d controls needs %d ancillas, got %d",
			quantum.ErrLengthMismatch, len(ctls), len(ctls)-1, len(anc))
	}
	if err := api.CCNOT(ctls[0], ctls[1], anc[0]); err != nil {
		return err
	}
	for k := 2; k < len(ctls); k++ {
		if err := api.CCNOT(anc[k-2], ctls[k], anc[k-1]); err != nil {
			return err
		}
	}
	return nil
}

// MultiControlledX flips target when all of ctls are |1⟩. Up to two controls
// map onto the primitive gate set directly; beyond that the AND-ladder
// synthesizes the gate from Toffolis plus len(ctls)-1 clean ancillas.
func MultiControlledX(api *quantum.API, ctls []quantum.Qubit, target quantum.Qubit) error {
	switch len(ctls) {
	case 0:
		return api.X(target)
	case 1:
		return api.CNOT(ctls[0], target)
	case 2:
		return api.CCNOT(ctls[0], ctls[1], target)
	}
	return api.WithAncilla(len(ctls)-1, func(anc []quantum.Qubit) error {
		return api.Conjugated(
			func(api *quantum.API) error { return CascadeCCNOT(api, ctls, anc) },
			func(api *quantum.API) error { return api.CNOT(anc[len(anc)-1], target) },
		)
	})
}
