package arith

import (
	"github.com/quarclib/quarc/quantum"
	"github.com/quarclib/quarc/register"
)

// GreaterThan flips result iff xs > ys (unsigned), leaving both registers
// unchanged. It evaluates the carry-out of xs + ¬ys, i.e. of xs - ys - 1,
// reusing the ancilla-free adder's carry ladder: the ladder is run under a
// conjugation so everything except the carry bit uncomputes.
func GreaterThan(api *quantum.API, xs, ys register.LittleEndian, result quantum.Qubit) error {
	if err := checkAdd(xs, ys); err != nil {
		return err
	}
	n := len(xs)
	ctls := api.ActiveControls()
	return api.Bare(func(api *quantum.API) error {
		if n == 1 {
			return api.Conjugated(
				func(api *quantum.API) error { return api.X(ys[0]) },
				func(api *quantum.API) error {
					return api.Controlled(ctls, func(api *quantum.API) error {
						return api.CCNOT(xs[0], ys[0], result)
					})
				},
			)
		}
		err := api.Controlled(ctls, func(api *quantum.API) error {
			return api.CNOT(xs[n-1], result)
		})
		if err != nil {
			return err
		}
		return api.Conjugated(
			func(api *quantum.API) error {
				for _, y := range ys {
					if err := api.X(y); err != nil {
						return err
					}
				}
				for i := 1; i < n; i++ {
					if err := api.CNOT(xs[i], ys[i]); err != nil {
						return err
					}
				}
				if err := CascadeCNOT(api, xs[1:], true); err != nil {
					return err
				}
				for i := 0; i < n-1; i++ {
					if err := api.CCNOT(xs[i], ys[i], xs[i+1]); err != nil {
						return err
					}
				}
				return nil
			},
			func(api *quantum.API) error {
				return api.Controlled(ctls, func(api *quantum.API) error {
					return api.CCNOT(xs[n-1], ys[n-1], result)
				})
			},
		)
	})
}
