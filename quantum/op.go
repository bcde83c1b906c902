package quantum

// Op is a reversible operation over qubit registers. Every Op has a
// well-defined adjoint and controlled form through the Adjointed and
// ControlledOp wrappers; ops may additionally implement CustomControlled to
// supply a cheaper specialized controlled sequence.
type Op interface {
	Apply(api *API) error
}

// OpFunc adapts a function to the Op interface.
type OpFunc func(api *API) error

func (f OpFunc) Apply(api *API) error { return f(api) }

// CustomControlled is implemented by ops whose controlled form is cheaper
// than controlling every primitive gate.
type CustomControlled interface {
	Op
	ApplyControlled(api *API, ctls []Qubit) error
}

// Adjointed returns the inverse of op.
func Adjointed(op Op) Op {
	return OpFunc(func(api *API) error {
		return api.Adjoint(op.Apply)
	})
}

// ControlledOp returns op gated on ctls. When op implements
// CustomControlled its specialized form is used.
func ControlledOp(op Op, ctls ...Qubit) Op {
	return OpFunc(func(api *API) error {
		if len(ctls) == 0 {
			return op.Apply(api)
		}
		if cc, ok := op.(CustomControlled); ok {
			return cc.ApplyControlled(api, ctls)
		}
		return api.Controlled(ctls, op.Apply)
	})
}

// Seq returns the sequential composition of ops, applied left to right.
func Seq(ops ...Op) Op {
	return OpFunc(func(api *API) error {
		for _, op := range ops {
			if err := op.Apply(api); err != nil {
				return err
			}
		}
		return nil
	})
}
