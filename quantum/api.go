package quantum

import (
	"github.com/quarclib/quarc/logger"
	"github.com/quarclib/quarc/profile"
	"github.com/rs/zerolog"
)

// API is the handle gadgets emit gates through. It carries the ambient
// control context installed by Controlled and the recording buffer used by
// Adjoint and Conjugated.
//
// An API drives exactly one Engine and is not safe for concurrent use; the
// execution model is a single linear gate sequence.
type API struct {
	engine Engine
	ctls   []Qubit
	rec    *recording
	log    zerolog.Logger
}

// recording buffers gates while a block is being captured for inversion.
// Ancillas released inside the capture stay allocated until the replayed
// gates have been emitted, so the replay never touches a recycled slot.
type recording struct {
	gates    []Gate
	deferred []Qubit
}

// NewAPI returns an API issuing gates to engine.
func NewAPI(engine Engine) *API {
	return &API{
		engine: engine,
		log:    logger.Logger().With().Str("component", "quantum").Logger(),
	}
}

// Engine returns the engine this API drives.
func (api *API) Engine() Engine { return api.engine }

// Recording reports whether emitted gates are being captured for a replay
// instead of executed. While it is true the engine state lags behind the
// buffered gates, so state probes are not meaningful.
func (api *API) Recording() bool { return api.rec != nil }

// emitRaw forwards a fully-formed gate to the recording buffer or the engine.
func (api *API) emitRaw(g Gate) error {
	if api.rec != nil {
		api.rec.gates = append(api.rec.gates, g)
		return nil
	}
	profile.RecordGate()
	return api.engine.Apply(g)
}

// emit attaches the ambient control context and forwards the gate.
func (api *API) emit(g Gate) error {
	if len(api.ctls) > 0 {
		g = g.controlled(api.ctls)
	}
	return api.emitRaw(g)
}

// X applies a NOT gate to q.
func (api *API) X(q Qubit) error {
	return api.emit(Gate{Kind: GateX, Targets: []Qubit{q}})
}

// CNOT applies a controlled NOT: target flips when ctl is |1⟩.
func (api *API) CNOT(ctl, target Qubit) error {
	return api.emit(Gate{Kind: GateX, Controls: []Qubit{ctl}, Targets: []Qubit{target}})
}

// CCNOT applies a Toffoli gate: target flips when both controls are |1⟩.
func (api *API) CCNOT(ctl1, ctl2, target Qubit) error {
	return api.emit(Gate{Kind: GateX, Controls: []Qubit{ctl1, ctl2}, Targets: []Qubit{target}})
}

// H applies a Hadamard gate to q.
func (api *API) H(q Qubit) error {
	return api.emit(Gate{Kind: GateH, Targets: []Qubit{q}})
}

// Swap exchanges the states of a and b.
func (api *API) Swap(a, b Qubit) error {
	return api.emit(Gate{Kind: GateSwap, Targets: []Qubit{a, b}})
}

// PhaseShift applies diag(1, exp(2πi·num/2^pow)) to q. num may be negative.
func (api *API) PhaseShift(num int64, pow uint8, q Qubit) error {
	return api.emit(Gate{Kind: GatePhaseShift, Targets: []Qubit{q}, Num: num, Pow: pow})
}

// Controlled runs block with ctls added to the control context: every gate
// the block emits acts only when all of ctls are |1⟩, coherently across
// superposition.
func (api *API) Controlled(ctls []Qubit, block func(*API) error) error {
	if len(ctls) == 0 {
		return block(api)
	}
	saved := api.ctls
	merged := make([]Qubit, 0, len(saved)+len(ctls))
	merged = append(merged, saved...)
	merged = append(merged, ctls...)
	api.ctls = merged
	err := block(api)
	api.ctls = saved
	return err
}

// ActiveControls returns a copy of the ambient control context. Gadgets
// implementing a specialized controlled form read it and re-issue their
// gate sequence through Bare.
func (api *API) ActiveControls() []Qubit {
	if len(api.ctls) == 0 {
		return nil
	}
	out := make([]Qubit, len(api.ctls))
	copy(out, api.ctls)
	return out
}

// Bare runs block with an empty control context. Reserved for gadgets that
// implement their own controlled form from ActiveControls; the block must
// apply the active controls itself wherever the operation's semantics
// require them.
func (api *API) Bare(block func(*API) error) error {
	saved := api.ctls
	api.ctls = nil
	err := block(api)
	api.ctls = saved
	return err
}

// Adjoint records block without executing it, then emits the inverse of the
// recorded sequence in reverse order.
func (api *API) Adjoint(block func(*API) error) error {
	rec, err := api.capture(block)
	if err != nil {
		return api.settle(rec, err)
	}
	for i := len(rec.gates) - 1; i >= 0; i-- {
		if err := api.emitRaw(rec.gates[i].Inverse()); err != nil {
			return api.settle(rec, err)
		}
	}
	return api.settle(rec, nil)
}

// Conjugated applies outer, then inner, then the adjoint of outer. The outer
// block is captured once so its ancilla allocations are shared between the
// forward and inverse passes.
func (api *API) Conjugated(outer, inner func(*API) error) error {
	rec, err := api.capture(outer)
	if err != nil {
		return api.settle(rec, err)
	}
	for _, g := range rec.gates {
		if err := api.emitRaw(g); err != nil {
			return api.settle(rec, err)
		}
	}
	if err := inner(api); err != nil {
		return api.settle(rec, err)
	}
	for i := len(rec.gates) - 1; i >= 0; i-- {
		if err := api.emitRaw(rec.gates[i].Inverse()); err != nil {
			return api.settle(rec, err)
		}
	}
	return api.settle(rec, nil)
}

// WithAncilla allocates n scratch qubits for the duration of block. The
// block must return them to |0⟩; inside a recording the release is deferred
// until the replayed gates have been emitted, so sequential ancilla scopes
// captured by one recording hold their qubits concurrently. Gadgets that
// uncompute ancilla-hungry blocks should emit the inverse directly instead
// of recording it through Adjoint.
func (api *API) WithAncilla(n int, block func(anc []Qubit) error) error {
	anc, err := api.engine.Allocate(n)
	if err != nil {
		return err
	}
	err = block(anc)
	if api.rec != nil {
		api.rec.deferred = append(api.rec.deferred, anc...)
		return err
	}
	rerr := api.engine.Release(anc...)
	if err != nil {
		return err
	}
	return rerr
}

// capture runs block in recording mode and returns the buffered sequence.
func (api *API) capture(block func(*API) error) (*recording, error) {
	parent := api.rec
	rec := &recording{}
	api.rec = rec
	err := block(api)
	api.rec = parent
	return rec, err
}

// settle releases (or re-defers) the ancillas held by a finished recording
// and combines the release outcome with err.
func (api *API) settle(rec *recording, err error) error {
	if len(rec.deferred) == 0 {
		return err
	}
	if api.rec != nil {
		api.rec.deferred = append(api.rec.deferred, rec.deferred...)
		return err
	}
	rerr := api.engine.Release(rec.deferred...)
	if err != nil {
		return err
	}
	return rerr
}
