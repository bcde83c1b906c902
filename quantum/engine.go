package quantum

// Engine executes primitive gates. Implementations are the statevector
// simulator, the gate Recorder, and eventually hardware bridges.
//
// Engines own the qubit pool. Freshly allocated qubits are |0⟩; released
// qubits must be |0⟩ again or future allocations observe garbage (backends
// built with the debug tag verify this and fail the Release).
//
// An Engine is driven by exactly one API at a time; the execution model is
// sequential per call and implementations need no internal locking.
type Engine interface {
	// Allocate reserves n fresh qubits in the |0⟩ state.
	Allocate(n int) ([]Qubit, error)

	// Release returns qubits to the pool. Callers must have restored them
	// to |0⟩.
	Release(qs ...Qubit) error

	// Apply executes one primitive gate.
	Apply(g Gate) error
}
