// Package quantum defines the primitives every quarc gadget is built from:
// qubit handles, the small reversible gate set, the Engine interface
// implemented by execution backends, and the API object gadgets emit gates
// through.
//
// The API provides the three combinators the arithmetic library leans on:
//
//   - Controlled: run a block with extra control qubits attached to every
//     emitted gate, coherently across superposition;
//   - Adjoint: record a block and emit its exact inverse;
//   - Conjugated: the pervasive "with U, apply V, then U⁻¹" pattern.
//
// Ancilla qubits are acquired through WithAncilla, which scopes the
// allocation to the block and returns the qubits to the pool afterwards.
// The caller must return ancillas to |0⟩ before the block ends; backends
// verify this when built with the debug tag.
package quantum
