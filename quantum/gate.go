package quantum

import (
	"fmt"
	"strings"
)

// Qubit is an opaque handle to one two-level quantum system, owned by the
// Engine that allocated it.
type Qubit int32

// GateKind enumerates the primitive gate set backends must implement.
type GateKind uint8

const (
	// GateX is the bit flip (NOT). With one control it is a CNOT, with two
	// a CCNOT (Toffoli).
	GateX GateKind = iota
	// GateH is the Hadamard gate.
	GateH
	// GateSwap exchanges two qubits.
	GateSwap
	// GatePhaseShift applies diag(1, exp(2πi·Num/2^Pow)) to its target.
	GatePhaseShift
)

func (k GateKind) String() string {
	switch k {
	case GateX:
		return "x"
	case GateH:
		return "h"
	case GateSwap:
		return "swap"
	case GatePhaseShift:
		return "phase"
	default:
		return fmt.Sprintf("gate(%d)", uint8(k))
	}
}

// nbTargets returns how many target qubits a gate of kind k acts on.
func (k GateKind) nbTargets() int {
	if k == GateSwap {
		return 2
	}
	return 1
}

// Gate is one primitive gate application. The gate acts on Targets only when
// every qubit in Controls is |1⟩.
type Gate struct {
	Kind     GateKind
	Controls []Qubit
	Targets  []Qubit

	// PhaseShift parameters; the rotation angle is 2π·Num/2^Pow.
	Num int64
	Pow uint8
}

// Inverse returns the gate undoing g. X, H and Swap are self-inverse; a
// phase shift inverts by negating its numerator.
func (g Gate) Inverse() Gate {
	if g.Kind == GatePhaseShift {
		g.Num = -g.Num
	}
	return g
}

// controlled returns a copy of g with ctls prepended to its control list.
func (g Gate) controlled(ctls []Qubit) Gate {
	merged := make([]Qubit, 0, len(ctls)+len(g.Controls))
	merged = append(merged, ctls...)
	merged = append(merged, g.Controls...)
	g.Controls = merged
	return g
}

func (g Gate) String() string {
	var sb strings.Builder
	for range g.Controls {
		sb.WriteByte('c')
	}
	sb.WriteString(g.Kind.String())
	if g.Kind == GatePhaseShift {
		fmt.Fprintf(&sb, "(%d/2^%d)", g.Num, g.Pow)
	}
	fmt.Fprintf(&sb, " %v", g.Targets)
	if len(g.Controls) > 0 {
		fmt.Fprintf(&sb, " ctl %v", g.Controls)
	}
	return sb.String()
}
